package graph

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefinition_Valid(t *testing.T) {
	data := []byte(`
name: demo
steps:
  - first
  - second
`)
	def, err := ParseDefinition(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "demo" {
		t.Errorf("expected name 'demo', got %q", def.Name)
	}
	if len(def.Steps) != 2 || def.Steps[0] != "first" || def.Steps[1] != "second" {
		t.Errorf("expected steps [first second], got %v", def.Steps)
	}
}

func TestParseDefinition_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		errMsg string
	}{
		{"missing name", "steps: [a]", "definition has no name"},
		{"missing steps", "name: empty", `definition "empty" has no steps`},
		{"invalid yaml", "name: [unterminated", "parsing definition"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDefinition([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoadDefinition_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shout.yml")
	content := `
name: shout
steps:
  - format_subject
  - uppercase_subject
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "shout" {
		t.Errorf("expected name 'shout', got %q", def.Name)
	}
	if len(def.Steps) != 2 {
		t.Errorf("expected 2 steps, got %v", def.Steps)
	}
}

func TestLoadDefinition_MissingFile(t *testing.T) {
	_, err := LoadDefinition("/nonexistent/p.yml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading definition") {
		t.Errorf("expected read error, got %q", err.Error())
	}
}

func TestFindDefinition_SearchesDirs(t *testing.T) {
	empty := t.TempDir()
	dir := t.TempDir()
	content := "name: found\nsteps: [a]\n"
	if err := os.WriteFile(filepath.Join(dir, "found.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	def, err := FindDefinition("found", empty, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "found" {
		t.Errorf("expected name 'found', got %q", def.Name)
	}
}

func TestFindDefinition_PrefersYmlExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "p.yml"), []byte("name: from-yml\nsteps: [a]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "p.yaml"), []byte("name: from-yaml\nsteps: [a]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	def, err := FindDefinition("p", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "from-yml" {
		t.Errorf("expected .yml to win, got %q", def.Name)
	}
}

func TestFindDefinition_NotFound(t *testing.T) {
	_, err := FindDefinition("ghost", t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `definition "ghost" not found`) {
		t.Errorf("expected not-found error, got %q", err.Error())
	}
}

func TestBuild_ResolvesSteps(t *testing.T) {
	reg := NewRegistry[[]string, string]()
	reg.Register("x", emit("x"))
	reg.Register("y", emit("y"))

	def := &Definition{Name: "pair", Steps: []string{"x", "y"}}
	p, err := Build(def, reg, visitMerge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := p.Invoke(context.Background(), nil)
	if strings.Join(final, ",") != "x,y" {
		t.Errorf("expected visits x,y, got %v", final)
	}
}

func TestBuild_UnknownStep(t *testing.T) {
	reg := NewRegistry[[]string, string]()
	reg.Register("x", emit("x"))

	def := &Definition{Name: "broken", Steps: []string{"x", "ghost"}}
	_, err := Build(def, reg, visitMerge)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `node "ghost" not found in registry`) {
		t.Errorf("expected unknown-node error, got %q", err.Error())
	}
}

func TestBuild_WrapsCompileError(t *testing.T) {
	reg := NewRegistry[[]string, string]()
	reg.Register("x", emit("x"))

	def := &Definition{Name: "dup", Steps: []string{"x", "x"}}
	_, err := Build(def, reg, visitMerge)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `definition "dup"`) {
		t.Errorf("expected definition name in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "duplicate node") {
		t.Errorf("expected underlying compile error, got %q", err.Error())
	}
}
