package graph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Definition is a declarative chain description: a name and the node
// names in execution order. Definitions are resolved against a Registry
// to produce an executable Pipeline.
type Definition struct {
	Name  string   `yaml:"name"`
	Steps []string `yaml:"steps"`
}

// ParseDefinition decodes a YAML chain definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("graph: parsing definition: %w", err)
	}
	if d.Name == "" {
		return nil, errors.New("graph: definition has no name")
	}
	if len(d.Steps) == 0 {
		return nil, fmt.Errorf("graph: definition %q has no steps", d.Name)
	}
	return &d, nil
}

// LoadDefinition reads and decodes a chain definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: reading definition: %w", err)
	}
	return ParseDefinition(data)
}

// FindDefinition searches the given directories for {name}.yml or
// {name}.yaml and loads the first match.
func FindDefinition(name string, dirs ...string) (*Definition, error) {
	for _, dir := range dirs {
		for _, ext := range []string{".yml", ".yaml"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			return LoadDefinition(path)
		}
	}
	return nil, fmt.Errorf("graph: definition %q not found in %v", name, dirs)
}

// Build resolves a definition against the registry and compiles the
// resulting chain.
func Build[S, U any](def *Definition, reg *Registry[S, U], merge Merge[S, U]) (*Pipeline[S, U], error) {
	g := New(merge)
	prev := Start
	for _, name := range def.Steps {
		fn, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("graph: node %q not found in registry (have: %v)", name, reg.List())
		}
		g.AddNode(name, fn)
		g.AddEdge(prev, name)
		prev = name
	}
	g.AddEdge(prev, End)

	p, err := g.Compile()
	if err != nil {
		return nil, fmt.Errorf("graph: definition %q: %w", def.Name, err)
	}
	return p, nil
}
