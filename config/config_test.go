package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mailkit/mailkit/util"
)

// --- BaseConfig tests ---

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("development sets debug true", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "development"}
		cfg.ApplyDefaults()
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", BaseConfig{Name: "svc", Environment: "development"}, false, ""},
		{"valid staging", BaseConfig{Name: "svc", Environment: "staging"}, false, ""},
		{"valid production", BaseConfig{Name: "svc", Environment: "production"}, false, ""},
		{"missing name", BaseConfig{Environment: "production"}, true, "base.name is required"},
		{"invalid environment", BaseConfig{Name: "svc", Environment: "invalid"}, true, "base.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// --- Load tests ---

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
base:
  name: test-service
  environment: staging
  version: "1.0.0"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type TestConfig struct {
		Base BaseConfig `yaml:"base" mapstructure:"base"`
	}

	var cfg TestConfig
	err := Load("test-service", &cfg, WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Base.Name != "test-service" {
		t.Errorf("expected name 'test-service', got %q", cfg.Base.Name)
	}
	if cfg.Base.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Base.Environment)
	}
}

func TestLoadMissingFile(t *testing.T) {
	type TestConfig struct {
		Base BaseConfig `yaml:"base" mapstructure:"base"`
	}

	var cfg TestConfig
	// With no config file found, Load should still succeed (just empty config).
	err := Load("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected Load to succeed with missing file, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	type TestConfig struct {
		Base    BaseConfig `yaml:"base" mapstructure:"base"`
		Logging struct {
			Level   string `mapstructure:"level"`
			NoColor bool   `mapstructure:"no_color"`
		} `mapstructure:"logging"`
	}

	t.Setenv("ENVSVC_BASE_ENVIRONMENT", "production")
	t.Setenv("ENVSVC_LOGGING_LEVEL", "debug")
	t.Setenv("ENVSVC_LOGGING_NO_COLOR", "true")

	var cfg TestConfig
	if err := Load("envsvc", &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Base.Environment != "production" {
		t.Errorf("expected environment 'production', got %q", cfg.Base.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	if !cfg.Logging.NoColor {
		t.Error("expected logging.no_color=true from ENVSVC_LOGGING_NO_COLOR")
	}
}

func TestLoadEnvOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
base:
  name: filesvc
  environment: staging
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("FILESVC_BASE_ENVIRONMENT", "production")

	type TestConfig struct {
		Base BaseConfig `yaml:"base" mapstructure:"base"`
	}

	var cfg TestConfig
	if err := Load("filesvc", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Base.Name != "filesvc" {
		t.Errorf("expected name 'filesvc' from file, got %q", cfg.Base.Name)
	}
	if cfg.Base.Environment != "production" {
		t.Errorf("expected env override 'production', got %q", cfg.Base.Environment)
	}
}

func TestLoadEnvFileThroughFileSystem(t *testing.T) {
	fs := &mockFS{files: map[string]bool{".env.test": true}}

	type TestConfig struct {
		Base BaseConfig `yaml:"base" mapstructure:"base"`
	}

	var cfg TestConfig
	err := Load("svc", &cfg, WithFileSystem(fs), WithEnvFile(".env.test"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(fs.loaded) != 1 || fs.loaded[0] != ".env.test" {
		t.Errorf("expected LoadEnv called with .env.test, got %v", fs.loaded)
	}
}

// --- Resolver tests ---

func TestResolverFindsConfigFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected config file at ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
}

func TestResolverFindsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		".env.my-svc": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.EnvFile != ".env.my-svc" {
		t.Errorf("expected env file .env.my-svc, got %q", files.EnvFile)
	}
}

func TestResolverKeepsExplicitPaths(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{
		ConfigFile: "/explicit/config.yml",
		EnvFile:    "/explicit/.env",
	})
	if files.ConfigFile != "/explicit/config.yml" {
		t.Errorf("expected explicit config path, got %q", files.ConfigFile)
	}
	if files.EnvFile != "/explicit/.env" {
		t.Errorf("expected explicit env path, got %q", files.EnvFile)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

// --- option tests ---

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

// --- env key variant tests ---

func TestEnvKeyVariants(t *testing.T) {
	t.Run("single part", func(t *testing.T) {
		variants := envKeyVariants("DEBUG")
		if len(variants) != 1 || variants[0] != "debug" {
			t.Errorf("expected [debug], got %v", variants)
		}
	})

	t.Run("multi part covers both nesting styles", func(t *testing.T) {
		variants := envKeyVariants("LOGGING_NO_COLOR")
		for _, want := range []string{"logging.no.color", "logging.no_color"} {
			if !util.Contains(variants, want) {
				t.Errorf("expected variants to contain %q, got %v", want, variants)
			}
		}
	})
}
