package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Shell.Prompt != "sauce" {
		t.Errorf("expected default prompt 'sauce', got %q", cfg.Shell.Prompt)
	}
	if cfg.Shell.Format != "auto" {
		t.Errorf("expected default format 'auto', got %q", cfg.Shell.Format)
	}
	if cfg.Shell.ReadOnly || cfg.Shell.Recursive {
		t.Error("expected readonly and recursive to default to false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestInterpolateEnv(t *testing.T) {
	getenv := func(key string) string {
		switch key {
		case "TEST_PROMPT":
			return "docs"
		case "TEST_LEVEL":
			return "debug"
		default:
			return ""
		}
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple substitution",
			input:    "prompt: ${TEST_PROMPT}",
			expected: "prompt: docs",
		},
		{
			name:     "with default (env set)",
			input:    "prompt: ${TEST_PROMPT:-sauce}",
			expected: "prompt: docs",
		},
		{
			name:     "with default (env not set)",
			input:    "prompt: ${UNSET_VAR:-sauce}",
			expected: "prompt: sauce",
		},
		{
			name:     "unset without default",
			input:    "prompt: ${UNSET_VAR}",
			expected: "prompt: ",
		},
		{
			name:     "multiple substitutions",
			input:    "x: ${TEST_PROMPT}-${TEST_LEVEL}",
			expected: "x: docs-debug",
		},
		{
			name:     "no substitution needed",
			input:    "format: yaml",
			expected: "format: yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := string(interpolateEnv([]byte(tt.input), getenv))
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sauce.yaml")

	configContent := `
shell:
  prompt: docs
  history: .history
  format: yaml
  output: yaml
  recursive: true
  readonly: true

logging:
  level: debug
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, path, err := LoadWithPath(configPath, os.Getenv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if path != configPath {
		t.Errorf("expected path %q, got %q", configPath, path)
	}
	if cfg.Shell.Prompt != "docs" {
		t.Errorf("expected prompt 'docs', got %q", cfg.Shell.Prompt)
	}
	if want := filepath.Join(dir, ".history"); cfg.Shell.History != want {
		t.Errorf("expected history %q, got %q", want, cfg.Shell.History)
	}
	if cfg.Shell.Format != "yaml" || cfg.Shell.Output != "yaml" {
		t.Errorf("expected yaml format and output, got %q/%q", cfg.Shell.Format, cfg.Shell.Output)
	}
	if !cfg.Shell.Recursive || !cfg.Shell.ReadOnly {
		t.Error("expected recursive and readonly to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got %q", cfg.Logging.Format)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sauce.yaml")
	if err := os.WriteFile(configPath, []byte("shell:\n  readonly: true\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath, os.Getenv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Shell.Prompt != "sauce" || cfg.Logging.Level != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if !cfg.Shell.ReadOnly {
		t.Error("expected readonly to be true")
	}
}

func TestLoadWithEnvInterpolation(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sauce.yaml")

	configContent := `
shell:
  prompt: ${SAUCE_TEST_PROMPT:-fallback}
logging:
  level: ${SAUCE_TEST_LEVEL:-warn}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	getenv := func(key string) string {
		if key == "SAUCE_TEST_PROMPT" {
			return "env"
		}
		return ""
	}

	cfg, err := Load(configPath, getenv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Shell.Prompt != "env" {
		t.Errorf("expected prompt 'env', got %q", cfg.Shell.Prompt)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %q", cfg.Logging.Level)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		expectErr bool
		errSubstr []string
	}{
		{
			name: "valid config",
			config: `
shell:
  format: json
logging:
  level: error
  format: text
`,
		},
		{
			name: "invalid log level",
			config: `
logging:
  level: verbose
`,
			expectErr: true,
			errSubstr: []string{"invalid log level: verbose"},
		},
		{
			name: "invalid format",
			config: `
shell:
  format: toml
`,
			expectErr: true,
			errSubstr: []string{"invalid shell format: toml"},
		},
		{
			name: "every problem reported",
			config: `
shell:
  output: xml
logging:
  format: xml
`,
			expectErr: true,
			errSubstr: []string{"invalid shell output: xml", "invalid log format: xml"},
		},
		{
			name:      "malformed yaml",
			config:    "shell: [",
			expectErr: true,
			errSubstr: []string{"failed to parse config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			configPath := filepath.Join(dir, "sauce.yaml")
			if err := os.WriteFile(configPath, []byte(tt.config), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := Load(configPath, os.Getenv)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				for _, sub := range tt.errSubstr {
					if !strings.Contains(err.Error(), sub) {
						t.Errorf("expected error containing %q, got %q", sub, err.Error())
					}
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	none := func(string) string { return "" }

	if _, err := resolveConfigPath("/nonexistent/path/sauce.yaml", none); err == nil {
		t.Error("expected error for nonexistent path")
	}

	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	resolved, err := resolveConfigPath(configPath, none)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if resolved != configPath {
		t.Errorf("expected %q, got %q", configPath, resolved)
	}

	fromEnv := func(key string) string {
		if key == "SAUCE_CONFIG" {
			return configPath
		}
		return ""
	}
	resolved, err = resolveConfigPath("", fromEnv)
	if err != nil || resolved != configPath {
		t.Errorf("SAUCE_CONFIG: got %q, %v", resolved, err)
	}

	missingEnv := func(key string) string {
		if key == "SAUCE_CONFIG" {
			return filepath.Join(dir, "missing.yaml")
		}
		return ""
	}
	if _, err := resolveConfigPath("", missingEnv); err == nil || !strings.Contains(err.Error(), "SAUCE_CONFIG") {
		t.Errorf("expected SAUCE_CONFIG error, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"/abs/history", "/abs/history"},
		{"rel/history", filepath.Join("/base", "rel/history")},
		{"~/.sauce_history", filepath.Join(home, ".sauce_history")},
	}
	for _, tt := range tests {
		if got := resolvePath(tt.path, "/base"); got != tt.want {
			t.Errorf("resolvePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
