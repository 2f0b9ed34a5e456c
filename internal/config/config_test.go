package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetTestPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				TestPath:    "tests",
				Flags:       Flags{},
			},
			expected: "tests",
		},
		{
			name: "with test path flag",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    "tests",
				Flags: Flags{
					TestPath: "spec",
				},
			},
			expected: "/project/spec",
		},
		{
			name: "absolute test path",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    "tests",
				Flags: Flags{
					TestPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetTestPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_FlagOverrides(t *testing.T) {
	cfg := New()

	t.Run("defaults without flags", func(t *testing.T) {
		if cfg.GetPython() != DefaultPython {
			t.Errorf("expected %s, got %s", DefaultPython, cfg.GetPython())
		}
		if cfg.GetCoverageSource() != DefaultCoverageSource {
			t.Errorf("expected %s, got %s", DefaultCoverageSource, cfg.GetCoverageSource())
		}
	})

	t.Run("flags take precedence", func(t *testing.T) {
		cfg := New()
		cfg.Flags.Python = "python3.12"
		cfg.Flags.CoverageSource = "lib"
		if cfg.GetPython() != "python3.12" {
			t.Errorf("expected python3.12, got %s", cfg.GetPython())
		}
		if cfg.GetCoverageSource() != "lib" {
			t.Errorf("expected lib, got %s", cfg.GetCoverageSource())
		}
	})
}

func TestConfig_GetHTMLReportPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"
	expected := filepath.Join("/project", "htmlcov", "index.html")
	if got := cfg.GetHTMLReportPath(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.TestPath != DefaultTestPath {
		t.Errorf("expected TestPath %s, got %s", DefaultTestPath, cfg.TestPath)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestConfig_ApplyFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `test_path: spec
coverage_source: lib
python: python3.11
ignore:
  - fixtures
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := New()
	cfg.ProjectPath = dir
	cfg.applyFile()

	if cfg.TestPath != "spec" {
		t.Errorf("expected test path spec, got %s", cfg.TestPath)
	}
	if cfg.CoverageSource != "lib" {
		t.Errorf("expected coverage source lib, got %s", cfg.CoverageSource)
	}
	if cfg.Python != "python3.11" {
		t.Errorf("expected python3.11, got %s", cfg.Python)
	}

	found := false
	for _, p := range cfg.PathsToIgnore {
		if p == "fixtures" {
			found = true
		}
	}
	if !found {
		t.Error("expected fixtures in ignore paths")
	}
}

func TestConfig_ApplyFileMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("{not yaml::"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := New()
	cfg.ProjectPath = dir
	cfg.applyFile()

	// Malformed file is ignored; defaults stay intact
	if cfg.TestPath != DefaultTestPath {
		t.Errorf("expected default test path, got %s", cfg.TestPath)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Python = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty interpreter")
	}
}
