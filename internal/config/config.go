package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath    string
	TestPath       string
	CoverageSource string
	Python         string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	HTMLReportDir  string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	TestPath       string
	CoverageSource string
	Python         string
	NameFilter     string
	TestCases      bool
	OpenFailures   bool
	Rerun          bool
}

// fileConfig is the shape of the optional ptw.yaml project file
type fileConfig struct {
	TestPath       string   `yaml:"test_path"`
	CoverageSource string   `yaml:"coverage_source"`
	Python         string   `yaml:"python"`
	HTMLReportDir  string   `yaml:"html_report_dir"`
	Ignore         []string `yaml:"ignore"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		CoverageSource: DefaultCoverageSource,
		Python:         DefaultPython,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		HTMLReportDir:  DefaultHTMLReportDir,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config layered from defaults, the optional ptw.yaml file,
// the project's .env file, and finally environment variables.
func Load() *Config {
	cfg := New()
	cfg.applyFile()
	cfg.applyEnv()
	return cfg
}

// applyFile merges the project's ptw.yaml, if present. A malformed file is
// ignored rather than fatal so the wrapper stays runnable with defaults.
func (c *Config) applyFile() {
	path := filepath.Join(c.ProjectPath, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}
	if fc.TestPath != "" {
		c.TestPath = fc.TestPath
	}
	if fc.CoverageSource != "" {
		c.CoverageSource = fc.CoverageSource
	}
	if fc.Python != "" {
		c.Python = fc.Python
	}
	if fc.HTMLReportDir != "" {
		c.HTMLReportDir = fc.HTMLReportDir
	}
	if len(fc.Ignore) > 0 {
		c.PathsToIgnore = append(c.PathsToIgnore, fc.Ignore...)
	}
}

// applyEnv merges .env and process environment overrides.
func (c *Config) applyEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(envPath)

	if v := os.Getenv("PTW_PYTHON"); v != "" {
		c.Python = v
	}
	if v := os.Getenv("PTW_TEST_PATH"); v != "" {
		c.TestPath = v
	}
	if v := os.Getenv("PTW_COV_SOURCE"); v != "" {
		c.CoverageSource = v
	}
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to the project path if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetCoverageSource returns the coverage source path, using flag if provided
func (c *Config) GetCoverageSource() string {
	if c.Flags.CoverageSource != "" {
		return c.Flags.CoverageSource
	}
	return c.CoverageSource
}

// GetPython returns the interpreter used to launch pytest, using flag if provided
func (c *Config) GetPython() string {
	if c.Flags.Python != "" {
		return c.Flags.Python
	}
	return c.Python
}

// GetOutputPath returns the full path to the output JSON file (under project so run and failures use the same file).
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHTMLReportPath returns the path of the HTML coverage index written by pytest-cov.
func (c *Config) GetHTMLReportPath() string {
	return filepath.Join(c.ProjectPath, c.HTMLReportDir, "index.html")
}

// Validate checks that the configured interpreter name is non-empty.
func (c *Config) Validate() error {
	if c.GetPython() == "" {
		return fmt.Errorf("python interpreter must not be empty")
	}
	return nil
}
