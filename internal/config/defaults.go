package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test directory, relative to the project path
	DefaultTestPath = "tests"
	// DefaultCoverageSource is the default source tree measured for coverage
	DefaultCoverageSource = "src"
	// DefaultPython is the interpreter used to launch pytest
	DefaultPython = "python3"
	// DefaultHTMLReportDir is where pytest-cov writes the HTML report
	DefaultHTMLReportDir = "htmlcov"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultConfigFile is the optional per-project config file
	DefaultConfigFile = "ptw.yaml"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	".venv",
	"venv",
	"__pycache__",
	"node_modules",
	"htmlcov",
	".pytest_cache",
	"build",
	"dist",
}
