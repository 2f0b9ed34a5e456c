package commands

import (
	"ptw/internal/cli"
	"ptw/internal/config"
	"ptw/internal/discovery"
	"ptw/internal/execution"
	"ptw/internal/parser"
	"ptw/internal/storage"
	"ptw/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Check    *CheckCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg)
	pytestParser := parser.NewPytestParser()
	session := execution.NewSession(runner, pytestParser, cfg.GetHTMLReportPath())
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser)
	toolchain := execution.NewToolchain(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage, runner, pytestParser)

	return &Commands{
		Run:      NewRunCommand(cfg, session, jsonStorage, formatter, errorViewer),
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer, runner, pytestParser),
		Check:    NewCheckCommand(cfg, toolchain),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the test suite, then run it again with coverage",
		Long: "Invoke pytest twice against the test directory: first in verbose mode, " +
			"then with line-coverage measurement producing a terminal summary and an HTML report. " +
			"The second invocation always runs, and its exit status becomes the wrapper's own.",
		RunE: c.Run.Execute,
		// pytest already printed its own report; suppress cobra's error
		// and usage noise so the delegated status propagates quietly.
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the test directory (default: tests)")
	runCmd.Flags().StringVar(&flags.CoverageSource, "cov-source", "", "Source tree measured for coverage (default: src)")
	runCmd.Flags().StringVar(&flags.Python, "python", "", "Python interpreter used to launch pytest (default: python3)")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan and list all pytest test files without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'test_api*' or '*models*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases instead of test files")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	failuresCmd.Flags().BoolVar(&flags.Rerun, "rerun", false, "Rerun all unresolved failed test files and update the stored results")
	rootCmd.AddCommand(failuresCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the pytest toolchain",
		Long:  "Probe the configured Python interpreter for pytest and pytest-cov",
		RunE:  c.Check.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	checkCmd.Flags().StringVar(&flags.Python, "python", "", "Python interpreter to probe (default: python3)")
	rootCmd.AddCommand(checkCmd)
}
