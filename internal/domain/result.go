package domain

import "time"

// Phase identifies one of the two pytest invocations performed by a run.
type Phase string

const (
	// PhaseVerbose is the first invocation (verbose test output)
	PhaseVerbose Phase = "verbose"
	// PhaseCoverage is the second invocation (coverage measurement)
	PhaseCoverage Phase = "coverage"
)

// InvocationResult represents the result of one pytest invocation
type InvocationResult struct {
	Phase    Phase         // Which invocation this was
	Args     []string      // Full argv, interpreter first
	ExitCode int           // pytest exit status
	Output   string        // Captured pytest output
	Err      error         // Error launching the process (not a test failure)
	Duration time.Duration // Time taken to execute
}

// Success reports whether pytest exited cleanly. Exit status 5 (no tests
// collected) counts as a pass-like terminal state, not an execution error.
func (r InvocationResult) Success() bool {
	return r.Err == nil && (r.ExitCode == ExitOK || r.ExitCode == ExitNoTestsCollected)
}

// pytest exit statuses, as documented by the framework.
const (
	ExitOK               = 0
	ExitTestsFailed      = 1
	ExitInterrupted      = 2
	ExitInternalError    = 3
	ExitUsageError       = 4
	ExitNoTestsCollected = 5
)

// RunMeta contains metadata about a full wrapper run (both invocations)
type RunMeta struct {
	TotalTestCases   int     `json:"total_test_cases"`
	PassedTestCases  int     `json:"passed_test_cases"`
	FailedTestCases  int     `json:"failed_test_cases"`
	SkippedTestCases int     `json:"skipped_test_cases"`
	ErroredTestCases int     `json:"errored_test_cases"`
	CoveragePercent  float64 `json:"coverage_percent"`
	VerboseExitCode  int     `json:"verbose_exit_code"`
	CoverageExitCode int     `json:"coverage_exit_code"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Timestamp        string  `json:"timestamp"`
}

// RunOutput is the complete persisted structure for a wrapper run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
