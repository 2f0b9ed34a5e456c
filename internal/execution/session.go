package execution

import (
	"context"
	"time"

	"ptw/internal/domain"
	"ptw/internal/parser"
)

// Banners receives progress notifications between the phases of a run.
// The run command wires this to the console UI.
type Banners interface {
	Start()
	Coverage()
	Done(htmlReportPath string)
}

// Invoker runs a single pytest invocation for a phase.
type Invoker interface {
	Invoke(ctx context.Context, phase domain.Phase) domain.InvocationResult
}

// Session performs the full wrapper run: the verbose invocation, then the
// coverage invocation. Strictly sequential, and the first phase's outcome
// never gates the second one.
type Session struct {
	runner  Invoker
	parser  *parser.PytestParser
	banners Banners
	html    string
}

// NewSession creates a new Session
func NewSession(runner Invoker, pytestParser *parser.PytestParser, htmlReportPath string) *Session {
	return &Session{
		runner: runner,
		parser: pytestParser,
		html:   htmlReportPath,
	}
}

// SetBanners sets the banner hooks for the session
func (s *Session) SetBanners(b Banners) {
	s.banners = b
}

// Run executes both invocations and returns their results plus the parsed
// RunOutput. The returned exit code is the second invocation's status
// (standard shell semantics: exit code of the last invoked command).
func (s *Session) Run(ctx context.Context) (domain.InvocationResult, domain.InvocationResult, *domain.RunOutput, int) {
	start := time.Now()

	if s.banners != nil {
		s.banners.Start()
	}
	verbose := s.runner.Invoke(ctx, domain.PhaseVerbose)

	if s.banners != nil {
		s.banners.Coverage()
	}
	coverage := s.runner.Invoke(ctx, domain.PhaseCoverage)

	if s.banners != nil {
		s.banners.Done(s.html)
	}

	output := s.buildOutput(verbose, coverage, time.Since(start))
	return verbose, coverage, output, coverage.ExitCode
}

// buildOutput parses the captured phase outputs into the persisted run shape.
// Parsing is best-effort; it never alters the run's exit behavior.
func (s *Session) buildOutput(verbose, coverage domain.InvocationResult, elapsed time.Duration) *domain.RunOutput {
	summary := s.parser.ParseSummary(verbose.Output)
	failures := s.parser.ParseFailures(verbose.Output)
	percent := s.parser.ParseCoverage(coverage.Output)

	return &domain.RunOutput{
		Meta: domain.RunMeta{
			TotalTestCases:   summary.Total(),
			PassedTestCases:  summary.Passed,
			FailedTestCases:  summary.Failed,
			SkippedTestCases: summary.Skipped,
			ErroredTestCases: summary.Errors,
			CoveragePercent:  percent,
			VerboseExitCode:  verbose.ExitCode,
			CoverageExitCode: coverage.ExitCode,
			Duration:         elapsed.String(),
			DurationSeconds:  elapsed.Seconds(),
			Timestamp:        time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}
}
