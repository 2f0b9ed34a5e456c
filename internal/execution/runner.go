package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"ptw/internal/config"
	"ptw/internal/domain"
)

// Runner executes single pytest invocations
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// BuildArgs returns the full argv for a phase, interpreter first.
func (r *Runner) BuildArgs(phase domain.Phase) []string {
	args := []string{r.config.GetPython(), "-m", "pytest", r.config.GetTestPath()}
	switch phase {
	case domain.PhaseVerbose:
		args = append(args, "-v")
	case domain.PhaseCoverage:
		args = append(args,
			"--cov="+r.config.GetCoverageSource(),
			"--cov-report=term-missing",
			"--cov-report=html",
		)
	}
	return args
}

// Invoke runs one pytest invocation for the given phase, streaming the
// framework's combined output to the wrapper's stdout while also capturing it
// for later parsing. It blocks until pytest exits.
func (r *Runner) Invoke(ctx context.Context, phase domain.Phase) domain.InvocationResult {
	args := r.BuildArgs(phase)
	return r.exec(ctx, phase, args, os.Stdout)
}

// RunFile runs pytest for a single test file with output captured only
// (no streaming). Used by the failures viewer to rerun individual files.
func (r *Runner) RunFile(ctx context.Context, testPath string) domain.InvocationResult {
	args := []string{r.config.GetPython(), "-m", "pytest", testPath, "-v"}
	return r.exec(ctx, domain.PhaseVerbose, args, io.Discard)
}

func (r *Runner) exec(ctx context.Context, phase domain.Phase, args []string, stream io.Writer) domain.InvocationResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = os.Environ()
	cmd.Dir = r.config.ProjectPath

	// stdout and stderr share one writer so os/exec interleaves them in a
	// single goroutine, combined-output style, while we tee into the buffer.
	var buf bytes.Buffer
	w := io.MultiWriter(stream, &buf)
	cmd.Stdout = w
	cmd.Stderr = w

	start := time.Now()
	err := cmd.Run()

	result := domain.InvocationResult{
		Phase:    phase,
		Args:     args,
		Output:   buf.String(),
		Duration: time.Since(start),
	}
	result.ExitCode, result.Err = exitStatus(err)
	return result
}

// exitStatus maps the error from cmd.Run into pytest's exit status. Launch
// failures (interpreter not found, etc.) keep the error and report -1.
func exitStatus(err error) (int, error) {
	if err == nil {
		return domain.ExitOK, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
