package commands

import (
	"context"

	"ptw/internal/config"
	"ptw/internal/execution"
	"ptw/internal/storage"
	"ptw/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	session   *execution.Session
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	session *execution.Session,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		session:   session,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := rc.config.Validate(); err != nil {
		return err
	}

	rc.session.SetBanners(ui.NewRunBanners())
	verbose, coverage, output, exitCode := rc.session.Run(context.Background())

	// Launch failures surface before the banners did; they abort the run.
	if verbose.Err != nil {
		return verbose.Err
	}
	if coverage.Err != nil {
		return coverage.Err
	}

	// Persist results for the failures viewer. Best-effort: a save problem
	// must not change the wrapper's exit behavior.
	if err := rc.storage.Save(output); err != nil {
		_ = err
	}

	rc.formatter.PrintRunStats(output)

	if rc.config.Flags.OpenFailures && len(output.Details) > 0 {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}

	// The wrapper exits with the second invocation's status.
	if exitCode != 0 {
		return &execution.ExitError{Code: exitCode}
	}
	return nil
}
