package commands

import (
	"context"
	"fmt"

	"ptw/internal/config"
	"ptw/internal/domain"
	"ptw/internal/parser"
	"ptw/internal/storage"
	"ptw/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
	runner  ui.FileRunner
	parser  *parser.PytestParser
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(
	cfg *config.Config,
	st storage.Storage,
	viewer ui.Viewer,
	runner ui.FileRunner,
	pytestParser *parser.PytestParser,
) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
		runner:  runner,
		parser:  pytestParser,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := fc.storage.Load()
	if err != nil {
		return fmt.Errorf("no stored results, run 'ptw run' first: %w", err)
	}

	if fc.config.Flags.Rerun {
		return fc.rerunFailures(output)
	}

	return fc.viewer.View(output)
}

// rerunFailures reruns every file with unresolved failures, one at a time,
// and updates the stored results: failures that no longer reproduce are
// marked resolved.
func (fc *FailuresCommand) rerunFailures(output *domain.RunOutput) error {
	files := unresolvedFiles(output.Details)
	if len(files) == 0 {
		color.Green("✓ No unresolved failures to rerun")
		return nil
	}

	progress := ui.NewProgressBar(len(files))
	stillFailing := make(map[string]struct{})
	var completed, passed, failed int

	for _, file := range files {
		result := fc.runner.RunFile(context.Background(), file)
		for _, f := range fc.parser.ParseFailures(result.Output) {
			stillFailing[f.TestID] = struct{}{}
		}

		completed++
		if result.Success() {
			passed++
		} else {
			failed++
		}
		progress.Update(completed, passed, failed)
	}
	progress.Finish()

	var resolvedCount int
	for i := range output.Details {
		if output.Details[i].Resolved {
			continue
		}
		if _, ok := stillFailing[output.Details[i].TestID]; !ok {
			output.Details[i].Resolved = true
			resolvedCount++
		}
	}

	if err := fc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save updated results: %w", err)
	}

	fmt.Println()
	if failed == 0 {
		color.Green("✓ All rerun files passed (%d failure(s) resolved)", resolvedCount)
	} else {
		color.Red("✗ %d of %d rerun file(s) still failing (%d failure(s) resolved)", failed, len(files), resolvedCount)
	}
	return nil
}

// unresolvedFiles returns the unique file paths that still have unresolved
// failures, in first-seen order.
func unresolvedFiles(failures []domain.TestFailure) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, failure := range failures {
		if failure.Resolved || failure.FilePath == "" {
			continue
		}
		if _, ok := seen[failure.FilePath]; ok {
			continue
		}
		seen[failure.FilePath] = struct{}{}
		files = append(files, failure.FilePath)
	}
	return files
}
