package commands

import (
	"path/filepath"
	"strings"

	"ptw/internal/config"
	"ptw/internal/discovery"
	"ptw/internal/storage"
	"ptw/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	testPath := lc.config.GetTestPath()
	tests, err := lc.scanner.Scan(testPath)
	if err != nil {
		return err
	}

	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	// Mark files that failed in the last recorded run, when results exist.
	failedPaths := lc.loadFailedPaths()

	return lc.formatter.PrintTestList(tests, lc.config.Flags.TestCases, failedPaths)
}

// loadFailedPaths returns normalized paths of files with failures in the last
// run, or nil when no results are stored.
func (lc *ListCommand) loadFailedPaths() map[string]struct{} {
	output, err := lc.storage.Load()
	if err != nil {
		return nil
	}

	failed := make(map[string]struct{})
	for _, failure := range output.Details {
		if failure.FilePath == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(filepath.ToSlash(failure.FilePath), ".py"))
		failed[key] = struct{}{}
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}
