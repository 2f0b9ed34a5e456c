package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages the rerun progress bar. When stderr is not
// a terminal the bar is disabled and all methods are no-ops.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar for count test files
func NewProgressBar(count int) *ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &ProgressBar{}
	}

	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(
			color.CyanString("Rerunning failed tests: ")+
				color.GreenString("[passed: 0")+
				" | "+
				color.RedString("failed: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update updates the progress bar with completed, passed and failed counts
func (p *ProgressBar) Update(completed, passed, failed int) {
	if p.bar == nil {
		return
	}
	p.bar.Set(completed)
	p.bar.Describe(
		color.CyanString("Rerunning failed tests: ") +
			color.GreenString("[passed: %d", passed) +
			" | " +
			color.RedString("failed: %d]", failed),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
}
