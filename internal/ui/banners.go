package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// RunBanners prints the fixed progress banners around the two pytest
// invocations of a run. Banners are unconditional: they print regardless of
// the first invocation's outcome.
type RunBanners struct{}

// NewRunBanners creates a new RunBanners
func NewRunBanners() *RunBanners {
	return &RunBanners{}
}

// Start prints the banner preceding the verbose invocation
func (b *RunBanners) Start() {
	color.Cyan("╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Running Test Suite                      ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
}

// Coverage prints the banner preceding the coverage invocation
func (b *RunBanners) Coverage() {
	fmt.Println()
	color.Cyan("╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║              Running Tests with Coverage                   ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
}

// Done prints the completion banner and the HTML report location
func (b *RunBanners) Done(htmlReportPath string) {
	fmt.Println()
	color.Green("Test run complete.")
	color.White("HTML coverage report: %s", htmlReportPath)
}
