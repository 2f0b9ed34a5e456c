package commands

import (
	"context"
	"fmt"

	"ptw/internal/config"
	"ptw/internal/execution"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config    *config.Config
	toolchain *execution.Toolchain
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config, toolchain *execution.Toolchain) *CheckCommand {
	return &CheckCommand{
		config:    cfg,
		toolchain: toolchain,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	color.Cyan("Checking pytest toolchain (%s)\n", cc.config.GetPython())

	statuses := cc.toolchain.Check(context.Background())
	for _, status := range statuses {
		if status.OK {
			detail := status.Detail
			if detail == "" {
				detail = "ok"
			}
			color.Green("✓ %-12s %s", status.Name, detail)
		} else {
			color.Red("✗ %-12s %s", status.Name, status.Detail)
		}
	}

	if !execution.Healthy(statuses) {
		return fmt.Errorf("toolchain check failed")
	}

	fmt.Println()
	color.Green("Toolchain ready")
	return nil
}
