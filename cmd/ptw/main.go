package main

import (
	"errors"
	"fmt"
	"os"

	"ptw/internal/cli"
	"ptw/internal/cli/commands"
	"ptw/internal/config"
	"ptw/internal/execution"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "ptw",
		Short:   "pytest invocation wrapper",
		Long:    `A wrapper around pytest for src/tests Python projects. Run the suite in verbose mode and again with coverage reporting, list discovered tests, and browse failures from the last run.`,
		Version: version,
	}

	// Create config layered from defaults, ptw.yaml and the environment
	cfg := config.Load()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		// A delegated pytest status becomes the wrapper's own exit code;
		// pytest already reported the details on the console.
		var exitErr *execution.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
