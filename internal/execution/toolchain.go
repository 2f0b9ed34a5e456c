package execution

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"ptw/internal/config"
)

// ToolStatus is the outcome of probing one piece of the delegated toolchain
type ToolStatus struct {
	Name   string
	OK     bool
	Detail string // version line on success, error text otherwise
}

// Toolchain probes the Python interpreter and the pytest plugins the wrapper
// delegates to.
type Toolchain struct {
	config *config.Config
}

// NewToolchain creates a new Toolchain
func NewToolchain(cfg *config.Config) *Toolchain {
	return &Toolchain{config: cfg}
}

// Check probes the interpreter, pytest and pytest-cov. It always returns a
// status per tool; Healthy reports whether all probes succeeded.
func (t *Toolchain) Check(ctx context.Context) []ToolStatus {
	python := t.config.GetPython()
	probes := []struct {
		name string
		args []string
	}{
		{"python", []string{python, "--version"}},
		{"pytest", []string{python, "-m", "pytest", "--version"}},
		{"pytest-cov", []string{python, "-c", "import pytest_cov"}},
	}

	statuses := make([]ToolStatus, 0, len(probes))
	for _, probe := range probes {
		cmd := exec.CommandContext(ctx, probe.args[0], probe.args[1:]...)
		cmd.Env = os.Environ()
		cmd.Dir = t.config.ProjectPath

		output, err := cmd.CombinedOutput()
		detail := strings.TrimSpace(string(output))
		status := ToolStatus{Name: probe.name, OK: err == nil, Detail: detail}
		if err != nil && detail == "" {
			status.Detail = err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Healthy reports whether every toolchain probe succeeded
func Healthy(statuses []ToolStatus) bool {
	for _, s := range statuses {
		if !s.OK {
			return false
		}
	}
	return true
}
