package ui

import "ptw/internal/domain"

// Viewer displays test failures in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
