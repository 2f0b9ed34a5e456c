package execution

import "fmt"

// ExitError carries a delegated pytest exit status up to main so the wrapper
// process can exit with the same code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("pytest exited with status %d", e.Code)
}
