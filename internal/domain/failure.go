package domain

// TestFailure represents a failed or errored test case
type TestFailure struct {
	TestID       string   `json:"test_id"` // pytest node id, e.g. tests/test_api.py::TestSignup::test_duplicate
	TestName     string   `json:"test_name"`
	FilePath     string   `json:"file_path"`
	ErrorDetails string   `json:"error_details"`
	StackTrace   []string `json:"stack_trace"`
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Message      string   `json:"message"`
	IsError      bool     `json:"is_error,omitempty"` // ERROR (collection/setup) rather than FAILED
	Resolved     bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
