package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	// Create a temporary directory structure for testing
	tmpDir, err := os.MkdirTemp("", "ptw-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create test directory structure
	testDirs := []string{
		"tests/unit",
		"tests/integration",
		".venv",
		"__pycache__",
	}
	for _, dir := range testDirs {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", dir, err)
		}
	}

	// Create test files
	testFiles := []string{
		"tests/unit/test_models.py",
		"tests/unit/test_api.py",
		"tests/integration/performance_test.py",
		".venv/test_should_be_skipped.py",
		"__pycache__/test_cached.py",
		"tests/conftest.py",
		"tests/helpers.py",
	}
	for _, file := range testFiles {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("# test"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"__pycache__"})

	t.Run("scans test files correctly", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Should find the 3 test files; conftest.py, helpers.py and the
		// files under skipped/hidden directories are excluded
		if len(results) != 3 {
			t.Errorf("expected 3 test files, got %d: %v", len(results), results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "testfile.txt")
		os.WriteFile(testFile, []byte("test"), 0644)
		_, err := scanner.Scan(testFile)
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"test_models.py", true},
		{"api_test.py", true},
		{"test_.py", true},
		{"conftest.py", false},
		{"models.py", false},
		{"test_models.pyc", false},
		{"test_models.txt", false},
	}

	for _, tt := range tests {
		if got := isTestFile(tt.name); got != tt.expected {
			t.Errorf("isTestFile(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}
