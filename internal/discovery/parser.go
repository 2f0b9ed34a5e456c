package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Patterns for pytest-style test definitions. Best-effort regex extraction,
// not a Python parser; this feeds the list view, not collection.
// Matches module-level functions and class methods:
// - def test_signup():
// - async def test_fetch(client):
// including indented methods of Test* classes.
var testDefPattern = regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+(test\w*)\s*\(`)

// FindTestCases finds all test cases in a test file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	fileContent := string(content)
	testCasesMap := make(map[string]bool) // Use map to avoid duplicates

	for _, match := range testDefPattern.FindAllStringSubmatch(fileContent, -1) {
		if len(match) > 1 {
			testCasesMap[match[1]] = true
		}
	}

	// Convert map to sorted slice for consistent output
	var testCases []string
	for testCase := range testCasesMap {
		testCases = append(testCases, testCase)
	}

	sort.Strings(testCases)

	return testCases, nil
}
