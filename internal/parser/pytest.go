package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ptw/internal/domain"
)

// PytestParser parses pytest terminal output
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

// Summary holds the test-case counts parsed from a pytest run
type Summary struct {
	Passed   int
	Failed   int
	Skipped  int
	Errors   int
	Duration float64 // seconds, from the summary line
	NoTests  bool    // "no tests ran"
}

// Total returns the number of test cases accounted for in the summary.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped + s.Errors
}

var (
	// === 2 failed, 10 passed, 1 skipped in 3.42s ===
	summaryLinePattern = regexp.MustCompile(`={3,}\s+(.+?)\s+in\s+([0-9.]+)s?\s+.*={3,}`)
	summaryPartPattern = regexp.MustCompile(`(\d+)\s+(passed|failed|skipped|error|errors|xfailed|xpassed|deselected|warnings?)`)
	noTestsPattern     = regexp.MustCompile(`no tests ran in\s+([0-9.]+)s`)

	// FAILED tests/test_api.py::TestSignup::test_duplicate - AssertionError: already signed up
	shortSummaryPattern = regexp.MustCompile(`(?m)^(FAILED|ERROR)\s+(\S+?)(?:\s+-\s+(.*))?$`)

	// tests/test_api.py:42: AssertionError
	tracebackLocPattern = regexp.MustCompile(`(?m)^(\S+\.py):(\d+):\s*\S`)

	// TOTAL     245     12    95%
	coverageTotalPattern = regexp.MustCompile(`(?m)^TOTAL\s+\d+\s+\d+\s+(\d+)%`)
)

// ParseSummary extracts test-case counts from pytest's final summary line.
// Unrecognized output yields a zero Summary, never an error (best-effort).
func (p *PytestParser) ParseSummary(output string) Summary {
	var s Summary

	if m := noTestsPattern.FindStringSubmatch(output); len(m) >= 2 {
		s.NoTests = true
		s.Duration, _ = strconv.ParseFloat(m[1], 64)
		return s
	}

	// pytest prints the summary line last; take the final match so that any
	// earlier banner-like output does not shadow it.
	matches := summaryLinePattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return s
	}
	line := matches[len(matches)-1]
	s.Duration, _ = strconv.ParseFloat(line[2], 64)

	for _, part := range summaryPartPattern.FindAllStringSubmatch(line[1], -1) {
		n, err := strconv.Atoi(part[1])
		if err != nil {
			continue
		}
		switch part[2] {
		case "passed":
			s.Passed = n
		case "failed":
			s.Failed = n
		case "skipped":
			s.Skipped = n
		case "error", "errors":
			s.Errors = n
		}
	}
	return s
}

// ParseFailures extracts failed and errored test cases from the short test
// summary section of pytest output, attaching traceback locations and the
// captured failure block where one can be found.
func (p *PytestParser) ParseFailures(output string) []domain.TestFailure {
	var failures []domain.TestFailure

	for _, m := range shortSummaryPattern.FindAllStringSubmatch(output, -1) {
		kind, nodeID := m[1], m[2]
		message := ""
		if len(m) > 3 {
			message = strings.TrimSpace(m[3])
		}

		failure := domain.TestFailure{
			TestID:   nodeID,
			TestName: testNameFromNodeID(nodeID),
			FilePath: filePathFromNodeID(nodeID),
			Message:  message,
			IsError:  kind == "ERROR",
		}

		if block := p.failureBlock(output, failure.TestName); block != "" {
			failure.ErrorDetails = block
			failure.StackTrace = strings.Split(block, "\n")
			if loc := tracebackLocPattern.FindAllStringSubmatch(block, -1); len(loc) > 0 {
				last := loc[len(loc)-1]
				failure.File = last[1]
				failure.Line, _ = strconv.Atoi(last[2])
			}
		}

		failures = append(failures, failure)
	}

	return failures
}

// failureBlock returns the "____ name ____" delimited section of the FAILURES
// report for the given test, or "" when it cannot be located.
func (p *PytestParser) failureBlock(output, testName string) string {
	if testName == "" {
		return ""
	}
	header := regexp.MustCompile(`(?m)^_{3,}\s+.*` + regexp.QuoteMeta(testName) + `.*\s+_{3,}$`)
	loc := header.FindStringIndex(output)
	if loc == nil {
		return ""
	}

	rest := output[loc[1]:]
	// The block ends at the next underscore header or the next === section.
	end := len(rest)
	if next := regexp.MustCompile(`(?m)^(_{3,}|={3,})`).FindStringIndex(rest); next != nil {
		end = next[0]
	}
	return strings.TrimSpace(rest[:end])
}

// ParseCoverage returns the total coverage percentage reported by the
// term-missing coverage table, or -1 when no coverage table is present.
func (p *PytestParser) ParseCoverage(output string) float64 {
	m := coverageTotalPattern.FindStringSubmatch(output)
	if len(m) < 2 {
		return -1
	}
	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return -1
	}
	return percent
}

// testNameFromNodeID returns the final component of a pytest node id:
// tests/test_api.py::TestSignup::test_duplicate -> test_duplicate
func testNameFromNodeID(nodeID string) string {
	parts := strings.Split(nodeID, "::")
	name := parts[len(parts)-1]
	// Strip parametrize suffix: test_case[param-1] -> test_case
	if i := strings.Index(name, "["); i > 0 {
		name = name[:i]
	}
	return name
}

// filePathFromNodeID returns the file component of a pytest node id.
func filePathFromNodeID(nodeID string) string {
	if i := strings.Index(nodeID, "::"); i > 0 {
		return nodeID[:i]
	}
	return nodeID
}
