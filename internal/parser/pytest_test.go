package parser

import (
	"testing"
)

const passingOutput = `============================= test session starts ==============================
platform linux -- Python 3.11.2, pytest-7.4.0, pluggy-1.2.0
rootdir: /work/project
collected 12 items

tests/test_api.py::test_get_activities PASSED                            [  8%]
tests/test_models.py::test_activity_capacity PASSED                      [ 16%]

============================== 12 passed in 1.23s ==============================
`

const failingOutput = `============================= test session starts ==============================
collected 12 items

tests/test_api.py::test_signup_duplicate FAILED                          [  8%]

=================================== FAILURES ===================================
____________________________ test_signup_duplicate _____________________________

client = <starlette.testclient.TestClient object at 0x7f3>

    def test_signup_duplicate(client):
        response = client.post("/activities/Chess Club/signup?email=a@b.edu")
>       assert response.status_code == 400
E       assert 200 == 400

tests/test_api.py:57: AssertionError
=========================== short test summary info ============================
FAILED tests/test_api.py::test_signup_duplicate - assert 200 == 400
ERROR tests/test_performance.py - ModuleNotFoundError: No module named 'numpy'
==================== 1 failed, 10 passed, 1 error in 2.41s =====================
`

const coverageOutput = `============================= test session starts ==============================
collected 12 items

tests/test_api.py ........                                               [ 66%]
tests/test_models.py ....                                                [100%]

---------- coverage: platform linux, python 3.11.2-final-0 -----------
Name         Stmts   Miss  Cover   Missing
------------------------------------------
src/app.py      82      4    95%   101-104
------------------------------------------
TOTAL           82      4    95%
Coverage HTML written to dir htmlcov

============================== 12 passed in 2.87s ==============================
`

const noTestsOutput = `============================= test session starts ==============================
collected 0 items

============================ no tests ran in 0.01s =============================
`

func TestPytestParser_ParseSummary(t *testing.T) {
	p := NewPytestParser()

	tests := []struct {
		name    string
		output  string
		passed  int
		failed  int
		errors  int
		noTests bool
	}{
		{"all passing", passingOutput, 12, 0, 0, false},
		{"failures and errors", failingOutput, 10, 1, 1, false},
		{"coverage run", coverageOutput, 12, 0, 0, false},
		{"no tests collected", noTestsOutput, 0, 0, 0, true},
		{"unrecognized output", "garbage\n", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := p.ParseSummary(tt.output)
			if s.Passed != tt.passed {
				t.Errorf("passed = %d, expected %d", s.Passed, tt.passed)
			}
			if s.Failed != tt.failed {
				t.Errorf("failed = %d, expected %d", s.Failed, tt.failed)
			}
			if s.Errors != tt.errors {
				t.Errorf("errors = %d, expected %d", s.Errors, tt.errors)
			}
			if s.NoTests != tt.noTests {
				t.Errorf("noTests = %v, expected %v", s.NoTests, tt.noTests)
			}
		})
	}

	t.Run("duration parsed", func(t *testing.T) {
		s := p.ParseSummary(passingOutput)
		if s.Duration != 1.23 {
			t.Errorf("duration = %v, expected 1.23", s.Duration)
		}
	})
}

func TestPytestParser_ParseFailures(t *testing.T) {
	p := NewPytestParser()

	t.Run("extracts failures and errors", func(t *testing.T) {
		failures := p.ParseFailures(failingOutput)
		if len(failures) != 2 {
			t.Fatalf("expected 2 failures, got %d: %+v", len(failures), failures)
		}

		f := failures[0]
		if f.TestID != "tests/test_api.py::test_signup_duplicate" {
			t.Errorf("unexpected test id: %s", f.TestID)
		}
		if f.TestName != "test_signup_duplicate" {
			t.Errorf("unexpected test name: %s", f.TestName)
		}
		if f.FilePath != "tests/test_api.py" {
			t.Errorf("unexpected file path: %s", f.FilePath)
		}
		if f.Message != "assert 200 == 400" {
			t.Errorf("unexpected message: %s", f.Message)
		}
		if f.IsError {
			t.Error("FAILED entry should not be marked as error")
		}
		if f.File != "tests/test_api.py" || f.Line != 57 {
			t.Errorf("unexpected traceback location: %s:%d", f.File, f.Line)
		}
		if len(f.StackTrace) == 0 {
			t.Error("expected stack trace lines from the failure block")
		}

		e := failures[1]
		if !e.IsError {
			t.Error("ERROR entry should be marked as error")
		}
		if e.FilePath != "tests/test_performance.py" {
			t.Errorf("unexpected error file path: %s", e.FilePath)
		}
	})

	t.Run("no failures in passing output", func(t *testing.T) {
		if failures := p.ParseFailures(passingOutput); len(failures) != 0 {
			t.Errorf("expected no failures, got %d", len(failures))
		}
	})

	t.Run("parametrized node id", func(t *testing.T) {
		out := "=========================== short test summary info ============================\n" +
			"FAILED tests/test_models.py::test_capacity[Chess Club-12] - assert False\n"
		failures := p.ParseFailures(out)
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		if failures[0].TestName != "test_capacity" {
			t.Errorf("unexpected test name: %s", failures[0].TestName)
		}
	})
}

func TestPytestParser_ParseCoverage(t *testing.T) {
	p := NewPytestParser()

	if got := p.ParseCoverage(coverageOutput); got != 95 {
		t.Errorf("coverage = %v, expected 95", got)
	}
	if got := p.ParseCoverage(passingOutput); got != -1 {
		t.Errorf("coverage = %v, expected -1 for output without a coverage table", got)
	}
}
