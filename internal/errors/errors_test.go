package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/constants"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("task title is required"),
			expected: "Error: task title is required",
		},
		{
			name:     "wrapped error",
			err:      errors.New("list tasks: Network error. Please check your connection and try again."),
			expected: "Error: list tasks: Network error. Please check your connection and try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	if got := Hint(&api.Error{Message: constants.MsgNetworkError}); !strings.Contains(got, "doctor") {
		t.Errorf("Hint(network) = %q", got)
	}
	if got := Hint(&api.Error{StatusCode: 404, Message: "Task not found"}); got != "" {
		t.Errorf("Hint(404) = %q, want none", got)
	}
	if got := Hint(nil); got != "" {
		t.Errorf("Hint(nil) = %q", got)
	}
}

func TestAlert(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"lower case", errors.New("list tasks: not allowed"), "List tasks: not allowed"},
		{"already upper", errors.New("User does not exist. Please register first."), "User does not exist. Please register first."},
		{"surrounding space", errors.New("  boom "), "Boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Alert(tt.err); got != tt.expected {
				t.Errorf("Alert(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
