package errors

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint suggests a next step for errors the user can act on, or "" when there is none
func Hint(err error) string {
	if api.IsNetwork(err) {
		return "Is the backend running? Check --api-url or run 'habithaven doctor'."
	}
	return ""
}

// Alert renders an error for the TUI's inline alert: no prefix, first letter upper-cased.
func Alert(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

// Fatal logs err, prints it with its hint and exits with code 1.
// A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(1)
}
