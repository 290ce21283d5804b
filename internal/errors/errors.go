// Package errors holds the command-line error exit path
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/logger"
)

// Exit codes
const (
	ExitFailure     = 1
	ExitSession     = 2
	ExitUnreachable = 3
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps an error to the process exit status. Scripts can tell an
// expired session from a dead server without parsing stderr.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, api.ErrSessionExpired):
		return ExitSession
	case stderrors.Is(err, api.ErrServerUnreachable):
		return ExitUnreachable
	default:
		return ExitFailure
	}
}

// Fatal logs an error and exits with the code ExitCode picks for it
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}
