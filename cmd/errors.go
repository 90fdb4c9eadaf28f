package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// Exit codes returned by the jptr binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitUsage, err: err}
}

// IsUsageError reports whether err came from bad arguments or flags.
func IsUsageError(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.code == ExitUsage
}

// ExitCode maps an error returned by Execute to the process exit code.
// Unknown commands are usage errors; anything else not marked is a failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if isCobraUsageMessage(err.Error()) {
		return ExitUsage
	}
	return ExitFailure
}

func isCobraUsageMessage(msg string) bool {
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// usageArgs wraps a positional argument validator so its failures exit with
// ExitUsage.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(v(cmd, args))
	}
}
