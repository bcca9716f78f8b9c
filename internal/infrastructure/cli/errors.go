package cli

import (
	"errors"
	"fmt"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// CLIError wraps an error with a user-facing message and an optional hint.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s\nHint: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with exit code 1.
func NewCLIError(message, hint string, err error) *CLIError {
	return &CLIError{
		Message:  message,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError translates domain errors into CLI errors with actionable hints.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var predErr *project.PredecessorError
	if errors.As(err, &predErr) {
		return NewCLIError(
			predErr.Error(),
			fmt.Sprintf("Complete the blocking tasks first, or relax the link with 'sazyar task link --remove %s <pred-id>'", predErr.TaskID),
			err,
		)
	}

	var transErr *project.TransitionError
	if errors.As(err, &transErr) {
		return NewCLIError(
			transErr.Error(),
			fmt.Sprintf("Run 'sazyar task show %s' to inspect the current status", transErr.TaskID),
			err,
		)
	}

	switch {
	case errors.Is(err, project.ErrNoProject):
		return NewCLIError(
			"No project found in this directory",
			"Run 'sazyar init <name>' to create one",
			err,
		)
	case errors.Is(err, project.ErrTaskNotFound):
		return NewCLIError(
			err.Error(),
			"Run 'sazyar task list' to see the known task IDs",
			err,
		)
	case errors.Is(err, project.ErrResourceNotFound):
		return NewCLIError(
			err.Error(),
			"Run 'sazyar resource list' to see the known resource IDs",
			err,
		)
	}

	return NewCLIError(err.Error(), "", err)
}
