package commands

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// Text codes raised by the negotiate command.
const (
	TextCodeNegotiatorMissing = "NEGOTIATE_NEGOTIATOR_MISSING"
	TextCodeStrategyInvalid   = "NEGOTIATE_STRATEGY_INVALID"
)

// ExecutionError tags err as a command failure carrying textCode. The handler
// returns it unchanged instead of applying the generic execution code.
func ExecutionError(err error, textCode, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(textCode)
}

// InvalidInputError is ExecutionError in the validation category.
func InvalidInputError(err error, textCode, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode(textCode)
}

// TextCode returns the text code carried by err, or "".
func TextCode(err error) string {
	var coded *goerrors.Error
	if errors.As(err, &coded) {
		return coded.TextCode
	}
	return ""
}

// FieldErrors returns per-field validation messages keyed by the message's
// JSON field names, or nil.
func FieldErrors(err error) map[string]string {
	var coded *goerrors.Error
	if !errors.As(err, &coded) || len(coded.ValidationErrors) == 0 {
		return nil
	}
	return coded.ValidationMap()
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return goerrors.FromOzzoValidation(fields, "command validation failed").
			WithTextCode(commandValidationCode)
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
