package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation = "METHODS_COMMAND_INVALID"
	codeCanceled   = "METHODS_COMMAND_CANCELED"
	codeTimeout    = "METHODS_COMMAND_TIMEOUT"
	codeFailed     = "METHODS_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid command").WithTextCode(codeValidation)
}

func wrapContextError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").WithTextCode(codeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").WithTextCode(codeCanceled)
}

func wrapExecuteError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").WithTextCode(codeFailed)
}
