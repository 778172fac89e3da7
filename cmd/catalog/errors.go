package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/catalog/internal/logging"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// systemError marks a failure the user cannot fix by changing the input:
// store or I/O failures and corrupt data.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// userErrors are the sentinels that mean the request itself was wrong.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrWrongVariant,
	types.ErrUnknownKind,
	types.ErrNoPublishers,
	types.ErrNoAuthors,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrPostgresDSNEmpty,
	types.ErrPostgresDriverUnknown,
	logging.ErrUnknownFormat,
}

func isUserError(err error) bool {
	if types.IsValidation(err) || types.IsConstraintViolation(err) {
		return true
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// classify wraps err as a systemError unless it is a user error.
func classify(err error) error {
	if err == nil || isUserError(err) {
		return err
	}
	var se *systemError
	if errors.As(err, &se) {
		return err
	}
	return &systemError{err}
}

// exitCode maps an error returned by the command tree to a process exit
// code. Errors raised by cobra itself (bad flags, wrong argument count,
// unknown commands) are user errors.
func exitCode(err error) int {
	var se *systemError
	switch {
	case err == nil:
		return exitSuccess
	case types.IsIntegrity(err), errors.As(err, &se):
		return exitSysError
	default:
		return exitUserError
	}
}

// printError writes err to w, as a JSON object in --json mode.
func (a *app) printError(w io.Writer, err error) {
	if !a.flags.json {
		fmt.Fprintln(w, "Error:", err)
		return
	}
	out := map[string]any{"error": err.Error(), "exit_code": exitCode(err)}
	var cv *types.ConstraintViolation
	if errors.As(err, &cv) {
		out["category"] = cv.Category
		out["constraint"] = cv.Constraint
	}
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		out["entity"] = ve.Entity
		out["field"] = ve.Field
	}
	writeJSON(w, out)
}
