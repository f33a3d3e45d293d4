package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agisilaos/skydesk/internal/api"
)

const (
	ExitSuccess        = 0
	ExitGenericFailure = 1
	ExitInvalidUsage   = 2
	ExitAuthRequired   = 3
	ExitAPIFailure     = 4
	ExitValidation     = 5
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func newExitError(code int, format string, args ...any) error {
	return ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func wrapExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	var ex ExitError
	if errors.As(err, &ex) {
		return err
	}
	return ExitError{Code: code, Err: err}
}

func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ex ExitError
	if errors.As(err, &ex) {
		if ex.Code <= 0 {
			return ExitGenericFailure
		}
		return ex.Code
	}
	return ExitGenericFailure
}

func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return wrapExitError(ExitAuthRequired, err)
	}
	return wrapExitError(ExitAPIFailure, err)
}

// validationError renders field errors sorted by field name, so the same
// failure always prints the same message, and exits with the validation code.
func validationError(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+errs[field])
	}
	return newExitError(ExitValidation, "invalid input: %s", strings.Join(parts, "; "))
}

// ErrorHints suggests the next command after common failures.
func ErrorHints(err error) []string {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return []string{"skydesk login"}
	}
	var ex ExitError
	if errors.As(err, &ex) {
		switch ex.Code {
		case ExitAuthRequired:
			return []string{"skydesk login"}
		case ExitInvalidUsage:
			return []string{"skydesk --help"}
		}
	}
	return nil
}
