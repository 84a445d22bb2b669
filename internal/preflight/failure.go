package preflight

import (
	"errors"
	"fmt"
)

// Process exit codes. Several conditions share a code; the message tells
// them apart.
const (
	ExitOK                     = 0
	ExitToolNotFound           = 1
	ExitIncompatibleVersion    = 1
	ExitDestructiveUnconfirmed = 1
	ExitUsage                  = 2
	ExitSizeRequired           = 4
	ExitTargetDirMissing       = 5
	ExitRemoteHostsMissing     = 5
	ExitTemplateMissing        = 6
	ExitCephPoolRequired       = 6
	ExitWrongTemplate          = 7
	ExitRWMixReadRequired      = 8
	ExitOutputRequired         = 9
	ExitTargetMismatch         = 10
	ExitEncoding               = 90
	ExitUnknownKind            = 123
)

// Failure is a terminal preflight violation. Nothing is retried after one.
type Failure struct {
	// Code is the process exit status for this violation
	Code int
	// Check names the check that failed
	Check string
	// Message is the user facing explanation
	Message string
	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", f.Check, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Check, f.Message)
}

// Unwrap returns the underlying error
func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(check string, code int, format string, args ...interface{}) *Failure {
	return &Failure{Code: code, Check: check, Message: fmt.Sprintf(format, args...)}
}

// AsFailure extracts a *Failure from err
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// ExitCode maps an error to the process exit status. Errors that are not a
// preflight failure (bad flags, unreadable settings) exit with ExitUsage.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if f, ok := AsFailure(err); ok {
		return f.Code
	}
	return ExitUsage
}
