// Package lerr defines the closed error taxonomy shared by the reader,
// source manager and namespace packages. Every error surfaced by the core
// carries a Kind, a location range and a human-readable message.
package lerr

import (
	"fmt"

	"github.com/lucent-lang/lucent/loc"
)

// Kind tags an Error with the closed set of failure modes the core can
// produce. FINAL must stay the last entry.
type Kind int

const (
	NSLoadError Kind = iota
	NSAddToSMError
	InvalidDigitForNumber
	TwoFloatPoints
	InvalidCharacterForSymbol
	EOFWhileScanningAList
	EOFWhileScanningAString
	// FINAL is a reserved terminator. Do not add kinds after it.
	FINAL
)

var defaultMessages = [...]string{
	NSLoadError:               "failed to load the namespace",
	NSAddToSMError:            "failed to add the namespace to the source manager",
	InvalidDigitForNumber:     "invalid number format",
	TwoFloatPoints:            "invalid float number format",
	InvalidCharacterForSymbol: "invalid symbol format",
	EOFWhileScanningAList:     "reached the end of the file while scanning for a list",
	EOFWhileScanningAString:   "reached the end of the file while scanning for a string",
	FINAL:                     "",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(defaultMessages) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return defaultMessages[k]
}

// Error is the structured error type returned across the core. It
// implements the error interface and Is() so callers can match on Kind via
// errors.Is(err, lerr.New(lerr.TwoFloatPoints, ...)) or by comparing Kind
// directly after an errors.As.
type Error struct {
	Kind     Kind
	Location loc.Range
	Msg      string
	Cause    error
}

// New builds an Error using the kind's default message.
func New(kind Kind, at loc.Range) *Error {
	return &Error{Kind: kind, Location: at, Msg: kind.String()}
}

// Newf builds an Error with an overriding message that supersedes the
// kind's default at display time.
func Newf(kind Kind, at loc.Range, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: at, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to an Error built with New/Newf.
func (e *Error) Wrap(cause error) *Error {
	e.Cause = cause
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, target) match by Kind, ignoring location and
// message, so callers can test "is this an EOFWhileScanningAList" without
// reconstructing the exact range.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
