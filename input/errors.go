package input

import "github.com/pkg/errors"

type ErrorKind string

const (
	// MissingURL means no URL token follows the curl word.
	MissingURL ErrorKind = "MissingUrl"
)

// ParseError is returned by ParseCommand when a command cannot be turned
// into a Request. Use errors.Cause to get at it.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func newParseError(kind ErrorKind, message string) error {
	return errors.WithStack(&ParseError{Kind: kind, Message: message})
}

func IsMissingURL(err error) bool {
	e, ok := errors.Cause(err).(*ParseError)
	return ok && e.Kind == MissingURL
}

// UsageError reports a command line that cannot be acted upon.
type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func NewUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}
