package entity

import "fmt"

// ValidationError marks input that failed a domain check; the delivery
// layer turns it into a 400 with the message intact.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Invalidf builds a ValidationError.
func Invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...any) error {
	return Invalidf(format, args...)
}
