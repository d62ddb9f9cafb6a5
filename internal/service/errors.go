package service

import "errors"

// ErrorKind is the stable taxonomy for business validation failures.
// Clients should branch on the kind, never on the message text.
type ErrorKind string

const (
	// KindUniqueness - a value that must be globally unique already exists
	KindUniqueness ErrorKind = "uniqueness"
	// KindFormat - a value does not match its required format
	KindFormat ErrorKind = "format"
	// KindRange - a numeric value is outside its allowed range
	KindRange ErrorKind = "range"
	// KindReferential - a referenced identifier does not resolve, or a
	// required reference set is empty
	KindReferential ErrorKind = "referential"
)

// ValidationError is the only error kind raised for rejected mutations.
// A mutation either persists a fully valid entity or persists nothing.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newUniquenessError(message string) *ValidationError {
	return &ValidationError{Kind: KindUniqueness, Message: message}
}

func newFormatError(message string) *ValidationError {
	return &ValidationError{Kind: KindFormat, Message: message}
}

func newRangeError(message string) *ValidationError {
	return &ValidationError{Kind: KindRange, Message: message}
}

func newReferentialError(message string) *ValidationError {
	return &ValidationError{Kind: KindReferential, Message: message}
}

// AsValidationError unwraps err as a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
