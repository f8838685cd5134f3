package domain

import "errors"

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrClientNotFound         = errors.New("client not found")
	ErrQuoteNotFound          = errors.New("client has no quote")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrRenderFailed           = errors.New("invoice document rendering failed")
)

// ValidationError reports missing or malformed input on a create or update.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
