package validation

import "errors"

// ValidationErrorCode represents specific validation error types
type ValidationErrorCode int

const (
	ErrorValueRequired ValidationErrorCode = iota
	ErrorInvalidPhone
	ErrorInvalidEmail
	ErrorInvalidDate
	ErrorInvalidDays
)

func (c ValidationErrorCode) String() string {
	switch c {
	case ErrorValueRequired:
		return "value_required"
	case ErrorInvalidPhone:
		return "invalid_phone"
	case ErrorInvalidEmail:
		return "invalid_email"
	case ErrorInvalidDate:
		return "invalid_date"
	case ErrorInvalidDays:
		return "invalid_days"
	default:
		return "unknown"
	}
}

// ValidationError represents a field value that failed validation.
// Message is safe to show to the user as is.
type ValidationError struct {
	Field   string
	Code    ValidationErrorCode
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HasCode reports whether err is a *ValidationError with the given code.
func HasCode(err error, code ValidationErrorCode) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return ve.Code == code
}
