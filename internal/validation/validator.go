package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// BirthdayLayout is the only accepted birthday input format (DD.MM.YYYY).
	BirthdayLayout = "02.01.2006"

	PhoneLength = 10
	MaxDays     = 365
)

const (
	phoneMessage    = "Phone number must contain 10 digits"
	emailMessage    = "Invalid email format"
	birthdayMessage = "Following date format required: DD.MM.YYYY"
	daysMessage     = "Number of days must be between 0 and 365"
)

// FieldValidator validates and normalizes raw user input for contact and note fields
type FieldValidator struct {
	validate *validator.Validate
}

// NewFieldValidator creates a new FieldValidator instance
func NewFieldValidator() *FieldValidator {
	return &FieldValidator{validate: validator.New()}
}

var defaultValidator = NewFieldValidator()

// Phone trims surrounding whitespace and requires exactly ten ASCII digits.
func (v *FieldValidator) Phone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if err := v.validate.Var(phone, "required,number,len="+strconv.Itoa(PhoneLength)); err != nil {
		return "", &ValidationError{Field: "phone", Code: ErrorInvalidPhone, Value: raw, Message: phoneMessage}
	}
	return phone, nil
}

func (v *FieldValidator) Email(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if err := v.validate.Var(email, "required,email"); err != nil {
		return "", &ValidationError{Field: "email", Code: ErrorInvalidEmail, Value: raw, Message: emailMessage}
	}
	return email, nil
}

// Birthday parses a DD.MM.YYYY date. The year is not range checked.
func (v *FieldValidator) Birthday(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	invalid := &ValidationError{Field: "birthday", Code: ErrorInvalidDate, Value: raw, Message: birthdayMessage}

	if err := v.validate.Var(value, "required,datetime="+BirthdayLayout); err != nil {
		return time.Time{}, invalid
	}
	date, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return time.Time{}, invalid
	}
	return date, nil
}

// Days parses the size of a birthday window.
func (v *FieldValidator) Days(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	invalid := &ValidationError{Field: "days", Code: ErrorInvalidDays, Value: raw, Message: daysMessage}

	if err := v.validate.Var(value, "required,number"); err != nil {
		return 0, invalid
	}
	days, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid
	}
	if err := v.validate.Var(days, "gte=0,lte="+strconv.Itoa(MaxDays)); err != nil {
		return 0, invalid
	}
	return days, nil
}

// Required trims raw and rejects empty values. label names the field in the message.
func (v *FieldValidator) Required(label, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if err := v.validate.Var(value, "required"); err != nil {
		return "", &ValidationError{
			Field:   strings.ToLower(label),
			Code:    ErrorValueRequired,
			Value:   raw,
			Message: label + " is required",
		}
	}
	return value, nil
}

func Phone(raw string) (string, error) { return defaultValidator.Phone(raw) }

func Email(raw string) (string, error) { return defaultValidator.Email(raw) }

func Birthday(raw string) (time.Time, error) { return defaultValidator.Birthday(raw) }

func Days(raw string) (int, error) { return defaultValidator.Days(raw) }

func Required(label, raw string) (string, error) { return defaultValidator.Required(label, raw) }
