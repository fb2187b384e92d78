package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const emailTag = "planner_email"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator's built-in "email" accepts addresses without a TLD.
	if err := v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func requiredText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if err := Validate.Var(trimmed, "required"); err != nil {
		return "", invalid(field, "must be a non-empty string")
	}
	return trimmed, nil
}

func optionalText(value string) string {
	return strings.TrimSpace(value)
}

func requiredTime(field string, value time.Time) error {
	if value.IsZero() {
		return invalid(field, "is required")
	}
	return nil
}

func nonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return invalid(field, "cannot be negative")
	}
	return nil
}

func positiveMinutes(field string, value int) error {
	if err := Validate.Var(value, "gt=0"); err != nil {
		return invalid(field, "must be a positive number of minutes")
	}
	return nil
}

func optionalPositive(field string, value *int) error {
	if value == nil {
		return nil
	}
	if err := Validate.Var(*value, "gt=0"); err != nil {
		return invalid(field, "must be a positive integer when set")
	}
	return nil
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if err := Validate.Var(email, "required,"+emailTag); err != nil {
		return "", invalid("email", "must look like local@domain.tld")
	}
	return email, nil
}

func eventStatus(value EventStatus) (EventStatus, error) {
	if value == "" {
		return StatusPlanning, nil
	}
	if !value.Valid() {
		return "", invalid("status", "must be one of Planning, Active, Completed, Cancelled")
	}
	return value, nil
}

func rsvpStatus(value RSVPStatus) (RSVPStatus, error) {
	if value == "" {
		return RSVPPending, nil
	}
	if !value.Valid() {
		return "", invalid("rsvp_status", "must be one of Pending, Confirmed, Declined")
	}
	return value, nil
}
