package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/farellandr/planner/internal/models"
)

const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitValidation = 3
	ExitNotFound   = 4
	ExitStore      = 5
)

// Describe turns an error into the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if v, ok := models.AsValidation(err); ok {
		return fmt.Sprintf("Invalid %s: %s.", v.Field, v.Reason)
	}
	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("%s with ID %s not found.", capitalize(nf.Entity), nf.ID)
	}
	var se *models.StoreError
	if errors.As(err, &se) {
		return fmt.Sprintf("Could not %s: %v.", se.Op, se.Err)
	}
	return err.Error()
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if _, ok := models.AsValidation(err); ok {
		return ExitValidation
	}
	if errors.Is(err, models.ErrNotFound) {
		return ExitNotFound
	}
	var se *models.StoreError
	if errors.As(err, &se) {
		return ExitStore
	}
	return ExitFailure
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
