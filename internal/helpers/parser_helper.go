package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateTimeLayout is the accepted event date format, e.g. 2024-12-25 18:00.
const DateTimeLayout = "2006-01-02 15:04"

func StringToInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseOptionalInt returns nil for an empty string.
func ParseOptionalInt(s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := StringToInt(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &n, nil
}

func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date and time must look like YYYY-MM-DD HH:MM, got %q", s)
	}
	return t, nil
}

func ParseClock(s string) (models.Clock, error) {
	c, err := models.ParseClock(strings.TrimSpace(s))
	if err != nil {
		return models.Clock{}, fmt.Errorf("time must look like HH:MM, got %q", s)
	}
	return c, nil
}

// ParseMoney parses a decimal amount; an empty string is zero.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ID format %q", s)
	}
	return id, nil
}

// FormatMoney renders an amount with two decimals and a dollar sign.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
