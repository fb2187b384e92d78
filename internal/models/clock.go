package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

const clockLayout = "15:04"

// Clock is a time of day with minute precision.
type Clock struct {
	minutes int
}

// NewClock builds a Clock from an hour (0-23) and minute (0-59).
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("clock %02d:%02d out of range", hour, minute)
	}
	return Clock{minutes: hour*60 + minute}, nil
}

// ParseClock parses an "HH:MM" 24-hour time.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock{minutes: t.Hour()*60 + t.Minute()}, nil
}

func (c Clock) Hour() int   { return c.minutes / 60 }
func (c Clock) Minute() int { return c.minutes % 60 }

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int { return c.minutes }

// Add moves the clock forward, wrapping past midnight.
func (c Clock) Add(minutes int) Clock {
	m := (c.minutes + minutes) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return Clock{minutes: m}
}

func (c Clock) Before(other Clock) bool { return c.minutes < other.minutes }

// On places the clock on the calendar day of t, in t's location.
func (c Clock) On(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, c.Hour(), c.Minute(), 0, 0, t.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Clock) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		c.minutes = v.Hour()*60 + v.Minute()
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
	// postgres time columns come back as HH:MM:SS
	if len(s) > len(clockLayout) {
		s = s[:len(clockLayout)]
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
