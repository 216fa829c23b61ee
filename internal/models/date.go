package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire form of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day. The zero value is an
// unset date; JSON null and "" both decode to it.
type Date struct {
	t     time.Time
	valid bool
}

// NewDate returns the given calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &DateFormatError{Value: s, Err: err}
	}
	return DateOf(t), nil
}

func (d Date) Valid() bool { return d.valid }

// Time returns midnight UTC of the date, or the zero time when unset.
func (d Date) Time() time.Time {
	if !d.valid {
		return time.Time{}
	}
	return d.t
}

func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &DateFormatError{Value: string(b), Err: err}
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateFormatError reports date text that is not YYYY-MM-DD.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: expected %s", e.Value, DateLayout)
}

func (e *DateFormatError) Unwrap() error { return e.Err }
