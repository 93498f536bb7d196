package datetime

import (
	"cmp"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// MinYear is the earliest year accepted by CalendarDate validation.
const MinYear = 1900

// CalendarDate represents a month, day and year. Fields may hold any
// integer values, including ones that do not denote a real date.
type CalendarDate struct {
	Month int
	Day   int
	Year  int
}

// NewCalendarDate creates a CalendarDate from its fields without validation.
func NewCalendarDate(month, day, year int) CalendarDate {
	return CalendarDate{Month: month, Day: day, Year: year}
}

// CalendarDateOf returns the CalendarDate in which t occurs, in t's location.
func CalendarDateOf(t time.Time) CalendarDate {
	return CalendarDate{Month: int(t.Month()), Day: t.Day(), Year: t.Year()}
}

// Today returns the current system date.
func Today() CalendarDate {
	return CalendarDateOf(time.Now())
}

// ParseCalendarDate parses a date in the form "month/day/year". Segments
// are not range checked.
func ParseCalendarDate(val string) (CalendarDate, error) {
	v, err := parseInts("date", val, DateSeparator, 3)
	if err != nil {
		return CalendarDate{}, err
	}
	return CalendarDate{Month: v[0], Day: v[1], Year: v[2]}, nil
}

// Parse parses val as per ParseCalendarDate. d is unchanged on error.
func (d *CalendarDate) Parse(val string) error {
	cd, err := ParseCalendarDate(val)
	if err != nil {
		return err
	}
	*d = cd
	return nil
}

// IsValid reports whether d is a real calendar date no earlier than
// MinYear and no later than the current year. The result depends on the
// system clock.
func (d CalendarDate) IsValid() bool {
	return d.ValidAsOf(time.Now().Year())
}

// ValidAsOf is like IsValid but uses refYear as the latest valid year.
func (d CalendarDate) ValidAsOf(refYear int) bool {
	return d.Validate(refYear) == nil
}

// Validate returns a *ValidationError for the first rule that d fails,
// or nil if d is valid with refYear as the latest valid year.
func (d CalendarDate) Validate(refYear int) error {
	if d.Year < MinYear || d.Year > refYear {
		return outOfRange("year", d.Year, ErrYearOutOfRange)
	}
	if d.Month < 1 || d.Month > 12 {
		return outOfRange("month", d.Month, ErrMonthOutOfRange)
	}
	if d.Day < 1 {
		return outOfRange("day", d.Day, ErrDayOutOfRange)
	}
	if d.Day > DaysInMonth(d.Year, d.Month) {
		return outOfRange("day", d.Day, ErrDayOutOfRange)
	}
	return nil
}

// Compare returns 1 if d is after other, -1 if before and 0 if the
// year, month and day are identical.
func (d CalendarDate) Compare(other CalendarDate) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

// Equal returns true if d and other have the same fields, whether or
// not they are valid.
func (d CalendarDate) Equal(other CalendarDate) bool {
	return d.Compare(other) == 0
}

// Before returns true if d is before other.
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// After returns true if d is after other.
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// String returns the date as "month/day/year" without zero padding.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

// MarshalText implements encoding.TextMarshaler.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CalendarDate) UnmarshalText(data []byte) error {
	return d.Parse(string(data))
}

// MarshalJSON implements json.Marshaler.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves d unchanged.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.Parse(s)
}

// MarshalYAML implements yaml.Marshaler.
func (d CalendarDate) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. A YAML null leaves d unchanged.
func (d *CalendarDate) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == nullTag {
		return nil
	}
	return d.Parse(node.Value)
}
