package datetime

import (
	"cmp"
	"encoding/json"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Upper bounds, exclusive, for ClockTime fields.
const (
	HoursPerDay    = 24
	MinutesPerHour = 60
)

// ClockTime represents an hour and minute on a 24 hour clock. Fields may
// hold any integer values.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime creates a ClockTime from its fields without validation.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ClockTimeOf returns the hour and minute of t, in t's location.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// Now returns the current system time of day.
func Now() ClockTime {
	return ClockTimeOf(time.Now())
}

// ParseClockTime parses a time in the form "hour:minute". Segments are
// not range checked.
func ParseClockTime(val string) (ClockTime, error) {
	v, err := parseInts("time", val, TimeSeparator, 2)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Hour: v[0], Minute: v[1]}, nil
}

// Parse parses val as per ParseClockTime. t is unchanged on error.
func (t *ClockTime) Parse(val string) error {
	ct, err := ParseClockTime(val)
	if err != nil {
		return err
	}
	*t = ct
	return nil
}

// IsValid returns false if the hour is 24 or more or the minute is 60 or
// more. Negative fields are not rejected, see IsValidStrict.
func (t ClockTime) IsValid() bool {
	return t.Validate(false) == nil
}

// IsValidStrict is like IsValid but also rejects negative fields.
func (t ClockTime) IsValidStrict() bool {
	return t.Validate(true) == nil
}

// Validate returns a *ValidationError for the first rule that t fails.
// Lower bounds are only checked when strict is set.
func (t ClockTime) Validate(strict bool) error {
	if t.Hour >= HoursPerDay || (strict && t.Hour < 0) {
		return outOfRange("hour", t.Hour, ErrHourOutOfRange)
	}
	if t.Minute >= MinutesPerHour || (strict && t.Minute < 0) {
		return outOfRange("minute", t.Minute, ErrMinuteOutOfRange)
	}
	return nil
}

// Compare returns 1 if t is later in the day than other, -1 if earlier
// and 0 if the hour and minute are identical.
func (t ClockTime) Compare(other ClockTime) int {
	if c := cmp.Compare(t.Hour, other.Hour); c != 0 {
		return c
	}
	return cmp.Compare(t.Minute, other.Minute)
}

// Equal returns true if t and other have the same hour and minute.
func (t ClockTime) Equal(other ClockTime) bool {
	return t.Compare(other) == 0
}

// Before returns true if t is earlier than other.
func (t ClockTime) Before(other ClockTime) bool {
	return t.Compare(other) < 0
}

// After returns true if t is later than other.
func (t ClockTime) After(other ClockTime) bool {
	return t.Compare(other) > 0
}

// String returns the time as "HH:MM". Only fields in the range 0-9 are
// zero padded, negative fields are rendered as-is: hour -1 gives "-1:30",
// never "0-1:30".
func (t ClockTime) String() string {
	return pad2(t.Hour) + TimeSeparator + pad2(t.Minute)
}

func pad2(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// MarshalText implements encoding.TextMarshaler.
func (t ClockTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ClockTime) UnmarshalText(data []byte) error {
	return t.Parse(string(data))
}

// MarshalJSON implements json.Marshaler.
func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves t unchanged.
func (t *ClockTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

// MarshalYAML implements yaml.Marshaler.
func (t ClockTime) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. A YAML null leaves t unchanged.
func (t *ClockTime) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == nullTag {
		return nil
	}
	return t.Parse(node.Value)
}
