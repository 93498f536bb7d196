// Package datetime provides calendar date and clock time value types.
// Values hold raw integer fields and are never validated on construction;
// validity is a query made with IsValid and related methods.
package datetime

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Textual separators.
const (
	DateSeparator = "/"
	TimeSeparator = ":"
)

const nullTag = "!!null"

// Sentinel errors returned when parsing malformed text. Every parse error
// matches ErrMalformed as well as the more specific cause.
var (
	ErrMalformed    = errors.New("malformed input")
	ErrSegmentCount = errors.New("wrong number of segments")
	ErrNotInteger   = errors.New("not an integer")
)

// Sentinel errors describing why a value is not a real calendar/clock point.
var (
	ErrYearOutOfRange   = errors.New("year out of range")
	ErrMonthOutOfRange  = errors.New("month out of range")
	ErrDayOutOfRange    = errors.New("day out of range")
	ErrHourOutOfRange   = errors.New("hour out of range")
	ErrMinuteOutOfRange = errors.New("minute out of range")
)

// Value is the capability shared by CalendarDate and ClockTime: an ordered
// value with a textual round-trip and a validity query.
type Value[T any] interface {
	Compare(other T) int
	Equal(other T) bool
	IsValid() bool
	String() string
}

// ParseError records a failure to parse the textual form of a value.
type ParseError struct {
	Kind    string // "date" or "time"
	Input   string
	Segment string // offending segment, empty for segment count errors
	Err     error  // ErrSegmentCount or ErrNotInteger
}

func (e *ParseError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("invalid %s %q: %v: %q", e.Kind, e.Input, e.Err, e.Segment)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// ValidationError describes the first rule a value fails.
type ValidationError struct {
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func outOfRange(field string, value int, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// parseInts splits val on sep and parses exactly n integer segments.
// Segments must fit in 32 bits.
func parseInts(kind, val, sep string, n int) ([]int, error) {
	parts := strings.Split(val, sep)
	if len(parts) != n {
		return nil, &ParseError{Kind: kind, Input: val, Err: ErrSegmentCount}
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, &ParseError{Kind: kind, Input: val, Segment: p, Err: ErrNotInteger}
		}
		out[i] = int(v)
	}
	return out, nil
}

// IsLeapYear returns true if year is a leap year in the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

// DaysInMonth returns the number of days in month (1-12) for year, or
// zero for a month outside that range.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	}
	return 0
}

// SortCalendarDates sorts dates into chronological order.
func SortCalendarDates(dates []CalendarDate) {
	slices.SortFunc(dates, CalendarDate.Compare)
}

// SortClockTimes sorts times into clock order.
func SortClockTimes(times []ClockTime) {
	slices.SortFunc(times, ClockTime.Compare)
}

var (
	_ Value[CalendarDate] = CalendarDate{}
	_ Value[ClockTime]    = ClockTime{}
)
