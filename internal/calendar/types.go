// Package calendar contains pure time-of-day and date arithmetic for the clock.
// This package has NO external dependencies (no bus, GPIO, OS, or wall clock).
// Every function returns a value inside its documented range for in-range input.
package calendar

// Year bounds supported by the two-digit year register of the RTC.
const (
	MinYear = 2000
	MaxYear = 2099
)

// Time is a time of day with one-second resolution.
type Time struct {
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// Valid reports whether every field is in range.
func (t Time) Valid() bool {
	return ValidHour(t.Hour) && ValidMinute(t.Minute) && ValidSecond(t.Second)
}

// Date is a calendar date between MinYear and MaxYear.
type Date struct {
	Day   int // 1-DaysInMonth(Month, Year)
	Month int // 1-12
	Year  int // 2000-2099
}

// Valid reports whether the date exists in the Gregorian calendar and the
// year is representable by the RTC.
func (d Date) Valid() bool {
	return ValidMonth(d.Month) && ValidYear(d.Year) && ValidDay(d.Day, d.Month, d.Year)
}

// Field identifies one editable component of a staged time and date.
type Field int

const (
	FieldHour Field = iota
	FieldMinute
	FieldSecond
	FieldDay
	FieldMonth
	FieldYear
)

func (f Field) String() string {
	switch f {
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldSecond:
		return "second"
	case FieldDay:
		return "day"
	case FieldMonth:
		return "month"
	case FieldYear:
		return "year"
	}
	return "unknown"
}

// IsDate reports whether the field belongs to the date part.
func (f Field) IsDate() bool {
	return f == FieldDay || f == FieldMonth || f == FieldYear
}
