package calendar

// Stage is a local working copy of a time and date being edited before it is
// written to the clock device.
type Stage struct {
	Time Time
	Date Date
}

// DefaultStage is the preset used before anything has been read from the
// clock device.
var DefaultStage = Stage{
	Time: Time{Hour: 12},
	Date: Date{Day: 1, Month: 1, Year: 2024},
}

// Increment steps the selected field up by one with wraparound.
func (s *Stage) Increment(f Field) {
	switch f {
	case FieldHour:
		s.Time.Hour = IncHour(s.Time.Hour)
	case FieldMinute:
		s.Time.Minute = IncMinute(s.Time.Minute)
	case FieldSecond:
		s.Time.Second = IncSecond(s.Time.Second)
	case FieldDay:
		s.Date.Day = IncDay(s.Date.Day, s.Date.Month, s.Date.Year)
	case FieldMonth:
		s.Date.Month = IncMonth(s.Date.Month)
		s.clampDay()
	case FieldYear:
		s.Date.Year = IncYear(s.Date.Year)
		s.clampDay()
	}
}

// Decrement steps the selected field down by one with wraparound.
func (s *Stage) Decrement(f Field) {
	switch f {
	case FieldHour:
		s.Time.Hour = DecHour(s.Time.Hour)
	case FieldMinute:
		s.Time.Minute = DecMinute(s.Time.Minute)
	case FieldSecond:
		s.Time.Second = DecSecond(s.Time.Second)
	case FieldDay:
		s.Date.Day = DecDay(s.Date.Day, s.Date.Month, s.Date.Year)
	case FieldMonth:
		s.Date.Month = DecMonth(s.Date.Month)
		s.clampDay()
	case FieldYear:
		s.Date.Year = DecYear(s.Date.Year)
		s.clampDay()
	}
}

// clampDay keeps the day inside the month after a month or year change,
// e.g. 31/01 stepped to February becomes 28/02 or 29/02.
func (s *Stage) clampDay() {
	if n := DaysInMonth(s.Date.Month, s.Date.Year); s.Date.Day > n {
		s.Date.Day = n
	}
}
