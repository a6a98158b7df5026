package calendar

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has a 29th of February.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month in year.
// A month outside 1-12 returns 31 rather than an error.
func DaysInMonth(month, year int) int {
	if month < 1 || month > 12 {
		return 31
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// IncHour advances hour by one, wrapping 23 to 0.
func IncHour(hour int) int {
	return wrapInc(hour, 0, 23)
}

// DecHour moves hour back by one, wrapping 0 to 23.
func DecHour(hour int) int {
	return wrapDec(hour, 0, 23)
}

// IncMinute advances minute by one, wrapping 59 to 0. The hour is not touched.
func IncMinute(minute int) int {
	return wrapInc(minute, 0, 59)
}

// DecMinute moves minute back by one, wrapping 0 to 59.
func DecMinute(minute int) int {
	return wrapDec(minute, 0, 59)
}

// IncSecond advances second by one, wrapping 59 to 0. The minute is not touched.
func IncSecond(second int) int {
	return wrapInc(second, 0, 59)
}

// DecSecond moves second back by one, wrapping 0 to 59.
func DecSecond(second int) int {
	return wrapDec(second, 0, 59)
}

// IncDay advances day within the given month, wrapping the last day to 1.
// There is no carry into the month.
func IncDay(day, month, year int) int {
	return wrapInc(day, 1, DaysInMonth(month, year))
}

// DecDay moves day back within the given month. Day 1 wraps to the last day
// of the same month, not of the previous one.
func DecDay(day, month, year int) int {
	return wrapDec(day, 1, DaysInMonth(month, year))
}

// IncMonth advances month, wrapping 12 to 1 without touching the year.
func IncMonth(month int) int {
	return wrapInc(month, 1, 12)
}

// DecMonth moves month back, wrapping 1 to 12.
func DecMonth(month int) int {
	return wrapDec(month, 1, 12)
}

// IncYear advances year, wrapping MaxYear to MinYear.
func IncYear(year int) int {
	return wrapInc(year, MinYear, MaxYear)
}

// DecYear moves year back, wrapping MinYear to MaxYear.
func DecYear(year int) int {
	return wrapDec(year, MinYear, MaxYear)
}

// wrapInc returns v+1, or lo once v reaches hi. Out-of-range input snaps to lo.
func wrapInc(v, lo, hi int) int {
	if v < lo || v >= hi {
		return lo
	}
	return v + 1
}

// wrapDec returns v-1, or hi once v reaches lo. Out-of-range input snaps to hi.
func wrapDec(v, lo, hi int) int {
	if v <= lo || v > hi {
		return hi
	}
	return v - 1
}

// ValidHour reports whether h is 0-23.
func ValidHour(h int) bool { return h >= 0 && h < 24 }

// ValidMinute reports whether m is 0-59.
func ValidMinute(m int) bool { return m >= 0 && m < 60 }

// ValidSecond reports whether s is 0-59.
func ValidSecond(s int) bool { return s >= 0 && s < 60 }

// ValidMonth reports whether m is 1-12.
func ValidMonth(m int) bool { return m >= 1 && m <= 12 }

// ValidYear reports whether y is within MinYear-MaxYear, the range the
// clock chip can hold.
func ValidYear(y int) bool { return y >= MinYear && y <= MaxYear }

// ValidDay reports whether day exists in month of year.
func ValidDay(day, month, year int) bool {
	return day >= 1 && day <= DaysInMonth(month, year)
}

// TimeToSeconds returns the number of seconds since midnight.
func TimeToSeconds(t Time) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// SecondsToTime splits a second count into hours, minutes and seconds.
// Hours are not reduced modulo 24.
func SecondsToTime(total int) Time {
	if total < 0 {
		total = 0
	}
	return Time{
		Hour:   total / 3600,
		Minute: (total % 3600) / 60,
		Second: total % 60,
	}
}
