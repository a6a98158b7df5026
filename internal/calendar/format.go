package calendar

import "fmt"

// Formats below are fixed width for in-range values: the display is a
// fixed-pitch character grid and callers lay fields out by column.

// FormatTime renders HH:MM:SS.
func FormatTime(t Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// FormatHourMin renders HH:MM.
func FormatHourMin(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatDate renders DD/MM/YYYY.
func FormatDate(d Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// FormatDateShort renders DD/MM/YY.
func FormatDateShort(d Date) string {
	return fmt.Sprintf("%02d/%02d/%02d", d.Day, d.Month, d.Year%100)
}

// FormatDayMonth renders DD/MM.
func FormatDayMonth(d Date) string {
	return fmt.Sprintf("%02d/%02d", d.Day, d.Month)
}

// FormatMinSec renders a second count as MM:SS. Minutes widen past 99.
func FormatMinSec(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatElapsed renders a stopwatch reading as HH:MM:SS.
func FormatElapsed(hours, minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
