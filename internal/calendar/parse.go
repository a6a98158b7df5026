package calendar

import "fmt"

// ParseTime reads HH:MM:SS, the format FormatTime writes.
func ParseTime(s string) (Time, error) {
	var t Time
	var rest string
	n, _ := fmt.Sscanf(s, "%2d:%2d:%2d%s", &t.Hour, &t.Minute, &t.Second, &rest)
	if n != 3 || len(s) != 8 {
		return Time{}, fmt.Errorf("time %q: want HH:MM:SS", s)
	}
	if !t.Valid() {
		return Time{}, fmt.Errorf("time %q out of range", s)
	}
	return t, nil
}

// ParseDate reads DD/MM/YYYY, the format FormatDate writes.
func ParseDate(s string) (Date, error) {
	var d Date
	var rest string
	n, _ := fmt.Sscanf(s, "%2d/%2d/%4d%s", &d.Day, &d.Month, &d.Year, &rest)
	if n != 3 || len(s) != 10 {
		return Date{}, fmt.Errorf("date %q: want DD/MM/YYYY", s)
	}
	if !d.Valid() {
		return Date{}, fmt.Errorf("date %q out of range", s)
	}
	return d, nil
}
