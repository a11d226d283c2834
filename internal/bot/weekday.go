package bot

import (
	"strconv"
	"strings"
	"time"
)

// UnknownDay is returned for dates that do not exist
const UnknownDay = "невідомий день"

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Понеділок",
	time.Tuesday:   "Вівторок",
	time.Wednesday: "Середа",
	time.Thursday:  "Четвер",
	time.Friday:    "П’ятниця",
	time.Saturday:  "Субота",
	time.Sunday:    "Неділя",
}

// Weekday names the weekday of the next occurrence of a day.month date.
//
// The date is placed in the current year. If it is already behind today it
// rolls to next year. A day/month that does not exist in the chosen year
// yields UnknownDay.
func Weekday(dateStr string, now time.Time) string {
	day, month, ok := parseDayMonth(dateStr)
	if !ok {
		return UnknownDay
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	date, ok := makeDate(now.Year(), month, day, now.Location())
	if !ok {
		return UnknownDay
	}
	if date.Before(today) {
		date, ok = makeDate(now.Year()+1, month, day, now.Location())
		if !ok {
			return UnknownDay
		}
	}
	return weekdayNames[date.Weekday()]
}

func parseDayMonth(s string) (day, month int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 {
		return 0, 0, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return day, month, true
}

// makeDate rejects combinations time.Date would normalize, such as 30.02
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
