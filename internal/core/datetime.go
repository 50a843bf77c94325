package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISO-8601 in extended (separators) and basic (no separators) form. Both
// share one group layout, see isoGroup.
var (
	isoExtendedPattern = regexp.MustCompile(
		`^(\d{4})-(?:(\d{2})-(\d{2})|W(\d{2})(?:-(\d))?|(\d{3})|(\d{2}))` +
			`(?:[T ](\d{2})(?::(\d{2})(?::(\d{2})([.,]\d+)?)?)?(Z|[+-]\d{2}(?::?\d{2})?)?)?$`)
	isoBasicPattern = regexp.MustCompile(
		`^(\d{4})(?:(\d{2})(\d{2})|W(\d{2})(\d)?|(\d{3})|(\d{2}))?` +
			`(?:[T ](\d{2})(?:(\d{2})(?:(\d{2})([.,]\d+)?)?)?(Z|[+-]\d{2}(?::?\d{2})?)?)?$`)
)

type isoGroup int

const (
	isoYear isoGroup = iota + 1
	isoMonth
	isoDay
	isoWeek
	isoWeekday
	isoOrdinal
	isoMonthOnly
	isoHour
	isoMinute
	isoSecond
	isoFraction
	isoZone
)

// usDateLayout is MM/DD/YYYY with mandatory zero padding.
const usDateLayout = "01/02/2006"

// parseDateTime parses s strictly as ISO-8601, MM/DD/YYYY or YYYY-MM-DD and
// returns the instant in UTC. Zone offsets in s are applied before the
// conversion; values without an offset are read as UTC.
func parseDateTime(s string) (time.Time, bool) {
	m := isoExtendedPattern.FindStringSubmatch(s)
	if m == nil {
		m = isoBasicPattern.FindStringSubmatch(s)
	}
	if m != nil {
		return parseISO(m)
	}

	t, err := time.Parse(usDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func parseISO(m []string) (time.Time, bool) {
	group := func(g isoGroup) string { return m[g] }
	num := func(g isoGroup) int {
		n, _ := strconv.Atoi(m[g])
		return n
	}

	year := num(isoYear)
	var date time.Time
	// Reduced-precision dates (year, year-month, year-week) take no time.
	timeAllowed := true

	switch {
	case group(isoMonth) != "":
		month, day := time.Month(num(isoMonth)), num(isoDay)
		date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if month < time.January || month > time.December || date.Month() != month || date.Day() != day {
			return time.Time{}, false
		}
	case group(isoWeek) != "":
		week, weekday := num(isoWeek), 1
		if group(isoWeekday) != "" {
			weekday = num(isoWeekday)
		} else {
			timeAllowed = false
		}
		if week < 1 || week > isoWeeksInYear(year) || weekday < 1 || weekday > 7 {
			return time.Time{}, false
		}
		date = isoWeekStart(year).AddDate(0, 0, (week-1)*7+weekday-1)
	case group(isoOrdinal) != "":
		ordinal := num(isoOrdinal)
		date = time.Date(year, time.January, ordinal, 0, 0, 0, 0, time.UTC)
		if ordinal < 1 || date.Year() != year {
			return time.Time{}, false
		}
	case group(isoMonthOnly) != "":
		month := time.Month(num(isoMonthOnly))
		if month < time.January || month > time.December {
			return time.Time{}, false
		}
		date = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		timeAllowed = false
	default:
		date = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		timeAllowed = false
	}

	if group(isoHour) == "" {
		return date, true
	}
	if !timeAllowed {
		return time.Time{}, false
	}

	hour, minute, second := num(isoHour), num(isoMinute), num(isoSecond)
	nanos := fractionNanos(group(isoFraction))
	if minute > 59 || second > 59 {
		return time.Time{}, false
	}
	// 24:00 is the end of the day, only without minutes or seconds.
	if hour == 24 {
		if minute != 0 || second != 0 || nanos != 0 {
			return time.Time{}, false
		}
	} else if hour > 23 {
		return time.Time{}, false
	}

	offset, ok := zoneOffset(group(isoZone))
	if !ok {
		return time.Time{}, false
	}

	t := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, second, nanos, time.UTC)
	return t.Add(-time.Duration(offset) * time.Second), true
}

// isoWeekStart returns the Monday of ISO week 1, the week holding January 4.
func isoWeekStart(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -sinceMonday)
}

func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// fractionNanos converts ".5" or ",123456" to nanoseconds, truncating past
// nanosecond precision.
func fractionNanos(frac string) int {
	if frac == "" {
		return 0
	}
	digits := frac[1:]
	if len(digits) > 9 {
		digits = digits[:9]
	}
	digits += strings.Repeat("0", 9-len(digits))
	n, _ := strconv.Atoi(digits)
	return n
}

// zoneOffset returns the offset in seconds east of UTC for "", "Z", ±hh,
// ±hhmm or ±hh:mm.
func zoneOffset(zone string) (int, bool) {
	if zone == "" || zone == "Z" {
		return 0, true
	}

	sign := 1
	if zone[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(zone[1:], ":", "")
	hours, _ := strconv.Atoi(digits[:2])
	minutes := 0
	if len(digits) == 4 {
		minutes, _ = strconv.Atoi(digits[2:])
	}
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return sign * (hours*3600 + minutes*60), true
}
