// Package dates parses the loose date strings found in extracted career
// history ("Jan 2020", "2019", "Present") and formats durations and ranges.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	monthYearRe = regexp.MustCompile(`^([a-z]+)\s+(\d{4})$`)
	yearRe      = regexp.MustCompile(`^(\d{4})$`)
)

// Parse interprets s relative to the current time. See ParseAt.
func Parse(s string) (time.Time, bool) {
	return ParseAt(s, time.Now())
}

// ParseAt interprets "Present"/"Current" as now, "Mon YYYY" and
// "Month YYYY" as the first of that month, and "YYYY" as January 1st.
// Anything else is reported as unparseable.
func ParseAt(s string, now time.Time) (time.Time, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(s))

	if trimmed == "present" || trimmed == "current" {
		return now, true
	}

	if m := monthYearRe.FindStringSubmatch(trimmed); m != nil {
		month, ok := months[m[1]]
		if !ok {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}

	if m := yearRe.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// Duration formats the span between two date strings. See DurationAt.
func Duration(start, end string) string {
	return DurationAt(start, end, time.Now())
}

// DurationAt formats the whole months between start and end as
// "< 1 mo", "N mos", "N yr(s)" or "N yr(s) M mos". It returns "" when either
// date cannot be parsed; a negative span counts as zero.
func DurationAt(start, end string, now time.Time) string {
	s, ok := ParseAt(start, now)
	if !ok {
		return ""
	}
	e, ok := ParseAt(end, now)
	if !ok {
		return ""
	}

	total := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if total < 0 {
		total = 0
	}

	years := total / 12
	rem := total % 12

	switch {
	case years == 0 && rem == 0:
		return "< 1 mo"
	case years == 0:
		return fmt.Sprintf("%d mos", rem)
	case rem == 0:
		return fmt.Sprintf("%d %s", years, yearUnit(years))
	default:
		return fmt.Sprintf("%d %s %d mos", years, yearUnit(years), rem)
	}
}

func yearUnit(n int) string {
	if n > 1 {
		return "yrs"
	}
	return "yr"
}

// YearRange formats an education span. Either bound may be nil or empty.
func YearRange(start, end *string) string {
	s, e := deref(start), deref(end)

	switch {
	case s == "" && e == "":
		return ""
	case e == "":
		return s
	case s == "":
		return e
	case s == e:
		return s
	default:
		return s + " – " + e
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
