package lexicon

import (
	"fmt"
	"strings"
	"time"
)

// Calendar layouts accepted across statement formats, tried in order.
// Day-first layouts come before month-first: Indian statements are
// day-first, so "03/04/2024" resolves as 3 April.
var dateLayouts = []string{
	"Jan 2, 2006",
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2006-01-02",
	"1/2/2006",
	"2.1.2006",
	"02.01.2006",
}

// ParseDate parses a calendar date in any of the supported layouts.
// The result is at midnight local time; pair with ParseClock for
// statements that carry a separate time-of-day line.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

var clockLayouts = []string{"03:04 PM", "3:04 PM", "15:04"}

// ParseClock parses a time-of-day token such as "10:15 AM".
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("unparseable time %q", s)
}

// At combines a calendar date with a time-of-day.
func At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
