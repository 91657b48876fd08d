package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var usDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// ToISODate parses a provider date string. Direct parsing is tried first, then the MM/DD/YYYY
// form with calendar validation. Returns nil for empty, unparseable or impossible dates.
func ToISODate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		t = t.UTC()
		return &t
	}

	m := usDateRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow, 02/30 becomes 03/01
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}
	return &t
}

// usDate formats t as MM/DD/YYYY, the form expected by the contracts search
func usDate(t time.Time) string {
	return t.UTC().Format("01/02/2006")
}
