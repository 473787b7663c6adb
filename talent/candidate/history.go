package candidate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// JobHistoryEntry is one position in a candidate's work history. Dates
// arrive as free text from resumes and imports; parsing is best-effort
// and consumers skip entries whose dates cannot be read.
type JobHistoryEntry struct {
	Company   string `json:"company"`
	Title     string `json:"title,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

// Date spellings accepted from imported histories, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"1/2006",
}

var monthNameLayouts = []string{
	"January 2006",
	"Jan 2006",
}

var bareYearRe = regexp.MustCompile(`^\d{4}$`)

// ParseFlexibleDate reads one of the accepted date spellings. A bare
// year resolves to mid-year (June 1). "present", "current" and "now"
// resolve to evalDate.
func ParseFlexibleDate(raw string, evalDate time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	switch strings.ToLower(s) {
	case "present", "current", "now":
		return evalDate, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if bareYearRe.MatchString(s) {
		year, err := strconv.Atoi(s)
		if err == nil {
			return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC), true
		}
	}

	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Span resolves the entry's start and end dates against evalDate. An
// empty end date means the position is ongoing. ok is false when either
// side cannot be parsed.
func (e JobHistoryEntry) Span(evalDate time.Time) (start, end time.Time, ok bool) {
	start, ok = ParseFlexibleDate(e.StartDate, evalDate)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	if strings.TrimSpace(e.EndDate) == "" {
		return start, evalDate, true
	}

	end, ok = ParseFlexibleDate(e.EndDate, evalDate)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// DurationMonths is the whole-month length of the position, never less
// than one month.
func (e JobHistoryEntry) DurationMonths(evalDate time.Time) (int, bool) {
	start, end, ok := e.Span(evalDate)
	if !ok {
		return 0, false
	}
	return monthsBetween(start, end), true
}

// monthsBetween counts completed months from a to b, clamped to 1.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 1 {
		months = 1
	}
	return months
}
