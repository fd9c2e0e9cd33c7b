package shows

import (
	"fmt"
	"regexp"
	"time"
)

// Outcome classifies what the archiver should do with one show.
type Outcome string

const (
	// OutcomeArchive marks a show strictly before the reference day.
	OutcomeArchive Outcome = "archive"
	// OutcomeKeep marks a show dated today or in the future.
	OutcomeKeep Outcome = "keep"
	// OutcomeKeepUnparseable marks a show whose date could not be read.
	// Anything ambiguous stays in upcoming; a stale listing is recoverable,
	// a silently misfiled one is not.
	OutcomeKeepUnparseable Outcome = "keep-unparseable"
)

// Decision is the engine's verdict for one show date. DaysAgo is the
// whole-day distance from the reference day (negative for future dates,
// zero for today) and is only meaningful when the date parsed.
type Decision struct {
	Outcome Outcome
	DaysAgo int
	Reason  string
}

// ShouldArchive reports whether the decision moves the show to past.
func (d Decision) ShouldArchive() bool {
	return d.Outcome == OutcomeArchive
}

// Age returns the whole-day distance from the reference day. The second
// return is false for unparseable dates, whose DaysAgo would otherwise be
// indistinguishable from the "scheduled today" zero.
func (d Decision) Age() (int, bool) {
	return d.DaysAgo, d.Outcome != OutcomeKeepUnparseable
}

// Show dates are "Mon D, YYYY", e.g. "Dec 4, 2025".
const dateLayout = "Jan 2, 2006"

var datePattern = regexp.MustCompile(`^[A-Z][a-z]{2} [0-9]{1,2}, [0-9]{4}$`)

// Years outside this window are treated as typos (a transposed "22" for
// "2022" must not trigger an archive).
const (
	minSaneYear = 2020
	maxSaneYear = 2030
)

// Decide classifies a raw show date against the reference instant. It never
// fails: malformed input yields OutcomeKeepUnparseable with the rejection
// reason, so every verdict can be explained in a report.
func Decide(rawDate string, today time.Time) Decision {
	if !datePattern.MatchString(rawDate) {
		return Decision{
			Outcome: OutcomeKeepUnparseable,
			Reason:  fmt.Sprintf("date %q does not match format \"Mon D, YYYY\"", rawDate),
		}
	}

	parsed, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return Decision{
			Outcome: OutcomeKeepUnparseable,
			Reason:  fmt.Sprintf("date %q is not a valid calendar date", rawDate),
		}
	}

	if year := parsed.Year(); year < minSaneYear || year > maxSaneYear {
		return Decision{
			Outcome: OutcomeKeepUnparseable,
			Reason:  fmt.Sprintf("year %d outside sanity window %d-%d", year, minSaneYear, maxSaneYear),
		}
	}

	showDay := Midnight(parsed)
	referenceDay := Midnight(today)
	daysAgo := int(referenceDay.Sub(showDay).Hours() / 24)

	switch {
	case showDay.Before(referenceDay):
		return Decision{
			Outcome: OutcomeArchive,
			DaysAgo: daysAgo,
			Reason:  fmt.Sprintf("%d day(s) in the past", daysAgo),
		}
	case showDay.Equal(referenceDay):
		return Decision{
			Outcome: OutcomeKeep,
			DaysAgo: 0,
			Reason:  "scheduled today",
		}
	default:
		return Decision{
			Outcome: OutcomeKeep,
			DaysAgo: daysAgo,
			Reason:  fmt.Sprintf("%d day(s) in the future", -daysAgo),
		}
	}
}

// Midnight strips the time-of-day, mapping the instant to its calendar day
// in a fixed UTC day-space. Show dates carry no timezone, so comparisons
// happen on plain year/month/day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
