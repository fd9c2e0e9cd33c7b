// Package archive computes and applies the move of date-expired shows from
// a document's upcoming list to its past list.
package archive

import (
	"fmt"
	"time"

	"stagehand/internal/shows"
)

// WarningLevel separates advisory notices from should-be-unreachable ones.
type WarningLevel string

const (
	// LevelWarn flags a suspicious but legal partition.
	LevelWarn WarningLevel = "warn"
	// LevelError flags a partition that contradicts the decision engine's
	// contract. It is surfaced loudly rather than silently corrected.
	LevelError WarningLevel = "error"
)

// Warning is one advisory produced while planning. Warnings never block a
// write; they exist to be read.
type Warning struct {
	Level   WarningLevel
	Message string
}

// Entry pairs a show with the decision made about it.
type Entry struct {
	Show     shows.Show
	Decision shows.Decision
}

// Plan is the computed partition of one document's upcoming shows for a
// given reference day. Both slices preserve the original upcoming order.
type Plan struct {
	ReferenceDay time.Time
	Archive      []Entry
	Keep         []Entry
	Warnings     []Warning

	originalUpcoming int
	originalPast     int
}

// A single run archiving more shows than this is more likely a stale
// document or a wrong clock than a real backlog.
const maxArchivePerRun = 10

// BuildPlan partitions doc.Upcoming by the date decision engine. It never
// mutates doc; Apply materializes the plan into a new document.
func BuildPlan(doc *shows.Document, today time.Time) *Plan {
	plan := &Plan{
		ReferenceDay:     shows.Midnight(today),
		originalUpcoming: len(doc.Upcoming),
		originalPast:     len(doc.Past),
	}

	for _, show := range doc.Upcoming {
		entry := Entry{Show: show, Decision: shows.Decide(show.Date, today)}
		if entry.Decision.ShouldArchive() {
			plan.Archive = append(plan.Archive, entry)
		} else {
			plan.Keep = append(plan.Keep, entry)
		}
	}

	plan.Warnings = sanityWarnings(plan)
	return plan
}

func sanityWarnings(plan *Plan) []Warning {
	var warnings []Warning

	if len(plan.Archive) > 0 && len(plan.Keep) == 0 {
		warnings = append(warnings, Warning{
			Level:   LevelWarn,
			Message: fmt.Sprintf("run would archive all %d upcoming shows, leaving none listed", len(plan.Archive)),
		})
	}
	if len(plan.Archive) > maxArchivePerRun {
		warnings = append(warnings, Warning{
			Level:   LevelWarn,
			Message: fmt.Sprintf("run would archive %d shows (more than %d); check for stale data or a wrong clock", len(plan.Archive), maxArchivePerRun),
		})
	}
	for _, entry := range plan.Archive {
		switch {
		case entry.Decision.DaysAgo < 0:
			warnings = append(warnings, Warning{
				Level:   LevelError,
				Message: fmt.Sprintf("future-dated show %q slated for archive (daysAgo=%d); decision engine contract violated", entry.Show.Date, entry.Decision.DaysAgo),
			})
		case entry.Decision.DaysAgo == 0:
			warnings = append(warnings, Warning{
				Level:   LevelWarn,
				Message: fmt.Sprintf("show %q dated today slated for archive; decision engine should have kept it", entry.Show.Date),
			})
		}
	}

	return warnings
}

// HasChanges reports whether applying the plan would modify the document.
// An empty archive set is a normal terminal state, not an error, and apply
// mode performs no write for it.
func (p *Plan) HasChanges() bool {
	return len(p.Archive) > 0
}

// ErrorWarnings returns only the error-level warnings.
func (p *Plan) ErrorWarnings() []Warning {
	var out []Warning
	for _, w := range p.Warnings {
		if w.Level == LevelError {
			out = append(out, w)
		}
	}
	return out
}

// Counts returns the literal numbers every report must carry: original
// upcoming, original past, archived, remaining, and past count after the
// (hypothetical or real) move.
func (p *Plan) Counts() (originalUpcoming, originalPast, archived, remaining, pastAfter int) {
	archived = len(p.Archive)
	return p.originalUpcoming, p.originalPast, archived, p.originalUpcoming - archived, p.originalPast + archived
}

// Apply materializes the plan into a new document. Newly archived shows are
// prepended in reverse upcoming order, so within one run the most recent
// show sorts first, ahead of previously archived shows. This assumes new
// archives always postdate existing past entries; an out-of-order backfill
// would break strict chronology, and the tool deliberately does not re-sort.
// Settings pass through untouched.
func (p *Plan) Apply(doc *shows.Document) *shows.Document {
	upcoming := make([]shows.Show, 0, len(p.Keep))
	for _, entry := range p.Keep {
		upcoming = append(upcoming, entry.Show)
	}

	past := make([]shows.Show, 0, len(p.Archive)+len(doc.Past))
	for i := len(p.Archive) - 1; i >= 0; i-- {
		past = append(past, p.Archive[i].Show)
	}
	past = append(past, doc.Past...)

	return &shows.Document{
		Upcoming: upcoming,
		Past:     past,
		Settings: doc.Settings,
	}
}
