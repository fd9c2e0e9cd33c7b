// Package report renders the deterministic markdown summaries written next
// to every backup artifact and run.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stagehand/internal/archive"
	"stagehand/internal/backup"
	"stagehand/internal/shows"
)

// Kind selects the report shape.
type Kind string

const (
	// KindBackup lists the document as snapshotted, with integrity
	// metadata and restore instructions.
	KindBackup Kind = "backup"
	// KindPreview summarizes a partition that was not written.
	KindPreview Kind = "preview"
	// KindExecuted summarizes a partition that was persisted.
	KindExecuted Kind = "executed"
)

// RunInfo identifies the run a report belongs to.
type RunInfo struct {
	Site        string
	RunID       string
	GeneratedAt time.Time
}

var siteTitle = cases.Title(language.English)

// Backup renders the snapshot report. doc may be nil when the source file
// did not parse; the raw bytes are still preserved in the snapshot and the
// report says so.
func Backup(info RunInfo, artifact *backup.Artifact, doc *shows.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Shows Backup — %s\n\n", siteTitle.String(info.Site))
	writeRunHeader(&b, info)
	fmt.Fprintf(&b, "- Source: %s\n", artifact.SourcePath)
	fmt.Fprintf(&b, "- SHA-256: %s\n", artifact.SHA256)
	fmt.Fprintf(&b, "- Size: %d bytes\n", artifact.Size)
	fmt.Fprintf(&b, "- Modified: %s\n\n", artifact.ModTime.UTC().Format(time.RFC3339))

	if doc == nil {
		b.WriteString("The source document could not be parsed. The snapshot preserves the raw bytes exactly as found.\n\n")
	} else {
		fmt.Fprintf(&b, "## Upcoming (%d)\n\n", len(doc.Upcoming))
		writeShowList(&b, doc.Upcoming)
		fmt.Fprintf(&b, "## Past (%d)\n\n", len(doc.Past))
		writeShowList(&b, doc.Past)
		b.WriteString("## Settings\n\n")
		fmt.Fprintf(&b, "```json\n%s\n```\n\n", strings.TrimSpace(string(doc.Settings)))
	}

	b.WriteString("## Restore\n\n")
	b.WriteString("Copy the snapshot back over the live document:\n\n")
	fmt.Fprintf(&b, "    cp %s %s\n", filepath.Base(artifact.DataPath), artifact.SourcePath)

	return b.String()
}

// Run renders the preview or executed report for a computed plan. Non-empty
// warnings and errors sections are always included.
func Run(kind Kind, info RunInfo, plan *archive.Plan) string {
	var b strings.Builder

	switch kind {
	case KindExecuted:
		fmt.Fprintf(&b, "# Archive Run — %s\n\n", siteTitle.String(info.Site))
	default:
		fmt.Fprintf(&b, "# Archive Preview — %s\n\n", siteTitle.String(info.Site))
	}
	writeRunHeader(&b, info)
	fmt.Fprintf(&b, "- Reference day: %s\n\n", plan.ReferenceDay.Format("Jan 2, 2006"))

	originalUpcoming, originalPast, archived, remaining, pastAfter := plan.Counts()
	b.WriteString("## Counts\n\n")
	fmt.Fprintf(&b, "- Upcoming before: %d\n", originalUpcoming)
	fmt.Fprintf(&b, "- Past before: %d\n", originalPast)
	if kind == KindExecuted {
		fmt.Fprintf(&b, "- Archived: %d\n", archived)
	} else {
		fmt.Fprintf(&b, "- Would archive: %d\n", archived)
	}
	fmt.Fprintf(&b, "- Remaining upcoming: %d\n", remaining)
	fmt.Fprintf(&b, "- Past after: %d\n\n", pastAfter)

	if kind == KindExecuted {
		b.WriteString("## Archived Shows\n\n")
	} else {
		b.WriteString("## Shows To Archive\n\n")
	}
	if len(plan.Archive) == 0 {
		b.WriteString("None. No changes needed.\n\n")
	} else {
		for _, entry := range plan.Archive {
			fmt.Fprintf(&b, "- %s — %s, %s (%s)\n",
				entry.Show.Date, entry.Show.Venue, entry.Show.City, entry.Decision.Reason)
		}
		b.WriteString("\n")
	}

	unparseable := unparseableEntries(plan)
	if len(unparseable) > 0 {
		b.WriteString("## Kept With Unparseable Dates\n\n")
		for _, entry := range unparseable {
			fmt.Fprintf(&b, "- %s — %s, %s: %s\n",
				entry.Show.Date, entry.Show.Venue, entry.Show.City, entry.Decision.Reason)
		}
		b.WriteString("\n")
	}

	warnings, errs := splitWarnings(plan.Warnings)
	if len(warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w.Message)
		}
		b.WriteString("\n")
	}
	if len(errs) > 0 {
		b.WriteString("## Errors\n\n")
		for _, w := range errs {
			fmt.Fprintf(&b, "- %s\n", w.Message)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RunFileName names the run report artifact for a mode and timestamp.
func RunFileName(kind Kind, timestamp string) string {
	return fmt.Sprintf("shows-%s-%s.md", kind, timestamp)
}

func writeRunHeader(b *strings.Builder, info RunInfo) {
	fmt.Fprintf(b, "- Run: %s\n", info.RunID)
	fmt.Fprintf(b, "- Generated: %s\n", info.GeneratedAt.UTC().Format(time.RFC3339))
}

func writeShowList(b *strings.Builder, list []shows.Show) {
	if len(list) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for _, show := range list {
		status := show.Status
		if status == "" {
			status = "unknown"
		}
		fmt.Fprintf(b, "- %s — %s, %s at %s [%s]\n", show.Date, show.Venue, show.City, show.Time, status)
	}
	b.WriteString("\n")
}

func unparseableEntries(plan *archive.Plan) []archive.Entry {
	var out []archive.Entry
	for _, entry := range plan.Keep {
		if entry.Decision.Outcome == shows.OutcomeKeepUnparseable {
			out = append(out, entry)
		}
	}
	return out
}

func splitWarnings(all []archive.Warning) (warnings, errs []archive.Warning) {
	for _, w := range all {
		if w.Level == archive.LevelError {
			errs = append(errs, w)
		} else {
			warnings = append(warnings, w)
		}
	}
	return warnings, errs
}
