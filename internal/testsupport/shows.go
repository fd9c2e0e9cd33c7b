// Package testsupport provides fixture helpers shared by package tests.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ShowJSON renders one show object with the required fields filled in.
func ShowJSON(date, venue string) string {
	return fmt.Sprintf(`{"date": %q, "time": "20:00", "venue": %q, "city": "Utrecht", "status": "tickets"}`, date, venue)
}

// DocumentJSON assembles a full shows document from pre-rendered show
// objects.
func DocumentJSON(upcoming, past []string) string {
	return fmt.Sprintf(`{
  "upcoming": [%s],
  "past": [%s],
  "settings": {"showPastShows": true, "maxUpcomingDisplay": 10, "maxPastDisplay": 6, "autoArchiveAfterDays": 1}
}`, strings.Join(upcoming, ", "), strings.Join(past, ", "))
}

// WriteDocument writes a shows document to path, creating parent
// directories as needed.
func WriteDocument(t testing.TB, path, document string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
