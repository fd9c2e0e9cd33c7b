package shows_test

import (
	"strings"
	"testing"

	"stagehand/internal/shows"
)

const validDocument = `{
  "upcoming": [
    {"date": "Dec 11, 2025", "time": "20:00", "venue": "Paradiso", "city": "Amsterdam", "status": "tickets"}
  ],
  "past": [],
  "settings": {"showPastShows": true}
}`

func TestValidateDocumentAcceptsWellFormed(t *testing.T) {
	if err := shows.ValidateDocument([]byte(validDocument)); err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
}

func TestValidateDocumentFailures(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"not json", "not json at all", "not a JSON object"},
		{"null", "null", "document is null"},
		{"array top level", `[1, 2]`, "not a JSON object"},
		{"missing upcoming", `{"past": [], "settings": {}}`, `missing "upcoming"`},
		{"upcoming not array", `{"upcoming": {}, "past": [], "settings": {}}`, `"upcoming" is not an array`},
		{"upcoming null", `{"upcoming": null, "past": [], "settings": {}}`, `"upcoming" is not an array`},
		{"missing past", `{"upcoming": [], "settings": {}}`, `missing "past"`},
		{"past not array", `{"upcoming": [], "past": "x", "settings": {}}`, `"past" is not an array`},
		{"past null", `{"upcoming": [], "past": null, "settings": {}}`, `"past" is not an array`},
		{"missing settings", `{"upcoming": [], "past": []}`, `missing "settings"`},
		{"settings not object", `{"upcoming": [], "past": [], "settings": [1]}`, `"settings" is not an object`},
		{
			"missing show field",
			`{"upcoming": [
				{"date": "Dec 1, 2025", "time": "20:00", "venue": "A", "city": "B", "status": "tickets"},
				{"date": "Dec 2, 2025", "time": "20:00", "city": "B", "status": "tickets"}
			], "past": [], "settings": {}}`,
			`upcoming[1] missing required field "venue"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := shows.ValidateDocument([]byte(tc.data))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateDocumentReportsFirstMissingFieldInOrder(t *testing.T) {
	// Both date and status are absent; the field checked first wins.
	data := `{"upcoming": [{"time": "20:00", "venue": "A", "city": "B"}], "past": [], "settings": {}}`
	err := shows.ValidateDocument([]byte(data))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), `upcoming[0] missing required field "date"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}
