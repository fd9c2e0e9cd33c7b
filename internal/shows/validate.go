package shows

import (
	"encoding/json"
	"fmt"
)

// requiredShowFields is checked in order so the first missing field on the
// first offending item is reported deterministically.
var requiredShowFields = []string{"date", "time", "venue", "city", "status"}

// ValidateDocument confirms the structural shape of a raw shows document
// before any further processing. Checks short-circuit on the first failure
// and the returned error carries the reason. A validation failure is fatal
// for the site being processed.
func ValidateDocument(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("document is not a JSON object: %w", err)
	}
	if top == nil {
		return fmt.Errorf("document is null")
	}

	upcoming, ok := top["upcoming"]
	if !ok {
		return fmt.Errorf("missing \"upcoming\" array")
	}
	// A literal null unmarshals into a slice without error, so it needs an
	// explicit check to count as "not an array".
	var upcomingItems []json.RawMessage
	if err := json.Unmarshal(upcoming, &upcomingItems); err != nil || upcomingItems == nil {
		return fmt.Errorf("\"upcoming\" is not an array")
	}

	past, ok := top["past"]
	if !ok {
		return fmt.Errorf("missing \"past\" array")
	}
	var pastItems []json.RawMessage
	if err := json.Unmarshal(past, &pastItems); err != nil || pastItems == nil {
		return fmt.Errorf("\"past\" is not an array")
	}

	settings, ok := top["settings"]
	if !ok {
		return fmt.Errorf("missing \"settings\" object")
	}
	var settingsObject map[string]json.RawMessage
	if err := json.Unmarshal(settings, &settingsObject); err != nil || settingsObject == nil {
		return fmt.Errorf("\"settings\" is not an object")
	}

	for i, item := range upcomingItems {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(item, &object); err != nil {
			return fmt.Errorf("upcoming[%d] is not an object: %w", i, err)
		}
		for _, field := range requiredShowFields {
			if _, ok := object[field]; !ok {
				return fmt.Errorf("upcoming[%d] missing required field %q", i, field)
			}
		}
	}

	return nil
}
