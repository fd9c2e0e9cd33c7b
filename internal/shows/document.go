package shows

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Show is one event record. The exported fields are the decoded view used
// for decisions and reports; raw holds the original JSON so marshalling
// reproduces the record exactly as it was loaded, unknown fields included.
type Show struct {
	Date      string
	Time      string
	Venue     string
	City      string
	Status    string
	TicketURL string

	raw json.RawMessage
}

type showFields struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	Status    string `json:"status"`
	TicketURL string `json:"ticketUrl,omitempty"`
}

// UnmarshalJSON decodes the known fields and retains the original bytes.
func (s *Show) UnmarshalJSON(data []byte) error {
	var fields showFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.Date = fields.Date
	s.Time = fields.Time
	s.Venue = fields.Venue
	s.City = fields.City
	s.Status = fields.Status
	s.TicketURL = fields.TicketURL
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the original bytes when the show was decoded from disk.
// Shows constructed in code (tests, mostly) marshal from the known fields.
func (s Show) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(showFields{
		Date:      s.Date,
		Time:      s.Time,
		Venue:     s.Venue,
		City:      s.City,
		Status:    s.Status,
		TicketURL: s.TicketURL,
	})
}

// HasField reports whether the show's JSON object carries the named key.
func (s Show) HasField(name string) bool {
	if len(s.raw) == 0 {
		switch name {
		case "date":
			return s.Date != ""
		case "time":
			return s.Time != ""
		case "venue":
			return s.Venue != ""
		case "city":
			return s.City != ""
		case "status":
			return s.Status != ""
		}
		return false
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(s.raw, &object); err != nil {
		return false
	}
	_, ok := object[name]
	return ok
}

// Raw returns the show's original JSON bytes, or nil for shows constructed
// in code.
func (s Show) Raw() json.RawMessage {
	return s.raw
}

// Document is one site's persisted show listing. Settings is opaque to this
// tool and passes through untouched.
type Document struct {
	Upcoming []Show          `json:"upcoming"`
	Past     []Show          `json:"past"`
	Settings json.RawMessage `json:"settings"`
}

// Decode parses a shows document from raw JSON. It does not validate
// structure; run ValidateDocument on the same bytes first.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode shows document: %w", err)
	}
	if doc.Upcoming == nil {
		doc.Upcoming = []Show{}
	}
	if doc.Past == nil {
		doc.Past = []Show{}
	}
	return &doc, nil
}

// Load reads, validates, and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shows document: %w", err)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	return Decode(data)
}

// Encode renders the document as pretty-printed JSON with a trailing
// newline, keeping the upcoming/past/settings top-level order.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode shows document: %w", err)
	}
	return buf.Bytes(), nil
}
