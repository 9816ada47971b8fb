package types

import (
	"encoding/json"
	"fmt"
)

// Education holds either free-form text or structured entries. Resumes in the
// wild arrive in both shapes and downstream renderers accept both, so the
// field keeps whichever shape it was given instead of forcing one.
type Education struct {
	Text    string
	Entries []EducationEntry
}

// EducationText returns a free-form education value
func EducationText(text string) Education {
	return Education{Text: text}
}

// EducationEntries returns a structured education value
func EducationEntries(entries []EducationEntry) Education {
	if entries == nil {
		entries = []EducationEntry{}
	}
	return Education{Entries: entries}
}

// IsStructured reports whether the value carries structured entries
func (e Education) IsStructured() bool {
	return e.Entries != nil
}

// IsEmpty reports whether the value carries no information at all
func (e Education) IsEmpty() bool {
	return e.Entries == nil && e.Text == ""
}

// MarshalJSON emits the shape the value holds: a JSON array when structured,
// a JSON string otherwise.
func (e Education) MarshalJSON() ([]byte, error) {
	if e.Entries != nil {
		return json.Marshal(e.Entries)
	}
	return json.Marshal(e.Text)
}

// UnmarshalJSON accepts either a JSON array of entries or a JSON string.
// Anything else is tolerated by stringifying, because oracle output does not
// reliably honor the schema.
func (e *Education) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = Education{}
		return nil
	}
	var entries []EducationEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		*e = Education{Entries: entries}
		if e.Entries == nil {
			e.Entries = []EducationEntry{}
		}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*e = Education{Text: text}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("education: malformed JSON: %w", err)
	}
	*e = Education{Text: fmt.Sprintf("%v", raw)}
	return nil
}
