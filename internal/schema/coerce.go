// Package schema is the single choke point through which every
// externally-sourced mapping (oracle output, parser output, caller-supplied
// JSON) must pass before being treated as a trustworthy ResumeRecord. No
// other package may assume an unvalidated mapping is well-shaped.
package schema

import (
	"fmt"
	"strings"

	"resumelift/internal/types"
)

// Coerce builds a ResumeRecord from an arbitrary mapping. Missing or
// ill-typed fields degrade to zero values rather than errors: strings to "",
// collections to empty sequences. Unknown keys are ignored. Coerce is
// idempotent over the record's mapping projection.
func Coerce(input map[string]any) types.ResumeRecord {
	return coerceWith(input, types.ResumeRecord{
		Education: types.EducationEntries([]types.EducationEntry{{}}),
	})
}

// NormalizeOracleOutput builds a ResumeRecord from an oracle payload, using
// the last good record as the fallback for absent string fields. Oracles
// omit fields freely; the fallback keeps a partial payload from erasing what
// a previous round established.
func NormalizeOracleOutput(input map[string]any, fallback types.ResumeRecord) types.ResumeRecord {
	return coerceWith(input, fallback)
}

func coerceWith(input map[string]any, fallback types.ResumeRecord) types.ResumeRecord {
	if input == nil {
		input = map[string]any{}
	}
	return types.ResumeRecord{
		Name:           stringField(input["name"], fallback.Name),
		Contact:        stringField(input["contact"], fallback.Contact),
		Summary:        stringField(input["summary"], fallback.Summary),
		Skills:         stringList(input["skills"]),
		Experience:     experienceEntries(input["experience"]),
		Projects:       projectEntries(input["projects"]),
		Education:      educationField(input["education"], fallback.Education),
		Certifications: stringList(input["certifications"]),
	}
}

// stringField applies the string rule: stringify and trim when present and
// non-empty, otherwise the caller-supplied default.
func stringField(v any, def string) string {
	if v == nil {
		return def
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return def
	}
	return s
}

// stringList applies the list rule: sequences pass through element-wise, a
// bare scalar wraps into a one-element sequence, anything absent or empty
// becomes an empty sequence.
func stringList(v any) []string {
	out := []string{}
	for _, item := range asSequence(v) {
		if s := strings.TrimSpace(stringify(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// experienceEntries rebuilds each element field-by-field. Mappings use the
// string/list rules, bare scalars become role-only entries, and anything
// else is silently dropped.
func experienceEntries(v any) []types.ExperienceEntry {
	out := []types.ExperienceEntry{}
	for _, item := range asSequence(v) {
		switch e := item.(type) {
		case map[string]any:
			out = append(out, types.ExperienceEntry{
				Role:     stringField(e["role"], ""),
				Company:  stringField(e["company"], ""),
				Duration: stringField(e["duration"], ""),
				Details:  stringList(e["details"]),
			})
		case string, fmt.Stringer, float64, int, int64, bool:
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, types.ExperienceEntry{Role: s, Details: []string{}})
			}
		}
	}
	return out
}

// projectEntries mirrors experienceEntries for the project shape.
func projectEntries(v any) []types.ProjectEntry {
	out := []types.ProjectEntry{}
	for _, item := range asSequence(v) {
		switch p := item.(type) {
		case map[string]any:
			out = append(out, types.ProjectEntry{
				Name:    stringField(p["name"], ""),
				Tech:    stringField(p["tech"], ""),
				Details: stringList(p["details"]),
			})
		case string, fmt.Stringer, float64, int, int64, bool:
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, types.ProjectEntry{Name: s, Details: []string{}})
			}
		}
	}
	return out
}

// educationField preserves the shape it was given: a string stays free-form
// text, a sequence becomes structured entries (free-form elements are
// light-parsed), and an absent value falls back.
func educationField(v any, fallback types.Education) types.Education {
	switch edu := v.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(edu) == "" {
			return fallback
		}
		return types.EducationText(strings.TrimSpace(edu))
	case types.Education:
		return edu
	case map[string]any:
		return types.EducationEntries([]types.EducationEntry{educationEntry(edu)})
	}

	seq, ok := v.([]any)
	if !ok {
		if entries, ok := v.([]types.EducationEntry); ok {
			return types.EducationEntries(append([]types.EducationEntry{}, entries...))
		}
		return fallback
	}

	entries := []types.EducationEntry{}
	for _, item := range seq {
		switch it := item.(type) {
		case map[string]any:
			entries = append(entries, educationEntry(it))
		default:
			if s := strings.TrimSpace(stringify(item)); s != "" {
				entries = append(entries, EntryFromLine(s))
			}
		}
	}
	if len(entries) == 0 {
		entries = []types.EducationEntry{{}}
	}
	return types.EducationEntries(entries)
}

func educationEntry(m map[string]any) types.EducationEntry {
	return types.EducationEntry{
		Degree:     stringField(m["degree"], ""),
		University: stringField(m["university"], ""),
		Year:       stringField(m["year"], ""),
	}
}

// asSequence normalizes a raw value into a slice: sequences as-is, scalars
// wrapped, nil empty.
func asSequence(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	default:
		return []any{v}
	}
}

// stringify renders a scalar the way a human wrote it: JSON numbers drop the
// float artifacts, everything else goes through fmt.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	case nil:
		return ""
	case map[string]any, []any:
		// containers have no sensible scalar rendering
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
