package schema

import (
	"strings"

	"resumelift/internal/types"
)

// Sanitize re-establishes the schema invariants on an already-typed record:
// trimmed strings, no nil collections, no blank detail lines. It is the
// record-shaped equivalent of Coerce, used where a record (not a mapping)
// must be guaranteed well-formed, such as the optimization baseline.
func Sanitize(rec types.ResumeRecord) types.ResumeRecord {
	out := types.ResumeRecord{
		Name:           strings.TrimSpace(rec.Name),
		Contact:        strings.TrimSpace(rec.Contact),
		Summary:        strings.TrimSpace(rec.Summary),
		Skills:         trimStrings(rec.Skills),
		Certifications: trimStrings(rec.Certifications),
		Education:      rec.Education,
	}

	out.Experience = make([]types.ExperienceEntry, 0, len(rec.Experience))
	for _, e := range rec.Experience {
		out.Experience = append(out.Experience, types.ExperienceEntry{
			Role:     strings.TrimSpace(e.Role),
			Company:  strings.TrimSpace(e.Company),
			Duration: strings.TrimSpace(e.Duration),
			Details:  trimStrings(e.Details),
		})
	}

	out.Projects = make([]types.ProjectEntry, 0, len(rec.Projects))
	for _, p := range rec.Projects {
		out.Projects = append(out.Projects, types.ProjectEntry{
			Name:    strings.TrimSpace(p.Name),
			Tech:    strings.TrimSpace(p.Tech),
			Details: trimStrings(p.Details),
		})
	}

	if out.Education.IsStructured() {
		entries := make([]types.EducationEntry, 0, len(out.Education.Entries))
		for _, e := range out.Education.Entries {
			entries = append(entries, types.EducationEntry{
				Degree:     strings.TrimSpace(e.Degree),
				University: strings.TrimSpace(e.University),
				Year:       strings.TrimSpace(e.Year),
			})
		}
		out.Education = types.EducationEntries(entries)
	} else {
		out.Education = types.EducationText(strings.TrimSpace(out.Education.Text))
	}

	return out
}

func trimStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
