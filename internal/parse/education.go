package parse

import (
	"regexp"
	"strings"

	"resumelift/internal/schema"
	"resumelift/internal/types"
)

const degreeAlternatives = `M\.?C\.?A\.?|MCA|MBA|M\.?Tech|MTECH|B\.?Tech|BTECH|B\.?E\.?|BE|BCA|B\.?Sc|BSc|B\.?Com|BCom|BBA|B\.?Pharma|BPharma|BA\s*LLB|BALLB|LLB`

var (
	degreeRe     = regexp.MustCompile(`(?i)(` + degreeAlternatives + `)`)
	universityRe = regexp.MustCompile(`(?i)(University|College|Institute|School)[^,|;]*`)

	// Combined pattern for scanning full text when the education section is
	// empty: degree abbreviation, optional institution phrase, optional year.
	educationScanRe = regexp.MustCompile(
		`(?i)(` + degreeAlternatives + `)[^,\n]*?((?:University|College|Institute|School)[^,\n]*)?(\b(?:19|20)\d{2}\b)?`)
)

// extractEducation builds education entries from the section lines, falling
// back to scanning the full text when the section yields nothing. It
// guarantees at least one entry, possibly all-empty, so downstream code never
// faces an empty list, and de-duplicates by (degree, university, year).
func extractEducation(eduLines []string, fullText string) []types.EducationEntry {
	var items []types.EducationEntry

	for _, ln := range eduLines {
		entry := types.EducationEntry{Year: schema.FindYear(ln)}
		if m := degreeRe.FindString(ln); m != "" {
			entry.Degree = schema.NormalizeDegree(m)
		}
		if m := universityRe.FindString(ln); m != "" {
			entry.University = strings.TrimSpace(m)
		}
		if entry.Degree != "" || entry.University != "" || entry.Year != "" {
			items = append(items, entry)
		}
	}

	if len(items) == 0 {
		for _, m := range educationScanRe.FindAllStringSubmatch(fullText, -1) {
			items = append(items, types.EducationEntry{
				Degree:     schema.NormalizeDegree(m[1]),
				University: strings.TrimSpace(m[2]),
				Year:       strings.TrimSpace(m[3]),
			})
		}
	}

	if len(items) == 0 {
		items = []types.EducationEntry{{}}
	}
	return dedupeEducation(items)
}

func dedupeEducation(items []types.EducationEntry) []types.EducationEntry {
	seen := map[types.EducationEntry]bool{}
	out := make([]types.EducationEntry, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
