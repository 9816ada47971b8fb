// Package parse converts raw resume text into a normalized ResumeRecord
// using regex heuristics. Resume formatting is adversarially variable, so
// every extraction step degrades to an empty result instead of failing:
// Parse is total over all string input.
package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"resumelift/internal/schema"
	"resumelift/internal/types"
)

// sectionNames maps each canonical section key to its accepted heading
// spellings. A line is a heading iff, after dropping non-letter characters
// and upper-casing, it exactly equals one of these.
var sectionNames = map[string][]string{
	"summary":        {"SUMMARY", "PROFILE", "OBJECTIVE", "ABOUT", "PROFESSIONAL SUMMARY"},
	"skills":         {"SKILLS", "TECHNICAL SKILLS", "TOOLS", "TECH STACK"},
	"experience":     {"EXPERIENCE", "WORK EXPERIENCE", "EMPLOYMENT", "PROFESSIONAL EXPERIENCE"},
	"projects":       {"PROJECTS", "ACADEMIC PROJECTS", "PERSONAL PROJECTS"},
	"education":      {"EDUCATION", "ACADEMICS", "QUALIFICATION"},
	"certifications": {"CERTIFICATIONS", "COURSES", "LICENSES"},
}

const bulletPrefixes = "•-–—*"

var (
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe      = regexp.MustCompile(`\+?\d[\d\s\-]{8,}\d`)
	roleLineRe   = regexp.MustCompile(`^(.+?)\s+[–—-]\s+(.+?)\s*\(([^)]+)\)$`)
	skillSplitRe = regexp.MustCompile(`[;,•]\s*|\s{2,}`)
	certSplitRe  = regexp.MustCompile(`[\n;,•]`)
)

// Parse converts raw resume text into a ResumeRecord. The result always
// satisfies the schema invariants: it is sanitized before being returned.
func Parse(rawText string) types.ResumeRecord {
	text := strings.ReplaceAll(rawText, "\r\n", "\n")
	lines := nonEmptyLines(text)
	sections := splitIntoSections(lines)

	record := types.ResumeRecord{
		Name:           guessName(lines),
		Contact:        extractContact(text),
		Summary:        strings.TrimSpace(strings.Join(sections["summary"], "\n")),
		Skills:         extractSkills(sections["skills"]),
		Experience:     extractExperience(sections["experience"]),
		Projects:       extractProjects(sections["projects"]),
		Education:      types.EducationEntries(extractEducation(sections["education"], text)),
		Certifications: extractCertifications(sections["certifications"]),
	}
	return schema.Sanitize(record)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// headingKey returns the canonical section key when the line is a heading.
func headingKey(line string) (string, bool) {
	up := strings.TrimSpace(strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || r == ' ' {
			return r
		}
		return -1
	}, strings.ToUpper(line)))

	for key, names := range sectionNames {
		for _, name := range names {
			if up == name {
				return key, true
			}
		}
	}
	return "", false
}

// splitIntoSections accumulates lines under the most recently seen heading.
// Lines before the first heading belong to no section.
func splitIntoSections(lines []string) map[string][]string {
	sections := make(map[string][]string, len(sectionNames))
	current := ""
	for _, ln := range lines {
		if key, ok := headingKey(ln); ok {
			current = key
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], ln)
		}
	}
	return sections
}

// guessName picks the first of the first five lines that does not look like
// contact information and has 2 to 5 words. Falls back to the first line.
func guessName(lines []string) string {
	for i, ln := range lines {
		if i >= 5 {
			break
		}
		if looksLikeContact(ln) {
			continue
		}
		if n := len(strings.Fields(ln)); n >= 2 && n <= 5 {
			return ln
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}

func looksLikeContact(s string) bool {
	return strings.Contains(s, "@") || phoneRe.MatchString(s)
}

// extractContact joins the first phone-shaped and first email-shaped
// substrings found anywhere in the text with " | ".
func extractContact(text string) string {
	var parts []string
	if phone := phoneRe.FindString(text); phone != "" {
		parts = append(parts, phone)
	}
	if email := emailRe.FindString(text); email != "" {
		parts = append(parts, email)
	}
	return strings.Join(parts, " | ")
}

// extractSkills splits the section on commas, semicolons, bullet glyphs, or
// runs of 2+ spaces, drops empty or implausibly long fragments, and
// de-duplicates case-insensitively preserving first-seen order.
func extractSkills(skillLines []string) []string {
	if len(skillLines) == 0 {
		return []string{}
	}
	joined := strings.Join(skillLines, " ")

	seen := map[string]bool{}
	var out []string
	for _, item := range skillSplitRe.Split(joined, -1) {
		skill := strings.TrimSpace(strings.Trim(item, " -•—\t"))
		if skill == "" || utf8.RuneCountInString(skill) >= 50 {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// extractExperience is deliberately forgiving. A line shaped like
// "<role> – <company> (<duration>)" starts a new entry; bullet lines become
// details of the current entry; other lines with more than two words are kept
// as details too, for resumes without a bullet convention. An entry is only
// emitted if it has a role or at least one detail.
func extractExperience(expLines []string) []types.ExperienceEntry {
	if len(expLines) == 0 {
		return []types.ExperienceEntry{}
	}

	var entries []types.ExperienceEntry
	current := types.ExperienceEntry{Details: []string{}}

	flush := func() {
		if current.Role != "" || len(current.Details) > 0 {
			entries = append(entries, current)
		}
	}

	for _, ln := range expLines {
		if m := roleLineRe.FindStringSubmatch(ln); m != nil {
			flush()
			current = types.ExperienceEntry{
				Role:     strings.TrimSpace(m[1]),
				Company:  strings.TrimSpace(m[2]),
				Duration: strings.TrimSpace(m[3]),
				Details:  []string{},
			}
			continue
		}
		if isBulletLine(ln) {
			current.Details = append(current.Details, trimBullet(ln))
			continue
		}
		if len(strings.Fields(ln)) > 2 {
			current.Details = append(current.Details, strings.TrimSpace(ln))
		}
	}
	flush()

	if entries == nil {
		entries = []types.ExperienceEntry{}
	}
	return entries
}

// extractProjects treats every non-bullet line as a new project title and
// bullet lines as details of the current project.
func extractProjects(projLines []string) []types.ProjectEntry {
	if len(projLines) == 0 {
		return []types.ProjectEntry{}
	}

	var projects []types.ProjectEntry
	current := types.ProjectEntry{Details: []string{}}

	flush := func() {
		if current.Name != "" || len(current.Details) > 0 {
			projects = append(projects, current)
		}
	}

	for _, ln := range projLines {
		if isBulletLine(ln) {
			current.Details = append(current.Details, trimBullet(ln))
			continue
		}
		flush()
		current = types.ProjectEntry{Name: strings.TrimSpace(ln), Details: []string{}}
	}
	flush()

	if projects == nil {
		projects = []types.ProjectEntry{}
	}
	return projects
}

// extractCertifications splits on newlines, semicolons, commas, and bullet
// glyphs, then de-duplicates case-insensitively.
func extractCertifications(certLines []string) []string {
	if len(certLines) == 0 {
		return []string{}
	}
	joined := strings.Join(certLines, "\n")

	seen := map[string]bool{}
	var out []string
	for _, part := range certSplitRe.Split(joined, -1) {
		cert := strings.TrimSpace(strings.Trim(part, " -•—\t"))
		if cert == "" {
			continue
		}
		key := strings.ToLower(cert)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cert)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func isBulletLine(ln string) bool {
	for _, prefix := range []string{"•", "-", "–", "—", "*"} {
		if strings.HasPrefix(ln, prefix) {
			return true
		}
	}
	return false
}

func trimBullet(ln string) string {
	return strings.TrimSpace(strings.TrimLeft(ln, bulletPrefixes))
}
