package schema

import (
	"regexp"
	"strings"

	"resumelift/internal/types"
)

// degreeExpansions maps degree abbreviations to their full form. Order
// matters: longer or dotted spellings must be tried before their substrings
// (BA LLB before LLB, B.TECH before BTECH).
var degreeExpansions = []struct{ abbr, full string }{
	{"M.TECH", "Master of Technology"},
	{"MTECH", "Master of Technology"},
	{"M.SC", "Master of Science"},
	{"MSC", "Master of Science"},
	{"M.COM", "Master of Commerce"},
	{"MCOM", "Master of Commerce"},
	{"MCA", "Master of Computer Applications"},
	{"MBA", "Master of Business Administration"},
	{"B.TECH", "Bachelor of Technology"},
	{"BTECH", "Bachelor of Technology"},
	{"B.SC", "Bachelor of Science"},
	{"BSC", "Bachelor of Science"},
	{"B.COM", "Bachelor of Commerce"},
	{"BCOM", "Bachelor of Commerce"},
	{"B.PHARMA", "Bachelor of Pharmacy"},
	{"BPHARMA", "Bachelor of Pharmacy"},
	{"BA LLB", "Bachelor of Arts and Bachelor of Laws"},
	{"BALLB", "Bachelor of Arts and Bachelor of Laws"},
	{"LLB", "Bachelor of Laws"},
	{"BCA", "Bachelor of Computer Applications"},
	{"BBA", "Bachelor of Business Administration"},
	{"B.E.", "Bachelor of Engineering"},
	{"BE", "Bachelor of Engineering"},
}

var (
	universityRe = regexp.MustCompile(`(?i)(University|College|Institute|School)[^,;|\n]*`)
	yearRe       = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	masterCARe     = regexp.MustCompile(`(?i)MASTER\S*\s+OF\s+COMPUTER\s+APPLICATIONS`)
	bachelorTechRe = regexp.MustCompile(`(?i)BACHELOR\S*\s+OF\s+TECHNOLOGY`)
)

// NormalizeDegree expands a recognized degree abbreviation to its full form.
// Unrecognized input is returned trimmed but otherwise untouched.
func NormalizeDegree(text string) string {
	up := strings.ToUpper(text)
	for _, exp := range degreeExpansions {
		if strings.Contains(up, exp.abbr) {
			return exp.full
		}
	}
	if masterCARe.MatchString(up) {
		return "Master of Computer Applications"
	}
	if bachelorTechRe.MatchString(up) {
		return "Bachelor of Technology"
	}
	return strings.TrimSpace(text)
}

// FindYear returns the first 4-digit year in the 1900-2099 range, or "".
func FindYear(s string) string {
	return yearRe.FindString(s)
}

// UniversityFromLine returns the first institution-looking phrase, or "".
func UniversityFromLine(line string) string {
	return strings.TrimSpace(universityRe.FindString(line))
}

// EntryFromLine light-parses a free-form education line into an entry.
// The degree falls back to the whole line when no abbreviation is recognized,
// matching how a human would read "Diploma in Design, NID, 2017".
func EntryFromLine(line string) types.EducationEntry {
	line = strings.TrimSpace(line)
	return types.EducationEntry{
		Degree:     NormalizeDegree(line),
		University: UniversityFromLine(line),
		Year:       FindYear(line),
	}
}
