package parse

import (
	"regexp"
	"strings"
)

var (
	pageNumberRe = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)
	blankRunsRe  = regexp.MustCompile(`\n[ \t]*\n[ \t]*\n+`)
	spaceRunsRe  = regexp.MustCompile(`[ \t]+`)
)

// CleanText normalizes raw extracted document text: standalone page-number
// lines are dropped, runs of blank lines collapse to one, and runs of spaces
// and tabs collapse to a single space. PDF extraction leaves all three
// behind. Meant for preparing scoring input; Parse reads the raw text
// directly because the skills heuristic splits on space runs.
func CleanText(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = pageNumberRe.ReplaceAllString(text, "")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(spaceRunsRe.ReplaceAllString(text, " "))
}
