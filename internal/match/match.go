// Package match computes lexical overlap between a resume and a job
// description. It is deliberately crude: case-folded whitespace tokens with
// set semantics, no stemming, no punctuation stripping. The score models what
// a keyword-driven screening system would see, not semantic similarity.
package match

import (
	"math"
	"sort"
	"strings"

	"resumelift/internal/types"
)

// Score computes the keyword-overlap score between a resume text and a job
// description. Matched and Missing partition the job description's distinct
// token set; the score is the matched fraction rounded to a 0-100 integer.
// An empty job description scores 0. Pure function.
func Score(resumeText, jobDescription string) types.MatchResult {
	resumeTokens := tokenSet(resumeText)
	jdTokens := tokenSet(jobDescription)

	matched := make([]string, 0, len(jdTokens))
	missing := make([]string, 0, len(jdTokens))
	for token := range jdTokens {
		if _, ok := resumeTokens[token]; ok {
			matched = append(matched, token)
		} else {
			missing = append(missing, token)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	score := 0
	if len(jdTokens) > 0 {
		score = int(math.Round(float64(len(matched)) / float64(len(jdTokens)) * 100))
	}

	return types.MatchResult{
		Score:   score,
		Matched: matched,
		Missing: missing,
	}
}

// tokenSet folds case and splits on whitespace. Repeated words collapse to
// one entry so a job description repeating a term does not weight it more.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = struct{}{}
	}
	return set
}
