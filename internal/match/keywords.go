package match

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"resumelift/internal/types"
)

// DefaultTopKeywords bounds keyword extraction when the caller passes no limit
const DefaultTopKeywords = 25

// stopwords is a small english stopword set, enough to keep filler out of the
// keyword ranking without pulling in a language-processing dependency.
var stopwords = buildWordSet(`
a about above after again against all am an and any are aren't as at be because been before being below between both but by can
can't cannot could couldn't did didn't do does doesn't doing don't down during each few for from further had hadn't has hasn't
have haven't having he he'd he'll he's her here here's hers herself him himself his how how's i i'd i'll i'm i've if in into
is isn't it it's its itself let's me more most mustn't my myself no nor not of off on once only or other ought our ours
ourselves out over own same shan't she she'd she'll she's should shouldn't so some such than that that's the their theirs them
themselves then there there's these they they'd they'll they're they've this those through to too under until up very was wasn't we
we'd we'll we're we've were weren't what what's when when's where where's which while who who's whom why why's with won't would
wouldn't you you'd you'll you're you've your yours yourself yourselves`)

// genericTerms are too common in job postings to be worth telling a candidate
// to include.
var genericTerms = buildWordSet("app experience role team work")

// keywordCleanRe strips characters that are neither word-ish nor part of
// common tech names (C++, C#, CI/CD, .NET keeps its letters).
var keywordCleanRe = regexp.MustCompile(`[^A-Za-z0-9\s\-/+#&]`)

// ExtractKeywords returns frequency-ranked keyword candidates from a job
// description: bigrams first (they are usually the skill phrases), then
// unigrams, stopwords and bare numbers filtered out. topN <= 0 selects
// DefaultTopKeywords.
func ExtractKeywords(jobDescription string, topN int) []types.Keyword {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	if strings.TrimSpace(jobDescription) == "" {
		return []types.Keyword{}
	}

	tokens := keywordTokens(jobDescription)

	uniCounts := map[string]int{}
	var uniOrder []string
	for _, t := range tokens {
		if _, seen := uniCounts[t]; !seen {
			uniOrder = append(uniOrder, t)
		}
		uniCounts[t]++
	}

	biCounts := map[string]int{}
	var biOrder []string
	for i := 0; i+1 < len(tokens); i++ {
		bigram := tokens[i] + " " + tokens[i+1]
		if _, seen := biCounts[bigram]; !seen {
			biOrder = append(biOrder, bigram)
		}
		biCounts[bigram]++
	}

	keywords := make([]types.Keyword, 0, topN)
	taken := map[string]bool{}
	appendRanked := func(order []string, counts map[string]int) {
		ranked := make([]string, len(order))
		copy(ranked, order)
		sort.SliceStable(ranked, func(i, j int) bool {
			return counts[ranked[i]] > counts[ranked[j]]
		})
		for _, term := range ranked {
			if len(keywords) >= topN {
				return
			}
			if taken[term] || genericTerms[term] {
				continue
			}
			taken[term] = true
			keywords = append(keywords, types.Keyword{Term: term, Count: counts[term]})
		}
	}

	appendRanked(biOrder, biCounts)
	appendRanked(uniOrder, uniCounts)
	return keywords
}

// FormatKeywordPrompt renders the top keywords as a prompt block for the
// oracle. Empty input yields an empty block.
func FormatKeywordPrompt(keywords []types.Keyword, maxDisplay int) string {
	if len(keywords) == 0 {
		return ""
	}
	if maxDisplay <= 0 || maxDisplay > len(keywords) {
		maxDisplay = len(keywords)
	}
	terms := make([]string, 0, maxDisplay)
	for _, kw := range keywords[:maxDisplay] {
		terms = append(terms, kw.Term)
	}
	return "Important keywords to include (prioritized):\n" + strings.Join(terms, ", ")
}

func keywordTokens(text string) []string {
	cleaned := keywordCleanRe.ReplaceAllString(text, " ")
	var tokens []string
	for _, raw := range strings.Fields(strings.ToLower(cleaned)) {
		token := strings.TrimSpace(raw)
		if len(token) <= 1 || stopwords[token] || isAllDigits(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func buildWordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
