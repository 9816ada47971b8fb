package ai

import (
	"fmt"
	"strings"

	"resumelift/internal/match"
	"resumelift/internal/types"
)

// SystemPrompts contains all system-level instructions for oracle interactions
type SystemPrompts struct {
	RewriteResume       string
	SuggestImprovements string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	RewriteResume       string
	SuggestImprovements string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	RewriteResume: `You are an expert resume writer with a strict commitment to honesty and accuracy. Your core principles are:

- NEVER invent, exaggerate, or misattribute any skills or experiences
- Every piece of information must be directly traceable to the source resume
- Keep every section present in the source resume; never drop entries
- Optimize phrasing for applicant tracking systems while preserving meaning

You reply with a single JSON object describing the rewritten resume and nothing else.`,

	SuggestImprovements: `You are an experienced career coach and resume reviewer. You give
candid, specific, actionable feedback grounded only in what the resume
and job description actually say. You never suggest inventing
experience the candidate does not have.`,
}

// DefaultUserPrompts provides the default user prompt templates.
// The rewrite template takes target score, missing keywords, job description
// and the flattened resume text, in that order. The suggest template takes
// the resume text and the job description.
var DefaultUserPrompts = UserPrompts{
	RewriteResume: `Rewrite the resume below so that it would score at least %d out of 100 on a keyword match against the job description, while staying strictly truthful to the source material.

**Rules:**

1. Work only with facts already present in the resume. Never invent skills, employers, dates, metrics, or credentials.
2. Keep every section and entry that exists in the resume. Rephrase and reorder freely, but do not drop anything.
3. Weave the missing keywords listed below into the summary, skills, and experience details wherever the underlying experience genuinely supports them. Skip any keyword the resume gives no basis for.
4. Return a single JSON object with exactly these fields: name, contact, summary, skills, experience, projects, education, certifications.

**Missing keywords:**
%s

**Job Description:**
-----
%s
-----

**Current Resume:**
-----
%s
-----`,

	SuggestImprovements: `Review the resume below against the job description and reply in exactly this format:

1. **Score:** x/10
2. **Strengths:** (2-3 lines)
3. **Suggestions:** (3-5 bullet points)

Keep the suggestions concrete and tied to the job description.

**Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----`,
}

// Keyword counts for the frequency block appended to rewrite prompts.
const (
	keywordPromptExtract = 25
	keywordPromptDisplay = 10
)

// FormatRewritePrompt fills a rewrite prompt template with the dynamic
// content for one optimization round. The record is embedded through its
// flatten projection, never as JSON; the projection is one-way. The
// frequency-ranked job-description keywords follow the template so the
// model sees which terms carry the most weight in the posting.
func FormatRewritePrompt(template string, record types.ResumeRecord, jobDescription string, missing []string, targetScore int) string {
	missingLine := "(none)"
	if len(missing) > 0 {
		missingLine = strings.Join(missing, ", ")
	}

	prompt := fmt.Sprintf(template, targetScore, missingLine, jobDescription, record.Flatten())

	keywords := match.ExtractKeywords(jobDescription, keywordPromptExtract)
	if block := match.FormatKeywordPrompt(keywords, keywordPromptDisplay); block != "" {
		prompt += "\n\n" + block
	}
	return prompt
}

// BuildRewritePrompt formats the default rewrite template.
func BuildRewritePrompt(record types.ResumeRecord, jobDescription string, missing []string, targetScore int) string {
	return FormatRewritePrompt(DefaultUserPrompts.RewriteResume, record, jobDescription, missing, targetScore)
}

// BuildSuggestPrompt formats the default suggestion template.
func BuildSuggestPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(DefaultUserPrompts.SuggestImprovements, resumeText, jobDescription)
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
