package ai

import (
	"strings"
	"testing"

	"resumelift/internal/types"
)

func TestFormatRewritePromptEmbedsFlattenedRecord(t *testing.T) {
	record := types.ResumeRecord{
		Name:    "Asha Patel",
		Summary: "Backend engineer",
		Skills:  []string{"Go", "PostgreSQL"},
	}
	jd := "Looking for strong docker and kubernetes experience"

	prompt := BuildRewritePrompt(record, jd, []string{"docker", "kubernetes"}, 80)

	if !strings.Contains(prompt, record.Flatten()) {
		t.Error("Expected prompt to embed the flattened record projection")
	}
	if strings.Contains(prompt, `"name"`) || strings.Contains(prompt, `"skills"`) {
		t.Error("Expected record to be embedded as plain text, not JSON")
	}
	if !strings.Contains(prompt, "score at least 80") {
		t.Error("Expected prompt to state the target score")
	}
	if !strings.Contains(prompt, "docker, kubernetes") {
		t.Error("Expected prompt to list the missing keywords")
	}
	if !strings.Contains(prompt, jd) {
		t.Error("Expected prompt to embed the job description")
	}
}

func TestFormatRewritePromptAppendsKeywordBlock(t *testing.T) {
	record := types.ResumeRecord{Name: "Asha Patel", Skills: []string{"Go"}}

	t.Run("keyword-bearing job description", func(t *testing.T) {
		jd := "docker kubernetes docker terraform"
		prompt := BuildRewritePrompt(record, jd, []string{"docker"}, 70)

		if !strings.Contains(prompt, "Important keywords to include") {
			t.Error("Expected the frequency-ranked keyword block")
		}
		if !strings.Contains(prompt, "docker") {
			t.Error("Expected the most frequent term in the keyword block")
		}
	})

	t.Run("empty job description", func(t *testing.T) {
		prompt := BuildRewritePrompt(record, "", nil, 70)

		if strings.Contains(prompt, "Important keywords to include") {
			t.Error("Expected no keyword block for an empty job description")
		}
		if !strings.Contains(prompt, "(none)") {
			t.Error("Expected the missing-keyword placeholder")
		}
	})
}

func TestFormatRewritePromptCustomTemplate(t *testing.T) {
	record := types.ResumeRecord{Name: "Asha Patel"}
	template := "target=%d missing=%s jd=%s resume=%s"

	prompt := FormatRewritePrompt(template, record, "", []string{"go"}, 90)

	if !strings.HasPrefix(prompt, "target=90 missing=go jd= resume=Name: Asha Patel") {
		t.Errorf("Unexpected template expansion: %q", prompt)
	}
}
