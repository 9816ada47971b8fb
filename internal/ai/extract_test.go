package ai

import (
	"strings"
	"testing"

	"resumelift/internal/types"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
		wantKey string
		wantVal string
	}{
		{
			name:    "bare object",
			raw:     `{"name": "Asha"}`,
			wantKey: "name",
			wantVal: "Asha",
		},
		{
			name:    "object wrapped in prose",
			raw:     "Here is the rewritten resume:\n{\"name\": \"Asha\"}\nLet me know if you need changes.",
			wantKey: "name",
			wantVal: "Asha",
		},
		{
			name:    "markdown fenced object",
			raw:     "```json\n{\"summary\": \"Backend engineer\"}\n```",
			wantKey: "summary",
			wantVal: "Backend engineer",
		},
		{
			name:    "nested braces survive",
			raw:     `prefix {"outer": {"inner": "v"}, "name": "Ravi"} suffix`,
			wantKey: "name",
			wantVal: "Ravi",
		},
		{
			name:    "no braces and not JSON",
			raw:     "sorry, I cannot help with that",
			wantNil: true,
		},
		{
			name:    "braces but malformed",
			raw:     `{"name": "Asha"`,
			wantNil: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.raw)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ExtractJSON(%q) = %v, want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractJSON(%q) = nil, want object", tt.raw)
			}
			if v, _ := got[tt.wantKey].(string); v != tt.wantVal {
				t.Errorf("ExtractJSON(%q)[%q] = %q, want %q", tt.raw, tt.wantKey, v, tt.wantVal)
			}
		})
	}
}

func TestBuildRewritePrompt(t *testing.T) {
	record := types.ResumeRecord{
		Name:   "Asha Patel",
		Skills: []string{"Go", "Docker"},
	}

	prompt := BuildRewritePrompt(record, "Looking for a Go engineer with Kubernetes", []string{"kubernetes", "terraform"}, 80)

	for _, want := range []string{
		"at least 80",
		"kubernetes, terraform",
		"Looking for a Go engineer with Kubernetes",
		`"Asha Patel"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildRewritePromptNoMissing(t *testing.T) {
	prompt := BuildRewritePrompt(types.ResumeRecord{}, "jd", nil, 70)
	if !strings.Contains(prompt, "(none)") {
		t.Error("prompt should mark an empty missing-keyword list")
	}
}

func TestBuildSuggestPrompt(t *testing.T) {
	prompt := BuildSuggestPrompt("resume body", "job body")
	if !strings.Contains(prompt, "resume body") || !strings.Contains(prompt, "job body") {
		t.Error("prompt should embed both resume and job description")
	}
	if !strings.Contains(prompt, "**Score:**") {
		t.Error("prompt should request the fixed reply format")
	}
}
