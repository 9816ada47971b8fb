package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEducationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		structured bool
		text       string
		entries    int
	}{
		{
			name:       "array of entries",
			input:      `[{"degree":"Master of Computer Applications","university":"Pune University","year":"2019"}]`,
			structured: true,
			entries:    1,
		},
		{
			name:       "plain string",
			input:      `"B.Tech in CS, 2020"`,
			structured: false,
			text:       "B.Tech in CS, 2020",
		},
		{
			name:       "empty array",
			input:      `[]`,
			structured: true,
			entries:    0,
		},
		{
			name:       "null",
			input:      `null`,
			structured: false,
			text:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var edu Education
			if err := json.Unmarshal([]byte(tt.input), &edu); err != nil {
				t.Fatalf("Unmarshal(%q) error: %v", tt.input, err)
			}
			if edu.IsStructured() != tt.structured {
				t.Errorf("IsStructured() = %v, want %v", edu.IsStructured(), tt.structured)
			}
			if tt.structured && len(edu.Entries) != tt.entries {
				t.Errorf("len(Entries) = %d, want %d", len(edu.Entries), tt.entries)
			}
			if !tt.structured && edu.Text != tt.text {
				t.Errorf("Text = %q, want %q", edu.Text, tt.text)
			}
		})
	}
}

func TestEducationMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input Education
		want  string
	}{
		{
			name:  "string shape stays a string",
			input: EducationText("BCA, 2018"),
			want:  `"BCA, 2018"`,
		},
		{
			name:  "structured shape stays an array",
			input: EducationEntries([]EducationEntry{{Degree: "MBA"}}),
			want:  `[{"degree":"MBA","university":"","year":""}]`,
		},
		{
			name:  "zero value is an empty string",
			input: Education{},
			want:  `""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResumeRecordClone(t *testing.T) {
	original := ResumeRecord{
		Name:   "Asha Patel",
		Skills: []string{"Go", "SQL"},
		Experience: []ExperienceEntry{
			{Role: "Engineer", Company: "Acme", Details: []string{"built pipelines"}},
		},
		Projects:       []ProjectEntry{{Name: "Tracker", Details: []string{"CLI tool"}}},
		Education:      EducationEntries([]EducationEntry{{Degree: "B.Sc"}}),
		Certifications: []string{"AWS SAA"},
	}

	clone := original.Clone()
	clone.Skills[0] = "Rust"
	clone.Experience[0].Details[0] = "changed"
	clone.Projects[0].Details[0] = "changed"
	clone.Education.Entries[0].Degree = "PhD"
	clone.Certifications[0] = "changed"

	if original.Skills[0] != "Go" {
		t.Error("Clone shares the skills slice")
	}
	if original.Experience[0].Details[0] != "built pipelines" {
		t.Error("Clone shares experience details")
	}
	if original.Projects[0].Details[0] != "CLI tool" {
		t.Error("Clone shares project details")
	}
	if original.Education.Entries[0].Degree != "B.Sc" {
		t.Error("Clone shares education entries")
	}
	if original.Certifications[0] != "AWS SAA" {
		t.Error("Clone shares the certifications slice")
	}
}

func TestFlatten(t *testing.T) {
	record := ResumeRecord{
		Name:    "Asha Patel",
		Contact: "asha@example.com | 98765 43210",
		Summary: "Backend engineer.",
		Skills:  []string{"Go", "PostgreSQL"},
		Experience: []ExperienceEntry{
			{Role: "Engineer", Company: "Acme", Duration: "2020-2023", Details: []string{"Owned billing"}},
		},
		Projects:       []ProjectEntry{{Name: "Ledger", Tech: "Go", Details: []string{"Double-entry core"}}},
		Education:      EducationText("B.Tech, 2019"),
		Certifications: []string{"CKA"},
	}

	flat := record.Flatten()
	for _, want := range []string{
		"Name: Asha Patel",
		"Engineer at Acme (2020-2023)",
		"- Owned billing",
		"Ledger [Go]",
		"B.Tech, 2019",
		"Certifications: CKA",
	} {
		if !strings.Contains(flat, want) {
			t.Errorf("Flatten() missing %q in:\n%s", want, flat)
		}
	}
}

func TestFlattenEmptyRecord(t *testing.T) {
	if got := (ResumeRecord{}).Flatten(); got != "" {
		t.Errorf("Flatten() of empty record = %q, want empty", got)
	}
}
