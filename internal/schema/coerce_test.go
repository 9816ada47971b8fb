package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"resumelift/internal/types"
)

func TestCoerceEmptyInput(t *testing.T) {
	for _, input := range []map[string]any{nil, {}} {
		rec := Coerce(input)

		if rec.Name != "" || rec.Contact != "" || rec.Summary != "" {
			t.Errorf("string fields not empty: %+v", rec)
		}
		if rec.Skills == nil || len(rec.Skills) != 0 {
			t.Errorf("Skills = %#v, want empty non-nil", rec.Skills)
		}
		if rec.Experience == nil || len(rec.Experience) != 0 {
			t.Errorf("Experience = %#v, want empty non-nil", rec.Experience)
		}
		if rec.Projects == nil || len(rec.Projects) != 0 {
			t.Errorf("Projects = %#v, want empty non-nil", rec.Projects)
		}
		if rec.Certifications == nil || len(rec.Certifications) != 0 {
			t.Errorf("Certifications = %#v, want empty non-nil", rec.Certifications)
		}
		if !rec.Education.IsStructured() || len(rec.Education.Entries) != 1 {
			t.Errorf("Education = %#v, want exactly one empty entry", rec.Education)
		}
	}
}

func TestCoerceStringRules(t *testing.T) {
	rec := Coerce(map[string]any{
		"name":    "  Asha Patel  ",
		"contact": 9876543210.0, // JSON number
		"summary": "",
		"ignored": "extra keys are fine",
	})

	if rec.Name != "Asha Patel" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Contact != "9876543210" {
		t.Errorf("Contact = %q, want stringified number", rec.Contact)
	}
	if rec.Summary != "" {
		t.Errorf("Summary = %q, want empty", rec.Summary)
	}
}

func TestCoerceListRules(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"sequence passes through", []any{"Go", " SQL "}, []string{"Go", "SQL"}},
		{"scalar wraps", "Go", []string{"Go"}},
		{"absent becomes empty", nil, []string{}},
		{"empty strings dropped", []any{"", "  ", "Go"}, []string{"Go"}},
		{"numbers stringified", []any{2019.0, "Go"}, []string{"2019", "Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Coerce(map[string]any{"skills": tt.input})
			if !reflect.DeepEqual(rec.Skills, tt.want) {
				t.Errorf("Skills = %#v, want %#v", rec.Skills, tt.want)
			}
		})
	}
}

func TestCoerceEntries(t *testing.T) {
	rec := Coerce(map[string]any{
		"experience": []any{
			map[string]any{"role": "Engineer", "company": "Acme", "duration": "2020-2023", "details": "shipped billing"},
			"Intern at Beta",          // bare scalar becomes a role-only entry
			[]any{"not", "an", "entry"}, // silently dropped
		},
		"projects": []any{
			map[string]any{"name": "X"},
		},
	})

	if len(rec.Experience) != 2 {
		t.Fatalf("Experience length = %d, want 2", len(rec.Experience))
	}
	first := rec.Experience[0]
	if first.Role != "Engineer" || first.Company != "Acme" || first.Duration != "2020-2023" {
		t.Errorf("first entry = %+v", first)
	}
	if !reflect.DeepEqual(first.Details, []string{"shipped billing"}) {
		t.Errorf("scalar details should wrap, got %#v", first.Details)
	}
	if rec.Experience[1].Role != "Intern at Beta" || len(rec.Experience[1].Details) != 0 {
		t.Errorf("bare scalar entry = %+v", rec.Experience[1])
	}

	want := types.ProjectEntry{Name: "X", Tech: "", Details: []string{}}
	if !reflect.DeepEqual(rec.Projects[0], want) {
		t.Errorf("project = %+v, want %+v", rec.Projects[0], want)
	}
}

func TestCoerceEducationPreservesShape(t *testing.T) {
	t.Run("string stays free-form", func(t *testing.T) {
		rec := Coerce(map[string]any{"education": "B.Tech, Pune University, 2019"})
		if rec.Education.IsStructured() {
			t.Fatalf("education coerced to structured: %+v", rec.Education)
		}
		if rec.Education.Text != "B.Tech, Pune University, 2019" {
			t.Errorf("text = %q", rec.Education.Text)
		}
	})

	t.Run("sequence becomes entries", func(t *testing.T) {
		rec := Coerce(map[string]any{"education": []any{
			map[string]any{"degree": "MCA", "university": "Pune University", "year": 2019.0},
			"BCA from Delhi College 2016",
		}})
		if !rec.Education.IsStructured() || len(rec.Education.Entries) != 2 {
			t.Fatalf("education = %+v", rec.Education)
		}
		if rec.Education.Entries[0].Year != "2019" {
			t.Errorf("numeric year not stringified: %+v", rec.Education.Entries[0])
		}
		light := rec.Education.Entries[1]
		if light.Degree != "Bachelor of Computer Applications" || light.Year != "2016" {
			t.Errorf("light-parsed entry = %+v", light)
		}
		if light.University != "College 2016" {
			t.Errorf("University = %q", light.University)
		}
	})

	t.Run("single mapping wraps", func(t *testing.T) {
		rec := Coerce(map[string]any{"education": map[string]any{"degree": "MBA"}})
		if !rec.Education.IsStructured() || rec.Education.Entries[0].Degree != "MBA" {
			t.Errorf("education = %+v", rec.Education)
		}
	})
}

func TestCoerceIdempotent(t *testing.T) {
	inputs := []map[string]any{
		{},
		{"name": "X", "skills": "Go", "education": "self taught"},
		{
			"name":       "  Asha  ",
			"skills":     []any{"Go", "go", " SQL"},
			"experience": []any{map[string]any{"role": "Dev"}, "freelance work"},
			"projects":   []any{"Tracker"},
			"education":  []any{map[string]any{"degree": "B.Sc", "year": 2018.0}},
		},
	}

	for _, input := range inputs {
		first := Coerce(input)

		// Round-trip through the record's mapping projection and coerce again.
		data, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var asMap map[string]any
		if err := json.Unmarshal(data, &asMap); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		second := Coerce(asMap)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("coerce not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	}
}

func TestNormalizeOracleOutput(t *testing.T) {
	fallback := types.ResumeRecord{
		Name:      "Asha Patel",
		Contact:   "asha@example.com",
		Summary:   "Backend engineer.",
		Skills:    []string{"Go"},
		Education: types.EducationText("B.Tech, 2019"),
	}

	t.Run("absent strings keep fallback values", func(t *testing.T) {
		rec := NormalizeOracleOutput(map[string]any{"summary": "Seasoned backend engineer."}, fallback)
		if rec.Name != "Asha Patel" || rec.Contact != "asha@example.com" {
			t.Errorf("fallback strings lost: %+v", rec)
		}
		if rec.Summary != "Seasoned backend engineer." {
			t.Errorf("Summary = %q", rec.Summary)
		}
	})

	t.Run("absent education keeps fallback shape", func(t *testing.T) {
		rec := NormalizeOracleOutput(map[string]any{}, fallback)
		if rec.Education.IsStructured() || rec.Education.Text != "B.Tech, 2019" {
			t.Errorf("education = %+v", rec.Education)
		}
	})

	t.Run("present fields win", func(t *testing.T) {
		rec := NormalizeOracleOutput(map[string]any{
			"name":      "A. Patel",
			"education": []any{map[string]any{"degree": "B.Tech"}},
		}, fallback)
		if rec.Name != "A. Patel" {
			t.Errorf("Name = %q", rec.Name)
		}
		if !rec.Education.IsStructured() {
			t.Errorf("education should take the oracle's structured shape: %+v", rec.Education)
		}
	})
}

func TestSanitize(t *testing.T) {
	rec := Sanitize(types.ResumeRecord{
		Name:       "  Asha  ",
		Skills:     nil,
		Experience: []types.ExperienceEntry{{Role: " Dev ", Details: []string{" x ", ""}}},
	})

	if rec.Name != "Asha" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Skills == nil || rec.Certifications == nil || rec.Projects == nil {
		t.Error("nil collections survived Sanitize")
	}
	if !reflect.DeepEqual(rec.Experience[0].Details, []string{"x"}) {
		t.Errorf("Details = %#v", rec.Experience[0].Details)
	}
}
