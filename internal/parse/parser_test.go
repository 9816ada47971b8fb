package parse

import (
	"reflect"
	"strings"
	"testing"
)

const sampleResume = `Asha Patel
Pune, India | asha.patel@example.com | +91 98765 43210

PROFESSIONAL SUMMARY
Backend engineer focused on data-heavy services.

TECHNICAL SKILLS
Go, PostgreSQL; Docker • Kubernetes,  gRPC, go

WORK EXPERIENCE
Software Engineer – Acme Corp (2020 - 2023)
• Built the billing pipeline
• Cut query latency by 40%
Intern – Beta Labs (2019)
Worked on internal tooling for deployments

PROJECTS
Ledger
• Double-entry bookkeeping core
• CLI admin tool
Tracker
• Job application tracker

EDUCATION
B.Tech in Computer Science, Pune University, 2019

CERTIFICATIONS
AWS Solutions Architect; CKA
• AWS Solutions Architect`

func TestParseSample(t *testing.T) {
	rec := Parse(sampleResume)

	if rec.Name != "Asha Patel" {
		t.Errorf("Name = %q", rec.Name)
	}
	if !strings.Contains(rec.Contact, "asha.patel@example.com") {
		t.Errorf("Contact missing email: %q", rec.Contact)
	}
	if !strings.Contains(rec.Contact, "|") {
		t.Errorf("Contact should join phone and email: %q", rec.Contact)
	}
	if rec.Summary != "Backend engineer focused on data-heavy services." {
		t.Errorf("Summary = %q", rec.Summary)
	}

	wantSkills := []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "gRPC"}
	if !reflect.DeepEqual(rec.Skills, wantSkills) {
		t.Errorf("Skills = %#v, want %#v", rec.Skills, wantSkills)
	}

	if len(rec.Experience) != 2 {
		t.Fatalf("Experience length = %d, want 2", len(rec.Experience))
	}
	first := rec.Experience[0]
	if first.Role != "Software Engineer" || first.Company != "Acme Corp" || first.Duration != "2020 - 2023" {
		t.Errorf("first experience = %+v", first)
	}
	if len(first.Details) != 2 {
		t.Errorf("first experience details = %#v", first.Details)
	}
	second := rec.Experience[1]
	if second.Role != "Intern" || len(second.Details) != 1 {
		t.Errorf("second experience = %+v", second)
	}

	if len(rec.Projects) != 2 {
		t.Fatalf("Projects length = %d, want 2", len(rec.Projects))
	}
	if rec.Projects[0].Name != "Ledger" || len(rec.Projects[0].Details) != 2 {
		t.Errorf("first project = %+v", rec.Projects[0])
	}

	if !rec.Education.IsStructured() || len(rec.Education.Entries) != 1 {
		t.Fatalf("Education = %+v", rec.Education)
	}
	edu := rec.Education.Entries[0]
	if edu.Degree != "Bachelor of Technology" {
		t.Errorf("Degree = %q, want expanded form", edu.Degree)
	}
	if edu.University != "University" && !strings.HasPrefix(edu.University, "University") {
		t.Errorf("University = %q", edu.University)
	}
	if edu.Year != "2019" {
		t.Errorf("Year = %q", edu.Year)
	}

	wantCerts := []string{"AWS Solutions Architect", "CKA"}
	if !reflect.DeepEqual(rec.Certifications, wantCerts) {
		t.Errorf("Certifications = %#v, want %#v", rec.Certifications, wantCerts)
	}
}

func TestParseEmptyInput(t *testing.T) {
	rec := Parse("")

	if rec.Name != "" || rec.Contact != "" || rec.Summary != "" {
		t.Errorf("string fields not empty: %+v", rec)
	}
	for name, length := range map[string]int{
		"skills":         len(rec.Skills),
		"experience":     len(rec.Experience),
		"projects":       len(rec.Projects),
		"certifications": len(rec.Certifications),
	} {
		if length != 0 {
			t.Errorf("%s not empty", name)
		}
	}
	if rec.Skills == nil || rec.Experience == nil || rec.Projects == nil || rec.Certifications == nil {
		t.Error("collections must be empty, not nil")
	}
	if !rec.Education.IsStructured() || len(rec.Education.Entries) != 1 {
		t.Fatalf("Education = %+v, want exactly one entry", rec.Education)
	}
	empty := rec.Education.Entries[0]
	if empty.Degree != "" || empty.University != "" || empty.Year != "" {
		t.Errorf("education entry not empty: %+v", empty)
	}
}

func TestGuessName(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "skips contact-looking lines",
			lines: []string{"asha@example.com", "Asha Patel", "PROFILE"},
			want:  "Asha Patel",
		},
		{
			name:  "skips single-word lines",
			lines: []string{"RESUME", "Asha Patel"},
			want:  "Asha Patel",
		},
		{
			name:  "falls back to first line",
			lines: []string{"Asha", "a line with far too many words to be a plausible name"},
			want:  "Asha",
		},
		{
			name:  "only scans first five lines",
			lines: []string{"1", "2", "3", "4", "5", "Asha Patel"},
			want:  "1",
		},
		{
			name:  "empty input",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guessName(tt.lines); got != tt.want {
				t.Errorf("guessName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadingKey(t *testing.T) {
	tests := []struct {
		line    string
		wantKey string
		wantOK  bool
	}{
		{"EXPERIENCE", "experience", true},
		{"Work Experience", "experience", true},
		{"TECHNICAL SKILLS:", "skills", true},
		{"== Education ==", "education", true},
		{"Professional Summary", "summary", true},
		{"My Experience So Far", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			key, ok := headingKey(tt.line)
			if key != tt.wantKey || ok != tt.wantOK {
				t.Errorf("headingKey(%q) = (%q, %v), want (%q, %v)", tt.line, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}

func TestExtractContact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "phone then email",
			text: "Reach me at +91 98765-43210 or asha@example.com",
			want: "+91 98765-43210 | asha@example.com",
		},
		{
			name: "email only",
			text: "asha@example.com",
			want: "asha@example.com",
		},
		{
			name: "neither",
			text: "no contact details here",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractContact(tt.text); got != tt.want {
				t.Errorf("extractContact = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractEducationFallsBackToFullText(t *testing.T) {
	fullText := "Asha Patel\ncompleted MCA in 2021\nno education heading anywhere"
	entries := extractEducation(nil, fullText)

	if len(entries) == 0 {
		t.Fatal("no entries")
	}
	if entries[0].Degree != "Master of Computer Applications" {
		t.Errorf("Degree = %q", entries[0].Degree)
	}
	if entries[0].Year != "2021" {
		t.Errorf("Year = %q", entries[0].Year)
	}
}

func TestCleanText(t *testing.T) {
	raw := "Line one\n  3  \nLine two\n\n\n\nLine three\tend"
	got := CleanText(raw)

	if strings.Contains(got, " 3 ") || strings.Contains(got, "\n3\n") {
		t.Errorf("page number survived: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank run survived: %q", got)
	}
	if strings.Contains(got, "\t") {
		t.Errorf("tab survived: %q", got)
	}
}

func BenchmarkParse(b *testing.B) {
	for b.Loop() {
		Parse(sampleResume)
	}
}
