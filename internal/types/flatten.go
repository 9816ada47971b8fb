package types

import (
	"fmt"
	"strings"
)

// Flatten renders the record as plain prose. The projection is one-way: it is
// used to build oracle prompts and as scoring input, never parsed back.
func (r ResumeRecord) Flatten() string {
	var b strings.Builder

	writeLine := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(value))
		b.WriteString("\n")
	}

	writeLine("Name", r.Name)
	writeLine("Contact", r.Contact)
	writeLine("Summary", r.Summary)

	if len(r.Skills) > 0 {
		writeLine("Skills", strings.Join(r.Skills, ", "))
	}

	if len(r.Experience) > 0 {
		b.WriteString("Experience:\n")
		for _, exp := range r.Experience {
			header := exp.Role
			if exp.Company != "" {
				header = fmt.Sprintf("%s at %s", header, exp.Company)
			}
			if exp.Duration != "" {
				header = fmt.Sprintf("%s (%s)", header, exp.Duration)
			}
			if strings.TrimSpace(header) != "" {
				b.WriteString("  " + strings.TrimSpace(header) + "\n")
			}
			for _, d := range exp.Details {
				b.WriteString("  - " + d + "\n")
			}
		}
	}

	if len(r.Projects) > 0 {
		b.WriteString("Projects:\n")
		for _, p := range r.Projects {
			header := p.Name
			if p.Tech != "" {
				header = fmt.Sprintf("%s [%s]", header, p.Tech)
			}
			if strings.TrimSpace(header) != "" {
				b.WriteString("  " + strings.TrimSpace(header) + "\n")
			}
			for _, d := range p.Details {
				b.WriteString("  - " + d + "\n")
			}
		}
	}

	if !r.Education.IsEmpty() {
		b.WriteString("Education:\n")
		if r.Education.IsStructured() {
			for _, edu := range r.Education.Entries {
				parts := []string{}
				for _, s := range []string{edu.Degree, edu.University, edu.Year} {
					if strings.TrimSpace(s) != "" {
						parts = append(parts, strings.TrimSpace(s))
					}
				}
				if len(parts) > 0 {
					b.WriteString("  " + strings.Join(parts, ", ") + "\n")
				}
			}
		} else {
			b.WriteString("  " + strings.TrimSpace(r.Education.Text) + "\n")
		}
	}

	if len(r.Certifications) > 0 {
		writeLine("Certifications", strings.Join(r.Certifications, ", "))
	}

	return b.String()
}
