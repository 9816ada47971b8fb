package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelift/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeRecord", &RecordTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeRecord", &RecordMarkdownFormatter{})
	registry.RegisterFormatter("text", "ScoreResumeOutput", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreResumeOutput", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "OptimizeResumeOutput", &OptimizeTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizeResumeOutput", &OptimizeMarkdownFormatter{})
	registry.RegisterFormatter("text", "SuggestOutput", &SuggestTextFormatter{})
	registry.RegisterFormatter("markdown", "SuggestOutput", &SuggestMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeRecord:
		return "ResumeRecord"
	case types.ScoreResumeOutput:
		return "ScoreResumeOutput"
	case types.OptimizeResumeOutput:
		return "OptimizeResumeOutput"
	case types.SuggestOutput:
		return "SuggestOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeRecordSections(output *strings.Builder, record types.ResumeRecord, heading func(string) string, bullet string) {
	output.WriteString(heading("Contact"))
	output.WriteString(record.Contact)
	output.WriteString("\n\n")

	if record.Summary != "" {
		output.WriteString(heading("Summary"))
		output.WriteString(record.Summary)
		output.WriteString("\n\n")
	}

	if len(record.Skills) > 0 {
		output.WriteString(heading("Skills"))
		output.WriteString(strings.Join(record.Skills, ", "))
		output.WriteString("\n\n")
	}

	if len(record.Experience) > 0 {
		output.WriteString(heading("Experience"))
		for _, exp := range record.Experience {
			line := exp.Role
			if exp.Company != "" {
				line += " at " + exp.Company
			}
			if exp.Duration != "" {
				line += " (" + exp.Duration + ")"
			}
			output.WriteString(line)
			output.WriteString("\n")
			for _, detail := range exp.Details {
				output.WriteString(bullet)
				output.WriteString(detail)
				output.WriteString("\n")
			}
		}
		output.WriteString("\n")
	}

	if len(record.Projects) > 0 {
		output.WriteString(heading("Projects"))
		for _, proj := range record.Projects {
			line := proj.Name
			if proj.Tech != "" {
				line += " [" + proj.Tech + "]"
			}
			output.WriteString(line)
			output.WriteString("\n")
			for _, detail := range proj.Details {
				output.WriteString(bullet)
				output.WriteString(detail)
				output.WriteString("\n")
			}
		}
		output.WriteString("\n")
	}

	if !record.Education.IsEmpty() {
		output.WriteString(heading("Education"))
		if record.Education.IsStructured() {
			for _, entry := range record.Education.Entries {
				parts := make([]string, 0, 3)
				if entry.Degree != "" {
					parts = append(parts, entry.Degree)
				}
				if entry.University != "" {
					parts = append(parts, entry.University)
				}
				if entry.Year != "" {
					parts = append(parts, entry.Year)
				}
				output.WriteString(strings.Join(parts, ", "))
				output.WriteString("\n")
			}
		} else {
			output.WriteString(record.Education.Text)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(record.Certifications) > 0 {
		output.WriteString(heading("Certifications"))
		for _, cert := range record.Certifications {
			output.WriteString(bullet)
			output.WriteString(cert)
			output.WriteString("\n")
		}
	}
}

// RecordTextFormatter handles text formatting for parsed resume records
type RecordTextFormatter struct{}

func (rtf *RecordTextFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ")
	output.WriteString(record.Name)
	output.WriteString(" ===\n\n")

	writeRecordSections(&output, record, func(title string) string {
		return strings.ToUpper(title) + ":\n"
	}, "  - ")

	return output.String(), nil
}

func (rtf *RecordTextFormatter) SupportedType() string {
	return "ResumeRecord"
}

// RecordMarkdownFormatter handles markdown formatting for parsed resume records
type RecordMarkdownFormatter struct{}

func (rmf *RecordMarkdownFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ")
	output.WriteString(record.Name)
	output.WriteString("\n\n")

	writeRecordSections(&output, record, func(title string) string {
		return "## " + title + "\n\n"
	}, "- ")

	return output.String(), nil
}

func (rmf *RecordMarkdownFormatter) SupportedType() string {
	return "ResumeRecord"
}

// ScoreTextFormatter handles text formatting for scoring results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ScoreResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS MATCH REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n\n", result.Match.Score))

	output.WriteString(fmt.Sprintf("Matched keywords (%d):\n", len(result.Match.Matched)))
	for _, term := range result.Match.Matched {
		output.WriteString(fmt.Sprintf("  + %s\n", term))
	}
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("Missing keywords (%d):\n", len(result.Match.Missing)))
	for _, term := range result.Match.Missing {
		output.WriteString(fmt.Sprintf("  - %s\n", term))
	}
	output.WriteString("\n")

	if len(result.Keywords) > 0 {
		output.WriteString("Top job-description keywords:\n")
		for _, kw := range result.Keywords {
			output.WriteString(fmt.Sprintf("  %s (%d)\n", kw.Term, kw.Count))
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreResumeOutput"
}

// ScoreMarkdownFormatter handles markdown formatting for scoring results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ScoreResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Match Report\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.Match.Score))

	output.WriteString(fmt.Sprintf("## Matched Keywords (%d)\n\n", len(result.Match.Matched)))
	for _, term := range result.Match.Matched {
		output.WriteString(fmt.Sprintf("- %s\n", term))
	}
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("## Missing Keywords (%d)\n\n", len(result.Match.Missing)))
	for _, term := range result.Match.Missing {
		output.WriteString(fmt.Sprintf("- %s\n", term))
	}
	output.WriteString("\n")

	if len(result.Keywords) > 0 {
		output.WriteString("## Top Job-Description Keywords\n\n")
		for _, kw := range result.Keywords {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", kw.Term, kw.Count))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreResumeOutput"
}

// OptimizeTextFormatter handles text formatting for optimization results
type OptimizeTextFormatter struct{}

func (otf *OptimizeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZATION SUMMARY ===\n\n")
	output.WriteString(fmt.Sprintf("Outcome: %s\n", result.Outcome))
	output.WriteString(fmt.Sprintf("Score: %d -> %d (rounds used: %d)\n\n",
		result.InitialScore, result.FinalScore, result.RoundsUsed))

	if len(result.Missing) > 0 {
		output.WriteString("Still missing:\n")
		for _, term := range result.Missing {
			output.WriteString(fmt.Sprintf("  - %s\n", term))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== OPTIMIZED RESUME ===\n\n")

	recordText, err := (&RecordTextFormatter{}).Format(result.Record)
	if err != nil {
		return "", err
	}
	output.WriteString(recordText)

	return output.String(), nil
}

func (otf *OptimizeTextFormatter) SupportedType() string {
	return "OptimizeResumeOutput"
}

// OptimizeMarkdownFormatter handles markdown formatting for optimization results
type OptimizeMarkdownFormatter struct{}

func (omf *OptimizeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimization Summary\n\n")
	output.WriteString(fmt.Sprintf("**Outcome:** %s\n\n", result.Outcome))
	output.WriteString(fmt.Sprintf("**Score:** %d -> %d (rounds used: %d)\n\n",
		result.InitialScore, result.FinalScore, result.RoundsUsed))

	if len(result.Missing) > 0 {
		output.WriteString("## Still Missing\n\n")
		for _, term := range result.Missing {
			output.WriteString(fmt.Sprintf("- %s\n", term))
		}
		output.WriteString("\n")
	}

	output.WriteString("# Optimized Resume\n\n")

	recordMarkdown, err := (&RecordMarkdownFormatter{}).Format(result.Record)
	if err != nil {
		return "", err
	}
	output.WriteString(recordMarkdown)

	return output.String(), nil
}

func (omf *OptimizeMarkdownFormatter) SupportedType() string {
	return "OptimizeResumeOutput"
}

// SuggestTextFormatter handles text formatting for advisory feedback
type SuggestTextFormatter struct{}

func (stf *SuggestTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.SuggestOutput)
	if !ok {
		return "", fmt.Errorf("expected SuggestOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SUGGESTIONS ===\n\n")
	output.WriteString(result.Suggestions)
	output.WriteString("\n")

	return output.String(), nil
}

func (stf *SuggestTextFormatter) SupportedType() string {
	return "SuggestOutput"
}

// SuggestMarkdownFormatter handles markdown formatting for advisory feedback
type SuggestMarkdownFormatter struct{}

func (smf *SuggestMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.SuggestOutput)
	if !ok {
		return "", fmt.Errorf("expected SuggestOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Suggestions\n\n")
	output.WriteString(result.Suggestions)
	output.WriteString("\n")

	return output.String(), nil
}

func (smf *SuggestMarkdownFormatter) SupportedType() string {
	return "SuggestOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
