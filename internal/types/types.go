package types

// ResumeRecord is the canonical structured representation of a resume.
// Every externally-sourced mapping must pass through the schema package
// before being treated as one of these.
type ResumeRecord struct {
	Name           string            `json:"name"`
	Contact        string            `json:"contact"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
	Education      Education         `json:"education"`
	Certifications []string          `json:"certifications"`
}

// ExperienceEntry represents one position held
type ExperienceEntry struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Details  []string `json:"details"`
}

// ProjectEntry represents one project with its detail bullets
type ProjectEntry struct {
	Name    string   `json:"name"`
	Tech    string   `json:"tech"`
	Details []string `json:"details"`
}

// EducationEntry represents one qualification
type EducationEntry struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Year       string `json:"year"`
}

// ParseResumeInput represents the input for parsing raw resume text
type ParseResumeInput struct {
	ResumeText string `json:"resumeText"`
}

// ScoreResumeInput represents the input for scoring a resume against a job description
type ScoreResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// MatchResult represents the keyword-overlap score between a resume and a job description
type MatchResult struct {
	Score   int      `json:"score"`   // 0-100
	Matched []string `json:"matched"` // job-description tokens found in the resume
	Missing []string `json:"missing"` // job-description tokens absent from the resume
}

// Keyword represents one extracted job-description keyword with its frequency
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// ScoreResumeOutput represents the output from scoring a resume
type ScoreResumeOutput struct {
	Match    MatchResult `json:"match"`
	Keywords []Keyword   `json:"keywords"` // frequency-ranked job-description keywords
}

// OptimizeResumeInput represents the input for the optimization pipeline
type OptimizeResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	TargetScore    *int   `json:"targetScore,omitempty"` // overrides the configured target
	MaxRounds      *int   `json:"maxRounds,omitempty"`   // overrides the configured budget
}

// OptimizeResumeOutput represents the output from the optimization pipeline
type OptimizeResumeOutput struct {
	Record       ResumeRecord `json:"record"`
	InitialScore int          `json:"initialScore"`
	FinalScore   int          `json:"finalScore"`
	RoundsUsed   int          `json:"roundsUsed"`
	Outcome      string       `json:"outcome"` // "converged", "exhausted", "aborted", or "skipped"
	Matched      []string     `json:"matched"`
	Missing      []string     `json:"missing"`
}

// SuggestInput represents the input for advisory resume suggestions
type SuggestInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// SuggestOutput represents free-form reviewer feedback from the oracle
type SuggestOutput struct {
	Suggestions string `json:"suggestions"`
}
