package ai

import (
	"context"

	"resumelift/internal/types"
)

// RewriteInput carries everything the oracle needs to produce a rewritten resume.
type RewriteInput struct {
	Record         types.ResumeRecord
	JobDescription string
	Missing        []string
	TargetScore    int
}

// Oracle is the interface the optimization loop and server depend on.
// RewriteResume returns the raw model response text; callers are responsible
// for extracting and normalizing any JSON payload it contains.
type Oracle interface {
	RewriteResume(ctx context.Context, input RewriteInput) (string, *TokenUsage, error)
	Suggest(ctx context.Context, resumeText, jobDescription string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
