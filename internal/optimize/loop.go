// Package optimize drives the iterative rewrite loop: score the resume
// against the job description, ask the oracle for a truthful rewrite that
// covers the missing keywords, normalize and re-score the reply, and repeat
// until the target score is reached or the round budget runs out.
package optimize

import (
	"context"

	"resumelift/internal/ai"
	"resumelift/internal/errors"
	"resumelift/internal/match"
	"resumelift/internal/schema"
	"resumelift/internal/types"
)

// Loop outcomes. A failed round aborts the loop but never loses work: the
// last successfully validated record is always returned.
const (
	OutcomeConverged = "converged" // Target score reached
	OutcomeExhausted = "exhausted" // Round budget spent below target
	OutcomeAborted   = "aborted"   // A round failed; last good record kept
	OutcomeSkipped   = "skipped"   // No oracle configured, record sanitized only
)

// Summary reports the result of one optimization run.
type Summary struct {
	Record       types.ResumeRecord
	InitialScore int
	FinalScore   int
	RoundsUsed   int
	Outcome      string
	Matched      []string
	Missing      []string
	TokensUsed   int64
}

// Optimizer runs the rewrite loop against a single oracle.
// A nil oracle is valid and turns Run into a pure sanitize-and-score pass.
type Optimizer struct {
	oracle      ai.Oracle
	targetScore int
	maxRounds   int
	logger      *errors.Logger
}

// New creates an Optimizer. targetScore is clamped to [0, 100] and a
// negative maxRounds is treated as zero.
func New(oracle ai.Oracle, targetScore, maxRounds int, logger *errors.Logger) *Optimizer {
	if targetScore < 0 {
		targetScore = 0
	}
	if targetScore > 100 {
		targetScore = 100
	}
	if maxRounds < 0 {
		maxRounds = 0
	}
	return &Optimizer{
		oracle:      oracle,
		targetScore: targetScore,
		maxRounds:   maxRounds,
		logger:      logger,
	}
}

// Run executes the loop. It never returns an error for oracle failures;
// those abort the run and are reported through Summary.Outcome so callers
// always get the best record produced so far. The only error return is a
// context cancellation between rounds.
func (o *Optimizer) Run(ctx context.Context, record types.ResumeRecord, jobDescription string) (Summary, error) {
	current := schema.Sanitize(record)
	result := match.Score(current.Flatten(), jobDescription)

	summary := Summary{
		Record:       current,
		InitialScore: result.Score,
		FinalScore:   result.Score,
		Matched:      result.Matched,
		Missing:      result.Missing,
	}

	if o.oracle == nil {
		summary.Outcome = OutcomeSkipped
		o.logger.Debug("No oracle configured, returning sanitized record",
			"score", result.Score)
		return summary, nil
	}

	if result.Score >= o.targetScore {
		summary.Outcome = OutcomeConverged
		o.logger.Info("Resume already meets target score",
			"score", result.Score,
			"target", o.targetScore)
		return summary, nil
	}

	for round := 1; round <= o.maxRounds; round++ {
		select {
		case <-ctx.Done():
			summary.Outcome = OutcomeAborted
			return summary, ctx.Err()
		default:
		}

		o.logger.Debug("Starting optimization round",
			"round", round,
			"score", result.Score,
			"target", o.targetScore,
			"missing_keywords", len(result.Missing))

		raw, usage, err := o.oracle.RewriteResume(ctx, ai.RewriteInput{
			Record:         current.Clone(),
			JobDescription: jobDescription,
			Missing:        result.Missing,
			TargetScore:    o.targetScore,
		})
		summary.RoundsUsed = round
		if usage != nil {
			summary.TokensUsed += usage.TotalTokens
		}
		if err != nil {
			o.logger.LogError(err, "Optimization round failed, keeping last good record",
				"round", round,
				"score", result.Score)
			summary.Outcome = OutcomeAborted
			return summary, nil
		}

		payload := ai.ExtractJSON(raw)
		if payload == nil {
			o.logger.Warn("Oracle reply carried no usable JSON payload, keeping last good record",
				"round", round,
				"reply_length", len(raw))
			summary.Outcome = OutcomeAborted
			return summary, nil
		}

		// Absent string fields fall back to the record the oracle was shown;
		// list fields follow the list rule and come back as the payload gave them.
		current = schema.NormalizeOracleOutput(payload, current)
		result = match.Score(current.Flatten(), jobDescription)

		summary.Record = current
		summary.FinalScore = result.Score
		summary.Matched = result.Matched
		summary.Missing = result.Missing

		o.logger.Info("Optimization round complete",
			"round", round,
			"score", result.Score,
			"target", o.targetScore)

		if result.Score >= o.targetScore {
			summary.Outcome = OutcomeConverged
			return summary, nil
		}
	}

	summary.Outcome = OutcomeExhausted
	o.logger.Info("Optimization rounds exhausted below target",
		"rounds", summary.RoundsUsed,
		"score", summary.FinalScore,
		"target", o.targetScore)
	return summary, nil
}
