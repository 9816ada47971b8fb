package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumelift/internal/ai"
	"resumelift/internal/match"
	"resumelift/internal/observability"
	"resumelift/internal/optimize"
	"resumelift/internal/parse"
	"resumelift/internal/schema"
	"resumelift/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createParseHandler wraps the parse handler with observability
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "parse"),
		)

		// Parsing is total; no error path past validation
		record := schema.Sanitize(parse.Parse(req.ResumeText))

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("output.skills_count", len(record.Skills)),
			attribute.Int("output.experience_count", len(record.Experience)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.skills_count", len(record.Skills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "score"),
		)

		result := match.Score(parse.CleanText(req.ResumeText), req.JobDescription)
		keywords := match.ExtractKeywords(req.JobDescription, s.AppConfig.Optimize.TopKeywords)
		response := types.ScoreResumeOutput{
			Match:    result,
			Keywords: keywords,
		}

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("match.score", result.Score),
			attribute.Int("match.missing_count", len(result.Missing)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.score", result.Score),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		targetScore := s.AppConfig.Optimize.TargetScore
		if req.TargetScore != nil {
			targetScore = *req.TargetScore
		}
		if targetScore < 0 || targetScore > 100 {
			err := fmt.Errorf("target score out of range: %d", targetScore)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid target score", "targetScore must be between 0 and 100", http.StatusBadRequest)
			return
		}
		maxRounds := s.AppConfig.Optimize.MaxRounds
		if req.MaxRounds != nil {
			maxRounds = *req.MaxRounds
		}
		if maxRounds < 0 {
			err := fmt.Errorf("negative max rounds: %d", maxRounds)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid max rounds", "maxRounds must not be negative", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Int("optimize.target_score", targetScore),
			attribute.Int("optimize.max_rounds", maxRounds),
			attribute.String("operation", "optimize"),
		)

		// Create the oracle service when credentials exist; without them the
		// loop degrades to the sanitized baseline record (outcome "skipped").
		rewriteConfig := s.AppConfig.GetRewriteConfig()
		var oracle ai.Oracle
		if ai.HasCredentials(&rewriteConfig) {
			oracleService, err := ai.NewService(&rewriteConfig, "rewrite", s.Logger)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "service_creation"))
				writeErrorResponse(w, "Failed to create oracle service", err.Error(), http.StatusInternalServerError)
				return
			}
			oracle = oracleService.Provider
		} else {
			s.Logger.Warn("No oracle credentials configured, serving the sanitized baseline record",
				"operation", "optimize")
		}

		record := parse.Parse(req.ResumeText)
		optimizer := optimize.New(oracle, targetScore, maxRounds, s.Logger)

		metrics := om.GetMetrics()
		var summary optimize.Summary
		err := metrics.TrackOracleOperationWithTokens(ctx, "optimize", func(ctx context.Context) *observability.OracleOperationResult {
			var runErr error
			summary, runErr = optimizer.Run(ctx, record, req.JobDescription)
			var tokenUsage *observability.TokenUsage
			if summary.TokensUsed > 0 {
				tokenUsage = &observability.TokenUsage{TotalTokens: summary.TokensUsed}
			}
			return &observability.OracleOperationResult{
				Error:      runErr,
				TokenUsage: tokenUsage,
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "oracle_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to optimize resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordOptimizationOutcome(ctx, summary.Outcome, summary.RoundsUsed,
			summary.InitialScore, summary.FinalScore, om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("optimize.outcome", summary.Outcome),
			attribute.Int("optimize.rounds_used", summary.RoundsUsed),
			attribute.Int("optimize.initial_score", summary.InitialScore),
			attribute.Int("optimize.final_score", summary.FinalScore),
		)

		response := types.OptimizeResumeOutput{
			Record:       summary.Record,
			InitialScore: summary.InitialScore,
			FinalScore:   summary.FinalScore,
			RoundsUsed:   summary.RoundsUsed,
			Outcome:      summary.Outcome,
			Matched:      summary.Matched,
			Missing:      summary.Missing,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createSuggestHandler wraps the suggest handler with observability
func (s *Server) createSuggestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelift.api")
		ctx, span := tracer.Start(ctx, "api.suggest")
		defer span.End()

		var req SuggestRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "suggest"),
		)

		// Create oracle service for the suggest operation
		suggestConfig := s.AppConfig.GetSuggestConfig()
		oracleService, err := ai.NewService(&suggestConfig, "suggest", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create oracle service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.SuggestOutput
		err = metrics.TrackOracleOperationWithTokens(ctx, "suggest", func(ctx context.Context) *observability.OracleOperationResult {
			text, tokenUsage, oracleErr := oracleService.Provider.Suggest(ctx, req.ResumeText, req.JobDescription)
			result = types.SuggestOutput{Suggestions: text}
			return &observability.OracleOperationResult{
				Error:      oracleErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "suggestions_served", false, om)
			writeErrorResponse(w, "Failed to get resume suggestions", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "suggestions_served", true, om,
			attribute.Int("output.suggestions_length", len(result.Suggestions)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.suggestions_length", len(result.Suggestions)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
