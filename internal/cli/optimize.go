package cli

import (
	"context"
	"fmt"

	"resumelift/internal/ai"
	"resumelift/internal/common"
	"resumelift/internal/optimize"
	"resumelift/internal/parse"
	"resumelift/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Iteratively rewrite a resume toward a target ATS score",
	Long: `Parse the resume, score it against the job description, and run the
optimization loop: each round asks the AI oracle to weave the missing
keywords into the record without inventing facts, then re-scores the
result. The loop stops when the score reaches the target, the round
budget is exhausted, or a round fails.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var optimizeConfig common.CommandConfig

var (
	optimizeTargetScore int
	optimizeMaxRounds   int
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	optimizeCmd.Flags().IntVar(&optimizeTargetScore, "target-score", -1, "Target match score 0-100 (default from config)")
	optimizeCmd.Flags().IntVar(&optimizeMaxRounds, "max-rounds", -1, "Maximum oracle rounds (default from config)")

	// Add completion for format flag
	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create the oracle service when credentials exist; without them the
	// loop degrades to the sanitized baseline record (outcome "skipped").
	rewriteConfig := cfg.GetRewriteConfig()
	var oracle ai.Oracle
	if ai.HasCredentials(&rewriteConfig) {
		oracleService, err := ai.NewService(&rewriteConfig, "rewrite", logger)
		if err != nil {
			return fmt.Errorf("failed to create oracle service: %w", err)
		}
		oracle = oracleService.Provider
	} else {
		logger.Warn("No oracle credentials configured, returning the sanitized baseline record")
	}

	targetScore := cfg.Optimize.TargetScore
	if optimizeTargetScore >= 0 {
		targetScore = optimizeTargetScore
	}
	maxRounds := cfg.Optimize.MaxRounds
	if optimizeMaxRounds >= 0 {
		maxRounds = optimizeMaxRounds
	}

	createInput := func(contents []string) (types.OptimizeResumeInput, error) {
		if len(contents) != 2 {
			return types.OptimizeResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.OptimizeResumeInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.OptimizeResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume optimization",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"target_score", targetScore,
			"max_rounds", maxRounds,
			"output_format", cfg.OutputFormat)
	}

	optimizeOperation := func(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizeResumeOutput, *ai.TokenUsage, error) {
		record := parse.Parse(input.ResumeText)
		optimizer := optimize.New(oracle, targetScore, maxRounds, logger)
		summary, err := optimizer.Run(ctx, record, input.JobDescription)
		if err != nil {
			return types.OptimizeResumeOutput{}, nil, err
		}
		var usage *ai.TokenUsage
		if summary.TokensUsed > 0 {
			usage = &ai.TokenUsage{TotalTokens: summary.TokensUsed}
		}
		return types.OptimizeResumeOutput{
			Record:       summary.Record,
			InitialScore: summary.InitialScore,
			FinalScore:   summary.FinalScore,
			RoundsUsed:   summary.RoundsUsed,
			Outcome:      summary.Outcome,
			Matched:      summary.Matched,
			Missing:      summary.Missing,
		}, usage, nil
	}

	err := common.RunOracleCommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		args,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}
