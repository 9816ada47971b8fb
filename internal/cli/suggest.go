package cli

import (
	"context"
	"fmt"

	"resumelift/internal/ai"
	"resumelift/internal/common"
	"resumelift/internal/types"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [resume-file] [job-description-file]",
	Short: "Get advisory feedback on a resume",
	Long: `Ask the AI oracle for free-form reviewer feedback on a resume in the
context of a job description: an overall impression, strengths, and a
handful of concrete improvements. Advisory only; nothing feeds back
into the optimization loop.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if suggestConfig.OutputFormat == "" {
			suggestConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(suggestConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSuggest,
}

var suggestConfig common.CommandConfig

func init() {
	suggestCmd.Flags().StringVarP(&suggestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	suggestCmd.Flags().StringVar(&suggestConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = suggestCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create oracle service for the suggest operation
	suggestAIConfig := cfg.GetSuggestConfig()
	oracleService, err := ai.NewService(&suggestAIConfig, "suggest", logger)
	if err != nil {
		return fmt.Errorf("failed to create oracle service: %w", err)
	}

	createInput := func(contents []string) (types.SuggestInput, error) {
		if len(contents) != 2 {
			return types.SuggestInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.SuggestInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.SuggestInput, cfg common.CommandConfig) {
		logger.Info("Starting resume suggestions",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	suggestOperation := func(ctx context.Context, input types.SuggestInput) (types.SuggestOutput, *ai.TokenUsage, error) {
		text, usage, err := oracleService.Provider.Suggest(ctx, input.ResumeText, input.JobDescription)
		if err != nil {
			return types.SuggestOutput{}, nil, err
		}
		return types.SuggestOutput{Suggestions: text}, usage, nil
	}

	err = common.RunOracleCommand(
		cmd.Context(),
		logger,
		suggestConfig,
		args,
		createInput,
		suggestOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to get resume suggestions: %w", err)
	}
	logger.Info("Resume suggestions completed successfully")
	return nil
}
