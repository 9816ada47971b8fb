package cli

import (
	"context"
	"fmt"

	"resumelift/internal/common"
	"resumelift/internal/parse"
	"resumelift/internal/schema"
	"resumelift/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Parse raw resume text into a structured record",
	Long: `Parse a plain-text resume into the canonical structured record using
heading detection and section heuristics. Parsing is total: malformed or
unrecognizable input yields a record with empty sections rather than an
error. Runs entirely offline.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) (types.ParseResumeInput, error) {
		if len(contents) != 1 {
			return types.ParseResumeInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.ParseResumeInput{ResumeText: contents[0]}, nil
	}

	logDetails := func(input types.ParseResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume parsing",
			"resume_chars", len(input.ResumeText),
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, input types.ParseResumeInput) (types.ResumeRecord, error) {
		return schema.Sanitize(parse.Parse(input.ResumeText)), nil
	}

	err := common.RunLocalCommand(
		cmd.Context(),
		logger,
		parseConfig,
		args,
		createInput,
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
