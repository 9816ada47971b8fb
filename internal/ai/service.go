package ai

import (
	"context"
	"fmt"
	"os"

	"resumelift/internal/config"
	"resumelift/internal/errors"
)

// HasCredentials reports whether an oracle call could be authenticated:
// an API key in the resolved operation config, or one of the environment
// variables the Gemini client reads on its own. Callers that can degrade
// gracefully (the optimization loop) check this before constructing a
// service instead of treating a missing key as a hard failure.
func HasCredentials(cfg *config.OperationAIConfig) bool {
	if cfg.APIKey != "" {
		return true
	}
	return os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != ""
}

// Service handles oracle operations for resume processing
type Service struct {
	Provider Oracle // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new oracle service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider Oracle
	var err error

	// Debug logging for service initialization
	logger.Debug("Initializing oracle service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported oracle provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewOracleError(errors.ErrCodeOracleFailed,
			"Failed to create oracle provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the oracle model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}
