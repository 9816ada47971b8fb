package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetRewriteConfig returns the oracle configuration for rewrite operations with fallback to global config
func (c *Config) GetRewriteConfig() OperationAIConfig {
	config := c.AI.Rewrite

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply rewrite-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.RewriteResume == "" {
		config.CustomPrompts.SystemPrompts.RewriteResume = c.AI.CustomPrompts.SystemPrompts.RewriteResume
	}
	if config.CustomPrompts.UserPrompts.RewriteResume == "" {
		config.CustomPrompts.UserPrompts.RewriteResume = c.AI.CustomPrompts.UserPrompts.RewriteResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.RewriteResumeFile == "" {
		config.CustomPrompts.SystemPrompts.RewriteResumeFile = c.AI.CustomPrompts.SystemPrompts.RewriteResumeFile
	}
	if config.CustomPrompts.UserPrompts.RewriteResumeFile == "" {
		config.CustomPrompts.UserPrompts.RewriteResumeFile = c.AI.CustomPrompts.UserPrompts.RewriteResumeFile
	}

	return config
}

// GetSuggestConfig returns the oracle configuration for suggest operations with fallback to global config
func (c *Config) GetSuggestConfig() OperationAIConfig {
	config := c.AI.Suggest

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply suggest-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.SuggestImprovements == "" {
		config.CustomPrompts.SystemPrompts.SuggestImprovements = c.AI.CustomPrompts.SystemPrompts.SuggestImprovements
	}
	if config.CustomPrompts.UserPrompts.SuggestImprovements == "" {
		config.CustomPrompts.UserPrompts.SuggestImprovements = c.AI.CustomPrompts.UserPrompts.SuggestImprovements
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.SuggestImprovementsFile == "" {
		config.CustomPrompts.SystemPrompts.SuggestImprovementsFile = c.AI.CustomPrompts.SystemPrompts.SuggestImprovementsFile
	}
	if config.CustomPrompts.UserPrompts.SuggestImprovementsFile == "" {
		config.CustomPrompts.UserPrompts.SuggestImprovementsFile = c.AI.CustomPrompts.UserPrompts.SuggestImprovementsFile
	}

	return config
}
