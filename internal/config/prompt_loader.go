package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns a snapshot of the loaded prompt content
func GetLoadedPrompts() AllLoadedPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()
	return loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	var fresh AllLoadedPrompts

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &fresh.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &fresh.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Rewrite.CustomPrompts.SystemPrompts, &fresh.Rewrite.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load rewrite system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Rewrite.CustomPrompts.UserPrompts, &fresh.Rewrite.UserPrompts); err != nil {
		return fmt.Errorf("failed to load rewrite user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Suggest.CustomPrompts.SystemPrompts, &fresh.Suggest.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load suggest system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Suggest.CustomPrompts.UserPrompts, &fresh.Suggest.UserPrompts); err != nil {
		return fmt.Errorf("failed to load suggest user prompts: %w", err)
	}

	loadedPromptsMu.Lock()
	loadedPrompts = fresh
	loadedPromptsMu.Unlock()

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// ReloadPrompts re-reads all configured prompt files. Used by the prompt
// watcher while serving so prompt edits take effect without a restart.
// On failure the previously loaded prompts remain in place.
func (c *Config) ReloadPrompts() error {
	if err := c.validatePromptFiles(); err != nil {
		return err
	}
	return c.loadPromptsFromFiles()
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.RewriteResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.RewriteResumeFile, "system", "rewriteResume")
		if err != nil {
			return err
		}
		target.RewriteResume = content
	}

	if prompts.SuggestImprovementsFile != "" {
		content, err := c.loadPromptFromFile(prompts.SuggestImprovementsFile, "system", "suggestImprovements")
		if err != nil {
			return err
		}
		target.SuggestImprovements = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.RewriteResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.RewriteResumeFile, "user", "rewriteResume")
		if err != nil {
			return err
		}
		target.RewriteResume = content
	}

	if prompts.SuggestImprovementsFile != "" {
		content, err := c.loadPromptFromFile(prompts.SuggestImprovementsFile, "user", "suggestImprovements")
		if err != nil {
			return err
		}
		target.SuggestImprovements = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// PromptFilePaths returns every configured prompt file path, deduplicated.
// The prompt watcher uses this to know which files to watch.
func (c *Config) PromptFilePaths() []string {
	candidates := []string{
		c.AI.CustomPrompts.SystemPrompts.RewriteResumeFile,
		c.AI.CustomPrompts.SystemPrompts.SuggestImprovementsFile,
		c.AI.CustomPrompts.UserPrompts.RewriteResumeFile,
		c.AI.CustomPrompts.UserPrompts.SuggestImprovementsFile,
		c.AI.Rewrite.CustomPrompts.SystemPrompts.RewriteResumeFile,
		c.AI.Rewrite.CustomPrompts.UserPrompts.RewriteResumeFile,
		c.AI.Suggest.CustomPrompts.SystemPrompts.SuggestImprovementsFile,
		c.AI.Suggest.CustomPrompts.UserPrompts.SuggestImprovementsFile,
	}

	seen := make(map[string]bool)
	var paths []string
	for _, p := range candidates {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	// Validate global prompt files
	validateFile(c.AI.CustomPrompts.SystemPrompts.RewriteResumeFile, "system", "rewriteResume")
	validateFile(c.AI.CustomPrompts.SystemPrompts.SuggestImprovementsFile, "system", "suggestImprovements")
	validateFile(c.AI.CustomPrompts.UserPrompts.RewriteResumeFile, "user", "rewriteResume")
	validateFile(c.AI.CustomPrompts.UserPrompts.SuggestImprovementsFile, "user", "suggestImprovements")

	// Validate operation-specific prompt files
	validateFile(c.AI.Rewrite.CustomPrompts.SystemPrompts.RewriteResumeFile, "rewrite system", "rewriteResume")
	validateFile(c.AI.Rewrite.CustomPrompts.UserPrompts.RewriteResumeFile, "rewrite user", "rewriteResume")
	validateFile(c.AI.Suggest.CustomPrompts.SystemPrompts.SuggestImprovementsFile, "suggest system", "suggestImprovements")
	validateFile(c.AI.Suggest.CustomPrompts.UserPrompts.SuggestImprovementsFile, "suggest user", "suggestImprovements")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	snapshot := GetLoadedPrompts()
	promptCount := 0

	promptChecks := []struct {
		content string
		message string
	}{
		{snapshot.Global.SystemPrompts.RewriteResume, "[CONFIG] Global system rewrite prompt: loaded from config/file"},
		{snapshot.Global.SystemPrompts.SuggestImprovements, "[CONFIG] Global system suggest prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.RewriteResume, "[CONFIG] Global user rewrite prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.SuggestImprovements, "[CONFIG] Global user suggest prompt: loaded from config/file"},
		{snapshot.Rewrite.SystemPrompts.RewriteResume, "[CONFIG] Rewrite-specific system prompt: loaded from config/file"},
		{snapshot.Rewrite.UserPrompts.RewriteResume, "[CONFIG] Rewrite-specific user prompt: loaded from config/file"},
		{snapshot.Suggest.SystemPrompts.SuggestImprovements, "[CONFIG] Suggest-specific system prompt: loaded from config/file"},
		{snapshot.Suggest.UserPrompts.SuggestImprovements, "[CONFIG] Suggest-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
