package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	tempDir := t.TempDir()

	systemPromptContent := "Test system prompt for rewriting"
	userPromptContent := "Test user prompt template: %d %s %s %s"

	systemPromptFile := filepath.Join(tempDir, "system.rewrite.md")
	userPromptFile := filepath.Join(tempDir, "user.rewrite.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Rewrite: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						RewriteResumeFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						RewriteResumeFile: userPromptFile,
					},
				},
			},
		},
	}

	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify content was loaded into global loadedPrompts
	loadedOps := GetPromptsForOperation("rewrite")

	if loadedOps.SystemPrompts.RewriteResume != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loadedOps.SystemPrompts.RewriteResume)
	}

	if loadedOps.UserPrompts.RewriteResume != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loadedOps.UserPrompts.RewriteResume)
	}

	// Verify file paths are preserved
	if config.AI.Rewrite.CustomPrompts.SystemPrompts.RewriteResumeFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Rewrite.CustomPrompts.UserPrompts.RewriteResumeFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	tempDir := t.TempDir()

	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Rewrite: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						RewriteResumeFile: validFile,
					},
				},
			},
		},
	}

	err := config.validatePromptFiles()
	if err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.AI.Rewrite.CustomPrompts.SystemPrompts.RewriteResumeFile = filepath.Join(tempDir, "nonexistent.md")

	err = config.validatePromptFiles()
	if err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	config := &Config{}
	loadedContent, err := config.loadPromptFromFile(testFile, "system", "rewrite")
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}

	if loadedContent != content {
		t.Errorf("Expected content '%s', got '%s'", content, loadedContent)
	}

	// Test with empty file
	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte(""), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	_, err = config.loadPromptFromFile(emptyFile, "system", "rewrite")
	if err == nil {
		t.Error("Expected error for empty file")
	}

	// Test with non-existent file
	_, err = config.loadPromptFromFile(filepath.Join(tempDir, "nonexistent.md"), "system", "rewrite")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestReloadPromptsPicksUpChanges(t *testing.T) {
	tempDir := t.TempDir()

	promptFile := filepath.Join(tempDir, "system.suggest.md")
	if err := os.WriteFile(promptFile, []byte("first version"), 0600); err != nil {
		t.Fatalf("Failed to create prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Suggest: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						SuggestImprovementsFile: promptFile,
					},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Initial load failed: %v", err)
	}
	if got := GetPromptsForOperation("suggest").SystemPrompts.SuggestImprovements; got != "first version" {
		t.Fatalf("Expected 'first version', got '%s'", got)
	}

	if err := os.WriteFile(promptFile, []byte("second version"), 0600); err != nil {
		t.Fatalf("Failed to update prompt file: %v", err)
	}

	if err := config.ReloadPrompts(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := GetPromptsForOperation("suggest").SystemPrompts.SuggestImprovements; got != "second version" {
		t.Errorf("Expected 'second version' after reload, got '%s'", got)
	}
}

func TestPromptFilePaths(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			CustomPrompts: PromptConfig{
				SystemPrompts: SystemPrompts{RewriteResumeFile: "/tmp/a.md"},
			},
			Rewrite: OperationAIConfig{
				CustomPrompts: PromptConfig{
					UserPrompts: UserPrompts{RewriteResumeFile: "/tmp/b.md"},
				},
			},
			Suggest: OperationAIConfig{
				CustomPrompts: PromptConfig{
					// Duplicate of the global path, should be deduplicated
					SystemPrompts: SystemPrompts{SuggestImprovementsFile: "/tmp/a.md"},
				},
			},
		},
	}

	paths := config.PromptFilePaths()
	if len(paths) != 2 {
		t.Fatalf("Expected 2 unique paths, got %d: %v", len(paths), paths)
	}
}

func TestPromptFileIntegration(t *testing.T) {
	tempDir := t.TempDir()

	systemPrompt := "Custom system prompt for testing"
	userPrompt := "Custom user prompt: %d %s %s %s"

	systemFile := filepath.Join(tempDir, "system.md")
	userFile := filepath.Join(tempDir, "user.md")

	if err := os.WriteFile(systemFile, []byte(systemPrompt), 0600); err != nil {
		t.Fatalf("Failed to create system prompt file: %v", err)
	}

	if err := os.WriteFile(userFile, []byte(userPrompt), 0600); err != nil {
		t.Fatalf("Failed to create user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "test-model",
			Timeout:     60 * time.Second,
			APIKey:      "test-key",
			MaxRetries:  3,
			Temperature: 0.7,
			Rewrite: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						RewriteResumeFile: systemFile,
					},
					UserPrompts: UserPrompts{
						RewriteResumeFile: userFile,
					},
				},
			},
		},
		Optimize: OptimizeConfig{
			TargetScore: 80,
			MaxRounds:   5,
			TopKeywords: 25,
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
	}

	// Apply fallbacks (simulating the full config loading process)
	config.applyFallbacks()

	// Validate and load prompt files
	if err := config.validatePromptFiles(); err != nil {
		t.Fatalf("Prompt file validation failed: %v", err)
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify the prompts were loaded correctly into the global store
	loadedOps := GetPromptsForOperation("rewrite")

	if loadedOps.SystemPrompts.RewriteResume != systemPrompt {
		t.Errorf("Expected system prompt '%s', got '%s'",
			systemPrompt, loadedOps.SystemPrompts.RewriteResume)
	}

	if loadedOps.UserPrompts.RewriteResume != userPrompt {
		t.Errorf("Expected user prompt '%s', got '%s'",
			userPrompt, loadedOps.UserPrompts.RewriteResume)
	}

	// Full config should also pass validation
	if err := config.Validate(); err != nil {
		t.Errorf("Expected config to validate, got error: %v", err)
	}
}
