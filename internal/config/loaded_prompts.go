package config

import (
	"sync"
)

var (
	loadedPrompts   AllLoadedPrompts
	loadedPromptsMu sync.RWMutex
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	RewriteResume       string
	SuggestImprovements string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	RewriteResume       string
	SuggestImprovements string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global  LoadedPrompts
	Rewrite OperationLoadedPrompts
	Suggest OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type.
// Safe for concurrent use with ReloadPrompts.
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()

	switch operationType {
	case "rewrite":
		return loadedPrompts.Rewrite
	case "suggest":
		return loadedPrompts.Suggest
	default:
		return OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}
}
