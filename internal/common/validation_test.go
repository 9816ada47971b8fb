package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	standardFormats := []string{"json", "text", "markdown"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "json report",
			format:           "json",
			supportedFormats: standardFormats,
		},
		{
			name:             "text report",
			format:           "text",
			supportedFormats: standardFormats,
		},
		{
			name:             "markdown report",
			format:           "markdown",
			supportedFormats: standardFormats,
		},
		{
			name:             "unregistered format",
			format:           "xml",
			supportedFormats: standardFormats,
			expectError:      true,
			expectedError:    `output format "xml" is not supported; choose one of: json, text, markdown`,
		},
		{
			name:             "format names are case sensitive",
			format:           "JSON",
			supportedFormats: standardFormats,
			expectError:      true,
			expectedError:    `output format "JSON" is not supported; choose one of: json, text, markdown`,
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: standardFormats,
			expectError:      true,
			expectedError:    `output format "" is not supported; choose one of: json, text, markdown`,
		},
		{
			name:             "empty allow-list disables the check",
			format:           "xml",
			supportedFormats: []string{},
		},
		{
			name:             "single-format config accepts it",
			format:           "json",
			supportedFormats: []string{"json"},
		},
		{
			name:             "single-format config rejects others",
			format:           "text",
			supportedFormats: []string{"json"},
			expectError:      true,
			expectedError:    `output format "text" is not supported; choose one of: json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if tt.expectedError != "" && err.Error() != tt.expectedError {
					t.Errorf("Expected error %q, got %q", tt.expectedError, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	configured := []string{"json", "text", "markdown"}

	result := GetSupportedFormats(configured)
	if len(result) != len(configured) {
		t.Fatalf("Expected %d formats, got %d", len(configured), len(result))
	}
	for i, want := range configured {
		if result[i] != want {
			t.Errorf("Expected format[%d] = %q, got %q", i, want, result[i])
		}
	}

	// The returned slice must be a copy, not an alias of the config
	result[0] = "yaml"
	if configured[0] != "json" {
		t.Error("Expected the config slice to be unaffected by caller mutation")
	}
}

// Format validation runs on every command invocation, keep it cheap
func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "text", "markdown"}

	b.Run("supported", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supportedFormats)
		}
	})

	b.Run("unsupported", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
