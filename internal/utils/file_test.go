package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(resume, []byte("Asha Patel\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Run("readable file passes", func(t *testing.T) {
		if err := ValidateInputFile(resume); err != nil {
			t.Errorf("ValidateInputFile() = %v, want nil", err)
		}
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		if err := ValidateInputFile(""); err == nil {
			t.Error("expected error for empty path")
		}
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		if err := ValidateInputFile(filepath.Join(dir, "missing.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("directory is rejected", func(t *testing.T) {
		if err := ValidateInputFile(dir); err == nil {
			t.Error("expected error for directory path")
		}
	})
}

func TestValidateOutputFile(t *testing.T) {
	t.Run("empty path means stdout", func(t *testing.T) {
		if err := ValidateOutputFile(""); err != nil {
			t.Errorf("ValidateOutputFile(\"\") = %v, want nil", err)
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "reports", "nested", "out.json")
		if err := ValidateOutputFile(out); err != nil {
			t.Fatalf("ValidateOutputFile() = %v, want nil", err)
		}
		if _, err := os.Stat(filepath.Dir(out)); err != nil {
			t.Errorf("parent directory was not created: %v", err)
		}
	})
}

func TestIsPlainTextFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"resume.txt", true},
		{"resume.md", true},
		{"notes.markdown", true},
		{"RESUME.TXT", true},
		{"resume.pdf", false},
		{"resume.docx", false},
		{"resume", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPlainTextFile(tt.path); got != tt.want {
				t.Errorf("IsPlainTextFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatFileSize(tt.size); got != tt.want {
				t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}
