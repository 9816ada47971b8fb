package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions the parser treats as plain text. Resumes and job descriptions
// arrive as text files; anything else gets a warning upstream because the
// pipeline does no document conversion.
var plainTextExtensions = []string{".txt", ".md", ".markdown", ".text"}

// ValidateInputFile checks that a resume or job description path points at
// a readable regular file.
func ValidateInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input does not exist: %s", path)
		}
		return fmt.Errorf("cannot access input %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory; pass a plain-text resume or job description file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read input %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// ValidateOutputFile checks that the output path is usable, creating parent
// directories as needed. An empty path means stdout.
func ValidateOutputFile(path string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("cannot create output directory %s: %w", dir, err)
			}
		}
	}
	return nil
}

// IsPlainTextFile reports whether the path carries an extension the resume
// parser accepts without a warning.
func IsPlainTextFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(plainTextExtensions, ext)
}

// FormatFileSize renders a byte count for log output
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
