package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateOutputFormat checks a report format against the formats the
// application config allows. An empty allow-list disables the check, which
// keeps custom formatter registrations usable without a config change.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("output format %q is not supported; choose one of: %s",
		format, strings.Join(supportedFormats, ", "))
}

// GetSupportedFormats returns the configured report formats, copied so shell
// completion callbacks cannot mutate the config slice.
func GetSupportedFormats(supportedFormats []string) []string {
	return slices.Clone(supportedFormats)
}
