// Package sanitize provides filename sanitation helpers for download paths.
package sanitize

import (
	"fmt"
	"strings"
)

const maxFilenameLength = 50

// Filename converts an arbitrary string into a safe directory/file name.
// Spaces become underscores, characters that are invalid on common
// filesystems are stripped, and the result is capped at 50 runes.
func Filename(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")

	s = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			return -1
		}
		return r
	}, s)

	runes := []rune(s)
	if len(runes) > maxFilenameLength {
		s = string(runes[:maxFilenameLength])
	}

	return s
}

// HumanSize renders a byte count in human-readable form.
func HumanSize(size int64) string {
	val := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if val < 1024 || unit == "GB" {
			return fmt.Sprintf("%.2f %s", val, unit)
		}
		val /= 1024
	}
	return fmt.Sprintf("%.2f GB", val)
}
