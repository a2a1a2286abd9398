package errors

import (
	"strings"
	"unicode"
)

// ValidateStem validates a destination filename stem.
// It rejects stems that could be used for path traversal or that would
// produce unusable artifact names.
//
// The validation rules are intentionally conservative:
//   - No empty stems
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateStem(stem string) error {
	if stem == "" {
		return New(ErrCodeInvalidStem, "stem cannot be empty")
	}

	if len(stem) > 256 {
		return New(ErrCodeInvalidStem, "stem too long (max 256 characters)")
	}

	for _, r := range stem {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStem, "stem contains invalid control characters")
		}
	}

	if strings.ContainsAny(stem, "/\\") {
		return New(ErrCodeInvalidStem, "stem cannot contain path separators")
	}

	if strings.Contains(stem, "..") {
		return New(ErrCodeInvalidStem, "stem cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateOutputDir validates an artifact output directory path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output directory too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	return nil
}
