package errors

import (
	"strings"
	"unicode"
)

// maxPathLength bounds output paths accepted from the CLI and config files.
const maxPathLength = 4096

// ValidateOutputPath validates a destination path before anything is rendered.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Path cannot name a directory (trailing separator)
//
// Whether the path is writable is only known at write time; that failure is
// reported as ErrCodeIO by the writer.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// ValidateDescriptor performs cheap structural checks on a style descriptor
// coming from untrusted input (HTTP path segments, documents) before it is
// handed to the style parser.
func ValidateDescriptor(descriptor string) error {
	if descriptor == "" {
		return New(ErrCodeInvalidStyle, "style descriptor cannot be empty")
	}
	if len(descriptor) > 256 {
		return New(ErrCodeInvalidStyle, "style descriptor too long (max 256 characters)")
	}
	for _, r := range descriptor {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStyle, "style descriptor contains invalid control characters")
		}
	}
	return nil
}
