package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateRelPath checks that a generated file path stays inside its root.
func ValidateRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute path not allowed: %s", path)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %s", path)
	}
	return nil
}

// Within joins root and a relative path after validating it.
func Within(root, path string) (string, error) {
	if err := ValidateRelPath(path); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(path)), nil
}
