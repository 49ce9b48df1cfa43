package normalisers

import (
	"path/filepath"
	"strings"
)

// TitleFromFilename derives a human-readable title from an upload
// filename: extension stripped, separators replaced with spaces.
func TitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
