package domain

import (
	"path/filepath"
	"strings"
)

// ImageExtensions are the upload extensions accepted for listing images
var ImageExtensions = []string{"png", "jpg", "jpeg"}

// ImageExtension returns the lower-cased extension of filename without the dot
func ImageExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// HasImageExtension reports whether filename ends in an accepted image extension,
// ignoring case
func HasImageExtension(filename string) bool {
	ext := ImageExtension(filename)
	for _, allowed := range ImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
