// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Markdown file extensions recognized by the CLI.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsMarkdownFile returns true if the path carries a markdown extension
// (.md or .markdown, case-insensitive).
func IsMarkdownFile(path string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReplaceExtension swaps the file extension of path for newExt.
// newExt must include the leading dot.
func ReplaceExtension(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}
