package confluencesync

import (
	"errors"

	"github.com/eze-godoy/confluence-readme-sync/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// ErrHTMLConversion indicates the Goldmark conversion stage failed.
	// Errors returned by Convert wrap it and match via errors.Is.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)
