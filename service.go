package confluencesync

import (
	"context"
	"fmt"
	"strings"

	"github.com/eze-godoy/confluence-readme-sync/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.LinePreprocessor  = (*pipeline.FencedBlockDedenter)(nil)
	_ pipeline.LinePreprocessor  = (*pipeline.LinkAnchorNormalizer)(nil)
	_ pipeline.HTMLConverter     = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLPostprocessor = (*pipeline.CodeMacroTranslator)(nil)
)

// Service orchestrates the Markdown-to-Confluence pipeline.
// The stages are composed explicitly and always run in the same order:
// fence dedenting, anchor normalization, Goldmark rendering, code macro
// translation. A Service is safe for concurrent use; the stages share no
// mutable state.
type Service struct {
	cfg           serviceConfig
	preprocessors []pipeline.LinePreprocessor
	htmlConverter pipeline.HTMLConverter
	postprocessor pipeline.HTMLPostprocessor
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithHardWraps).
func New(opts ...Option) *Service {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	// Dedenting must run before anchor rewriting; both before parsing.
	s.preprocessors = []pipeline.LinePreprocessor{
		pipeline.FencedBlockDedenter{},
		pipeline.LinkAnchorNormalizer{},
	}
	s.htmlConverter = pipeline.NewGoldmarkConverter(s.cfg.hardWraps)
	s.postprocessor = pipeline.NewCodeMacroTranslator(s.cfg.languageMap)

	return s
}

// Convert runs the full pipeline and returns the Confluence storage body.
// The context is used for cancellation.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	// Preprocess markdown line by line
	lines := strings.Split(pipeline.NormalizeLineEndings(input.Markdown), "\n")
	for _, p := range s.preprocessors {
		lines = p.ProcessLines(lines)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to XHTML
	htmlContent, metadata, err := s.htmlConverter.ToHTML(ctx, strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Rewrite code blocks as Confluence macros
	storage := s.postprocessor.ProcessHTML(htmlContent)

	result := &Result{
		Storage:  storage,
		Title:    input.Title,
		Metadata: metadata,
	}
	if result.Title == "" {
		result.Title = metadataString(metadata, "title")
	}
	result.Labels = metadataStrings(metadata, "labels")

	return result, nil
}

// metadataString reads a front matter value as a string.
func metadataString(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// metadataStrings reads a front matter list value as strings,
// skipping entries of other types.
func metadataStrings(metadata map[string]interface{}, key string) []string {
	items, ok := metadata[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
