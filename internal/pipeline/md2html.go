package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, map[string]interface{}, error)
}

// GoldmarkConverter converts Markdown to an XHTML fragment using goldmark.
// Confluence storage format is a body fragment, so no document template is
// applied around the output.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// YAML front matter support, and auto-generated heading IDs (required for
// in-page anchor links to resolve).
func NewGoldmarkConverter(hardWraps bool) *GoldmarkConverter {
	rendererOptions := []renderer.Option{
		html.WithXHTML(), // Confluence storage format is XHTML; tags must self-close
	}
	if hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			meta.Meta,     // YAML front matter (page title, labels)
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)

	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an XHTML fragment and returns the
// parsed front matter alongside it. Supports context cancellation via
// goroutine + select pattern since goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, map[string]interface{}, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	type result struct {
		html     string
		metadata map[string]interface{}
		err      error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		pctx := parser.NewContext()
		if err := c.md.Convert([]byte(content), &buf, parser.WithContext(pctx)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String(), metadata: meta.Get(pctx)}
	}()

	select {
	case <-ctx.Done():
		return "", nil, ctx.Err()
	case r := <-done:
		return r.html, r.metadata, r.err
	}
}
