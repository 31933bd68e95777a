// Package pipeline implements the Markdown-to-Confluence conversion stages.
//
// The stages run in a fixed order, composed explicitly by the root package:
//   - fenced code block dedenting (line-oriented, before parsing)
//   - section link anchor normalization (line-oriented, before parsing)
//   - Markdown to XHTML conversion via Goldmark
//   - code macro translation (whole document, after rendering)
//
// Every stage except the Goldmark conversion is a total function over
// arbitrary input: text that matches nothing passes through unchanged, and
// no stage raises an error. The line-oriented stages preserve line count.
package pipeline
