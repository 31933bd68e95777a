package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// In-page link fragment with one or more hashes: "](##..." etc.
	sectionLinkPattern = regexp.MustCompile(`\]\(#+`)

	// Fenced code block opening delimiter, with optional indentation
	fenceOpenPattern = regexp.MustCompile("^(\\s*)```")

	// Fenced code block closing delimiter: backticks and trailing whitespace only
	fenceClosePattern = regexp.MustCompile("^(\\s*)```\\s*$")
)

// LinePreprocessor rewrites Markdown lines before parsing.
// Implementations return a slice of the same length as the input.
type LinePreprocessor interface {
	ProcessLines(lines []string) []string
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// LinkAnchorNormalizer rewrites in-page link fragments so they carry exactly
// one hash: "[x](##section)" becomes "[x](#section)". Confluence resolves
// single-hash anchors only; extra hashes come from authors mirroring heading
// depth in the fragment.
type LinkAnchorNormalizer struct{}

// ProcessLines rewrites every multi-hash fragment on each line.
// Lines without the pattern pass through unchanged.
func (LinkAnchorNormalizer) ProcessLines(lines []string) []string {
	modified := make([]string, 0, len(lines))
	for _, line := range lines {
		modified = append(modified, sectionLinkPattern.ReplaceAllString(line, "](#"))
	}
	return modified
}

// FencedBlockDedenter strips leading indentation from indented fenced code
// blocks so the downstream parser recognizes them as top-level fences.
// The opening fence's indent width is removed from every line of the block;
// relative indentation between block lines is preserved.
type FencedBlockDedenter struct{}

// ProcessLines runs a two-state automaton over the lines: outside a block,
// a line matching the opening fence records its indent width and switches
// state; inside, the closing fence resets it. Block lines carrying at least
// the recorded indent lose exactly that prefix, under-indented lines pass
// through verbatim. An unterminated block keeps dedenting to the end of the
// document. A fence opener seen while already inside a block is ordinary
// content, not a nested fence.
func (FencedBlockDedenter) ProcessLines(lines []string) []string {
	modified := make([]string, 0, len(lines))
	inBlock := false
	indent := 0

	for _, line := range lines {
		switch {
		case !inBlock && fenceOpenPattern.MatchString(line):
			inBlock = true
			indent = len(fenceOpenPattern.FindStringSubmatch(line)[1])
			modified = append(modified, line[indent:])
		case inBlock && fenceClosePattern.MatchString(line):
			inBlock = false
			width := len(fenceClosePattern.FindStringSubmatch(line)[1])
			modified = append(modified, line[width:])
			indent = 0
		case inBlock:
			if len(line) >= indent && isAllWhitespace(line[:indent]) {
				modified = append(modified, line[indent:])
			} else {
				modified = append(modified, line)
			}
		default:
			modified = append(modified, line)
		}
	}

	return modified
}

// isAllWhitespace reports whether s is non-empty and contains only
// whitespace characters.
func isAllWhitespace(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
