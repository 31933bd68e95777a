package pipeline

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// <pre><code class="language-go">...</code></pre> with a language tag
	taggedCodeBlock = regexp.MustCompile(`(?s)<pre><code class="language-(\w+)">(.*?)</code></pre>`)

	// <pre><code>...</code></pre> without a language tag
	untaggedCodeBlock = regexp.MustCompile(`(?s)<pre><code>(.*?)</code></pre>`)
)

// defaultLanguageKey and its mapping: Confluence's code macro recognizes
// "shell" but not "bash" as a language name.
const (
	defaultLanguageKey   = "bash"
	defaultLanguageValue = "shell"
)

// untaggedLanguage is the language parameter emitted for blocks without a
// language class.
const untaggedLanguage = "none"

// HTMLPostprocessor rewrites rendered HTML before it is handed to Confluence.
type HTMLPostprocessor interface {
	ProcessHTML(content string) string
}

// CodeMacroTranslator rewrites rendered <pre><code> blocks into Confluence
// structured code macros, decoding HTML entities and stripping common
// indentation from multi-line bodies.
type CodeMacroTranslator struct {
	languageMap map[string]string
}

// NewCodeMacroTranslator creates a translator with the default language
// mapping (bash to shell). Extra mappings merge on top of the default and
// never remove it.
func NewCodeMacroTranslator(extra map[string]string) *CodeMacroTranslator {
	m := map[string]string{defaultLanguageKey: defaultLanguageValue}
	for from, to := range extra {
		if from != "" && to != "" {
			m[from] = to
		}
	}
	return &CodeMacroTranslator{languageMap: m}
}

// ProcessHTML replaces every <pre><code> block with a structured code macro.
// Blocks with a language class are translated first, then bare blocks with
// the language defaulting to "none". The language remap runs only when at
// least one block was translated; text without code blocks is returned
// byte-identical.
func (t *CodeMacroTranslator) ProcessHTML(text string) string {
	processed := taggedCodeBlock.ReplaceAllStringFunc(text, func(match string) string {
		groups := taggedCodeBlock.FindStringSubmatch(match)
		return codeMacro(groups[1], groups[2])
	})

	processed = untaggedCodeBlock.ReplaceAllStringFunc(processed, func(match string) string {
		groups := untaggedCodeBlock.FindStringSubmatch(match)
		return codeMacro(untaggedLanguage, groups[1])
	})

	if processed == text {
		return text
	}
	return t.remapLanguages(processed)
}

// remapLanguages substitutes emitted language parameter values according to
// the translator's mapping. Keys are applied in sorted order so the result
// is deterministic.
func (t *CodeMacroTranslator) remapLanguages(text string) string {
	keys := make([]string, 0, len(t.languageMap))
	for from := range t.languageMap {
		keys = append(keys, from)
	}
	sort.Strings(keys)

	for _, from := range keys {
		text = strings.ReplaceAll(text,
			languageParameter(from),
			languageParameter(t.languageMap[from]))
	}
	return text
}

// codeMacro decodes HTML entities in body, strips common indentation, and
// wraps the result in a Confluence structured code macro. The CDATA wrapping
// keeps the body from being interpreted as markup by the wiki renderer.
func codeMacro(language, body string) string {
	decoded := html.UnescapeString(body)
	decoded = dedentCommon(decoded)

	var b strings.Builder
	b.WriteString(`<ac:structured-macro ac:name="code">`)
	b.WriteString(languageParameter(language))
	b.WriteString(`<ac:plain-text-body><![CDATA[`)
	b.WriteString(decoded)
	b.WriteString(`]]></ac:plain-text-body></ac:structured-macro>`)
	return b.String()
}

// languageParameter renders the macro's language parameter element.
func languageParameter(language string) string {
	return `<ac:parameter ac:name="language">` + language + `</ac:parameter>`
}

// dedentCommon removes the minimum leading-whitespace width shared by all
// non-blank lines of a multi-line body. Differential indentation between
// lines is preserved; lines shorter than the common width pass through
// unchanged. Single-line content is returned as-is. Reapplying to already
// dedented content is a no-op.
func dedentCommon(content string) string {
	if !strings.Contains(content, "\n") {
		return content
	}

	lines := strings.Split(content, "\n")

	minWidth := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w := leadingWhitespaceWidth(line)
		if minWidth < 0 || w < minWidth {
			minWidth = w
		}
	}
	if minWidth <= 0 {
		return content
	}

	dedented := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) >= minWidth {
			dedented = append(dedented, line[minWidth:])
		} else {
			dedented = append(dedented, line)
		}
	}
	return strings.Join(dedented, "\n")
}

// leadingWhitespaceWidth counts the leading space and tab characters of line.
func leadingWhitespaceWidth(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
