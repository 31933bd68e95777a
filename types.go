package confluencesync

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
	Title    string // Page title override (optional, wins over front matter)
}

// Result holds the outcome of a conversion.
type Result struct {
	// Storage is the Confluence storage format body: an XHTML fragment
	// with <pre><code> blocks rewritten as structured code macros.
	Storage string

	// Title is the page title, taken from Input.Title or the front
	// matter "title" key. Empty when neither is set.
	Title string

	// Labels holds the front matter "labels" entries, if any.
	Labels []string

	// Metadata is the raw parsed front matter. Nil when the document
	// has none.
	Metadata map[string]interface{}
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	hardWraps   bool
	languageMap map[string]string
}

// WithHardWraps renders single newlines as <br/> elements.
// Off by default: Confluence reflows paragraphs itself.
func WithHardWraps() Option {
	return func(s *Service) {
		s.cfg.hardWraps = true
	}
}

// WithLanguageMappings adds code macro language remappings on top of the
// built-in bash-to-shell default. Keys are the language names emitted by the
// Markdown source, values the names Confluence recognizes.
func WithLanguageMappings(mappings map[string]string) Option {
	return func(s *Service) {
		if s.cfg.languageMap == nil {
			s.cfg.languageMap = make(map[string]string, len(mappings))
		}
		for from, to := range mappings {
			s.cfg.languageMap[from] = to
		}
	}
}
