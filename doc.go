// Package confluencesync converts Markdown documents to Confluence storage
// format (XHTML with structured macros).
//
// # Quick Start
//
// Create a service and convert markdown:
//
//	svc := confluencesync.New()
//	result, err := svc.Convert(ctx, confluencesync.Input{
//	    Markdown: "# Hello\n\n```bash\necho hi\n```",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Storage)
//
// The result contains the storage format body (result.Storage) plus the
// page title and labels extracted from YAML front matter.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Fenced code block dedenting (indented ``` fences become top-level)
//  2. Section link normalization ("](##sec)" becomes "](#sec)")
//  3. Markdown to XHTML conversion via Goldmark (GFM, front matter)
//  4. Code macro translation (<pre><code> blocks become
//     <ac:structured-macro ac:name="code"> elements with CDATA bodies)
//
// Stages 1 and 2 are line-oriented and preserve line count; stage 4 operates
// on the whole rendered document and leaves unmatched text byte-identical.
// Confluence renders "shell" but not "bash" as a code language, so translated
// bash blocks are emitted as shell.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := confluencesync.New(
//	    confluencesync.WithHardWraps(),
//	    confluencesync.WithLanguageMappings(map[string]string{"golang": "go"}),
//	)
package confluencesync
