package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	confluencesync "github.com/eze-godoy/confluence-readme-sync"
	"github.com/eze-godoy/confluence-readme-sync/internal/config"
	"github.com/eze-godoy/confluence-readme-sync/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteStorage       = errors.New("failed to write storage file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// outputExtension is the extension of generated storage-format files.
const outputExtension = ".xhtml"

// maxWorkers caps --workers; conversions are CPU-bound text transforms.
const maxWorkers = 32

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input confluencesync.Input) (*confluencesync.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*confluencesync.Service)(nil)

// fileToConvert represents a single file to process.
type fileToConvert struct {
	inputPath  string
	outputPath string
}

// conversionResult holds the outcome of a single conversion.
type conversionResult struct {
	inputPath string
	err       error
	duration  time.Duration
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *cliFlags) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI flags win over config
	hardWraps := cfg.Render.HardWraps || flags.hardWraps

	opts := []confluencesync.Option{}
	if hardWraps {
		opts = append(opts, confluencesync.WithHardWraps())
	}
	if len(cfg.Languages) > 0 {
		opts = append(opts, confluencesync.WithLanguageMappings(cfg.Languages))
	}
	svc := confluencesync.New(opts...)

	// Resolve inputs
	inputs := positionalArgs
	if len(inputs) == 0 && cfg.Input.DefaultDir != "" {
		inputs = []string{cfg.Input.DefaultDir}
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputs, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found", ErrNoInput)
	}

	return convertBatch(ctx, svc, files, resolveWorkers(flags.workers), flags.verbose)
}

// validateWorkers checks the --workers flag range.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers maps the flag value to an actual worker count.
func resolveWorkers(n int) int {
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// discoverFiles expands the input paths into conversion jobs.
// Directories are scanned non-recursively for markdown files; explicit file
// arguments must carry a markdown extension.
func discoverFiles(inputs []string, outputDir string) ([]fileToConvert, error) {
	var files []fileToConvert

	for _, input := range inputs {
		switch {
		case fileutil.DirExists(input):
			entries, err := os.ReadDir(input)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", input, err)
			}
			for _, entry := range entries {
				if entry.IsDir() || !fileutil.IsMarkdownFile(entry.Name()) {
					continue
				}
				path := filepath.Join(input, entry.Name())
				files = append(files, fileToConvert{
					inputPath:  path,
					outputPath: resolveOutputPath(path, outputDir),
				})
			}
		case fileutil.FileExists(input):
			if !fileutil.IsMarkdownFile(input) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, input)
			}
			files = append(files, fileToConvert{
				inputPath:  input,
				outputPath: resolveOutputPath(input, outputDir),
			})
		default:
			return nil, fmt.Errorf("%w: %s does not exist", ErrNoInput, input)
		}
	}

	return files, nil
}

// resolveOutputPath derives the output file path for an input file.
// With an output directory set, the file lands there under its own basename;
// otherwise it sits alongside the input.
func resolveOutputPath(inputPath, outputDir string) string {
	name := fileutil.ReplaceExtension(filepath.Base(inputPath), outputExtension)
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

// convertBatch converts files on a bounded worker group and reports the
// first error encountered. All files are attempted regardless of failures.
func convertBatch(ctx context.Context, svc Converter, files []fileToConvert, workers int, verbose bool) error {
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan fileToConvert, len(files))
	results := make(chan conversionResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				start := time.Now()
				err := convertFile(ctx, svc, file)
				results <- conversionResult{
					inputPath: file.inputPath,
					err:       err,
					duration:  time.Since(start),
				}
			}
		}()
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)
	wg.Wait()
	close(results)

	var firstErr error
	for res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", res.inputPath, res.err)
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "converted %s (%s)\n", res.inputPath, res.duration.Round(time.Millisecond))
		}
	}
	return firstErr
}

// convertFile converts a single markdown file to a storage-format file.
func convertFile(ctx context.Context, svc Converter, file fileToConvert) error {
	content, err := os.ReadFile(file.inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	result, err := svc.Convert(ctx, confluencesync.Input{Markdown: string(content)})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(file.outputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteStorage, err)
		}
	}
	if err := os.WriteFile(file.outputPath, []byte(result.Storage), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteStorage, err)
	}
	return nil
}
