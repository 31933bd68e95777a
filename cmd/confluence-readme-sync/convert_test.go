package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	confluencesync "github.com/eze-godoy/confluence-readme-sync"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestValidateWorkers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"zero means auto", 0, false},
		{"one", 1, false},
		{"max", maxWorkers, false},
		{"negative", -1, true},
		{"above max", maxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWorkers(tt.workers)
			if tt.wantErr && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", tt.workers, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateWorkers(%d) = %v, want nil", tt.workers, err)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# a")
	writeFile(t, filepath.Join(dir, "b.markdown"), "# b")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not markdown")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub", "nested.md"), "# nested")

	t.Run("directory scan is non-recursive and filtered", func(t *testing.T) {
		files, err := discoverFiles([]string{dir}, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("discoverFiles() found %d files, want 2", len(files))
		}
		for _, f := range files {
			if strings.Contains(f.inputPath, "nested") || strings.Contains(f.inputPath, "skip") {
				t.Errorf("unexpected file discovered: %s", f.inputPath)
			}
		}
	})

	t.Run("explicit file with wrong extension rejected", func(t *testing.T) {
		_, err := discoverFiles([]string{filepath.Join(dir, "skip.txt")}, "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("discoverFiles() error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing input rejected", func(t *testing.T) {
		_, err := discoverFiles([]string{filepath.Join(dir, "missing.md")}, "")
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("discoverFiles() error = %v, want ErrNoInput", err)
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		inputPath string
		outputDir string
		expected  string
	}{
		{
			name:      "alongside input by default",
			inputPath: filepath.Join("docs", "README.md"),
			outputDir: "",
			expected:  filepath.Join("docs", "README.xhtml"),
		},
		{
			name:      "output directory set",
			inputPath: filepath.Join("docs", "README.md"),
			outputDir: "out",
			expected:  filepath.Join("out", "README.xhtml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveOutputPath(tt.inputPath, tt.outputDir); got != tt.expected {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRunConvertEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "runbook.md")
	writeFile(t, input, "# Runbook\n\n```bash\necho hi\n```\n")

	outDir := filepath.Join(dir, "out")
	flags := &cliFlags{output: outDir, workers: 1}

	if err := runConvert(context.Background(), []string{input}, flags); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "runbook.xhtml"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	storage := string(data)
	if !strings.Contains(storage, `<ac:structured-macro ac:name="code">`) {
		t.Errorf("output missing code macro: %q", storage)
	}
	if !strings.Contains(storage, `<ac:parameter ac:name="language">shell</ac:parameter>`) {
		t.Errorf("output missing remapped shell language: %q", storage)
	}
}

func TestRunConvertWithConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	writeFile(t, input, "```golang\nx := 1\n```\n")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "languages:\n  golang: go\n")

	flags := &cliFlags{config: cfgPath, workers: 1}
	if err := runConvert(context.Background(), []string{input}, flags); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "doc.xhtml"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), `<ac:parameter ac:name="language">go</ac:parameter>`) {
		t.Errorf("config language mapping not applied: %q", data)
	}
}

func TestRunConvertNoInput(t *testing.T) {
	flags := &cliFlags{}
	err := runConvert(context.Background(), nil, flags)
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("runConvert() error = %v, want ErrNoInput", err)
	}
}

func TestConvertBatchReportsFirstError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	writeFile(t, good, "# ok")

	files := []fileToConvert{
		{inputPath: filepath.Join(dir, "missing.md"), outputPath: filepath.Join(dir, "missing.xhtml")},
		{inputPath: good, outputPath: filepath.Join(dir, "good.xhtml")},
	}

	err := convertBatch(context.Background(), confluencesync.New(), files, 2, false)
	if !errors.Is(err, ErrReadMarkdown) {
		t.Errorf("convertBatch() error = %v, want ErrReadMarkdown", err)
	}

	// The good file must still have been converted.
	if _, statErr := os.Stat(filepath.Join(dir, "good.xhtml")); statErr != nil {
		t.Errorf("good file not converted despite sibling failure: %v", statErr)
	}
}
