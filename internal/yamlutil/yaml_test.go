package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/eze-godoy/confluence-readme-sync/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Name != "test" || cfg.Count != 42 || !cfg.Enabled {
					t.Errorf("decoded = %+v, want name=test count=42 enabled=true", cfg)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Run("known fields decode", func(t *testing.T) {
		var cfg testConfig
		if err := yamlutil.UnmarshalStrict([]byte("name: strict\ncount: 10"), &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Name != "strict" || cfg.Count != 10 {
			t.Errorf("decoded = %+v, want name=strict count=10", cfg)
		}
	})

	t.Run("unknown field causes error", func(t *testing.T) {
		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: test\nunknown_field: value"), &cfg)
		if err == nil {
			t.Fatal("expected error for unknown field, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix 'yamlutil:'", err)
		}
	})
}

// Note: this test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 100)
		copy(data, []byte("name: x"))
		var cfg testConfig
		if err := yamlutil.Unmarshal(data, &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 101)
		copy(data, []byte("name: x"))
		var cfg testConfig
		err := yamlutil.Unmarshal(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}
