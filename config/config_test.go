package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func boolPtr(b bool) *bool {
	return &b
}

func TestLoadFile(t *testing.T) {
	testCases := []struct {
		title         string
		content       string
		expected      *Config
		shouldBeError bool
	}{
		{
			title: "All keys",
			content: `timeout: 10s
follow: true
verify: false
http1: true
format: json
color: never
print: hb
`,
			expected: &Config{
				Timeout: "10s",
				Follow:  boolPtr(true),
				Verify:  boolPtr(false),
				HTTP1:   boolPtr(true),
				Format:  "json",
				Color:   "never",
				Print:   "hb",
			},
		},
		{
			title:    "Empty file",
			content:  "",
			expected: &Config{},
		},
		{
			title:    "Comments only",
			content:  "# nothing here\n",
			expected: &Config{},
		},
		{
			title:         "Unknown key",
			content:       "colour: never\n",
			shouldBeError: true,
		},
		{
			title:         "Bad format",
			content:       "format: xml\n",
			shouldBeError: true,
		},
		{
			title:         "Bad color",
			content:       "color: sometimes\n",
			shouldBeError: true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, tt.content))
			if (err != nil) != tt.shouldBeError {
				t.Fatalf("unexpected error: shouldBeError=%v, err=%+v", tt.shouldBeError, err)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("unexpected config: expected=%+v, actual=%+v", tt.expected, cfg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("Missing default file", func(t *testing.T) {
		t.Setenv(envConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: err=%+v", err)
		}
		if !reflect.DeepEqual(cfg, &Config{}) {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("Missing explicit file", func(t *testing.T) {
		t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))
		if _, err := Load(); err == nil {
			t.Errorf("expected an error for a missing explicit config")
		}
	})

	t.Run("Default location", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(envConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", dir)
		if err := os.MkdirAll(filepath.Join(dir, "curlform"), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "curlform", "config.yaml"), []byte("format: bash\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: err=%+v", err)
		}
		if cfg.Format != "bash" {
			t.Errorf("unexpected format: %s", cfg.Format)
		}
	})
}
