package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyphlab.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseRunFlagsDefaults(t *testing.T) {
	got, err := parseRunFlags(nil)
	if err != nil {
		t.Fatalf("parseRunFlags() error = %v", err)
	}
	if diff := cmp.Diff(defaultRunConfig(), got); diff != "" {
		t.Errorf("parseRunFlags() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRunFlagsConfigFile(t *testing.T) {
	path := writeConfig(t, `
backend = "software"
size = 18
text = "from file"
width = 640
height = 480
clear = 0x000000
`)
	got, err := parseRunFlags([]string{"-config", path, "-size", "24", "-v"})
	if err != nil {
		t.Fatalf("parseRunFlags() error = %v", err)
	}

	want := defaultRunConfig()
	want.Backend = "software"
	want.Size = 24
	want.Text = "from file"
	want.Width, want.Height = 640, 480
	want.Clear = 0
	want.Verbose = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseRunFlags() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRunFlagsDefaultFlagOverridesFile(t *testing.T) {
	path := writeConfig(t, "size = 18\n")
	got, err := parseRunFlags([]string{"-size", "32", "-config", path})
	if err != nil {
		t.Fatalf("parseRunFlags() error = %v", err)
	}
	if got.Size != 32 {
		t.Errorf("Size = %d, want 32 (explicit flag wins even when equal to the default)", got.Size)
	}
}

func TestParseRunFlagsErrors(t *testing.T) {
	unknown := writeConfig(t, "colour = 1\n")
	broken := writeConfig(t, "size = \n")
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"-config", unknown}},
		{"bad toml", []string{"-config", broken}},
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "nope.toml")}},
		{"zero size", []string{"-size", "0"}},
		{"watch without font", []string{"-watch"}},
		{"extra args", []string{"stray"}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRunFlags(tt.args); err == nil {
				t.Errorf("parseRunFlags(%q) succeeded", tt.args)
			}
		})
	}
}
