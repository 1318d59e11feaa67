package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testDiagram = `
title = "cli"

[artboard]
padding = 10

[[element]]
id = "panel"
kind = "container"
layout = "vstack"
spacing = 4
padding = 2

[[element]]
id = "a"
kind = "rect"
parent = "panel"
width = 40
height = 10

[[element]]
id = "b"
kind = "rect"
parent = "panel"
width = 20
height = 10
`

// newTestCLI isolates config and cache lookups from the user's home.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var buf bytes.Buffer
	return New(&buf, LogInfo), &buf
}

func writeDiagram(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write diagram: %v", err)
	}
	return path
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty defaults to svg", nil, []string{"svg"}},
		{"single format", []string{"svg"}, []string{"svg"}},
		{"multiple values", []string{"svg", "pdf", "png"}, []string{"svg", "pdf", "png"}},
		{"comma separated", []string{"svg,json"}, []string{"svg", "json"}},
		{"whitespace and case", []string{" SVG , dot "}, []string{"svg", "dot"}},
		{"duplicates dropped", []string{"svg", "svg,json"}, []string{"svg", "json"}},
		{"only separators", []string{","}, []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		outDir string
		format string
		want   string
	}{
		{"next to input", filepath.Join("docs", "flow.toml"), "", "svg", filepath.Join("docs", "flow.svg")},
		{"output dir", filepath.Join("docs", "flow.toml"), "out", "png", filepath.Join("out", "flow.png")},
		{"no extension", "flow", "", "json", "flow.json"},
		{"stdin", stdinArg, "", "svg", "diagram.svg"},
		{"stdin with dir", stdinArg, "out", "dot", filepath.Join("out", "diagram.dot")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, tt.outDir, tt.format); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outDir, tt.format, got, tt.want)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	one := writeDiagram(t, dir, "one.toml", testDiagram)
	two := writeDiagram(t, dir, "two.toml", testDiagram)
	out := filepath.Join(dir, "out")

	err := execute(t, c, "render", one, two, "-f", "svg,json,dot", "-o", out, "--no-cache", "--measurer", "estimate")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	for _, base := range []string{"one", "two"} {
		for _, format := range []string{"svg", "json", "dot"} {
			if _, err := os.Stat(filepath.Join(out, base+"."+format)); err != nil {
				t.Errorf("missing %s.%s: %v", base, format, err)
			}
		}
	}

	svg, err := os.ReadFile(filepath.Join(out, "one.svg"))
	if err != nil {
		t.Fatal(err)
	}
	// panel: 40 wide plus padding 2 on both sides; 10+4+10 tall plus padding.
	if !strings.Contains(string(svg), `viewBox="0 0 64 48"`) {
		t.Errorf("svg viewBox mismatch:\n%s", svg)
	}
}

func TestRenderCommandConfigDefaults(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	path := writeDiagram(t, dir, "flow.toml", testDiagram)

	cfgPath := filepath.Join(dir, "boxscene.toml")
	cfg := "[render]\nformats = [\"json\"]\noutput_dir = \"" + filepath.ToSlash(filepath.Join(dir, "artifacts")) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, c, "--config", cfgPath, "render", path, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "artifacts", "flow.json")); err != nil {
		t.Errorf("config output_dir not honored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "flow.svg")); !os.IsNotExist(err) {
		t.Errorf("flow.svg should not be written when config selects json only")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeDiagram(t, dir, "good.toml", testDiagram)
	bad := writeDiagram(t, dir, "bad.toml", "[[element]]\nid = \"x\"\nkind = \"hexagon\"\n")

	tests := []struct {
		name string
		args []string
	}{
		{"invalid format", []string{"render", good, "-f", "gif", "--no-cache"}},
		{"missing file", []string{"render", filepath.Join(dir, "nope.toml"), "--no-cache"}},
		{"invalid diagram", []string{"render", good, bad, "--no-cache"}},
		{"stdin with files", []string{"render", good, stdinArg, "--no-cache"}},
		{"no args", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			if err := execute(t, c, tt.args...); err == nil {
				t.Errorf("render %v: expected error", tt.args[1:])
			}
		})
	}
}

func TestRenderCommandCache(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	path := writeDiagram(t, dir, "flow.toml", testDiagram)
	cacheDir := filepath.Join(dir, "cache")
	t.Setenv("BOXSCENE_CACHE_DIR", cacheDir)

	if err := execute(t, c, "render", path, "--measurer", "estimate"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	if len(entries) == 0 {
		t.Error("render should populate the file cache")
	}
}
