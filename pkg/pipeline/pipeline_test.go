package pipeline

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/boxscene/pkg/cache"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDiagram = `
title = "pipeline"

[artboard]
padding = 10

[[element]]
id = "box"
kind = "rect"
width = 100
height = 40
fill = "#eeeeee"

[[element]]
id = "dot"
kind = "circle"
radius = 5
[element.position]
to = "box.topRight"
`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: []byte(testDiagram)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Measurer != DefaultMeasurer {
		t.Errorf("Measurer = %q, want %q", opts.Measurer, DefaultMeasurer)
	}
	if opts.Name != "<stdin>" {
		t.Errorf("Name = %q, want <stdin>", opts.Name)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	src := []byte(testDiagram)
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeMissingParam},
		{"bad format", Options{Source: src, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad scale", Options{Source: src, Scale: 12}, errors.ErrCodeInvalidInput},
		{"bad measurer", Options{Source: src, Measurer: "ruler"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{
		Source:   []byte(testDiagram),
		Formats:  []string{FormatSVG, FormatJSON, FormatDOT},
		Measurer: MeasurerEstimate,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Scene == nil || res.Document == nil {
		t.Fatal("Execute() should return the built scene and document")
	}
	if res.Stats.Elements != 3 {
		t.Errorf("Stats.Elements = %d, want 3", res.Stats.Elements)
	}
	if len(res.CacheInfo.Hits) != 0 || len(res.CacheInfo.Misses) != 3 {
		t.Errorf("CacheInfo = %+v, want 3 misses", res.CacheInfo)
	}

	svg := string(res.Artifacts[FormatSVG])
	if !strings.Contains(svg, `viewBox="0 0 125 60"`) || !strings.Contains(svg, "<title>pipeline</title>") {
		t.Errorf("svg artifact unexpected:\n%s", svg)
	}

	var geo struct {
		Elements []struct {
			ID        string `json:"id"`
			BorderBox struct{ X, Y float64 } `json:"border_box"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &geo); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if n := len(geo.Elements); n != 3 {
		t.Fatalf("json elements = %d, want 3", n)
	}
	if dot := geo.Elements[2]; dot.ID != "dot" || dot.BorderBox.X != 105 || dot.BorderBox.Y != 5 {
		t.Errorf("dot border box = %+v, want (105, 5)", dot)
	}

	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, `"dot" -> "box" [style=dashed`) {
		t.Errorf("dot artifact missing constraint edge:\n%s", dot)
	}
}

func TestExecuteCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Source: []byte(testDiagram), Measurer: MeasurerEstimate}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.AllHit() {
		t.Errorf("second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if second.Scene != nil {
		t.Error("fully cached run should skip the build")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered one")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if third.CacheInfo.AllHit() || third.Scene == nil {
		t.Error("Refresh should re-render")
	}

	boxed := Options{Source: []byte(testDiagram), Measurer: MeasurerEstimate, Boxes: true}
	res, err := r.Execute(ctx, boxed)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.AllHit() {
		t.Error("Boxes should change the cache key")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "missing file",
			opts: Options{Path: filepath.Join(t.TempDir(), "nope.toml")},
			code: errors.ErrCodeFileNotFound,
		},
		{
			name: "malformed toml",
			opts: Options{Source: []byte("[[element]\nid=")},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "cycle",
			opts: Options{Source: []byte(`
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
position = { to = "b" }

[[element]]
id = "b"
kind = "rect"
width = 1
height = 1
position = { to = "a" }
`)},
			code: errors.ErrCodePositionCycle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Measurer = MeasurerEstimate
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecuteOpenType(t *testing.T) {
	r := newTestRunner(t)
	src := []byte(testDiagram + `
[[element]]
id = "label"
kind = "text"
text = "Hello"
`)
	res, err := r.Execute(context.Background(), Options{Source: src, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Stats.PendingTexts != 0 {
		t.Errorf("PendingTexts = %d, want 0", res.Stats.PendingTexts)
	}
}

func TestCloseDuringBuilds(t *testing.T) {
	r := newTestRunner(t)
	src := []byte(testDiagram + `
[[element]]
id = "label"
kind = "text"
text = "Hello"
`)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := r.Build(context.Background(), src, Options{}); err != nil {
				t.Errorf("Build() error: %v", err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Close()
	}()
	wg.Wait()

	// A closed measurer is recreated for the next build.
	if _, _, err := r.Build(context.Background(), src, Options{}); err != nil {
		t.Errorf("Build() after Close() error: %v", err)
	}
}

func TestRenderAllConcurrent(t *testing.T) {
	r := newTestRunner(t)
	_, s, err := r.Build(context.Background(), []byte(testDiagram), Options{Measurer: MeasurerEstimate})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	formats := []string{FormatSVG, FormatJSON, FormatDOT}
	artifacts, err := RenderAll(context.Background(), s, formats, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderAll() error: %v", err)
	}
	for _, f := range formats {
		if len(artifacts[f]) == 0 {
			t.Errorf("RenderAll() missing %s", f)
		}
	}

	if _, err := RenderAll(context.Background(), s, []string{FormatSVG, "gif"}, RenderOptions{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderAll() with bad format error = %v, want INVALID_FORMAT", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, source string, elements int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "build:"+source)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "render:"+strings.Join(formats, ","))
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(t)
	if _, err := r.Execute(context.Background(), Options{
		Source:   []byte(testDiagram),
		Name:     "hooks.toml",
		Measurer: MeasurerEstimate,
	}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{"build:hooks.toml", "render:svg"}
	if strings.Join(hooks.events, " ") != strings.Join(want, " ") {
		t.Errorf("hook events = %v, want %v", hooks.events, want)
	}
}
