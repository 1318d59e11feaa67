// Package pipeline provides the load → build → render pipeline for boxscene.
//
// The CLI and the preview server both go through a [Runner], so caching,
// measurement and logging behave the same at every entry point.
//
// # Stages
//
// A run loads the TOML source from a path or from request bytes, decodes it
// and settles it into a [scene.Scene], then serializes the scene to every
// requested format in parallel.
//
// Each format is cached on its own under the source's content hash, so a
// run whose formats all hit never builds a scene.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "diagram.toml",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("diagram.svg", result.Artifacts["svg"], 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscene/pkg/diagram"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the raster scale for PNG output.
	DefaultScale = 2.0

	// DefaultMeasurer measures text with the embedded Go fonts.
	DefaultMeasurer = MeasurerOpenType
)

// Measurer names.
const (
	MeasurerOpenType = "opentype"
	MeasurerEstimate = "estimate"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options. Source takes precedence over Path.
	Path   string `json:"path,omitempty"`
	Source []byte `json:"-"`
	Name   string `json:"name,omitempty"` // label for logs; defaults to Path

	// Build options
	Measurer string `json:"measurer,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Boxes   bool     `json:"boxes,omitempty"` // overlay box outlines in SVG-based formats
	Title   string   `json:"title,omitempty"` // overrides the document title

	// Refresh re-renders and overwrites cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is what Execute produced.
type Result struct {
	// Document is the decoded diagram. Nil when every artifact was cached.
	Document *diagram.Document

	// Scene is the settled scene. Nil when every artifact was cached.
	Scene *scene.Scene

	// DocumentHash is the content hash of the diagram source.
	DocumentHash string

	Artifacts map[string][]byte // keyed by format
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes the work a run did. Build fields are zero on a full cache hit.
type Stats struct {
	Elements      int
	PendingTexts  int
	BuildTime     time.Duration
	RenderTime    time.Duration
	RenderedBytes int
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits   []string // formats served from cache
	Misses []string // formats rendered in this run
}

// AllHit reports whether every format came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults, then validates. Only the first
// call does any work.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills in unset options.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	if o.Name == "" {
		o.Name = o.Path
	}
	if o.Name == "" {
		o.Name = "<stdin>"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without modifying them.
func (o *Options) Validate() error {
	if o.Path == "" && len(o.Source) == 0 {
		return errors.New(errors.ErrCodeMissingParam, "path or source is required")
	}
	if err := errors.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	switch o.Measurer {
	case MeasurerOpenType, MeasurerEstimate:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid measurer: %q (must be one of: %s, %s)",
			o.Measurer, MeasurerOpenType, MeasurerEstimate)
	}
	return nil
}

// needsRaster reports whether any format shells out to the SVG converter.
func (o *Options) needsRaster() bool {
	for _, f := range o.Formats {
		if f == FormatPNG || f == FormatPDF {
			return true
		}
	}
	return false
}
