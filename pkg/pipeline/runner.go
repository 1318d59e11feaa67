package pipeline

import (
	"context"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscene/pkg/cache"
	"github.com/matzehuels/boxscene/pkg/diagram"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/measure"
	"github.com/matzehuels/boxscene/pkg/observability"
	"github.com/matzehuels/boxscene/pkg/render"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// Runner turns diagram sources into artifacts, consulting Cache per format.
// The CLI and the preview server share one Runner each; it is safe for
// concurrent Execute calls with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long stored artifacts stay valid. Zero means
	// cache.TTLArtifact.
	TTL time.Duration

	fontMu sync.Mutex
	font   measure.Measurer // nil until first needed and after Close
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute loads the source, serves cached formats and builds and renders
// only the formats that missed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.needsRaster() && !render.Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "png and pdf output require %s on PATH", render.Converter)
	}
	logger := opts.Logger.With("diagram", opts.Name)

	source, err := load(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		DocumentHash: cache.Hash(source),
		Artifacts:    make(map[string][]byte, len(opts.Formats)),
	}

	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.cached(ctx, result.DocumentHash, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	result.CacheInfo.Misses = missing
	if len(missing) == 0 {
		logger.Debug("served from cache", "formats", opts.Formats)
		return result, nil
	}

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Name)
	doc, s, err := r.Build(ctx, source, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Name, 0, result.Stats.BuildTime, err)
		return nil, err
	}
	result.Document, result.Scene = doc, s
	result.Stats.Elements = s.Len()
	result.Stats.PendingTexts = s.PendingCount()
	observability.Pipeline().OnBuildComplete(ctx, opts.Name, s.Len(), result.Stats.BuildTime, nil)

	logger.Info("built scene",
		"elements", s.Len(),
		"summary", doc.Summary(),
		"duration", result.Stats.BuildTime)
	if result.Stats.PendingTexts > 0 {
		logger.Warn("text measured with estimates", "elements", result.Stats.PendingTexts)
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, missing)
	artifacts, err := RenderAll(ctx, s, missing, renderOptions(doc, opts))
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	for format, data := range artifacts {
		result.Artifacts[format] = data
		result.Stats.RenderedBytes += len(data)
		// Estimated text would be cached as if it were measured.
		if result.Stats.PendingTexts == 0 {
			r.store(ctx, result.DocumentHash, format, opts, data)
		}
	}

	logger.Info("rendered outputs",
		"formats", missing,
		"bytes", result.Stats.RenderedBytes,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build decodes a diagram and settles it into a scene.
func (r *Runner) Build(ctx context.Context, source []byte, opts Options) (*diagram.Document, *scene.Scene, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	doc, err := diagram.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s, err := diagram.BuildContext(ctx, doc,
		scene.WithMeasurer(r.measurer(opts.Measurer)),
		scene.WithLogger(opts.Logger.WithPrefix("scene")),
	)
	if err != nil {
		return nil, nil, err
	}
	return doc, s, nil
}

// BuildFile is Build for a file on disk.
func (r *Runner) BuildFile(ctx context.Context, path string, opts Options) (*diagram.Document, *scene.Scene, error) {
	opts.Path, opts.Source = path, nil
	source, err := load(opts)
	if err != nil {
		return nil, nil, err
	}
	return r.Build(ctx, source, opts)
}

// measurer returns the text measurer for a run. The OpenType measurer is
// created on first use and shared; if its fonts cannot load, runs fall back
// to estimates.
func (r *Runner) measurer(name string) measure.Measurer {
	if name == MeasurerEstimate {
		return measure.Estimator{}
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.font != nil {
		return r.font
	}
	ot, err := measure.NewOpenType()
	if err != nil {
		r.Logger.Warn("opentype measurer unavailable, using estimates", "err", err)
		r.font = measure.Estimator{}
	} else {
		r.font = ot
	}
	return r.font
}

func (r *Runner) cached(ctx context.Context, docHash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(docHash, artifactKeyOpts(format, opts)))
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, docHash, format string, opts Options, data []byte) {
	key := r.Keyer.ArtifactKey(docHash, artifactKeyOpts(format, opts))
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLArtifact
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// artifactKeyOpts keeps only the options that change the format's bytes.
func artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Measurer: opts.Measurer, Title: opts.Title}
	if format == FormatPNG {
		k.Scale = opts.Scale
	}
	if slices.Contains([]string{FormatSVG, FormatPNG, FormatPDF}, format) {
		k.Boxes = opts.Boxes
	}
	return k
}

func renderOptions(doc *diagram.Document, opts Options) RenderOptions {
	title := opts.Title
	if title == "" {
		title = doc.Title
	}
	return RenderOptions{Title: title, Scale: opts.Scale, Boxes: opts.Boxes}
}

func load(opts Options) ([]byte, error) {
	if len(opts.Source) > 0 {
		return opts.Source, nil
	}
	data, err := os.ReadFile(opts.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "diagram %s", opts.Path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Path)
	}
	return data, nil
}

// Close releases the shared measurer and closes the cache. Builds still in
// flight keep measuring; their faces are recreated on demand.
func (r *Runner) Close() error {
	r.fontMu.Lock()
	if c, ok := r.font.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	r.font = nil
	r.fontMu.Unlock()
	return r.Cache.Close()
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
