// Package observability lets a binary observe the pipeline, the artifact
// cache and the preview server without the libraries importing a metrics
// or tracing backend.
//
// Libraries emit events through the package-level accessors:
//
//	observability.Pipeline().OnBuildStart(ctx, source)
//	// ... decode and settle ...
//	observability.Pipeline().OnBuildComplete(ctx, source, elements, took, err)
//
// The binary installs implementations once at startup. Nothing is installed
// by default, so every event goes to a no-op. [LogHooks] is the built-in
// implementation the CLI installs; it traces events at debug level:
//
//	observability.Install(observability.NewLogHooks(logger))
package observability

import (
	"context"
	"time"
)

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	// OnBuildStart and OnBuildComplete bracket decoding the document and
	// settling the scene.
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, elements int, duration time.Duration, err error)

	// OnRenderStart and OnRenderComplete bracket rendering the formats that
	// missed the cache.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events, keyed by output format.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, format string)
	OnCacheMiss(ctx context.Context, format string)
	OnCacheSet(ctx context.Context, format string, size int)
}

// HTTPHooks receives events from the preview server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	OnRateLimited(ctx context.Context, method, path string)
}

// No-op implementations.
type (
	NoopPipelineHooks struct{}
	NoopCacheHooks    struct{}
	NoopHTTPHooks     struct{}
)

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnRateLimited(context.Context, string, string)                  {}
