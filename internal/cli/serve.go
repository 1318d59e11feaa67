package cli

import (
	"context"
	"net"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/boxscene/pkg/cache"
	"github.com/matzehuels/boxscene/pkg/pipeline"
	"github.com/matzehuels/boxscene/pkg/server"
)

// Log rotation limits for serve --log-file.
const (
	logMaxSizeMB  = 50
	logMaxBackups = 5
	logMaxAgeDays = 28
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run an HTTP server that renders posted TOML diagrams.

  POST /render?format=svg   diagram body, rendered artifact back
  POST /tree?format=dot     ownership tree as DOT or Graphviz SVG
  GET  /healthz             liveness probe

With cache.redis_addr set, artifacts are shared through Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().String("addr", server.DefaultAddr, "listen address")
	cmd.Flags().Float64("rate-limit", server.DefaultRateLimit, "requests per second across all clients")
	cmd.Flags().Int("burst", server.DefaultBurst, "rate limiter burst size")
	cmd.Flags().String("log-file", "", "write JSON access logs to a rotated file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	c.bindFlag("server.addr", cmd.Flags(), "addr")
	c.bindFlag("server.rate_limit", cmd.Flags(), "rate-limit")
	c.bindFlag("server.burst", cmd.Flags(), "burst")
	c.bindFlag("log.file", cmd.Flags(), "log-file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	logger, closeLog := c.serverLogger()
	defer closeLog()

	runner, err := c.newServerRunner(ctx, noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(runner, logger, server.Config{
		Addr:      c.Config.Server.Addr,
		RateLimit: c.Config.Server.RateLimit,
		Burst:     c.Config.Server.Burst,
	})

	ln, err := net.Listen("tcp", c.Config.Server.Addr)
	if err != nil {
		return err
	}
	printSuccess("Serving on %s", StyleLink.Render("http://"+ln.Addr().String()))
	if c.Config.Log.File != "" {
		printDetail("Access log: %s", c.Config.Log.File)
	}

	err = srv.Serve(ctx, ln)
	printInfo("Server stopped")
	return err
}

// newServerRunner shares artifacts through Redis when configured. Keys are
// scoped so several boxscene deployments can share one Redis.
func (c *CLI) newServerRunner(ctx context.Context, noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.RedisAddr != "" && !noCache {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve")
	}
	r := pipeline.NewRunner(store, keyer, logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// serverLogger returns the CLI logger, or a JSON logger writing to a rotated
// file when log.file is set.
func (c *CLI) serverLogger() (*log.Logger, func()) {
	if c.Config.Log.File == "" {
		return c.Logger, func() {}
	}
	w := &lumberjack.Logger{
		Filename:   c.Config.Log.File,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	return newFileLogger(w, c.Logger.GetLevel()), func() { w.Close() }
}
