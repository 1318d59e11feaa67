package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscene/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached artifacts",
		Long: `Remove cached artifacts.

With --expired only entries past their TTL (and unreadable ones) are
removed from the file cache. Redis expires keys on its own.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.Cache.RedisAddr == "" {
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			store, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			if expiredOnly {
				return c.pruneCache(ctx, store)
			}

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %T cannot be cleared", store)
			}
			if err := clearer.Clear(ctx); err != nil {
				return err
			}

			printSuccess("Cleared cached artifacts")
			switch s := store.(type) {
			case *cache.FileCache:
				printDetail("Directory: %s", s.Dir())
			case *cache.RedisCache:
				printDetail("Redis: %s", c.Config.Cache.RedisAddr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove expired entries")
	return cmd
}

func (c *CLI) pruneCache(ctx context.Context, store cache.Cache) error {
	fc, ok := store.(*cache.FileCache)
	if !ok {
		printInfo("Nothing to prune: %T expires entries itself", store)
		return nil
	}
	n, err := fc.Prune(ctx)
	if err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	c.Logger.Debug("pruned cache", "dir", fc.Dir(), "removed", n)
	printSuccess("Removed %d expired entries", n)
	printDetail("Directory: %s", fc.Dir())
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
