package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewdock/pkg/cache"
	"github.com/matzehuels/viewdock/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runCacheClear(cmd.Context(), cfg.Cache)
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context, cfg config.CacheConfig) error {
	switch cfg.Backend {
	case config.CacheNone:
		printInfo("Caching is disabled")
		return nil
	case config.CacheFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			return fmt.Errorf("get cache dir: %w", err)
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			printInfo("Cache is empty")
			return nil
		}
	}

	cc, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer cc.Close()

	clearer, ok := cc.(cache.Clearer)
	if !ok {
		printInfo("Cache backend %q has nothing to clear", cfg.Backend)
		return nil
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cache cleared")
	if fc, ok := cc.(*cache.FileCache); ok {
		printDetail("Directory: %s", fc.Dir())
	} else {
		printDetail("Backend: %s", cfg.Backend)
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			switch cfg.Cache.Backend {
			case config.CacheRedis:
				fmt.Fprintf(stdout, "redis://%s/%d\n", cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
			case config.CacheNone:
				fmt.Fprintln(stdout, "disabled")
			default:
				dir, err := cacheDir(cfg.Cache)
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(stdout, dir)
			}
			return nil
		},
	}
}
