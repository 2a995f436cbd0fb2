package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewdock/internal/server"
	"github.com/matzehuels/viewdock/pkg/config"
	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/observability"
	"github.com/matzehuels/viewdock/pkg/session"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		sessions   string
		scriptsDir string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Stateless:
  POST   /v1/layout?format=svg             lay out a script sent as JSON

Workspaces:
  POST   /v1/workspaces                    create a workspace session
  GET    /v1/workspaces/{id}               script and layout
  POST   /v1/workspaces/{id}/split-top     insert at the top of the tree
  POST   /v1/workspaces/{id}/split         insert next to an existing view
  GET    /v1/workspaces/{id}/render/{fmt}  render the workspace
  DELETE /v1/workspaces/{id}               drop the session

Sessions are kept in memory, on disk, in Redis or in MongoDB as selected by the
[server] section of the config file or --sessions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Server.Addr = addr
			}
			if flags.Changed("sessions") {
				cfg.Server.Sessions = sessions
			}
			if flags.Changed("scripts-dir") {
				cfg.Server.ScriptsDir = scriptsDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&sessions, "sessions", "", "session backend: memory, file, redis, mongo")
	cmd.Flags().StringVar(&scriptsDir, "scripts-dir", "", "directory clients may start workspaces from")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	observability.SetHTTPHooks(observability.LogHTTPHooks{Logger: c.Logger})
	observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
	observability.SetWorkspaceHooks(observability.LogWorkspaceHooks{Logger: c.Logger})
	defer observability.Reset()

	srv := server.New(server.Config{
		Addr:       cfg.Server.Addr,
		Store:      store,
		Runner:     runner,
		SessionTTL: cfg.Server.SessionTTL,
		Bounds:     dock.NewRect(0, 0, cfg.Layout.Width, cfg.Layout.Height),
		ScriptsDir: cfg.Server.ScriptsDir,
		Logger:     c.Logger,
	})

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printKeyValue("sessions", cfg.Server.Sessions)
	printKeyValue("cache", cacheBackend(cfg, noCache))
	if cfg.Server.ScriptsDir != "" {
		printKeyValue("scripts", cfg.Server.ScriptsDir)
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// newSessionStore opens the session backend selected in cfg.
func newSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.Server.Sessions {
	case config.SessionsFile:
		return session.NewFileStore(cfg.Server.SessionDir)
	case config.SessionsRedis:
		return session.NewRedisStore(ctx, session.RedisConfig{Addr: cfg.Cache.RedisAddr, DB: cfg.Cache.RedisDB})
	case config.SessionsMongo:
		return session.NewMongoStore(ctx, session.MongoConfig{URI: cfg.Server.MongoURI, Database: cfg.Server.MongoDatabase})
	default:
		return session.NewMemoryStore(), nil
	}
}

func cacheBackend(cfg config.Config, noCache bool) string {
	if noCache {
		return config.CacheNone
	}
	return cfg.Cache.Backend
}
