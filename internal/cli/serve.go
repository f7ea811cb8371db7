package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treekit/lineage/internal/server"
	"github.com/treekit/lineage/pkg/cache"
	"github.com/treekit/lineage/pkg/config"
	"github.com/treekit/lineage/pkg/pipeline"
	"github.com/treekit/lineage/pkg/store"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP service",
		Long: `Run the layout HTTP service.

The service exposes the layout pipeline over HTTP: POST /v1/layout computes
a layout for inline members, and the /v1/snapshots routes persist member
collections for later layout runs. Cache and store backends are selected
via the config file (file, redis, mongo).

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/lineage/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the configured backends into a server and blocks until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, configPath string, noCache bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ca, err := buildCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := buildStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(ca, nil, c.Logger)
	defer runner.Close()

	if addr == "" {
		addr = cfg.Server.Addr
	}

	printInfo("Listening on %s", addr)
	printDetail("Cache backend: %s · store backend: %s", cfg.Cache.Backend, cfg.Store.Backend)

	return server.New(runner, st, c.Logger).ListenAndServe(ctx, addr)
}

// buildCache constructs the cache backend selected in the config.
func buildCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}

	switch cfg.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// buildStore constructs the snapshot store backend selected in the config.
func buildStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	case config.BackendFile:
		return store.NewFileStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
