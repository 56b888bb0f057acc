package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/molgraph/internal/api"
	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/storage"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  GET  /healthz
  POST /v1/parse            {"notation": "CCO", "formats": ["svg"]}
  GET  /v1/molecules/{id}   ?format=dot|svg

Parsed molecules are kept in MongoDB when mongo.uri is set in the settings
file, otherwise in memory. The cache backend follows cache.backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	c.enableLogHooks()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	srv := api.New(runner, store, c.Logger, api.Config{
		Addr:         c.Config.Server.Addr,
		ReadTimeout:  c.Config.Server.ReadTimeout,
		WriteTimeout: c.Config.Server.WriteTimeout,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Defaults: pipeline.Options{
			Parse:     c.Config.Parse,
			Layout:    c.Config.Render.Layout,
			Hydrogens: c.Config.Render.Hydrogens,
		},
	})

	printInfo("Serving on %s", StyleHighlight.Render(c.Config.Server.Addr))
	return srv.ListenAndServe(ctx)
}

// newStore opens the MongoDB store when configured, otherwise an in-memory
// store.
func (c *CLI) newStore(ctx context.Context) (storage.Store, error) {
	if !c.Config.StoreEnabled() {
		c.Logger.Info("mongo.uri not set, keeping molecules in memory")
		return storage.NewMemoryStore(), nil
	}
	store, err := storage.NewMongoStore(ctx, storage.MongoOptions{
		URI:        c.Config.Mongo.URI,
		Database:   c.Config.Mongo.Database,
		Collection: c.Config.Mongo.Collection,
		Timeout:    c.Config.Mongo.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	c.Logger.Info("using mongo store", "database", c.Config.Mongo.Database, "collection", c.Config.Mongo.Collection)
	return store, nil
}
