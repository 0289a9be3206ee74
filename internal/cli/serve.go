package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/renderfig/renderfig/pkg/cache"
	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/pipeline"
	figerrors "github.com/renderfig/renderfig/pkg/errors"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string // listen address
	redis string // optional Redis address for a shared cache
}

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr: ":8080",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram pipeline over HTTP",
		Long: `Serve starts an HTTP service that renders diagrams on demand.

POST /render takes a JSON body {"engine": ..., "source": ..., "format": ...,
"attributes": {...}} and responds with the image bytes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for a shared render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var store cache.Cache
	if opts.redis != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		store = rc
		c.Logger.Info("using redis cache", "addr", opts.redis)
	}

	runner := pipeline.NewRunner(nil, store, c.Logger, cfg)
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.routes(runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("serving", "addr", opts.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// renderRequest is the POST /render body.
type renderRequest struct {
	Engine     string            `json:"engine"`
	Source     string            `json:"source"`
	Format     string            `json:"format,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// routes builds the HTTP handler tree.
func (c *CLI) routes(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/engines", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(runner.Registry.Names())
	})

	r.Post("/render", func(w http.ResponseWriter, req *http.Request) {
		var body renderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if body.Engine == "" || body.Source == "" {
			http.Error(w, "engine and source are required", http.StatusBadRequest)
			return
		}
		format := body.Format
		if format == "" {
			format = "html"
		}

		block := diagram.Block{
			Classes:    []string{body.Engine},
			Attributes: body.Attributes,
			Source:     body.Source,
		}
		assets := pipeline.NewMemStore()

		fig, err := runner.ProcessBlock(req.Context(), &block, format, assets)
		if err != nil {
			c.Logger.Error("render failed", "engine", body.Engine, "err", err)
			http.Error(w, figerrors.UserMessage(err), http.StatusInternalServerError)
			return
		}
		if fig == nil {
			http.Error(w, "no engine for "+body.Engine+", or rendering failed", http.StatusUnprocessableEntity)
			return
		}

		asset, ok := assets.Get(fig.Target)
		if !ok {
			http.Error(w, "internal: asset missing", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", asset.MIMEType)
		w.Header().Set("X-Figure-Name", fig.Target)
		_, _ = w.Write(asset.Data)
	})

	return r
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, req)
	})
}
