package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/cache"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/io"
	"github.com/matzehuels/bookrack/pkg/observability"
	"github.com/matzehuels/bookrack/pkg/pipeline"
	"github.com/matzehuels/bookrack/pkg/render"
	"github.com/matzehuels/bookrack/pkg/scene"
)

const (
	defaultAddr       = "127.0.0.1:8080"
	serveKeyPrefix    = "serve:"
	requestTimeout    = 30 * time.Second
	shutdownTimeout   = 5 * time.Second
	requestIDHeader   = "X-Request-ID"
	maxBooksPerRender = 500
)

// contentTypes maps artifact formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// serveCommand starts an HTTP server that renders racks on request.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		input  string
		caches cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview racks over HTTP",
		Long: `Serve rendered racks over HTTP.

Endpoints:
  GET /healthz              liveness probe
  GET /scene.json           effective scene configuration
  GET /rack.{format}        rack as svg, png, pdf or json

Query parameters seed, books, colormap, background, flat, scale and margin
override the base scene (the default scene, or --scene).`,
		Example: `  bookrack serve --addr :8080
  curl 'localhost:8080/rack.svg?seed=7&books=12'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := scene.Default()
			if input != "" {
				var err error
				if base, err = io.ImportScene(input); err != nil {
					return err
				}
			}
			return c.runServe(cmd.Context(), addr, base, caches)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&input, "scene", "", "base scene file")
	cmd.Flags().BoolVar(&caches.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&caches.redisURL, "redis", "", "redis url for a shared cache (default $"+redisEnv+")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, base scene.Config, caches cacheFlags) error {
	logger := loggerFromContext(ctx)

	store, err := newCache(ctx, caches)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, serveKeyPrefix), logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, base, logger).routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	printSuccess("Serving on %s", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("Rack", "/rack.svg  /rack.png  /rack.pdf  /rack.json")
	printKeyValue("Scene", "/scene.json")
	if !render.ConverterAvailable() {
		printWarning("%s not found: /rack.pdf is unavailable", render.ConverterBinary)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// server holds the handlers of the preview server.
type server struct {
	runner *pipeline.Runner
	base   scene.Config
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, base scene.Config, logger *log.Logger) *server {
	return &server{runner: runner, base: base, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/scene.json", s.handleScene)
	r.Get("/rack.{format}", s.handleRack)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *server) handleScene(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	if err := io.WriteScene(*opts.Scene, w, io.FormatJSON); err != nil {
		s.logger.Error("write scene", "err", err)
	}
}

func (s *server) handleRack(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "no such artifact"))
		return
	}

	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("request", w.Header().Get(requestIDHeader))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-ID", result.RunID)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	_, _ = w.Write(result.Artifacts[format])
}

// options builds pipeline options from the base scene and query overrides.
func (s *server) options(q url.Values) (pipeline.Options, error) {
	cfg := s.base
	var opts pipeline.Options

	for key, apply := range map[string]func(string) error{
		"seed": func(v string) (err error) {
			cfg.Seed, err = strconv.ParseUint(v, 10, 64)
			return err
		},
		"books": func(v string) (err error) {
			cfg.Books, err = strconv.Atoi(v)
			return err
		},
		"colormap":   func(v string) error { cfg.ColorMap = v; return nil },
		"background": func(v string) error { cfg.Background = v; return nil },
		"flat": func(v string) (err error) {
			cfg.Flat, err = strconv.ParseBool(v)
			return err
		},
		"scale": func(v string) (err error) {
			opts.Scale, err = strconv.ParseFloat(v, 64)
			return err
		},
		"margin": func(v string) (err error) {
			opts.Margin, err = strconv.ParseFloat(v, 64)
			return err
		},
	} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		if err := apply(v); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", key)
		}
	}

	if cfg.Books > maxBooksPerRender {
		return opts, errors.New(errors.ErrCodeInvalidInput, "books must be at most %d, got %d", maxBooksPerRender, cfg.Books)
	}
	if err := cfg.Validate(); err != nil {
		return opts, err
	}
	opts.Scene = &cfg
	return opts, nil
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: w.Header().Get(requestIDHeader),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// requestID tags every request with a uuid, reusing one sent by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
