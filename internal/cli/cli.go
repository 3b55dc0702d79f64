package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bookrack/pkg/cache"
	"github.com/matzehuels/bookrack/pkg/observability"
	"github.com/matzehuels/bookrack/pkg/pipeline"
)

const (
	appName = "bookrack"

	// redisEnv is read when --redis is not given.
	redisEnv = "BOOKRACK_REDIS_URL"
)

// Log levels for main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the state shared by all commands.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level every pipeline,
// cache and HTTP event is logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.Install(observability.NewLogHooks(c.Logger))
	}
}

// cacheFlags select the cache backend of a command.
type cacheFlags struct {
	noCache  bool
	refresh  bool
	redisURL string
}

func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	store, err := newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks, in order: nothing (--no-cache), redis (--redis or
// $BOOKRACK_REDIS_URL), the file cache. Without a home directory it
// falls back to nothing.
func newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	url := flags.redisURL
	if url == "" {
		url = os.Getenv(redisEnv)
	}
	if url != "" {
		return cache.NewRedisCache(ctx, url)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir is $XDG_CACHE_HOME/bookrack, or ~/.cache/bookrack.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits "svg, PNG" into ["svg", "png"]. Empty means svg.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
