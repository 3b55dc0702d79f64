package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bookrack/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(home, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	fc, err := cache.NewFileCache(filepath.Join(home, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"scene:a", "scene:b", "serve:artifact:c"} {
		if err := fc.Set(ctx, key, []byte("x"), cache.SceneTTL); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, key := range []string{"scene:a", "scene:b", "serve:artifact:c"} {
		if _, ok, _ := fc.Get(ctx, key); ok {
			t.Errorf("%s survived cache clear", key)
		}
	}
}

func TestCacheClearCommandEmpty(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "missing"))
	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)); !os.IsNotExist(err) {
		t.Error("cache clear should not create the directory")
	}
}

func TestNewCacheSelection(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(redisEnv, "")

	c, err := newCache(context.Background(), cacheFlags{noCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("noCache: got %T, want *cache.NullCache", c)
	}

	c, err = newCache(context.Background(), cacheFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("default: got %T, want *cache.FileCache", c)
	}

	if _, err := newCache(context.Background(), cacheFlags{redisURL: "://bad"}); err == nil {
		t.Error("expected error for malformed redis url")
	}
}
