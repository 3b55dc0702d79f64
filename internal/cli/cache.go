package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/cache"
)

// cacheCommand manages the local file cache. A redis cache is managed with
// redis tooling and expires on its own.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local scene and artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached scene and render",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("locate cache: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
	)
	return cmd
}

func (c *CLI) runCacheClear(cmd *cobra.Command, args []string) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	loggerFromContext(cmd.Context()).Debug("cache cleared", "dir", dir, "entries", n)
	printSuccess("Removed %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}
