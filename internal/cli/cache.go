package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the encoded symbol cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				printInfo("No cache directory configured")
				return nil
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			if expired {
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				n, err := fc.Prune(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Removed %d expired entries", n)
				return nil
			}

			count, err := clearDir(dir)
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached symbols", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or unreadable entries")
	return cmd
}

// clearDir removes every file below dir and then the emptied subdirectories,
// keeping dir itself. Unremovable entries are skipped.
func clearDir(dir string) (int, error) {
	count := 0
	var subdirs []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if d.IsDir() {
			subdirs = append(subdirs, path)
			return nil
		}
		if os.Remove(path) == nil {
			count++
		}
		return nil
	})
	// deepest first
	for i := len(subdirs) - 1; i >= 0; i-- {
		_ = os.Remove(subdirs[i])
	}
	return count, err
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, c.Config.Cache.Dir)
			return nil
		},
	}
}
