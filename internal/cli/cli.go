// Package cli implements the mentionet command-line interface.
//
// Commands cover the full tweet-network workflow: fetch tweets into the
// document store, analyze the stored corpus into a mention graph with
// metrics and exports, browse rankings interactively, verify the stored
// count, and serve the analysis over HTTP. All commands support --verbose
// for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jselig/mentionet/pkg/buildinfo"
	"github.com/jselig/mentionet/pkg/cache"
	"github.com/jselig/mentionet/pkg/config"
	"github.com/jselig/mentionet/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "mentionet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the config file location (--config).
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mentionet",
		Short:        "Mentionet maps who mentions whom on Twitter",
		Long: `Mentionet fetches tweets matching a search query, stores them in MongoDB,
and builds the directed mention network between participants: who mentions
whom, how often, and who sits at the center of the conversation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/mentionet/config.toml)")

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.topCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file plus environment overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newStore connects to the configured MongoDB.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (store.TweetStore, error) {
	return store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
}

// newCache picks the cache backend: disabled, shared Redis when
// configured, or the local file cache.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/mentionet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
