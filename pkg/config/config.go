// Package config loads mentionet configuration from a TOML file with
// environment variable overrides.
//
// The file lives at ~/.config/mentionet/config.toml by default:
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//	database = "demo"
//	collection = "tweet_collection"
//
//	[twitter]
//	bearer_token = "..."
//
//	[redis]
//	addr = "localhost:6379"
//
// Environment variables take precedence over the file so deployments can
// keep secrets out of it. Both the current and the older variable names
// for the Mongo URI and the bearer token are accepted.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// appName is used for the default config directory.
const appName = "mentionet"

// Mongo holds document store settings.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Twitter holds API credentials.
type Twitter struct {
	BearerToken string `toml:"bearer_token"`
}

// Redis holds optional shared-cache settings. A non-empty Addr switches
// the fetch cache from the local file backend to Redis.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Config is the complete mentionet configuration.
type Config struct {
	Mongo   Mongo   `toml:"mongo"`
	Twitter Twitter `toml:"twitter"`
	Redis   Redis   `toml:"redis"`
}

// DefaultPath returns the default config file location
// (~/.config/mentionet/config.toml, honoring XDG_CONFIG_HOME).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path (or the default location when path is
// empty) and applies environment overrides. A missing file is not an
// error: the result is then driven entirely by the environment.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. The older
// variable names (MONGODB_CONNECT, TWITTER_API_KEY) are kept for
// compatibility with existing deployments.
func (c *Config) applyEnv() {
	if v := firstEnv("MONGODB_URI", "MONGODB_CONNECT"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MENTIONET_MONGO_DATABASE"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("MENTIONET_MONGO_COLLECTION"); v != "" {
		c.Mongo.Collection = v
	}
	if v := firstEnv("TWITTER_BEARER_TOKEN", "TWITTER_API_KEY"); v != "" {
		c.Twitter.BearerToken = v
	}
	if v := os.Getenv("MENTIONET_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("MENTIONET_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("MENTIONET_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
