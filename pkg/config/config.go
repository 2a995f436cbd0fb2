// Package config loads viewdock's user configuration.
//
// The configuration lives in $XDG_CONFIG_HOME/viewdock/config.toml, or
// ~/.config/viewdock/config.toml when XDG_CONFIG_HOME is unset. A missing
// file is not an error; [Defaults] is used instead.
//
//	[layout]
//	width = 1024
//	height = 768
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2
//	labels = true
//	background = "#000000"
//	png_engine = "rsvg"   # imaging or rsvg
//
//	[cache]
//	backend = "redis"     # file, redis or none
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	prefix = "staging:"   # namespaces keys in a shared backend
//
//	[server]
//	addr = ":8080"
//	sessions = "mongo"    # memory, file, redis or mongo
//	session_ttl = "24h"
//	mongo_uri = "mongodb://localhost:27017"
//
// Environment variables override the file: VIEWDOCK_REDIS_ADDR,
// VIEWDOCK_MONGO_URI and VIEWDOCK_ADDR. Command-line flags override both.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/viewdock/pkg/errors"
)

// Environment variables read by [Load].
const (
	EnvConfig    = "VIEWDOCK_CONFIG"
	EnvRedisAddr = "VIEWDOCK_REDIS_ADDR"
	EnvMongoURI  = "VIEWDOCK_MONGO_URI"
	EnvAddr      = "VIEWDOCK_ADDR"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Session backends.
const (
	SessionsMemory = "memory"
	SessionsFile   = "file"
	SessionsRedis  = "redis"
	SessionsMongo  = "mongo"
)

const (
	defaultWidth      = 1024.0
	defaultHeight     = 768.0
	defaultScale      = 1.0
	defaultBackground = "#000000"
	defaultCacheTTL   = 7 * 24 * time.Hour
	defaultAddr       = ":8080"
	defaultSessionTTL = 24 * time.Hour
	defaultMongoDB    = "viewdock"
)

// Config represents config.toml.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds the bounds of newly created workspaces.
type LayoutConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Scale      float64  `toml:"scale"`
	Labels     bool     `toml:"labels"`
	Background string   `toml:"background"`
	Inset      bool     `toml:"inset"`
	PNGEngine  string   `toml:"png_engine"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	Prefix    string        `toml:"prefix"`
}

// ServerConfig configures `viewdock serve`.
type ServerConfig struct {
	Addr          string        `toml:"addr"`
	Sessions      string        `toml:"sessions"`
	SessionTTL    time.Duration `toml:"session_ttl"`
	SessionDir    string        `toml:"session_dir"`
	ScriptsDir    string        `toml:"scripts_dir"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Layout: LayoutConfig{Width: defaultWidth, Height: defaultHeight},
		Render: RenderConfig{
			Formats:    []string{"svg"},
			Scale:      defaultScale,
			Background: defaultBackground,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     defaultCacheTTL,
		},
		Server: ServerConfig{
			Addr:          defaultAddr,
			Sessions:      SessionsMemory,
			SessionTTL:    defaultSessionTTL,
			MongoDatabase: defaultMongoDB,
		},
	}
}

// DefaultPath returns the config file path. VIEWDOCK_CONFIG wins over
// $XDG_CONFIG_HOME/viewdock/config.toml, which wins over
// ~/.config/viewdock/config.toml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "viewdock", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "viewdock", "config.toml"), nil
}

// LoadDefault loads the file at [DefaultPath].
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return applyEnv(Defaults()), nil
	}
	return Load(path)
}

// Load reads the config at path, fills unset fields with defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(Defaults()), nil
		}
		return Defaults(), errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Defaults(), errors.New(errors.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String())
	}
	applyDefaults(&cfg)
	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Defaults(), err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Layout.Width <= 0 {
		cfg.Layout.Width = d.Layout.Width
	}
	if cfg.Layout.Height <= 0 {
		cfg.Layout.Height = d.Layout.Height
	}
	if len(cfg.Render.Formats) == 0 {
		cfg.Render.Formats = d.Render.Formats
	}
	if cfg.Render.Scale == 0 {
		cfg.Render.Scale = d.Render.Scale
	}
	if strings.TrimSpace(cfg.Render.Background) == "" {
		cfg.Render.Background = d.Render.Background
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = d.Cache.Backend
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = d.Cache.TTL
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = d.Server.Addr
	}
	if cfg.Server.Sessions == "" {
		cfg.Server.Sessions = d.Server.Sessions
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = d.Server.SessionTTL
	}
	if cfg.Server.MongoDatabase == "" {
		cfg.Server.MongoDatabase = d.Server.MongoDatabase
	}
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		cfg.Server.MongoURI = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	return cfg
}

// Validate checks backend names and the settings each backend requires.
func (c Config) Validate() error {
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend: unknown backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if !slices.Contains([]string{SessionsMemory, SessionsFile, SessionsRedis, SessionsMongo}, c.Server.Sessions) {
		return errors.New(errors.ErrCodeInvalidInput, "server.sessions: unknown backend %q (must be one of: memory, file, redis, mongo)", c.Server.Sessions)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Server.Sessions == SessionsRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for redis sessions")
	}
	if !slices.Contains([]string{"", "imaging", "rsvg"}, c.Render.PNGEngine) {
		return errors.New(errors.ErrCodeInvalidInput, "render.png_engine: unknown engine %q (must be imaging or rsvg)", c.Render.PNGEngine)
	}
	if c.Server.Sessions == SessionsMongo && c.Server.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.mongo_uri is required for mongo sessions")
	}
	return errors.ValidateScale(c.Render.Scale)
}
