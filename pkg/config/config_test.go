package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/viewdock/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvRedisAddr, EnvMongoURI, EnvAddr, EnvConfig} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d := Defaults()
	if cfg.Layout != d.Layout || cfg.Cache != d.Cache || cfg.Server != d.Server {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[layout]
width = 1920
height = 1080

[render]
formats = ["svg", "png"]
scale = 2
labels = true
png_engine = "rsvg"

[cache]
backend = "none"
prefix = "staging:"

[server]
addr = "127.0.0.1:9000"
sessions = "file"
session_ttl = "36h"
session_dir = "/tmp/sessions"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Layout.Width != 1920 || cfg.Layout.Height != 1080 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Scale != 2 || !cfg.Render.Labels {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Render.Background != defaultBackground {
		t.Errorf("Background = %q, want default", cfg.Render.Background)
	}
	if cfg.Render.PNGEngine != "rsvg" {
		t.Errorf("PNGEngine = %q, want rsvg", cfg.Render.PNGEngine)
	}
	if cfg.Cache.Backend != CacheNone || cfg.Cache.TTL != defaultCacheTTL || cfg.Cache.Prefix != "staging:" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.Sessions != SessionsFile {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.SessionTTL != 36*time.Hour {
		t.Errorf("SessionTTL = %v, want 36h", cfg.Server.SessionTTL)
	}
}

func TestLoadRejects(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[layout\nwidth = 1"},
		{"unknown key", "[layout]\ndepth = 3"},
		{"unknown cache backend", "[cache]\nbackend = \"memcached\""},
		{"unknown session backend", "[server]\nsessions = \"sqlite\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"mongo without uri", "[server]\nsessions = \"mongo\""},
		{"bad scale", "[render]\nscale = 100"},
		{"unknown png engine", "[render]\npng_engine = \"cairo\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want %v", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvMongoURI, "mongodb://mongo:27017")
	t.Setenv(EnvAddr, ":9999")

	cfg, err := Load(writeConfig(t, "[cache]\nbackend = \"redis\"\n[server]\nsessions = \"mongo\"\naddr = \":1234\""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Server.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("MongoURI = %q", cfg.Server.MongoURI)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Addr)
	}
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if path != filepath.Join("/xdg", "viewdock", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}

	t.Setenv(EnvConfig, "/etc/viewdock.toml")
	if path, _ := DefaultPath(); path != "/etc/viewdock.toml" {
		t.Errorf("DefaultPath() = %q, want VIEWDOCK_CONFIG", path)
	}
}

func TestLoadDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Server.Sessions != SessionsMemory {
		t.Errorf("Sessions = %q, want memory", cfg.Server.Sessions)
	}
}
