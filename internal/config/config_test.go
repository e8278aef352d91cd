package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9000"
  postgresDsn: "host=db user=postgres dbname=address"
  redisAddr: "redis:6379"
  redisDB: 2
  enableTrace: true
  traceEndpoint: "otel:4318"
geocoder:
  baseURL: "http://geocoder.local"
  timeout: 5s
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if conf.Server.Listen != ":9000" {
		t.Fatalf("unexpected listen %q", conf.Server.Listen)
	}
	if conf.Server.RedisDB != 2 || conf.Server.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected redis config %+v", conf.Server)
	}
	if !conf.Server.EnableTrace || conf.Server.TraceEndpoint != "otel:4318" {
		t.Fatalf("unexpected trace config %+v", conf.Server)
	}
	if conf.Geocoder.BaseURL != "http://geocoder.local" {
		t.Fatalf("unexpected geocoder url %q", conf.Geocoder.BaseURL)
	}
	if conf.Geocoder.Timeout != 5*time.Second {
		t.Fatalf("unexpected geocoder timeout %s", conf.Geocoder.Timeout)
	}
	if conf.Geocoder.UserAgent != defaultGeocoderAgent {
		t.Fatalf("expected default user agent got %q", conf.Geocoder.UserAgent)
	}
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	path := writeConfig(t, "server: {}\n")
	t.Setenv("ADDRESSAPI_POSTGRES_DSN", "host=env")

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if conf.Server.PostgresDsn != "host=env" {
		t.Fatalf("expected env dsn got %q", conf.Server.PostgresDsn)
	}
	if conf.Server.Listen != defaultListen || conf.Server.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", conf.Server)
	}
	if conf.Geocoder.Timeout != defaultGeocoderTimeout || conf.Geocoder.BaseURL != defaultGeocoderURL {
		t.Fatalf("geocoder defaults not applied: %+v", conf.Geocoder)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
