package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func clientFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	ClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INVENTORY_API_URL", "")
	t.Setenv("API_URL", "")

	cfg, err := Load(clientFlagSet(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no timeout, got %v", cfg.Timeout)
	}
	if cfg.APIURL != "" {
		t.Errorf("expected empty api url, got %q", cfg.APIURL)
	}
}

func TestLoad_LegacyEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INVENTORY_API_URL", "")
	t.Setenv("API_URL", "http://192.168.1.102:5000")

	cfg, err := Load(clientFlagSet(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://192.168.1.102:5000" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
}

func TestLoad_FlagBeatsEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	file := "api_url: http://file:5000\ntimeout: 3s\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "inventory.yaml"), []byte(file), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVENTORY_API_URL", "http://env:5000")

	cfg, err := Load(clientFlagSet(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://env:5000" {
		t.Errorf("expected env to beat file, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 3*time.Second || cfg.LogLevel != "debug" {
		t.Errorf("expected file values, got %+v", cfg)
	}

	cfg, err = Load(clientFlagSet(t, "--api-url", "http://flag:5000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag:5000" {
		t.Errorf("expected flag to win, got %q", cfg.APIURL)
	}
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	if _, err := Load(clientFlagSet(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"))); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoad_ServerFlags(t *testing.T) {
	chdir(t, t.TempDir())
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	ServerFlags(fs)
	if err := fs.Parse([]string{"--addr", ":9000", "--seed=false", "--rate-limit", "2.5"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Seed || cfg.RateLimit != 2.5 || cfg.RateBurst != 5 {
		t.Errorf("unexpected server config %+v", cfg)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
