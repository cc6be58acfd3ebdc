package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withTestDirs points the XDG dirs at temp dirs so tests never touch the
// real config.
func withTestDirs(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	withTestDirs(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultFilter != "all" {
		t.Fatalf("DefaultFilter = %q, want all", cfg.General.DefaultFilter)
	}
	if !cfg.General.OnOpenCheck {
		t.Fatal("OnOpenCheck default is off")
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Fatalf("Backend = %q, want json", cfg.Storage.Backend)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withTestDirs(t)

	cfg := DefaultConfig()
	cfg.General.DefaultFilter = "unpaid"
	cfg.Storage.Backend = BackendSQLite
	cfg.Notifications.Enabled = true
	cfg.Appearance.Theme = "terminal"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.General.DefaultFilter != "unpaid" {
		t.Fatalf("DefaultFilter = %q", loaded.General.DefaultFilter)
	}
	if loaded.Storage.Backend != BackendSQLite {
		t.Fatalf("Backend = %q", loaded.Storage.Backend)
	}
	if !loaded.Notifications.Enabled {
		t.Fatal("Notifications.Enabled lost")
	}
	if loaded.Appearance.Theme != "terminal" {
		t.Fatalf("Theme = %q", loaded.Appearance.Theme)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	withTestDirs(t)

	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	partial := "[general]\ndefault_filter = \"due\"\n"
	if err := os.WriteFile(ConfigPath(), []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultFilter != "due" {
		t.Fatalf("DefaultFilter = %q, want due", cfg.General.DefaultFilter)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Fatalf("partial file dropped Backend default, got %q", cfg.Storage.Backend)
	}
	if cfg.Daemon.Addr != "127.0.0.1:8791" {
		t.Fatalf("partial file dropped Daemon default, got %q", cfg.Daemon.Addr)
	}
}

func TestStorePath(t *testing.T) {
	withTestDirs(t)

	cfg := DefaultConfig()
	if got := cfg.StorePath(); filepath.Base(got) != "bills.json" {
		t.Fatalf("json store path = %q", got)
	}

	cfg.Storage.Backend = BackendSQLite
	if got := cfg.StorePath(); filepath.Base(got) != "bills.db" {
		t.Fatalf("sqlite store path = %q", got)
	}

	cfg.Storage.Path = "/tmp/custom.db"
	if got := cfg.StorePath(); got != "/tmp/custom.db" {
		t.Fatalf("explicit path not honored: %q", got)
	}
}
