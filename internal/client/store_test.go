package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	if err := s.Set(KeyDarkMode, true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set(KeyCurrentTheme, "futuristic"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}

	var dark bool
	if ok, err := reopened.Get(KeyDarkMode, &dark); err != nil || !ok {
		t.Fatalf("get darkMode: ok=%v err=%v", ok, err)
	}
	if !dark {
		t.Error("expected darkMode true")
	}

	var theme string
	if ok, _ := reopened.Get(KeyCurrentTheme, &theme); !ok || theme != "futuristic" {
		t.Errorf("expected theme futuristic, got %q (present=%v)", theme, ok)
	}
}

func TestStore_MissingKey(t *testing.T) {
	s, _ := OpenStore(filepath.Join(t.TempDir(), "state.json"))

	var v string
	ok, err := s.Get("nonexistent", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing key to report not present")
	}
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	os.WriteFile(path, []byte("{not json"), 0o600)

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("expected corrupt store to open empty, got error: %v", err)
	}

	var v bool
	if ok, _ := s.Get(KeyDarkMode, &v); ok {
		t.Error("expected empty store after corrupt file")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:3000" {
		t.Errorf("unexpected default server URL %q", cfg.ServerURL)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("server_url = \"https://chat.example.com\"\nprobe_interval = \"30s\"\n"), 0o600)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "https://chat.example.com" {
		t.Errorf("unexpected server URL %q", cfg.ServerURL)
	}
	if cfg.ProbeInterval.Duration.Seconds() != 30 {
		t.Errorf("unexpected probe interval %v", cfg.ProbeInterval)
	}
}
