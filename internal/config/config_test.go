package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUDO_PASSWORD", "secret")
	// Clear any ambient overrides.
	for _, key := range []string{"PORT", "DB_PATH", "MOTD_PATH", "SITE_CONFIG_PATH", "POLL_INTERVAL_MS", "FRONTEND_URL"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.DBPath != "./data/console.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false with no frontend URL, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SUDO_PASSWORD", "secret")
	t.Setenv("PORT", "8080")
	t.Setenv("POLL_INTERVAL_MS", "500")
	t.Setenv("FRONTEND_URL", "https://lkev.in")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms", cfg.PollInterval)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production frontend URL")
	}
}

func TestLoadRequiresSudoPassword(t *testing.T) {
	os.Unsetenv("SUDO_PASSWORD")
	if _, err := Load(); err == nil {
		t.Fatal("Load() without SUDO_PASSWORD: error = nil, want error")
	}
}

func TestLoadBadPollIntervalFallsBack(t *testing.T) {
	t.Setenv("SUDO_PASSWORD", "secret")
	t.Setenv("POLL_INTERVAL_MS", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s fallback", cfg.PollInterval)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port: "3000", DBPath: "db", MotdPath: "motd", SitePath: "site",
		SudoPassword: "pw", PollInterval: time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on complete config = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"empty motd path", func(c *Config) { c.MotdPath = "" }},
		{"empty site path", func(c *Config) { c.SitePath = "" }},
		{"empty sudo password", func(c *Config) { c.SudoPassword = "" }},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"links": {
			"gh": {"name": "GitHub", "url": "https://github.com/kev1nl1u", "redirect": true},
			"fdb": {"name": "FermiDB", "url": "https://fermidb.lkev.in/", "hidden": true, "sudoOnly": true}
		},
		"weatherCodes": {"0": "Clear sky"},
		"terminal": {"storageKey": "custom_key", "maxHistorySize": 50}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	site, err := LoadSite(path)
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}
	if site.Links["gh"].Name != "GitHub" || !site.Links["gh"].Redirect {
		t.Errorf("links = %+v", site.Links)
	}
	if !site.Links["fdb"].SudoOnly {
		t.Error("fdb not parsed as sudo-only")
	}
	if site.Terminal.StorageKey != "custom_key" || site.Terminal.MaxHistorySize != 50 {
		t.Errorf("terminal settings = %+v", site.Terminal)
	}
}

func TestLoadSiteDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	site, err := LoadSite(path)
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}
	if site.Links == nil {
		t.Error("Links = nil, want empty map")
	}
	if site.Terminal.StorageKey != "lkevin_command_history" {
		t.Errorf("StorageKey = %q, want default", site.Terminal.StorageKey)
	}
	if site.Terminal.MaxHistorySize != 100 {
		t.Errorf("MaxHistorySize = %d, want 100", site.Terminal.MaxHistorySize)
	}
}

func TestLoadSiteMissingFile(t *testing.T) {
	if _, err := LoadSite(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("LoadSite() on missing file: error = nil, want error")
	}
}
