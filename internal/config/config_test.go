package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Assets.SearchDirs) == 0 {
		t.Error("default config should search somewhere")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tmxtool.yaml")

	content := `
assets:
  search_dirs:
    - ./maps
    - ./tilesets
logging:
  level: debug
  log_file: tmxtool.log
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if len(cfg.Assets.SearchDirs) != 2 || cfg.Assets.SearchDirs[0] != "./maps" {
		t.Errorf("search dirs = %v", cfg.Assets.SearchDirs)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "tmxtool.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFile_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tmxtool.yaml")

	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	// Untouched sections keep their defaults.
	if len(cfg.Assets.SearchDirs) == 0 {
		t.Error("defaults lost on partial override")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tmxtool.yaml")

	if err := os.WriteFile(path, []byte("assets: ["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if err := loadFromFile(Default(), path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Assets.SearchDirs = []string{"a", "b"}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Assets.SearchDirs) != 2 || back.Assets.SearchDirs[1] != "b" {
		t.Errorf("round trip lost data: %+v", back)
	}
}
