package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxSizeMB != 50 {
		t.Errorf("expected max size 50, got %d", cfg.Logging.MaxSizeMB)
	}
	if !cfg.Model.StrictTexture {
		t.Error("expected strict_texture to be true by default")
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce 200ms, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "objtool.log"
  max_backups: 9

model:
  strict_texture: false

watch:
  debounce: 1s
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "objtool.log" {
		t.Errorf("expected log file 'objtool.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxBackups != 9 {
		t.Errorf("expected max backups 9, got %d", cfg.Logging.MaxBackups)
	}
	// untouched keys keep their defaults
	if cfg.Logging.MaxSizeMB != 50 {
		t.Errorf("expected max size 50 from defaults, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Model.StrictTexture {
		t.Error("expected strict_texture to be false")
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
model:
  strict_texture: not a bool
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("objtool.yaml", []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find objtool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name:  "debug flag",
			flags: Flags{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "log file flag",
			flags: Flags{LogFile: "/tmp/x.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/x.log" {
					t.Errorf("expected log file /tmp/x.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name:  "lenient texture flag",
			flags: Flags{LenientTexture: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Model.StrictTexture {
					t.Error("expected strict_texture to be false")
				}
			},
		},
		{
			name:  "no flags",
			flags: Flags{},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "info" || !cfg.Model.StrictTexture {
					t.Errorf("expected defaults to be untouched, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			applyFlags(cfg, tt.flags)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
logging:
  level: warn
  log_file: from-file.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(Flags{ConfigPath: configPath, LogFile: "from-flag.log"})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.LogFile != "from-flag.log" {
		t.Errorf("expected log file from flag, got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn from file, got %s", cfg.Logging.Level)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(Flags{ConfigPath: "/nonexistent/config.yaml"}); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Model.StrictTexture = false
	cfg.Watch.Debounce = 750 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Model.StrictTexture || loaded.Watch.Debounce != 750*time.Millisecond {
		t.Errorf("saved config did not round trip: %+v", loaded)
	}
}
