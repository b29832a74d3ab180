package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

func createValidConfig() *engine.SolverConfig {
	return &engine.SolverConfig{
		Name:          "Test Config",
		Description:   "Test configuration",
		BoardSize:     4,
		MinWordLength: 3,
		Dictionary:    "default",
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.SolverConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "classic", createValidConfig())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory uses built-in default", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got error: %v", err)
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Fatal("Expected default config to be available")
		}
		if defaultConfig.BoardSize != engine.DefaultBoardSize || defaultConfig.MinWordLength != engine.DefaultMinWordLength {
			t.Errorf("Expected built-in classic defaults, got %+v", defaultConfig)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	bigConfig := createValidConfig()
	bigConfig.Name = "Big"
	bigConfig.BoardSize = 5
	bigConfig.MinWordLength = 4
	writeConfigFile(t, dir, "big", bigConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("big")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Big" {
			t.Errorf("Expected config name 'Big', got '%s'", config.Name)
		}
		if config.BoardSize != 5 {
			t.Errorf("Expected board size 5, got %d", config.BoardSize)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("big.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Big" {
			t.Errorf("Expected config name 'Big', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("big")
		config2, err := manager.LoadConfig("big")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
		if !errors.Is(err, service.ErrNotFound) {
			t.Errorf("Expected ErrConfigNotFound to match service.ErrNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{"name": ""}`), 0644); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "malformed.json"), []byte(`{"name": "Malformed", invalid json}`), 0644); err != nil {
			t.Fatalf("Failed to write malformed config: %v", err)
		}

		if _, err := manager.LoadConfig("malformed"); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("reject path traversal", func(t *testing.T) {
		for _, name := range []string{"../secret", "a/b", ""} {
			if _, err := manager.LoadConfig(name); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig for %q, got %v", name, err)
			}
		}
	})
}

func TestManager_GetDefault(t *testing.T) {
	t.Run("prefers classic", func(t *testing.T) {
		dir := t.TempDir()
		other := createValidConfig()
		other.Name = "Aardvark"
		writeConfigFile(t, dir, "aardvark", other)

		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Classic" {
			t.Errorf("Expected default 'Classic', got '%s'", got)
		}
	})

	t.Run("falls back to first valid config", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "aaa.json"), []byte(`{"name": "Broken", "board_size": 99}`), 0644); err != nil {
			t.Fatalf("Failed to write broken config: %v", err)
		}
		fallback := createValidConfig()
		fallback.Name = "Fallback"
		writeConfigFile(t, dir, "bbb", fallback)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Fallback" {
			t.Errorf("Expected default 'Fallback', got '%s'", got)
		}
	})
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	big := createValidConfig()
	big.Name = "Big"
	big.BoardSize = 5
	writeConfigFile(t, dir, "big", big)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("big"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Big" {
		t.Errorf("Expected default 'Big', got '%s'", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	classic := createValidConfig()
	classic.Name = "Classic"
	writeConfigFile(t, dir, "classic", classic)

	big := createValidConfig()
	big.Name = "Big"
	big.BoardSize = 5
	big.Dictionary = "large"
	writeConfigFile(t, dir, "big", big)

	// Non-JSON files, directories and invalid configs are skipped
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a config"), 0644); err != nil {
		t.Fatalf("Failed to write readme: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0644); err != nil {
		t.Fatalf("Failed to write broken config: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}

	if configs[0].ConfigID != "big" || configs[1].ConfigID != "classic" {
		t.Errorf("Expected configs sorted by id, got %s, %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[0].Filename != "big.json" || configs[0].BoardSize != 5 || configs[0].Dictionary != "large" {
		t.Errorf("Unexpected config info: %+v", configs[0])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := &engine.SolverConfig{Name: "Quick", BoardSize: 3}
	if err := manager.SaveConfig("quick", config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "quick.json")); err != nil {
		t.Errorf("Expected quick.json to be written: %v", err)
	}

	// Fresh manager reads it back from disk with defaults applied
	reloaded, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	loaded, err := reloaded.LoadConfig("quick")
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.BoardSize != 3 || loaded.MinWordLength != engine.DefaultMinWordLength {
		t.Errorf("Unexpected saved config: %+v", loaded)
	}

	invalid := &engine.SolverConfig{Name: "Bad", BoardSize: 50}
	if err := manager.SaveConfig("bad", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad name, got %v", err)
	}
	if err := manager.SaveConfig("bad", invalid); !errors.Is(err, service.ErrInvalidRequest) {
		t.Errorf("Expected invalid configs to be invalid requests, got %v", err)
	}
}

func TestManager_SaveConfigWriteFailure(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "locked.json"), 0755); err != nil {
		t.Fatalf("Failed to create blocking directory: %v", err)
	}

	err = manager.SaveConfig("locked", createValidConfig())
	if err == nil {
		t.Fatal("Expected write failure")
	}
	if errors.Is(err, service.ErrInvalidRequest) || errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected a plain I/O error, got %v", err)
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	updated := createValidConfig()
	updated.Name = "Updated"
	writeConfigFile(t, dir, "classic", updated)

	// Still cached
	config, _ := manager.LoadConfig("classic")
	if config.Name != "Test Config" {
		t.Errorf("Expected cached config, got '%s'", config.Name)
	}

	manager.RefreshCache()

	config, err = manager.LoadConfig("classic")
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if config.Name != "Updated" {
		t.Errorf("Expected reloaded config 'Updated', got '%s'", config.Name)
	}
	if manager.GetDefault().Name != "Updated" {
		t.Errorf("Expected refreshed default, got '%s'", manager.GetDefault().Name)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = "Config" + string(rune('0'+i))
		writeConfigFile(t, dir, "config"+string(rune('0'+i)), config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			configName := "config" + string(rune('0'+((id%5)+1)))
			if _, err := manager.LoadConfig(configName); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	if manager.Count() != 6 {
		t.Errorf("Expected 6 configs in cache, got %d", manager.Count())
	}
}
