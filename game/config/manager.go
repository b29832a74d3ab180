package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

var (
	ErrConfigNotFound = fmt.Errorf("configuration %w", service.ErrNotFound)
	ErrInvalidConfig  = fmt.Errorf("%w: invalid configuration", service.ErrInvalidRequest)
)

// DefaultConfigID is the configuration preferred as default when present
const DefaultConfigID = "classic"

// Manager loads solver configurations from a directory and caches them
type Manager struct {
	configDir     string
	defaultConfig *engine.SolverConfig
	configs       map[string]*engine.SolverConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.SolverConfig),
	}
	m.defaultConfig = m.resolveDefault()

	return m, nil
}

// LoadConfig loads a configuration by id (file name without .json)
func (m *Manager) LoadConfig(name string) (*engine.SolverConfig, error) {
	id, err := configID(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	data, err := os.ReadFile(m.configPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.ParseSolverConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[id] = config
	return config, nil
}

// ListConfigs describes every valid configuration in the directory, sorted by id
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	configs := make([]*service.ConfigInfo, 0, len(entries))
	for _, entry := range entries {
		id, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}

		config, err := m.LoadConfig(id)
		if err != nil {
			log.Warn().Err(err).Str("config", entry.Name()).Msg("skipping invalid config")
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:      entry.Name(),
			ConfigID:      id,
			Name:          config.Name,
			Description:   config.Description,
			BoardSize:     config.BoardSize,
			MinWordLength: config.MinWordLength,
			Dictionary:    config.Dictionary,
		})
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.SolverConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by id
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached configurations and re-resolves the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.SolverConfig)
	m.mu.Unlock()

	def := m.resolveDefault()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
}

// resolveDefault prefers classic.json, then the first valid config, then the
// built-in classic configuration
func (m *Manager) resolveDefault() *engine.SolverConfig {
	if config, err := m.LoadConfig(DefaultConfigID); err == nil {
		return config
	}

	configs, err := m.ListConfigs()
	if err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			return config
		}
	}

	log.Debug().Str("dir", m.configDir).Msg("no usable config found, using built-in default")
	return engine.DefaultSolverConfig()
}

// SaveConfig validates and writes a configuration to <dir>/<name>.json
func (m *Manager) SaveConfig(name string, config *engine.SolverConfig) error {
	id, err := configID(name)
	if err != nil {
		return err
	}
	if config != nil {
		engine.ApplyDefaults(config)
	}
	if err := engine.ValidateSolverConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	log.Info().Str("config", id).Msg("config saved")
	return nil
}

func (m *Manager) configPath(id string) string {
	return filepath.Join(m.configDir, id+".json")
}

// configID strips an optional .json suffix and rejects names that would
// escape the config directory
func configID(name string) (string, error) {
	id := strings.TrimSuffix(name, ".json")
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}
	return id, nil
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
