package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSolverConfig returns the classic 4x4 configuration
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		Name:          "classic",
		Description:   "Classic 4x4 word hunt",
		BoardSize:     DefaultBoardSize,
		MinWordLength: DefaultMinWordLength,
		Dictionary:    DefaultDictionary,
	}
}

// ApplyDefaults fills zero-valued fields with the classic defaults
func ApplyDefaults(config *SolverConfig) {
	if config.BoardSize == 0 {
		config.BoardSize = DefaultBoardSize
	}
	if config.MinWordLength == 0 {
		config.MinWordLength = DefaultMinWordLength
	}
	if config.Dictionary == "" {
		config.Dictionary = DefaultDictionary
	}
}

// ValidateSolverConfig validates a solver configuration
func ValidateSolverConfig(config *SolverConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, config.BoardSize)
	}
	if config.MinWordLength < MinWordLength {
		return fmt.Errorf("config validation: min_word_length must be at least %d, got %d",
			MinWordLength, config.MinWordLength)
	}
	if config.Workers < 0 || config.Workers > MaxWorkers {
		return fmt.Errorf("config validation: workers must be between 0 and %d, got %d", MaxWorkers, config.Workers)
	}

	if strings.ContainsAny(config.Dictionary, `/\`) || strings.Contains(config.Dictionary, "..") {
		return fmt.Errorf("config validation: dictionary must be a plain name, got %q", config.Dictionary)
	}

	return nil
}

// LoadSolverConfig loads a solver configuration from a JSON file
func LoadSolverConfig(filename string) (*SolverConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	return ParseSolverConfig(data)
}

// ParseSolverConfig decodes, defaults and validates a JSON configuration
func ParseSolverConfig(data []byte) (*SolverConfig, error) {
	var config SolverConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	ApplyDefaults(&config)
	if err := ValidateSolverConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
