// Package config provides solver configuration management.
//
// The config package handles:
//   - Loading solver configurations from JSON files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Each file in the configs directory holds one engine.SolverConfig. The file
// name without .json is the configuration id used by the API:
//
//	{
//	  "name": "Classic",
//	  "description": "Classic 4x4 word hunt",
//	  "board_size": 4,
//	  "min_word_length": 3,
//	  "dictionary": "default"
//	}
//
// Omitted fields take the classic defaults (4x4, three letters, "default").
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal().Err(err).Msg("config")
//	}
//
//	big, err := manager.LoadConfig("big")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default is classic.json when it exists, otherwise the first valid
// configuration, otherwise the built-in classic configuration.
package config
