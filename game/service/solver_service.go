package service

import (
	"context"
	"errors"

	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/engine"
)

var (
	// ErrNotFound is matched by every "no such config/dictionary" error
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest is matched by errors caused by bad caller input
	ErrInvalidRequest = errors.New("invalid request")
)

// SolverService defines all solver operations exposed to transports
type SolverService interface {
	// Queries
	Solve(ctx context.Context, req SolveRequest) (*SolveResult, error)
	Anagrams(ctx context.Context, req AnagramRequest) (*AnagramResult, error)

	// Dictionaries
	ListDictionaries(ctx context.Context) ([]dictionary.Info, error)
	GetDictionary(ctx context.Context, name string) (*dictionary.Dictionary, error)
	MergeDictionary(ctx context.Context, name string, words []string) (*MergeResult, error)
	RestoreDictionary(ctx context.Context, name string) (*dictionary.Info, error)
	AddCandidates(ctx context.Context, name string, req CandidatesRequest) (*CandidatesResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.SolverConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.SolverConfig) error
}

// ConfigManager handles solver configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.SolverConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.SolverConfig
	SaveConfig(name string, config *engine.SolverConfig) error
}

// DictionaryManager handles word list storage
type DictionaryManager interface {
	Get(name string) (*dictionary.Dictionary, error)
	List() ([]dictionary.Info, error)
	Merge(name string, words []string) (*dictionary.Dictionary, int, error)
	Restore(name string) (*dictionary.Dictionary, error)
}
