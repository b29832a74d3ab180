package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/word-hunt-solver/game/anagram"
	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/engine"
)

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	configs      ConfigManager
	dictionaries DictionaryManager
	rules        dictionary.Rules
}

// Option customizes the solver service
type Option func(*solverServiceImpl)

// WithCandidateRules replaces the embedded rules used by AddCandidates
func WithCandidateRules(rules dictionary.Rules) Option {
	return func(s *solverServiceImpl) {
		s.rules = rules
	}
}

// NewSolverService creates a new solver service instance
func NewSolverService(configs ConfigManager, dictionaries DictionaryManager, opts ...Option) SolverService {
	s := &solverServiceImpl{
		configs:      configs,
		dictionaries: dictionaries,
		rules:        dictionary.DefaultRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve finds every dictionary word traceable on the requested board
func (s *solverServiceImpl) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	start := time.Now()

	config, configID, err := s.resolveConfig(req.ConfigID)
	if err != nil {
		return nil, err
	}
	if req.BoardSize > 0 {
		config.BoardSize = req.BoardSize
	}
	if req.MinWordLength > 0 {
		config.MinWordLength = req.MinWordLength
	}
	if req.Dictionary != "" {
		config.Dictionary = req.Dictionary
	}
	if err := engine.ValidateSolverConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	dict, err := s.getDictionary(config.Dictionary)
	if err != nil {
		return nil, err
	}

	board, err := engine.NewBoard(req.Letters, config.BoardSize)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewEngine(config, dict.Words)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	words, err := eng.Solve(ctx, req.Letters)
	if err != nil {
		return nil, err
	}

	result := &SolveResult{
		Letters:       board.Letters(),
		Rows:          board.Rows(),
		BoardSize:     config.BoardSize,
		MinWordLength: config.MinWordLength,
		Dictionary:    dict.Name,
		ConfigID:      configID,
		Words:         words,
		Sorted:        SortByLength(words),
		Count:         len(words),
	}

	if req.IncludePaths {
		result.Paths = make(map[string][]engine.Position, len(words))
		tracer := engine.NewTracer(board)
		for _, w := range words {
			if path, ok := tracer.Trace(w); ok {
				result.Paths[w] = path
			}
		}
	}

	result.ElapsedMs = time.Since(start).Milliseconds()
	log.Debug().
		Str("letters", result.Letters).
		Str("dictionary", dict.Name).
		Int("found", result.Count).
		Int64("elapsed_ms", result.ElapsedMs).
		Msg("board solved")

	return result, nil
}

// Anagrams finds every dictionary word spelled from the request's letters
func (s *solverServiceImpl) Anagrams(ctx context.Context, req AnagramRequest) (*AnagramResult, error) {
	start := time.Now()

	def := s.configs.GetDefault()
	name := req.Dictionary
	if name == "" {
		name = def.Dictionary
	}
	minLength := req.MinWordLength
	if minLength <= 0 {
		minLength = def.MinWordLength
	}

	dict, err := s.getDictionary(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := anagram.NewSolver(dict.Words, minLength).Find(req.Text)
	return &AnagramResult{
		Text:          req.Text,
		Letters:       anagram.NewInventory(req.Text).String(),
		MinWordLength: minLength,
		Dictionary:    dict.Name,
		Words:         words,
		Sorted:        SortByLength(words),
		Count:         len(words),
		ElapsedMs:     time.Since(start).Milliseconds(),
	}, nil
}

// ListDictionaries returns every known dictionary
func (s *solverServiceImpl) ListDictionaries(ctx context.Context) ([]dictionary.Info, error) {
	return s.dictionaries.List()
}

// GetDictionary returns a dictionary with its words
func (s *solverServiceImpl) GetDictionary(ctx context.Context, name string) (*dictionary.Dictionary, error) {
	return s.getDictionary(name)
}

// MergeDictionary adds words to a dictionary, creating it if needed
func (s *solverServiceImpl) MergeDictionary(ctx context.Context, name string, words []string) (*MergeResult, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no words given", ErrInvalidRequest)
	}

	dict, added, err := s.dictionaries.Merge(name, words)
	if err != nil {
		return nil, translateDictionaryError(name, err)
	}

	return &MergeResult{
		Name:      dict.Name,
		Added:     added,
		WordCount: dict.Len(),
		UpdatedAt: dict.UpdatedAt,
	}, nil
}

// RestoreDictionary rolls a dictionary back to the list before its last merge
func (s *solverServiceImpl) RestoreDictionary(ctx context.Context, name string) (*dictionary.Info, error) {
	dict, err := s.dictionaries.Restore(name)
	if err != nil {
		return nil, translateDictionaryError(name, err)
	}

	return &dictionary.Info{
		Name:      dict.Name,
		WordCount: dict.Len(),
		UpdatedAt: dict.UpdatedAt,
		Stored:    true,
	}, nil
}

// AddCandidates merges every rule-passing arrangement of req.Word's letters into a dictionary
func (s *solverServiceImpl) AddCandidates(ctx context.Context, name string, req CandidatesRequest) (*CandidatesResult, error) {
	minLength := req.MinLength
	if minLength <= 0 {
		minLength = engine.DefaultMinWordLength
	}

	all, err := dictionary.Permutations(req.Word, minLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	candidates := s.rules.Filter(all)

	result := &CandidatesResult{
		Name:       name,
		Word:       req.Word,
		MinLength:  minLength,
		Generated:  len(all),
		Candidates: candidates,
		DryRun:     req.DryRun,
	}
	if req.DryRun || len(candidates) == 0 {
		return result, nil
	}

	dict, added, err := s.dictionaries.Merge(name, candidates)
	if err != nil {
		return nil, translateDictionaryError(name, err)
	}
	result.Added = added
	result.WordCount = dict.Len()
	result.UpdatedAt = dict.UpdatedAt

	log.Info().
		Str("dictionary", name).
		Str("word", req.Word).
		Int("candidates", len(candidates)).
		Int("added", added).
		Msg("candidates merged")
	return result, nil
}

// ListConfigs returns all available configurations
func (s *solverServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *solverServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.SolverConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *solverServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.SolverConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// resolveConfig returns a private copy of the named (or default) config and its id
func (s *solverServiceImpl) resolveConfig(configName string) (*engine.SolverConfig, string, error) {
	if configName == "" {
		def := *s.configs.GetDefault()
		return &def, s.getConfigID(def.Name), nil
	}

	config, err := s.configs.LoadConfig(configName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if available, listErr := s.configs.ListConfigs(); listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, c := range available {
					ids = append(ids, c.ConfigID)
				}
				return nil, "", fmt.Errorf("config '%s' %w. Available configs: %v", configName, ErrNotFound, ids)
			}
			return nil, "", fmt.Errorf("config '%s' %w. Use /api/configs to list available configurations", configName, ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to load config %s: %w", configName, err)
	}

	copied := *config
	return &copied, configName, nil
}

// getConfigID maps a display name back to its config id, for consistent responses
func (s *solverServiceImpl) getConfigID(displayName string) string {
	if available, err := s.configs.ListConfigs(); err == nil {
		for _, c := range available {
			if c.Name == displayName {
				return c.ConfigID
			}
		}
	}
	return "default"
}

func (s *solverServiceImpl) getDictionary(name string) (*dictionary.Dictionary, error) {
	dict, err := s.dictionaries.Get(name)
	if err != nil {
		return nil, translateDictionaryError(name, err)
	}
	return dict, nil
}

func translateDictionaryError(name string, err error) error {
	switch {
	case errors.Is(err, dictionary.ErrDictionaryNotFound):
		return fmt.Errorf("dictionary '%s' %w", name, ErrNotFound)
	case errors.Is(err, dictionary.ErrNoBackup):
		return fmt.Errorf("dictionary '%s' backup %w", name, ErrNotFound)
	case errors.Is(err, dictionary.ErrInvalidName):
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	default:
		return err
	}
}

// SortByLength orders words shortest first. Words of equal length keep their
// list order. The input is not modified.
func SortByLength(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) < utf8.RuneCountInString(out[j])
	})
	return out
}
