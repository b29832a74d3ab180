package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Info summarizes a dictionary for listings
type Info struct {
	Name      string    `json:"name"`
	WordCount int       `json:"word_count"`
	UpdatedAt time.Time `json:"updated_at"`
	Stored    bool      `json:"stored"`
}

// Manager caches dictionaries over a Persistence backend
type Manager struct {
	dictionaries map[string]*Dictionary
	persistence  Persistence
	mu           sync.RWMutex
}

// NewManager creates a manager backed by in-memory storage
func NewManager() *Manager {
	return NewManagerWithPersistence(NewMemoryPersistence())
}

// NewManagerWithPersistence creates a manager over the given backend
func NewManagerWithPersistence(persistence Persistence) *Manager {
	return &Manager{
		dictionaries: make(map[string]*Dictionary),
		persistence:  persistence,
	}
}

// Get returns the named dictionary, loading it on first use. "default"
// falls back to the embedded word list when nothing is stored under it.
func (m *Manager) Get(name string) (*Dictionary, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	dict, exists := m.dictionaries[name]
	m.mu.RUnlock()
	if exists {
		return dict, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if dict, exists := m.dictionaries[name]; exists {
		return dict, nil
	}

	dict, err := m.load(name)
	if err != nil {
		return nil, err
	}
	m.dictionaries[name] = dict
	return dict, nil
}

// load must be called with the write lock held
func (m *Manager) load(name string) (*Dictionary, error) {
	if m.persistence.Exists(name) {
		dict, err := m.persistence.Load(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary %q: %w", name, err)
		}
		log.Debug().Str("dictionary", name).Int("words", dict.Len()).Msg("dictionary loaded")
		return dict, nil
	}

	if name == DefaultName {
		return newNormalized(DefaultName, DefaultWords(), time.Time{}), nil
	}
	return nil, ErrDictionaryNotFound
}

// List returns every known dictionary sorted by name. The default dictionary
// is always listed.
func (m *Manager) List() ([]Info, error) {
	names, err := m.persistence.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list dictionaries: %w", err)
	}

	stored := make(map[string]bool, len(names))
	for _, name := range names {
		stored[name] = true
	}
	candidates := append([]string{}, names...)
	if !stored[DefaultName] {
		candidates = append(candidates, DefaultName)
	}

	infos := make([]Info, 0, len(candidates))
	for _, name := range candidates {
		dict, err := m.Get(name)
		if err != nil {
			log.Warn().Err(err).Str("dictionary", name).Msg("skipping unreadable dictionary")
			continue
		}
		infos = append(infos, Info{
			Name:      dict.Name,
			WordCount: dict.Len(),
			UpdatedAt: dict.UpdatedAt,
			Stored:    stored[name],
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Merge adds words to the named dictionary, creating it if needed. The stored
// list is backed up first. It returns the updated dictionary and how many
// words were new.
func (m *Manager) Merge(name string, words []string) (*Dictionary, int, error) {
	if err := ValidateName(name); err != nil {
		return nil, 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.dictionaries[name]
	if !exists {
		var err error
		current, err = m.load(name)
		if errors.Is(err, ErrDictionaryNotFound) {
			current = newNormalized(name, []string{}, time.Time{})
		} else if err != nil {
			return nil, 0, err
		}
	}

	if m.persistence.Exists(name) {
		if err := m.persistence.Backup(name); err != nil {
			return nil, 0, fmt.Errorf("failed to back up dictionary %q: %w", name, err)
		}
	}

	merged := newNormalized(name, Merge(current.Words, words), time.Now())
	if err := m.persistence.Save(merged); err != nil {
		return nil, 0, fmt.Errorf("failed to save dictionary %q: %w", name, err)
	}
	m.dictionaries[name] = merged

	added := merged.Len() - current.Len()
	log.Info().Str("dictionary", name).Int("added", added).Int("words", merged.Len()).Msg("dictionary merged")
	return merged, added, nil
}

// Restore rolls the named dictionary back to its backup
func (m *Manager) Restore(name string) (*Dictionary, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dict, err := m.persistence.Restore(name)
	if err != nil {
		return nil, err
	}
	m.dictionaries[name] = dict

	log.Info().Str("dictionary", name).Int("words", dict.Len()).Msg("dictionary restored")
	return dict, nil
}

// Delete removes a stored dictionary
func (m *Manager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.dictionaries, name)
	return m.persistence.Delete(name)
}

// Count returns the number of cached dictionaries
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.dictionaries)
}

// RefreshCache drops cached dictionaries so the next Get reloads them
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dictionaries = make(map[string]*Dictionary)
}
