package dictionary

import (
	"sort"
	"sync"
	"time"
)

type storedList struct {
	words     []string
	updatedAt time.Time
}

// MemoryPersistence keeps dictionaries in process. State is lost on restart.
type MemoryPersistence struct {
	mu      sync.RWMutex
	lists   map[string]storedList
	backups map[string]storedList
}

// NewMemoryPersistence creates an empty in-memory store
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{
		lists:   make(map[string]storedList),
		backups: make(map[string]storedList),
	}
}

func (mp *MemoryPersistence) Save(d *Dictionary) error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.lists[d.Name] = storedList{words: cloneWords(d.Words), updatedAt: d.UpdatedAt}
	return nil
}

func (mp *MemoryPersistence) Load(name string) (*Dictionary, error) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	list, ok := mp.lists[name]
	if !ok {
		return nil, ErrDictionaryNotFound
	}
	return newNormalized(name, cloneWords(list.words), list.updatedAt), nil
}

func (mp *MemoryPersistence) Delete(name string) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if _, ok := mp.lists[name]; !ok {
		return ErrDictionaryNotFound
	}
	delete(mp.lists, name)
	delete(mp.backups, name)
	return nil
}

func (mp *MemoryPersistence) ListAll() ([]string, error) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	names := make([]string, 0, len(mp.lists))
	for name := range mp.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (mp *MemoryPersistence) Exists(name string) bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	_, ok := mp.lists[name]
	return ok
}

func (mp *MemoryPersistence) Backup(name string) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	list, ok := mp.lists[name]
	if !ok {
		return ErrDictionaryNotFound
	}
	mp.backups[name] = storedList{words: cloneWords(list.words), updatedAt: list.updatedAt}
	return nil
}

func (mp *MemoryPersistence) Restore(name string) (*Dictionary, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	backup, ok := mp.backups[name]
	if !ok {
		return nil, ErrNoBackup
	}
	restored := storedList{words: cloneWords(backup.words), updatedAt: time.Now()}
	mp.lists[name] = restored
	return newNormalized(name, cloneWords(restored.words), restored.updatedAt), nil
}

func cloneWords(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}
