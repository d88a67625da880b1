package store

import (
	"sort"
	"sync"

	"src.jfeed.sh/pkg/store/storedefs"
)

// MemPrefs is a storedefs.Prefs that lives in memory. It is used when no
// database is available, and in tests.
type MemPrefs struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemPrefs returns an empty MemPrefs.
func NewMemPrefs() *MemPrefs {
	return &MemPrefs{m: map[string]string{}}
}

func (p *MemPrefs) Get(key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.m[key]
	if !ok {
		return "", storedefs.ErrNoKey
	}
	return v, nil
}

func (p *MemPrefs) Put(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = value
	return nil
}

func (p *MemPrefs) Remove(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, key)
	return nil
}

func (p *MemPrefs) Keys() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *MemPrefs) Flush() error { return nil }
