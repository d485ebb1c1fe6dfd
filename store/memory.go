// Package store provides the reference in-memory implementation of the
// cookie package's Store contract: a domain -> path -> key three-level
// mapping with the uniqueness constraint that the tuple addresses at most
// one record.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rfc6265/cookiejar"
)

// Memory is the reference in-memory Store. The zero value is not usable;
// construct with New.
type Memory struct {
	mu      sync.RWMutex
	domains map[string]map[string]map[string]*cookie.Cookie
}

// New creates an empty in-memory store.
func New() *Memory {
	return &Memory{domains: make(map[string]map[string]map[string]*cookie.Cookie)}
}

// Type reports the store's identifier for the jar's serialized
// "storeType" field.
func (m *Memory) Type() string { return "memory" }

// FindCookie returns the single record matching the tuple, or (nil, nil)
// when absent.
func (m *Memory) FindCookie(_ context.Context, domain, path, key string) (*cookie.Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths, ok := m.domains[domain]
	if !ok {
		return nil, nil
	}
	keys, ok := paths[path]
	if !ok {
		return nil, nil
	}
	return keys[key], nil
}

// FindCookies returns every record stored under domain whose path
// path-matches path; path == "" enumerates every path under the domain.
func (m *Memory) FindCookies(_ context.Context, domain, path string) ([]*cookie.Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths, ok := m.domains[domain]
	if !ok {
		return nil, nil
	}

	var out []*cookie.Cookie
	for storedPath, keys := range paths {
		if path != "" && !cookie.PathMatch(path, storedPath) {
			continue
		}
		for _, c := range keys {
			out = append(out, c)
		}
	}
	return out, nil
}

// PutCookie inserts c, replacing any existing record at the same
// (Domain, Path, Key).
func (m *Memory) PutCookie(_ context.Context, c *cookie.Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(c)
	return nil
}

// UpdateCookie is semantically identical to PutCookie(next).
func (m *Memory) UpdateCookie(_ context.Context, _, next *cookie.Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(next)
	return nil
}

func (m *Memory) put(c *cookie.Cookie) {
	paths, ok := m.domains[c.Domain]
	if !ok {
		paths = make(map[string]map[string]*cookie.Cookie)
		m.domains[c.Domain] = paths
	}
	keys, ok := paths[c.Path]
	if !ok {
		keys = make(map[string]*cookie.Cookie)
		paths[c.Path] = keys
	}
	keys[c.Key] = c
}

// RemoveCookie idempotently drops the record at (domain, path, key).
func (m *Memory) RemoveCookie(_ context.Context, domain, path, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths, ok := m.domains[domain]
	if !ok {
		return nil
	}
	keys, ok := paths[path]
	if !ok {
		return nil
	}
	delete(keys, key)
	if len(keys) == 0 {
		delete(paths, path)
	}
	if len(paths) == 0 {
		delete(m.domains, domain)
	}
	return nil
}

// RemoveCookies drops every record in domain, restricted to path when
// path != "".
func (m *Memory) RemoveCookies(_ context.Context, domain, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths, ok := m.domains[domain]
	if !ok {
		return nil
	}
	if path == "" {
		delete(m.domains, domain)
		return nil
	}
	delete(paths, path)
	if len(paths) == 0 {
		delete(m.domains, domain)
	}
	return nil
}

// GetAllCookies returns every stored record, ordered by CreationIndex.
func (m *Memory) GetAllCookies(_ context.Context) ([]*cookie.Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []*cookie.Cookie
	for _, paths := range m.domains {
		for _, keys := range paths {
			for _, c := range keys {
				all = append(all, c)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreationIndex < all[j].CreationIndex
	})
	return all, nil
}
