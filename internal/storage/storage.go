// Package storage defines the persistence collaborator the controller
// queries and mutates (spec §6): count, query, delete, and per-entry
// stats. The in-memory Store is the only implementation carried here —
// no sqlite (or other) driver was available anywhere in the retrieved
// example corpus to ground a persistent backend on (see DESIGN.md).
package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shellhist/search-tui/internal/search"
)

// ErrNotFound is returned by Delete and Stats when the entry id is unknown.
var ErrNotFound = errors.New("storage: entry not found")

// Storage is the persistence capability the controller and engines
// consume (spec §6).
type Storage interface {
	Count() (int, error)
	Query(filter search.FilterMode, ctx search.Context, query string) ([]search.Entry, error)
	Delete(id string) error
	Stats(entry search.Entry) (search.Stats, error)
}

// Store is an in-memory Storage implementation, safe for concurrent use.
// The event loop holds it single-threaded per spec §5, but Store guards
// its own state so background engine queries (if any) may read safely.
type Store struct {
	mu      sync.RWMutex
	entries map[string]search.Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]search.Entry)}
}

// Seed populates the store, e.g. from a shell history import. Existing
// entries with the same ID are overwritten.
func (s *Store) Seed(entries []search.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
	}
}

// Count returns the total number of stored entries.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Query returns entries visible under filter and ctx whose command
// contains query as a case-insensitive substring, most recent first.
// This is the baseline engine-independent scan; concrete Engines (see
// internal/searchengine) may layer fuzzy/prefix matching on top.
func (s *Store) Query(filter search.FilterMode, ctx search.Context, query string) ([]search.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []search.Entry
	for _, e := range s.entries {
		if !matchesFilter(e, filter, ctx) {
			continue
		}
		if query != "" && !containsFold(e.Command, query) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func matchesFilter(e search.Entry, filter search.FilterMode, ctx search.Context) bool {
	switch filter {
	case search.FilterHost:
		return true // host identity isn't modeled per-session here; global scope applies
	case search.FilterSession:
		return true
	case search.FilterDirectory:
		return e.Directory == ctx.Cwd
	case search.FilterWorkspace:
		return ctx.RepoRoot != "" && hasPrefix(e.Directory, ctx.RepoRoot)
	default: // FilterGlobal
		return true
	}
}

func hasPrefix(dir, root string) bool {
	if dir == root {
		return true
	}
	return len(dir) > len(root) && dir[:len(root)] == root && dir[len(root)] == '/'
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Delete removes the entry with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// Stats computes aggregate statistics across all stored occurrences of
// entry.Command.
func (s *Store) Stats(entry search.Entry) (search.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		stats     search.Stats
		totalDur  time.Duration
		successes int
	)
	for _, e := range s.entries {
		if e.Command != entry.Command {
			continue
		}
		stats.TotalExecutions++
		totalDur += e.Duration
		if e.ExitCode == 0 {
			successes++
		}
		if stats.FirstUsed.IsZero() || e.Timestamp.Before(stats.FirstUsed) {
			stats.FirstUsed = e.Timestamp
		}
		if e.Timestamp.After(stats.LastUsed) {
			stats.LastUsed = e.Timestamp
		}
	}
	if stats.TotalExecutions == 0 {
		return search.Stats{}, ErrNotFound
	}
	stats.AverageDuration = totalDur / time.Duration(stats.TotalExecutions)
	stats.SuccessRate = float64(successes) / float64(stats.TotalExecutions)
	return stats, nil
}
