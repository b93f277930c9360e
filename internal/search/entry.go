package search

import (
	"strings"
	"time"
)

// Entry is one stored history record.
type Entry struct {
	ID        string
	Command   string
	Directory string
	Host      string
	Session   string
	Timestamp time.Time
	Duration  time.Duration
	ExitCode  int
}

// Stats aggregates execution history for a single command (spec §4.5,
// the Inspect tab's detail view).
type Stats struct {
	TotalExecutions int
	FirstUsed       time.Time
	LastUsed        time.Time
	AverageDuration time.Duration
	SuccessRate     float64 // fraction of executions with ExitCode == 0
}

// Engine queries a store for entries matching the current State. A
// concrete Engine is selected by SearchMode and is swappable at
// runtime (spec §4.4, §6).
type Engine interface {
	Query(state *State) ([]Entry, error)
}

// EngineFactory produces the Engine backing a given SearchMode.
type EngineFactory interface {
	EngineFor(mode SearchMode) Engine
}

// RankFunc scores how well an entry matches a query; higher is better.
// Used by the optional smart-sort pass (spec §4.4).
type RankFunc func(query string, entry Entry) float64

// SmartSort reorders entries by rank, descending, stably (so equally
// ranked entries keep their engine-supplied relative order).
func SmartSort(query string, entries []Entry, rank RankFunc) []Entry {
	if rank == nil || len(entries) < 2 {
		return entries
	}
	scored := make([]struct {
		entry Entry
		score float64
	}, len(entries))
	for i, e := range entries {
		scored[i].entry = e
		scored[i].score = rank(query, e)
	}
	// Stable insertion sort: the result sets are small (single screen of
	// results) so O(n^2) is immaterial and stability is simple to reason about.
	for i := 1; i < len(scored); i++ {
		j := i
		for j > 0 && scored[j-1].score < scored[j].score {
			scored[j-1], scored[j] = scored[j], scored[j-1]
			j--
		}
	}
	out := make([]Entry, len(scored))
	for i, s := range scored {
		out[i] = s.entry
	}
	return out
}

// DefaultRank is a simplified relevance function: entries whose command
// contains the query as a substring score higher the closer the match
// is to the start of the string, plus a bonus when the entry's exit code
// is 0. It is intentionally simple — the spec treats smart sort
// as a pluggable pure function the controller does not inspect.
func DefaultRank(query string, entry Entry) float64 {
	if query == "" {
		return 0
	}
	idx := strings.Index(strings.ToLower(entry.Command), strings.ToLower(query))
	if idx < 0 {
		return -1
	}
	score := 100.0 - float64(idx)
	if entry.ExitCode == 0 {
		score += 10
	}
	return score
}
