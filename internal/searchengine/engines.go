// Package searchengine provides the concrete Engine implementations the
// controller's EngineFactory resolves to, each backed by a Storage
// handle (spec §6).
package searchengine

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/shellhist/search-tui/internal/search"
	"github.com/shellhist/search-tui/internal/storage"
)

// PrefixEngine matches commands that start with the query, ignoring case.
type PrefixEngine struct{ Store storage.Storage }

func (e PrefixEngine) Query(st *search.State) ([]search.Entry, error) {
	entries, err := e.Store.Query(st.Filter, st.Ctx, "")
	if err != nil {
		return nil, err
	}
	q := st.Text()
	if q == "" {
		return entries, nil
	}
	out := entries[:0:0]
	for _, entry := range entries {
		if hasPrefixFold(entry.Command, q) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// FullTextEngine matches commands containing the query as a regular
// expression (falling back to a literal substring if the query doesn't
// parse), in the style of the generic line-search engine's pattern
// compilation.
type FullTextEngine struct{ Store storage.Storage }

func (e FullTextEngine) Query(st *search.State) ([]search.Entry, error) {
	entries, err := e.Store.Query(st.Filter, st.Ctx, "")
	if err != nil {
		return nil, err
	}
	q := st.Text()
	if q == "" {
		return entries, nil
	}
	re, reErr := regexp.Compile(q)
	out := entries[:0:0]
	for _, entry := range entries {
		var match bool
		if reErr == nil {
			match = re.MatchString(entry.Command)
		} else {
			match = strings.Contains(strings.ToLower(entry.Command), strings.ToLower(q))
		}
		if match {
			out = append(out, entry)
		}
	}
	return out, nil
}

// FuzzyEngine matches commands where every rune of the query appears in
// order in the command, and ranks tighter/earlier matches first.
type FuzzyEngine struct{ Store storage.Storage }

func (e FuzzyEngine) Query(st *search.State) ([]search.Entry, error) {
	entries, err := e.Store.Query(st.Filter, st.Ctx, "")
	if err != nil {
		return nil, err
	}
	q := st.Text()
	if q == "" {
		return entries, nil
	}
	type scored struct {
		entry search.Entry
		score fuzzyScore
	}
	matches := make([]scored, 0, len(entries))
	for _, entry := range entries {
		if ok, sc := fuzzyMatch(entry.Command, q); ok {
			matches = append(matches, scored{entry, sc})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score.less(matches[j].score)
	})
	out := make([]search.Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out, nil
}

// SkimEngine keeps the entries FuzzyEngine matches and re-sorts them by
// recency alone, most recently executed first; the fuzzy score plays no
// part in the final order.
type SkimEngine struct{ Store storage.Storage }

func (e SkimEngine) Query(st *search.State) ([]search.Entry, error) {
	fuzzy := FuzzyEngine{Store: e.Store}
	entries, err := fuzzy.Query(st)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

// Factory resolves each SearchMode to its concrete Engine, all sharing
// one Storage handle (spec §6's "engine factory" capability).
type Factory struct {
	Store storage.Storage
}

func NewFactory(store storage.Storage) Factory {
	return Factory{Store: store}
}

func (f Factory) EngineFor(mode search.SearchMode) search.Engine {
	switch mode {
	case search.ModePrefix:
		return PrefixEngine{Store: f.Store}
	case search.ModeFullText:
		return FullTextEngine{Store: f.Store}
	case search.ModeSkim:
		return SkimEngine{Store: f.Store}
	default:
		return FuzzyEngine{Store: f.Store}
	}
}

// fuzzyScore is lower-is-better: an earlier first match, fewer gap
// runes between matched characters, and a shorter overall command all
// push a result toward the top.
type fuzzyScore struct {
	first  int
	gap    int
	length int
}

func (s fuzzyScore) less(other fuzzyScore) bool {
	if s.first != other.first {
		return s.first < other.first
	}
	if s.gap != other.gap {
		return s.gap < other.gap
	}
	return s.length < other.length
}

func fuzzyMatch(text, pattern string) (bool, fuzzyScore) {
	if pattern == "" {
		return true, fuzzyScore{length: len([]rune(text))}
	}
	t := []rune(text)
	p := []rune(pattern)

	firstIdx, lastIdx, gap := -1, -1, 0
	ti, pi := 0, 0
	for ti < len(t) && pi < len(p) {
		if unicode.ToLower(t[ti]) == unicode.ToLower(p[pi]) {
			if firstIdx == -1 {
				firstIdx = ti
			}
			if lastIdx != -1 {
				gap += ti - lastIdx - 1
			}
			lastIdx = ti
			pi++
		}
		ti++
	}
	if pi != len(p) {
		return false, fuzzyScore{}
	}
	return true, fuzzyScore{first: firstIdx, gap: gap, length: len(t)}
}

func hasPrefixFold(s, prefix string) bool {
	sr, pr := []rune(s), []rune(prefix)
	if len(pr) > len(sr) {
		return false
	}
	for i, r := range pr {
		if unicode.ToLower(r) != unicode.ToLower(sr[i]) {
			return false
		}
	}
	return true
}
