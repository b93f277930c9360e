// Package search holds the domain model mutated by the controller:
// the query buffer, filter/search mode selection, and the directory
// context used to scope queries.
package search

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// FilterMode narrows which history entries a query considers.
type FilterMode string

const (
	FilterGlobal    FilterMode = "global"
	FilterHost      FilterMode = "host"
	FilterSession   FilterMode = "session"
	FilterDirectory FilterMode = "directory"
	FilterWorkspace FilterMode = "workspace"
)

// filterCycleBase is the cycle order when workspace filtering is unavailable.
var filterCycleBase = []FilterMode{FilterGlobal, FilterHost, FilterSession, FilterDirectory}

// CycleFilterMode advances current to the next filter mode. Workspace is
// appended to the cycle iff workspacesEnabled and the context carries a
// repository root (spec §4.4).
func CycleFilterMode(current FilterMode, workspacesEnabled, hasRepoRoot bool) FilterMode {
	cycle := filterCycleBase
	if workspacesEnabled && hasRepoRoot {
		cycle = append(append([]FilterMode{}, filterCycleBase...), FilterWorkspace)
	}
	idx := -1
	for i, m := range cycle {
		if m == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return cycle[0]
	}
	return cycle[(idx+1)%len(cycle)]
}

// SearchMode is an opaque tag naming which query engine is active.
type SearchMode string

const (
	ModePrefix   SearchMode = "prefix"
	ModeFullText SearchMode = "fulltext"
	ModeFuzzy    SearchMode = "fuzzy"
	ModeSkim     SearchMode = "skim"
)

// CycleSearchMode advances current to the next mode in modes, wrapping
// around. If current is not present or modes is empty, the first
// configured mode (or current unchanged) is returned.
func CycleSearchMode(current SearchMode, modes []SearchMode) SearchMode {
	if len(modes) == 0 {
		return current
	}
	idx := -1
	for i, m := range modes {
		if m == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return modes[0]
	}
	return modes[(idx+1)%len(modes)]
}

// Context names the directory the search was invoked from, and the
// repository root enclosing it, if any.
type Context struct {
	Cwd      string
	RepoRoot string
}

// HasContext reports whether a repository root is present.
func (c Context) HasContext() bool {
	return c.RepoRoot != ""
}

// State owns the query buffer, its cursor, and the active filter and
// search modes (spec §3, SearchState). The cursor is tracked by
// extended grapheme cluster for visual movement, while character
// counts used in EvalContext are cluster counts (so cursor-at-end
// compares like units).
type State struct {
	clusters []string
	cursor   int
	Filter   FilterMode
	Mode     SearchMode
	Ctx      Context
}

// New creates a State seeded with initial text, cursor at the end.
func New(initial string, mode SearchMode, filter FilterMode) *State {
	s := &State{Mode: mode, Filter: filter}
	s.SetText(initial)
	return s
}

func splitGraphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// Text returns the full query string.
func (s *State) Text() string {
	return strings.Join(s.clusters, "")
}

// SetText replaces the buffer and places the cursor at the end.
func (s *State) SetText(text string) {
	s.clusters = splitGraphemes(text)
	s.cursor = len(s.clusters)
}

// Empty reports whether the buffer has no characters.
func (s *State) Empty() bool {
	return len(s.clusters) == 0
}

// CursorPosition returns the number of clusters to the left of the
// cursor (EvalContext.cursor_position).
func (s *State) CursorPosition() int {
	return s.cursor
}

// Width returns the total number of clusters in the buffer
// (EvalContext.input_width).
func (s *State) Width() int {
	return len(s.clusters)
}

// ByteLen returns the byte length of the buffer (EvalContext.input_byte_len).
func (s *State) ByteLen() int {
	return len(s.Text())
}

// MoveLeft moves the cursor back one cluster, saturating at 0.
func (s *State) MoveLeft() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveRight moves the cursor forward one cluster, saturating at Width().
func (s *State) MoveRight() {
	if s.cursor < len(s.clusters) {
		s.cursor++
	}
}

// MoveStart moves the cursor to the beginning of the buffer.
func (s *State) MoveStart() {
	s.cursor = 0
}

// MoveEnd moves the cursor to the end of the buffer.
func (s *State) MoveEnd() {
	s.cursor = len(s.clusters)
}

func isWordRune(g string) bool {
	for _, r := range g {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

// MoveWordLeft skips back over any run of whitespace then a run of word
// characters, landing at the start of the previous word.
func (s *State) MoveWordLeft() {
	i := s.cursor
	for i > 0 && !isWordRune(s.clusters[i-1]) {
		i--
	}
	for i > 0 && isWordRune(s.clusters[i-1]) {
		i--
	}
	s.cursor = i
}

// MoveWordRight skips forward over the current word then any
// whitespace, landing at the start of the next word.
func (s *State) MoveWordRight() {
	i := s.cursor
	n := len(s.clusters)
	for i < n && isWordRune(s.clusters[i]) {
		i++
	}
	for i < n && !isWordRune(s.clusters[i]) {
		i++
	}
	s.cursor = i
}

func (s *State) deleteRange(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(s.clusters) {
		to = len(s.clusters)
	}
	if from >= to {
		return
	}
	s.clusters = append(s.clusters[:from], s.clusters[to:]...)
	if s.cursor > from {
		s.cursor -= min(s.cursor, to) - from
	}
}

// DeleteCharBefore removes one cluster before the cursor (Backspace).
func (s *State) DeleteCharBefore() {
	if s.cursor == 0 {
		return
	}
	s.deleteRange(s.cursor-1, s.cursor)
}

// DeleteCharAfter removes one cluster at the cursor (Delete).
func (s *State) DeleteCharAfter() {
	if s.cursor >= len(s.clusters) {
		return
	}
	s.deleteRange(s.cursor, s.cursor+1)
}

// DeleteWordBefore removes the word to the left of the cursor.
func (s *State) DeleteWordBefore() {
	end := s.cursor
	s.MoveWordLeft()
	s.deleteRange(s.cursor, end)
}

// DeleteWordAfter removes the word to the right of the cursor.
func (s *State) DeleteWordAfter() {
	start := s.cursor
	s.MoveWordRight()
	end := s.cursor
	s.cursor = start
	s.deleteRange(start, end)
}

// DeleteToWordBoundary is an alias for DeleteWordBefore, kept as its
// own action; the default emacs keymap binds it to ctrl-w.
func (s *State) DeleteToWordBoundary() {
	s.DeleteWordBefore()
}

// ClearLine empties the buffer entirely.
func (s *State) ClearLine() {
	s.clusters = nil
	s.cursor = 0
}

// ClearToEnd removes everything from the cursor to the end of the buffer.
func (s *State) ClearToEnd() {
	s.deleteRange(s.cursor, len(s.clusters))
}

// InsertText inserts text at the cursor and advances the cursor past it.
func (s *State) InsertText(text string) {
	if text == "" {
		return
	}
	inserted := splitGraphemes(text)
	merged := make([]string, 0, len(s.clusters)+len(inserted))
	merged = append(merged, s.clusters[:s.cursor]...)
	merged = append(merged, inserted...)
	merged = append(merged, s.clusters[s.cursor:]...)
	s.clusters = merged
	s.cursor += len(inserted)
}
