// Package controller owns ControllerState and applies every
// key-driven change to it (spec §4.4/§4.6): it interprets resolved actions, drives
// re-queries when the query changes, and talks to the storage and
// clipboard collaborators.
package controller

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/shellhist/search-tui/internal/apperrors"
	"github.com/shellhist/search-tui/internal/clipboard"
	"github.com/shellhist/search-tui/internal/condition"
	"github.com/shellhist/search-tui/internal/keyinput"
	"github.com/shellhist/search-tui/internal/logging"
	"github.com/shellhist/search-tui/internal/search"
	"github.com/shellhist/search-tui/internal/storage"
	"github.com/shellhist/search-tui/internal/tui/keymap"
)

// AcceptMarker prefixes a returned command the host shell should run
// immediately rather than place on the editing line (spec §6).
const AcceptMarker = "__atuin_accept__:"

// Tab is the active pane: the results list, or the detail inspector.
type Tab string

const (
	TabSearch  Tab = "search"
	TabInspect Tab = "inspect"
)

// Outcome is returned from a key press that resolved to a terminal
// action: the string to hand back to the host shell bridge.
type Outcome struct {
	Text string
}

// State is the mutable state owned by the controller (spec §3,
// ControllerState). Besides the controller, the event loop writes a
// few view fields directly: ViewportRows on resize, and Selected or
// DetailView on mouse-wheel input.
type State struct {
	Search *search.State

	Results      []search.Entry
	Selected     int
	ScrollOffset int
	ViewportRows int

	Tab          Tab
	KeymapMode   keymap.Mode
	PrefixActive bool
	AcceptFlag   bool

	Epoch uint64

	Stats         *search.Stats
	ShowModeLabel bool

	// DetailView backs the Inspect tab's scrollable detail pane. Its
	// content is rebuilt whenever the selected entry or its stats
	// change; its scroll offset resets to the top on each rebuild.
	DetailView viewport.Model

	// pendingSeq, if non-nil, is the first key of an in-flight multi-key
	// sequence (e.g. the "g" of "g g") awaiting its continuation.
	pendingSeq *keyinput.KeyInput
}

// Controller mediates between resolved keymap actions and the storage,
// clipboard, and engine collaborators (spec §4.4, §6).
type Controller struct {
	State *State

	Keymaps *keymap.KeymapSet
	Storage storage.Storage
	Engines search.EngineFactory
	Clip    clipboard.Clipboard

	Workspaces          bool
	ScrollContextLines  int
	ConfiguredModes     []search.SearchMode
	Rank                search.RankFunc // nil disables smart sort
	ShellSupportsAccept bool
	Logger              *logging.Logger
}

// New constructs a Controller ready to process key input. initial is
// the text the caller handed in (spec §3's original_input_empty and
// the return contract's "return original input" semantics both key off
// of it).
func New(initial string, mode search.SearchMode, keymaps *keymap.KeymapSet, store storage.Storage, engines search.EngineFactory, clip clipboard.Clipboard) *Controller {
	st := &State{
		Search:     search.New(initial, mode, search.FilterGlobal),
		Tab:        TabSearch,
		KeymapMode: keymap.ModeEmacs,
		DetailView: viewport.New(80, 20),
	}
	return &Controller{
		State:   st,
		Keymaps: keymaps,
		Storage: store,
		Engines: engines,
		Clip:    clip,
	}
}

// EvalContext builds the read-only snapshot condition rules are
// evaluated against (spec §3/§4.2).
func (c *Controller) EvalContext(originalInputEmpty bool) condition.EvalContext {
	s := c.State
	return condition.EvalContext{
		CursorPosition:     s.Search.CursorPosition(),
		InputWidth:         s.Search.Width(),
		InputByteLen:       s.Search.ByteLen(),
		SelectedIndex:      s.Selected,
		ResultsLen:         len(s.Results),
		OriginalInputEmpty: originalInputEmpty,
		HasContext:         s.Search.Ctx.HasContext(),
	}
}

// activeKeymap implements the mode-selection precedence of spec §4.3.
func (c *Controller) activeKeymap() *keymap.Keymap {
	s := c.State
	switch {
	case s.PrefixActive:
		return c.Keymaps.Prefix
	case s.Tab == TabInspect:
		return c.Keymaps.Inspector
	default:
		return c.Keymaps.ForMode(s.KeymapMode)
	}
}

type snapshot struct {
	text   string
	filter search.FilterMode
	mode   search.SearchMode
}

func (c *Controller) snapshot() snapshot {
	s := c.State.Search
	return snapshot{text: s.Text(), filter: s.Filter, mode: s.Mode}
}

// HandleKey runs one full per-event sequence (spec §4.6 steps 1-5):
// resolve the key against the active keymap (honoring any pending
// multi-key sequence), apply the resulting action, and re-query if the
// query changed. originalInputEmpty is the has-the-caller's-initial-
// query-empty bit threaded through EvalContext; it never changes
// across the session.
//
// terminal is false if the loop should keep running; true means a terminal
// action fired and out holds the string to return to the caller.
func (c *Controller) HandleKey(key keyinput.KeyInput, originalInputEmpty bool) (out Outcome, terminal bool, err error) {
	key = keyinput.Canonicalize(key)
	s := c.State
	km := c.activeKeymap()

	var (
		binding  keymap.KeyBinding
		resolved bool
	)

	if s.pendingSeq != nil {
		first := *s.pendingSeq
		s.pendingSeq = nil
		if b, ok := km.LookupSequence(first, key); ok {
			binding, resolved = b, true
		} else {
			// Sequence abandoned: re-dispatch this key fresh against km.
			if b, ok := km.Lookup(key); ok {
				binding, resolved = b, true
			}
		}
	} else if km.HasSequence(key) {
		// Defer: wait for the next key to complete the chord. If the
		// key also has a plain binding, the chord takes precedence per
		// the teacher's "g g" / "d d" convention.
		s.pendingSeq = &key
		return Outcome{}, false, nil
	} else if b, ok := km.Lookup(key); ok {
		binding, resolved = b, true
	}

	pre := c.snapshot()

	var action keymap.Action
	if resolved {
		ctx := c.EvalContext(originalInputEmpty)
		action, resolved = binding.Resolve(ctx)
	}

	if !resolved {
		if c.insertable() && key.Code == keyinput.CodeRune {
			s.Search.InsertText(string(key.Rune))
		}
		c.requeryIfChanged(pre)
		return Outcome{}, false, nil
	}

	out, terminal, err = c.apply(action)
	if terminal || err != nil {
		return out, terminal, err
	}

	c.requeryIfChanged(pre)
	return Outcome{}, false, nil
}

// insertable reports whether an unbound printable key should be
// inserted into the query buffer in the current mode (spec §4.3 step 2).
func (c *Controller) insertable() bool {
	s := c.State
	if s.PrefixActive || s.Tab == TabInspect {
		return false
	}
	return s.KeymapMode != keymap.ModeVimNormal
}

func (c *Controller) requeryIfChanged(pre snapshot) {
	post := c.snapshot()
	if post == pre {
		return
	}
	c.Requery()
}

// Requery replaces the results list atomically and resets selection
// (spec §4.4, query invalidation).
func (c *Controller) Requery() error {
	s := c.State
	s.Epoch++
	epoch := s.Epoch

	engine := c.Engines.EngineFor(s.Search.Mode)
	results, err := engine.Query(s.Search)
	if err != nil {
		return apperrors.NewEngineError("engine query failed", err)
	}
	if epoch != s.Epoch {
		// A newer query superseded this one while it ran; discard.
		return nil
	}
	if c.Rank != nil {
		results = search.SmartSort(s.Search.Text(), results, c.Rank)
	}
	s.Results = results
	s.Selected = 0
	s.ScrollOffset = 0
	return nil
}

// ClearTransient clears render-only one-shot flags after a frame has
// been drawn (spec §4.4, CycleSearchMode's transient label).
func (c *State) ClearTransient() {
	c.ShowModeLabel = false
}
