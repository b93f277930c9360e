// Package keymap resolves a received key input, in the context of the
// active editing mode and a snapshot of runtime state, to at most one
// Action. Five keymaps coexist (emacs, vim-normal, vim-insert, inspector,
// prefix); each maps a KeyInput to an ordered list of conditional rules,
// and resolution returns the first rule whose condition holds.
package keymap

import (
	"fmt"

	"github.com/shellhist/search-tui/internal/condition"
	"github.com/shellhist/search-tui/internal/keyinput"
)

// Mode names one of the five keymaps that can be active at a time.
type Mode string

const (
	ModeEmacs     Mode = "emacs"
	ModeVimNormal Mode = "vim-normal"
	ModeVimInsert Mode = "vim-insert"
	ModeInspector Mode = "inspector"
	ModePrefix    Mode = "prefix"
)

// ActionKind is the closed set of discrete effects a key press can have.
type ActionKind string

const (
	// Editing
	ActionCursorLeft           ActionKind = "cursor-left"
	ActionCursorRight          ActionKind = "cursor-right"
	ActionCursorWordLeft       ActionKind = "cursor-word-left"
	ActionCursorWordRight      ActionKind = "cursor-word-right"
	ActionCursorStart          ActionKind = "cursor-start"
	ActionCursorEnd            ActionKind = "cursor-end"
	ActionDeleteCharBefore     ActionKind = "delete-char-before"
	ActionDeleteCharAfter      ActionKind = "delete-char-after"
	ActionDeleteWordBefore     ActionKind = "delete-word-before"
	ActionDeleteWordAfter      ActionKind = "delete-word-after"
	ActionDeleteToWordBoundary ActionKind = "delete-to-word-boundary"
	ActionClearLine            ActionKind = "clear-line"
	ActionClearToEnd           ActionKind = "clear-to-end"

	// Selection / scrolling
	ActionSelectNext           ActionKind = "select-next"
	ActionSelectPrevious       ActionKind = "select-previous"
	ActionScrollPageUp         ActionKind = "scroll-page-up"
	ActionScrollPageDown       ActionKind = "scroll-page-down"
	ActionScrollHalfPageUp     ActionKind = "scroll-half-page-up"
	ActionScrollHalfPageDown   ActionKind = "scroll-half-page-down"
	ActionScrollToTop          ActionKind = "scroll-to-top"
	ActionScrollToBottom       ActionKind = "scroll-to-bottom"
	ActionScrollToScreenTop    ActionKind = "scroll-to-screen-top"
	ActionScrollToScreenMiddle ActionKind = "scroll-to-screen-middle"
	ActionScrollToScreenBottom ActionKind = "scroll-to-screen-bottom"

	// Session / terminal actions
	ActionAccept             ActionKind = "accept"
	ActionReturnSelection    ActionKind = "return-selection"
	ActionReturnSelectionNth ActionKind = "return-selection-nth"
	ActionReturnQuery        ActionKind = "return-query"
	ActionReturnOriginal     ActionKind = "return-original"
	ActionCopy               ActionKind = "copy"
	ActionDelete             ActionKind = "delete"

	// Mode transitions
	ActionCycleSearchMode       ActionKind = "cycle-search-mode"
	ActionCycleFilterMode       ActionKind = "cycle-filter-mode"
	ActionToggleTab             ActionKind = "toggle-tab"
	ActionVimEnterNormal        ActionKind = "vim-enter-normal"
	ActionVimEnterInsert        ActionKind = "vim-enter-insert"
	ActionVimEnterInsertAfter   ActionKind = "vim-enter-insert-after"
	ActionVimEnterInsertAtStart ActionKind = "vim-enter-insert-at-start"
	ActionVimEnterInsertAtEnd   ActionKind = "vim-enter-insert-at-end"
	ActionVimSearchInsert       ActionKind = "vim-search-insert"
	ActionVimChangeToEnd        ActionKind = "vim-change-to-end"

	// Prefix / context
	ActionEnterPrefixMode ActionKind = "enter-prefix-mode"
	ActionSwitchContext   ActionKind = "switch-context"
	ActionClearContext    ActionKind = "clear-context"

	// Inspector
	ActionInspectNext     ActionKind = "inspect-next"
	ActionInspectPrevious ActionKind = "inspect-previous"

	// Misc
	ActionExit   ActionKind = "exit"
	ActionRedraw ActionKind = "redraw"
)

// validActions is the closed set used by config validation: an action
// name not present here is rejected as a config parse error (spec §7).
var validActions = map[ActionKind]bool{
	ActionCursorLeft: true, ActionCursorRight: true, ActionCursorWordLeft: true,
	ActionCursorWordRight: true, ActionCursorStart: true, ActionCursorEnd: true,
	ActionDeleteCharBefore: true, ActionDeleteCharAfter: true, ActionDeleteWordBefore: true,
	ActionDeleteWordAfter: true, ActionDeleteToWordBoundary: true, ActionClearLine: true,
	ActionClearToEnd: true, ActionSelectNext: true, ActionSelectPrevious: true,
	ActionScrollPageUp: true, ActionScrollPageDown: true, ActionScrollHalfPageUp: true,
	ActionScrollHalfPageDown: true, ActionScrollToTop: true, ActionScrollToBottom: true,
	ActionScrollToScreenTop: true, ActionScrollToScreenMiddle: true, ActionScrollToScreenBottom: true,
	ActionAccept: true, ActionReturnSelection: true, ActionReturnSelectionNth: true,
	ActionReturnQuery: true, ActionReturnOriginal: true, ActionCopy: true, ActionDelete: true,
	ActionCycleSearchMode: true, ActionCycleFilterMode: true, ActionToggleTab: true,
	ActionVimEnterNormal: true, ActionVimEnterInsert: true, ActionVimEnterInsertAfter: true,
	ActionVimEnterInsertAtStart: true, ActionVimEnterInsertAtEnd: true, ActionVimSearchInsert: true,
	ActionVimChangeToEnd: true, ActionEnterPrefixMode: true, ActionSwitchContext: true,
	ActionClearContext: true, ActionInspectNext: true, ActionInspectPrevious: true,
	ActionExit: true, ActionRedraw: true,
}

// IsValidAction reports whether name is one of the closed set of action
// kinds; used when validating user-supplied keymap overrides.
func IsValidAction(name string) bool {
	return validActions[ActionKind(name)]
}

// Action is one concrete effect produced by resolving a key: a kind plus
// an optional numeric argument, used only by ReturnSelectionNth.
type Action struct {
	Kind ActionKind
	N    int
}

// terminalActions are the actions that end the event loop (spec §4.4).
var terminalActions = map[ActionKind]bool{
	ActionExit: true, ActionReturnOriginal: true, ActionReturnQuery: true,
	ActionReturnSelection: true, ActionReturnSelectionNth: true, ActionAccept: true,
}

// IsTerminal reports whether a is one of the loop-ending actions.
func (a Action) IsTerminal() bool { return terminalActions[a.Kind] }

// KeyRule pairs an optional condition with the action to take when it
// holds. A nil Condition means "always" (unconditionally matches).
type KeyRule struct {
	Condition condition.Expr
	Action    Action
}

// Matches reports whether the rule's condition holds against ctx.
func (r KeyRule) Matches(ctx condition.EvalContext) bool {
	return condition.Eval(r.Condition, ctx)
}

// KeyBinding is an ordered list of conditional rules attached to one
// KeyInput. Resolution returns the first rule whose condition is true.
type KeyBinding struct {
	Rules []KeyRule
}

// Resolve walks the rule list in order and returns the first matching
// action. ok is false if no rule matches (which, for an unconditional
// rule, can only happen if the binding has zero rules).
func (kb KeyBinding) Resolve(ctx condition.EvalContext) (Action, bool) {
	for _, rule := range kb.Rules {
		if rule.Matches(ctx) {
			return rule.Action, true
		}
	}
	return Action{}, false
}

// always builds a single-rule unconditional binding.
func always(a ActionKind) KeyBinding {
	return KeyBinding{Rules: []KeyRule{{Action: Action{Kind: a}}}}
}

// alwaysN builds a single-rule unconditional binding for an action that
// carries a numeric argument (ReturnSelectionNth).
func alwaysN(a ActionKind, n int) KeyBinding {
	return KeyBinding{Rules: []KeyRule{{Action: Action{Kind: a, N: n}}}}
}

// when builds a single-rule conditional binding.
func when(expr condition.Expr, a ActionKind) KeyRule {
	return KeyRule{Condition: expr, Action: Action{Kind: a}}
}

// sequenceEntry is a pending multi-key continuation: the keymap reached
// after the first key of a chord like "g g" or "d d".
type sequenceEntry struct {
	bindings map[keyinput.KeyInput]KeyBinding
}

// Keymap maps key inputs to bindings, plus any multi-key continuations
// keyed on their first key.
type Keymap struct {
	Name      string
	Bindings  map[keyinput.KeyInput]KeyBinding
	Sequences map[keyinput.KeyInput]sequenceEntry
}

// NewKeymap creates an empty, named keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:      name,
		Bindings:  make(map[keyinput.KeyInput]KeyBinding),
		Sequences: make(map[keyinput.KeyInput]sequenceEntry),
	}
}

// Bind attaches a binding to a single key.
func (km *Keymap) Bind(key keyinput.KeyInput, binding KeyBinding) {
	km.Bindings[key] = binding
}

// BindSequence attaches a binding to a two-key chord (first, second).
func (km *Keymap) BindSequence(first, second keyinput.KeyInput, binding KeyBinding) {
	entry, ok := km.Sequences[first]
	if !ok {
		entry = sequenceEntry{bindings: make(map[keyinput.KeyInput]KeyBinding)}
	}
	entry.bindings[second] = binding
	km.Sequences[first] = entry
}

// Lookup returns the binding for key, if any.
func (km *Keymap) Lookup(key keyinput.KeyInput) (KeyBinding, bool) {
	b, ok := km.Bindings[key]
	return b, ok
}

// HasSequence reports whether key begins a registered multi-key chord.
func (km *Keymap) HasSequence(key keyinput.KeyInput) bool {
	_, ok := km.Sequences[key]
	return ok
}

// LookupSequence resolves the second key of a pending chord started by
// first.
func (km *Keymap) LookupSequence(first, second keyinput.KeyInput) (KeyBinding, bool) {
	entry, ok := km.Sequences[first]
	if !ok {
		return KeyBinding{}, false
	}
	b, ok := entry.bindings[second]
	return b, ok
}

// KeymapSet bundles the five keymaps that coexist in the system (spec
// §3, KeymapSet invariant).
type KeymapSet struct {
	Emacs     *Keymap
	VimNormal *Keymap
	VimInsert *Keymap
	Inspector *Keymap
	Prefix    *Keymap
}

// ForMode returns the keymap backing a given editing Mode.
func (s *KeymapSet) ForMode(mode Mode) *Keymap {
	switch mode {
	case ModeEmacs:
		return s.Emacs
	case ModeVimNormal:
		return s.VimNormal
	case ModeVimInsert:
		return s.VimInsert
	case ModeInspector:
		return s.Inspector
	case ModePrefix:
		return s.Prefix
	default:
		return nil
	}
}

// KeyBindingSpec is the serializable form of one configured rule,
// bound under a key string in a KeymapConfig.
type KeyBindingSpec struct {
	When   string `json:"when,omitempty" yaml:"when,omitempty"`
	Action string `json:"action" yaml:"action"`
}

// KeymapConfig is the user-facing override shape for a single keymap:
// a mapping from key spec string to an ordered list of {when, action}
// rules (spec §4.3/§6). A bare action name in place of the list is not
// accepted; a single rule is written as a one-element list.
type KeymapConfig map[string][]KeyBindingSpec

// KeymapSetConfig bundles per-keymap overrides, matching the config
// surface's `keymap.{emacs|vim_normal|vim_insert|inspector|prefix}`.
type KeymapSetConfig struct {
	Emacs     KeymapConfig `yaml:"emacs,omitempty"`
	VimNormal KeymapConfig `yaml:"vim_normal,omitempty"`
	VimInsert KeymapConfig `yaml:"vim_insert,omitempty"`
	Inspector KeymapConfig `yaml:"inspector,omitempty"`
	Prefix    KeymapConfig `yaml:"prefix,omitempty"`
}

// IsEmpty reports whether no keymap carries any override. Used to
// implement the all-or-nothing precedence rule of spec §4.3: presence
// of any override anywhere causes [keys] flag-driven customization to
// be ignored entirely.
func (c KeymapSetConfig) IsEmpty() bool {
	return len(c.Emacs) == 0 && len(c.VimNormal) == 0 && len(c.VimInsert) == 0 &&
		len(c.Inspector) == 0 && len(c.Prefix) == 0
}

// ParseKeySpec parses a key specifier, delegating to the keyinput
// package; kept here so callers only need to import keymap.
func ParseKeySpec(spec string) (keyinput.KeyInput, error) {
	return keyinput.Parse(spec)
}

// buildError formats a keymap-override failure as "keymap override for
// <key>: <reason>". Nothing in this package constructs one:
// applyOverrides reports skipped entries as plain warning strings.
type buildError struct {
	Key    string
	Reason string
}

func (e *buildError) Error() string {
	return fmt.Sprintf("keymap override for %q: %s", e.Key, e.Reason)
}
