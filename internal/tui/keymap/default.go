package keymap

import (
	"fmt"

	"github.com/shellhist/search-tui/internal/condition"
	"github.com/shellhist/search-tui/internal/keyinput"
)

// Config parameterizes default keymap construction (spec §4.3).
type Config struct {
	ScrollExits         bool
	Invert              bool
	AcceptPastLineEnd   bool
	ExitPastLineStart   bool
	AcceptPastLineStart bool
	AcceptWithBackspace bool
	EnterAccept         bool
	CtrlNShortcuts      bool
	PrefixChar          rune
	KeymapModeShell     Mode // Emacs, VimNormal, or VimInsert — used by the inspector keymap
}

// DefaultConfig returns the same standard values the original source
// calls "standard defaults", used as the base when any [keymap] override
// is present (spec §4.3 override precedence).
func DefaultConfig() Config {
	return Config{
		ScrollExits:         false,
		Invert:              false,
		AcceptPastLineEnd:   false,
		ExitPastLineStart:   false,
		AcceptPastLineStart: false,
		AcceptWithBackspace: false,
		EnterAccept:         false,
		CtrlNShortcuts:      false,
		PrefixChar:          'a',
		KeymapModeShell:     ModeEmacs,
	}
}

func mustKey(spec string) keyinput.KeyInput {
	k, err := keyinput.Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("invalid default key %q: %v", spec, err))
	}
	return k
}

// bindScrollKey binds a scroll key with optional exit-at-boundary
// behavior. When scrollExits and towardIndexZero are both true, pressing
// the key while the selection is at index 0 exits instead of scrolling;
// otherwise it just scrolls. Callers pass towardIndexZero for down/j
// (SelectNext) when the list is not inverted, and for up/k
// (SelectPrevious) when it is.
func bindScrollKey(km *Keymap, keySpec string, action ActionKind, towardIndexZero, scrollExits bool) {
	k := mustKey(keySpec)
	if scrollExits && towardIndexZero {
		km.Bind(k, KeyBinding{Rules: []KeyRule{
			when(condition.AtomExpr{Atom: condition.AtomListAtStart}, ActionExit),
			{Action: Action{Kind: action}},
		}})
		return
	}
	km.Bind(k, always(action))
}

// addCommonBindings attaches the bindings shared by every search-tab
// keymap: ctrl-c, ctrl-g, ctrl-o, and tab. esc/ctrl-[ are deliberately
// excluded since their behavior differs per mode.
func addCommonBindings(km *Keymap) {
	km.Bind(mustKey("ctrl-c"), always(ActionReturnOriginal))
	km.Bind(mustKey("ctrl-g"), always(ActionReturnOriginal))
	km.Bind(mustKey("ctrl-o"), always(ActionToggleTab))
	km.Bind(mustKey("tab"), always(ActionReturnSelection))
}

// acceptAction returns Accept or ReturnSelection depending on whether
// Enter should run the command immediately.
func acceptAction(cfg Config) ActionKind {
	if cfg.EnterAccept {
		return ActionAccept
	}
	return ActionReturnSelection
}

// DefaultEmacsKeymap builds the default emacs keymap: cursor movement,
// word-wise editing, accept/copy, numeric shortcuts, and the prefix
// chord, parameterized by cfg exactly as spec §4.3 describes.
func DefaultEmacsKeymap(cfg Config) *Keymap {
	km := NewKeymap("emacs")
	addCommonBindings(km)

	accept := acceptAction(cfg)

	km.Bind(mustKey("esc"), always(ActionExit))
	km.Bind(mustKey("ctrl-["), always(ActionExit))

	prefixChar := cfg.PrefixChar
	if prefixChar == 0 {
		prefixChar = 'a'
	}
	km.Bind(mustKey(fmt.Sprintf("ctrl-%c", prefixChar)), always(ActionEnterPrefixMode))

	// right: behavior at end of line.
	if cfg.AcceptPastLineEnd {
		km.Bind(mustKey("right"), KeyBinding{Rules: []KeyRule{
			when(condition.AtomExpr{Atom: condition.AtomCursorAtEnd}, ActionReturnSelection),
			{Action: Action{Kind: ActionCursorRight}},
		}})
	} else {
		km.Bind(mustKey("right"), always(ActionCursorRight))
	}

	// left: behavior at start of line. accept_past_line_start wins over
	// exit_past_line_start.
	switch {
	case cfg.AcceptPastLineStart:
		km.Bind(mustKey("left"), KeyBinding{Rules: []KeyRule{
			when(condition.AtomExpr{Atom: condition.AtomCursorAtStart}, ActionReturnSelection),
			{Action: Action{Kind: ActionCursorLeft}},
		}})
	case cfg.ExitPastLineStart:
		km.Bind(mustKey("left"), KeyBinding{Rules: []KeyRule{
			when(condition.AtomExpr{Atom: condition.AtomCursorAtStart}, ActionExit),
			{Action: Action{Kind: ActionCursorLeft}},
		}})
	default:
		km.Bind(mustKey("left"), always(ActionCursorLeft))
	}

	// down/up: scroll with optional exit at boundary, direction-aware.
	bindScrollKey(km, "down", ActionSelectNext, !cfg.Invert, cfg.ScrollExits)
	bindScrollKey(km, "up", ActionSelectPrevious, cfg.Invert, cfg.ScrollExits)

	// backspace: behavior at start of line.
	if cfg.AcceptWithBackspace {
		km.Bind(mustKey("backspace"), KeyBinding{Rules: []KeyRule{
			when(condition.AtomExpr{Atom: condition.AtomCursorAtStart}, ActionReturnSelection),
			{Action: Action{Kind: ActionDeleteCharBefore}},
		}})
	} else {
		km.Bind(mustKey("backspace"), always(ActionDeleteCharBefore))
	}

	km.Bind(mustKey("enter"), always(accept))
	km.Bind(mustKey("ctrl-m"), always(accept))

	km.Bind(mustKey("ctrl-y"), always(ActionCopy))

	numMod := "alt"
	if cfg.CtrlNShortcuts {
		numMod = "ctrl"
	}
	for n := 1; n <= 9; n++ {
		km.Bind(mustKey(fmt.Sprintf("%s-%d", numMod, n)), alwaysN(ActionReturnSelectionNth, n))
	}

	km.Bind(mustKey("ctrl-left"), always(ActionCursorWordLeft))
	km.Bind(mustKey("alt-b"), always(ActionCursorWordLeft))
	km.Bind(mustKey("ctrl-b"), always(ActionCursorLeft))
	km.Bind(mustKey("ctrl-right"), always(ActionCursorWordRight))
	km.Bind(mustKey("alt-f"), always(ActionCursorWordRight))
	km.Bind(mustKey("ctrl-f"), always(ActionCursorRight))
	km.Bind(mustKey("home"), always(ActionCursorStart))
	// ctrl-a only binds to CursorStart when the prefix char is not 'a'
	// (otherwise it would shadow prefix entry above).
	if prefixChar != 'a' {
		km.Bind(mustKey("ctrl-a"), always(ActionCursorStart))
	}
	km.Bind(mustKey("ctrl-e"), always(ActionCursorEnd))
	km.Bind(mustKey("end"), always(ActionCursorEnd))

	km.Bind(mustKey("ctrl-backspace"), always(ActionDeleteWordBefore))
	km.Bind(mustKey("ctrl-h"), always(ActionDeleteCharBefore))
	km.Bind(mustKey("ctrl-?"), always(ActionDeleteCharBefore))
	km.Bind(mustKey("ctrl-delete"), always(ActionDeleteWordAfter))
	km.Bind(mustKey("delete"), always(ActionDeleteCharAfter))
	km.Bind(mustKey("ctrl-d"), KeyBinding{Rules: []KeyRule{
		when(condition.AtomExpr{Atom: condition.AtomInputEmpty}, ActionReturnOriginal),
		{Action: Action{Kind: ActionDeleteCharAfter}},
	}})
	km.Bind(mustKey("ctrl-w"), always(ActionDeleteToWordBoundary))
	km.Bind(mustKey("ctrl-u"), always(ActionClearLine))

	km.Bind(mustKey("ctrl-r"), always(ActionCycleFilterMode))
	km.Bind(mustKey("ctrl-s"), always(ActionCycleSearchMode))

	km.Bind(mustKey("ctrl-n"), always(ActionSelectNext))
	km.Bind(mustKey("ctrl-j"), always(ActionSelectNext))
	km.Bind(mustKey("ctrl-p"), always(ActionSelectPrevious))
	km.Bind(mustKey("ctrl-k"), always(ActionSelectPrevious))

	km.Bind(mustKey("ctrl-l"), always(ActionRedraw))

	km.Bind(mustKey("pagedown"), always(ActionScrollPageDown))
	km.Bind(mustKey("pageup"), always(ActionScrollPageUp))

	return km
}

// DefaultVimNormalKeymap builds the default vim-normal keymap: hjkl
// navigation, word motions, dd/G/gg jumps, and mode-entry keys.
func DefaultVimNormalKeymap(cfg Config) *Keymap {
	km := NewKeymap("vim-normal")
	addCommonBindings(km)

	km.Bind(mustKey("esc"), always(ActionExit))
	km.Bind(mustKey("ctrl-["), always(ActionExit))

	prefixChar := cfg.PrefixChar
	if prefixChar == 0 {
		prefixChar = 'a'
	}
	km.Bind(mustKey(fmt.Sprintf("ctrl-%c", prefixChar)), always(ActionEnterPrefixMode))

	bindScrollKey(km, "j", ActionSelectNext, !cfg.Invert, cfg.ScrollExits)
	bindScrollKey(km, "k", ActionSelectPrevious, cfg.Invert, cfg.ScrollExits)
	km.Bind(mustKey("h"), always(ActionCursorLeft))
	km.Bind(mustKey("l"), always(ActionCursorRight))

	km.Bind(mustKey("0"), always(ActionCursorStart))
	km.Bind(mustKey("$"), always(ActionCursorEnd))
	km.Bind(mustKey("w"), always(ActionCursorWordRight))
	km.Bind(mustKey("b"), always(ActionCursorWordLeft))
	km.Bind(mustKey("e"), always(ActionCursorWordRight))

	km.Bind(mustKey("x"), always(ActionDeleteCharAfter))
	km.BindSequence(mustKey("d"), mustKey("d"), always(ActionClearLine))
	km.Bind(mustKey("D"), always(ActionClearToEnd))
	km.Bind(mustKey("C"), always(ActionVimChangeToEnd))

	km.Bind(mustKey("?"), always(ActionVimSearchInsert))
	km.Bind(mustKey("/"), always(ActionVimSearchInsert))
	km.Bind(mustKey("a"), always(ActionVimEnterInsertAfter))
	km.Bind(mustKey("A"), always(ActionVimEnterInsertAtEnd))
	km.Bind(mustKey("i"), always(ActionVimEnterInsert))
	km.Bind(mustKey("I"), always(ActionVimEnterInsertAtStart))

	for n := 1; n <= 9; n++ {
		km.Bind(mustKey(fmt.Sprintf("%d", n)), alwaysN(ActionReturnSelectionNth, n))
	}

	km.Bind(mustKey("ctrl-u"), always(ActionScrollHalfPageUp))
	km.Bind(mustKey("ctrl-d"), always(ActionScrollHalfPageDown))
	km.Bind(mustKey("ctrl-b"), always(ActionScrollPageUp))
	km.Bind(mustKey("ctrl-f"), always(ActionScrollPageDown))

	km.Bind(mustKey("G"), always(ActionScrollToBottom))
	km.BindSequence(mustKey("g"), mustKey("g"), always(ActionScrollToTop))
	km.Bind(mustKey("H"), always(ActionScrollToScreenTop))
	km.Bind(mustKey("M"), always(ActionScrollToScreenMiddle))
	km.Bind(mustKey("L"), always(ActionScrollToScreenBottom))

	bindScrollKey(km, "down", ActionSelectNext, !cfg.Invert, cfg.ScrollExits)
	bindScrollKey(km, "up", ActionSelectPrevious, cfg.Invert, cfg.ScrollExits)

	km.Bind(mustKey("pagedown"), always(ActionScrollPageDown))
	km.Bind(mustKey("pageup"), always(ActionScrollPageUp))

	km.Bind(mustKey("enter"), always(acceptAction(cfg)))

	return km
}

// DefaultVimInsertKeymap clones the emacs keymap and overrides esc to
// enter vim-normal mode rather than exiting the loop.
func DefaultVimInsertKeymap(cfg Config) *Keymap {
	km := DefaultEmacsKeymap(cfg)
	km.Name = "vim-insert"
	km.Bind(mustKey("esc"), always(ActionVimEnterNormal))
	km.Bind(mustKey("ctrl-["), always(ActionVimEnterNormal))
	return km
}

// DefaultInspectorKeymap builds the minimal inspector-tab keymap: no
// text input, just navigation, delete, and tab switching. When the
// shell's keymap mode is one of the vim modes, j/k navigation is added.
func DefaultInspectorKeymap(cfg Config) *Keymap {
	km := NewKeymap("inspector")

	km.Bind(mustKey("ctrl-c"), always(ActionReturnOriginal))
	km.Bind(mustKey("ctrl-g"), always(ActionReturnOriginal))
	km.Bind(mustKey("esc"), always(ActionExit))
	km.Bind(mustKey("ctrl-["), always(ActionExit))
	km.Bind(mustKey("tab"), always(ActionReturnSelection))
	km.Bind(mustKey("ctrl-o"), always(ActionToggleTab))

	km.Bind(mustKey("enter"), always(acceptAction(cfg)))

	km.Bind(mustKey("ctrl-d"), always(ActionDelete))

	km.Bind(mustKey("up"), always(ActionInspectPrevious))
	km.Bind(mustKey("down"), always(ActionInspectNext))
	km.Bind(mustKey("pageup"), always(ActionInspectPrevious))
	km.Bind(mustKey("pagedown"), always(ActionInspectNext))

	if cfg.KeymapModeShell == ModeVimNormal || cfg.KeymapModeShell == ModeVimInsert {
		km.Bind(mustKey("j"), always(ActionInspectNext))
		km.Bind(mustKey("k"), always(ActionInspectPrevious))
	}

	return km
}

// DefaultPrefixKeymap builds the keymap active after the prefix chord
// (e.g. ctrl-a) until the next key arrives.
func DefaultPrefixKeymap() *Keymap {
	km := NewKeymap("prefix")

	km.Bind(mustKey("d"), always(ActionDelete))
	km.Bind(mustKey("a"), always(ActionCursorStart))
	km.Bind(mustKey("c"), KeyBinding{Rules: []KeyRule{
		when(condition.AtomExpr{Atom: condition.AtomHasContext}, ActionClearContext),
		{Action: Action{Kind: ActionSwitchContext}},
	}})

	return km
}

// DefaultKeymapSet builds all five keymaps from a single Config.
func DefaultKeymapSet(cfg Config) *KeymapSet {
	return &KeymapSet{
		Emacs:     DefaultEmacsKeymap(cfg),
		VimNormal: DefaultVimNormalKeymap(cfg),
		VimInsert: DefaultVimInsertKeymap(cfg),
		Inspector: DefaultInspectorKeymap(cfg),
		Prefix:    DefaultPrefixKeymap(),
	}
}

// BuildKeymapSet implements the override-precedence rule of spec §4.3:
// if override is empty, cfg customizes the defaults as usual; otherwise
// standard defaults are built first (cfg is ignored) and overrides are
// applied per-key on top. The returned warnings record any skipped
// invalid entries for the caller to log.
func BuildKeymapSet(cfg Config, override KeymapSetConfig) (*KeymapSet, []string) {
	if override.IsEmpty() {
		return DefaultKeymapSet(cfg), nil
	}

	set := DefaultKeymapSet(DefaultConfig())
	var warnings []string
	warnings = append(warnings, applyOverrides(set.Emacs, override.Emacs)...)
	warnings = append(warnings, applyOverrides(set.VimNormal, override.VimNormal)...)
	warnings = append(warnings, applyOverrides(set.VimInsert, override.VimInsert)...)
	warnings = append(warnings, applyOverrides(set.Inspector, override.Inspector)...)
	warnings = append(warnings, applyOverrides(set.Prefix, override.Prefix)...)
	return set, warnings
}

// applyOverrides applies a single keymap's worth of user overrides,
// replacing the entire rule list for each overridden key. Invalid keys,
// actions, or conditions are skipped and recorded as warnings; the rest
// of the config still applies (spec §4.3/§7).
func applyOverrides(km *Keymap, cfg KeymapConfig) []string {
	var warnings []string
	for keyStr, specs := range cfg {
		key, err := keyinput.Parse(keyStr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid key %q in keymap override: %v", keyStr, err))
			continue
		}

		rules := make([]KeyRule, 0, len(specs))
		valid := true
		for _, spec := range specs {
			if !IsValidAction(spec.Action) {
				warnings = append(warnings, fmt.Sprintf("unknown action %q for key %q", spec.Action, keyStr))
				valid = false
				break
			}
			var expr condition.Expr
			if spec.When != "" {
				var err error
				expr, err = condition.Parse(spec.When)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("invalid condition %q for key %q: %v", spec.When, keyStr, err))
					valid = false
					break
				}
			}
			rules = append(rules, KeyRule{Condition: expr, Action: Action{Kind: ActionKind(spec.Action)}})
		}
		if !valid {
			continue
		}
		km.Bind(key, KeyBinding{Rules: rules})
	}
	return warnings
}
