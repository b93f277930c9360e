package keymap

import (
	"testing"

	"github.com/shellhist/search-tui/internal/condition"
	"github.com/shellhist/search-tui/internal/keyinput"
)

func makeCtx(cursor, width, selected, resultsLen int) condition.EvalContext {
	return condition.EvalContext{
		CursorPosition: cursor,
		InputWidth:     width,
		InputByteLen:   width,
		SelectedIndex:  selected,
		ResultsLen:     resultsLen,
	}
}

func resolve(t *testing.T, km *Keymap, spec string, ctx condition.EvalContext) (Action, bool) {
	t.Helper()
	k, err := keyinput.Parse(spec)
	if err != nil {
		t.Fatalf("Parse(%q): %v", spec, err)
	}
	binding, ok := km.Lookup(k)
	if !ok {
		return Action{}, false
	}
	return binding.Resolve(ctx)
}

func TestEmacsDefaults(t *testing.T) {
	km := DefaultEmacsKeymap(DefaultConfig())
	ctx := makeCtx(0, 0, 0, 10)

	tests := []struct {
		key  string
		want ActionKind
	}{
		{"ctrl-c", ActionReturnOriginal},
		{"esc", ActionExit},
		{"tab", ActionReturnSelection},
		{"enter", ActionReturnSelection}, // enter_accept=false by default
		{"ctrl-y", ActionCopy},
		{"ctrl-r", ActionCycleFilterMode},
		{"ctrl-s", ActionCycleSearchMode},
		{"ctrl-l", ActionRedraw},
		{"home", ActionCursorStart},
		{"end", ActionCursorEnd},
		{"ctrl-w", ActionDeleteToWordBoundary},
		{"ctrl-u", ActionClearLine},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := resolve(t, km, tc.key, ctx)
			if !ok || got.Kind != tc.want {
				t.Errorf("resolve(%q) = %+v (ok=%v), want %v", tc.key, got, ok, tc.want)
			}
		})
	}
}

func TestEmacsEnterAcceptTrue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnterAccept = true
	km := DefaultEmacsKeymap(cfg)
	ctx := makeCtx(0, 0, 0, 10)

	if got, ok := resolve(t, km, "enter", ctx); !ok || got.Kind != ActionAccept {
		t.Errorf("enter with enter_accept=true = %+v (ok=%v), want Accept", got, ok)
	}
	// Tab always returns selection regardless of enter_accept.
	if got, ok := resolve(t, km, "tab", ctx); !ok || got.Kind != ActionReturnSelection {
		t.Errorf("tab with enter_accept=true = %+v (ok=%v), want ReturnSelection", got, ok)
	}
}

func TestEmacsCtrlAPrefixConflict(t *testing.T) {
	km := DefaultEmacsKeymap(DefaultConfig()) // prefix char defaults to 'a'
	ctx := makeCtx(0, 0, 0, 10)

	got, ok := resolve(t, km, "ctrl-a", ctx)
	if !ok || got.Kind != ActionEnterPrefixMode {
		t.Fatalf("ctrl-a = %+v (ok=%v), want EnterPrefixMode", got, ok)
	}

	cfg := DefaultConfig()
	cfg.PrefixChar = 'x'
	km2 := DefaultEmacsKeymap(cfg)
	got2, ok2 := resolve(t, km2, "ctrl-a", ctx)
	if !ok2 || got2.Kind != ActionCursorStart {
		t.Errorf("ctrl-a with prefix char 'x' = %+v (ok=%v), want CursorStart", got2, ok2)
	}
	got3, ok3 := resolve(t, km2, "ctrl-x", ctx)
	if !ok3 || got3.Kind != ActionEnterPrefixMode {
		t.Errorf("ctrl-x with prefix char 'x' = %+v (ok=%v), want EnterPrefixMode", got3, ok3)
	}
}

func TestEmacsCtrlDEmptyInput(t *testing.T) {
	km := DefaultEmacsKeymap(DefaultConfig())

	empty := makeCtx(0, 0, 0, 10)
	empty.InputByteLen = 0
	if got, ok := resolve(t, km, "ctrl-d", empty); !ok || got.Kind != ActionReturnOriginal {
		t.Errorf("ctrl-d on empty input = %+v (ok=%v), want ReturnOriginal", got, ok)
	}

	nonEmpty := makeCtx(2, 4, 0, 10)
	nonEmpty.InputByteLen = 4
	if got, ok := resolve(t, km, "ctrl-d", nonEmpty); !ok || got.Kind != ActionDeleteCharAfter {
		t.Errorf("ctrl-d on non-empty input = %+v (ok=%v), want DeleteCharAfter", got, ok)
	}
}

func TestEmacsRightAtEndAccepts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AcceptPastLineEnd = true
	km := DefaultEmacsKeymap(cfg)

	atEnd := makeCtx(5, 5, 0, 10)
	if got, ok := resolve(t, km, "right", atEnd); !ok || got.Kind != ActionReturnSelection {
		t.Errorf("right at end with accept_past_line_end = %+v (ok=%v), want ReturnSelection", got, ok)
	}

	notAtEnd := makeCtx(2, 5, 0, 10)
	if got, ok := resolve(t, km, "right", notAtEnd); !ok || got.Kind != ActionCursorRight {
		t.Errorf("right not at end = %+v (ok=%v), want CursorRight", got, ok)
	}
}

func TestEmacsBackspaceAtStartAccepts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AcceptWithBackspace = true
	km := DefaultEmacsKeymap(cfg)

	atStart := makeCtx(0, 2, 0, 10)
	if got, ok := resolve(t, km, "backspace", atStart); !ok || got.Kind != ActionReturnSelection {
		t.Errorf("backspace at start with accept_with_backspace = %+v (ok=%v), want ReturnSelection", got, ok)
	}
}

func TestEmacsScrollExitsAtBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScrollExits = true
	km := DefaultEmacsKeymap(cfg)

	atStart := makeCtx(0, 0, 0, 10)
	if got, ok := resolve(t, km, "down", atStart); !ok || got.Kind != ActionExit {
		t.Errorf("down at list start with scroll_exits = %+v (ok=%v), want Exit", got, ok)
	}

	notAtStart := makeCtx(0, 0, 3, 10)
	if got, ok := resolve(t, km, "down", notAtStart); !ok || got.Kind != ActionSelectNext {
		t.Errorf("down not at list start = %+v (ok=%v), want SelectNext", got, ok)
	}

	// up is not the exiting key in non-inverted mode: at index 0 it
	// still resolves to SelectPrevious.
	if got, ok := resolve(t, km, "up", atStart); !ok || got.Kind != ActionSelectPrevious {
		t.Errorf("up at list start (non-inverted) = %+v (ok=%v), want SelectPrevious", got, ok)
	}
}

func TestEmacsNumericShortcuts(t *testing.T) {
	km := DefaultEmacsKeymap(DefaultConfig())
	ctx := makeCtx(0, 0, 0, 10)

	got, ok := resolve(t, km, "alt-3", ctx)
	if !ok || got.Kind != ActionReturnSelectionNth || got.N != 3 {
		t.Errorf("alt-3 = %+v (ok=%v), want ReturnSelectionNth(3)", got, ok)
	}

	cfg := DefaultConfig()
	cfg.CtrlNShortcuts = true
	km2 := DefaultEmacsKeymap(cfg)
	got2, ok2 := resolve(t, km2, "ctrl-3", ctx)
	if !ok2 || got2.Kind != ActionReturnSelectionNth || got2.N != 3 {
		t.Errorf("ctrl-3 with ctrl_n_shortcuts = %+v (ok=%v), want ReturnSelectionNth(3)", got2, ok2)
	}
}

func TestVimNormalDefaults(t *testing.T) {
	km := DefaultVimNormalKeymap(DefaultConfig())
	ctx := makeCtx(0, 5, 0, 10)

	tests := []struct {
		key  string
		want ActionKind
	}{
		{"h", ActionCursorLeft},
		{"l", ActionCursorRight},
		{"0", ActionCursorStart},
		{"$", ActionCursorEnd},
		{"x", ActionDeleteCharAfter},
		{"D", ActionClearToEnd},
		{"C", ActionVimChangeToEnd},
		{"i", ActionVimEnterInsert},
		{"I", ActionVimEnterInsertAtStart},
		{"a", ActionVimEnterInsertAfter},
		{"A", ActionVimEnterInsertAtEnd},
		{"G", ActionScrollToBottom},
		{"H", ActionScrollToScreenTop},
		{"M", ActionScrollToScreenMiddle},
		{"L", ActionScrollToScreenBottom},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := resolve(t, km, tc.key, ctx)
			if !ok || got.Kind != tc.want {
				t.Errorf("resolve(%q) = %+v (ok=%v), want %v", tc.key, got, ok, tc.want)
			}
		})
	}
}

// Vim-normal "d d" clears the line (spec §8 scenario 4).
func TestVimNormalDDClearsLine(t *testing.T) {
	km := DefaultVimNormalKeymap(DefaultConfig())
	d, err := keyinput.Parse("d")
	if err != nil {
		t.Fatalf("Parse(d): %v", err)
	}
	if !km.HasSequence(d) {
		t.Fatal("expected 'd' to begin a pending sequence")
	}
	binding, ok := km.LookupSequence(d, d)
	if !ok {
		t.Fatal("expected 'd d' to resolve")
	}
	action, ok := binding.Resolve(condition.EvalContext{})
	if !ok || action.Kind != ActionClearLine {
		t.Errorf("d d resolved to %+v (ok=%v), want ClearLine", action, ok)
	}
}

func TestVimNormalGGScrollsToTop(t *testing.T) {
	km := DefaultVimNormalKeymap(DefaultConfig())
	g, err := keyinput.Parse("g")
	if err != nil {
		t.Fatalf("Parse(g): %v", err)
	}
	binding, ok := km.LookupSequence(g, g)
	if !ok {
		t.Fatal("expected 'g g' to resolve")
	}
	action, ok := binding.Resolve(condition.EvalContext{})
	if !ok || action.Kind != ActionScrollToTop {
		t.Errorf("g g resolved to %+v (ok=%v), want ScrollToTop", action, ok)
	}
}

func TestVimInsertEscEntersNormalNotExit(t *testing.T) {
	km := DefaultVimInsertKeymap(DefaultConfig())
	ctx := makeCtx(0, 0, 0, 10)
	got, ok := resolve(t, km, "esc", ctx)
	if !ok || got.Kind != ActionVimEnterNormal {
		t.Errorf("esc in vim-insert = %+v (ok=%v), want VimEnterNormal", got, ok)
	}
	// Otherwise identical to emacs.
	if got, ok := resolve(t, km, "ctrl-y", ctx); !ok || got.Kind != ActionCopy {
		t.Errorf("ctrl-y in vim-insert = %+v (ok=%v), want Copy", got, ok)
	}
}

func TestInspectorDefaults(t *testing.T) {
	km := DefaultInspectorKeymap(DefaultConfig())
	ctx := makeCtx(0, 0, 0, 10)

	if got, ok := resolve(t, km, "ctrl-d", ctx); !ok || got.Kind != ActionDelete {
		t.Errorf("ctrl-d in inspector = %+v (ok=%v), want Delete", got, ok)
	}
	if got, ok := resolve(t, km, "down", ctx); !ok || got.Kind != ActionInspectNext {
		t.Errorf("down in inspector = %+v (ok=%v), want InspectNext", got, ok)
	}
	if _, ok := resolve(t, km, "j", ctx); ok {
		t.Error("j should not be bound in inspector when shell keymap is emacs")
	}
}

func TestInspectorVimJK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeymapModeShell = ModeVimNormal
	km := DefaultInspectorKeymap(cfg)
	ctx := makeCtx(0, 0, 0, 10)

	if got, ok := resolve(t, km, "j", ctx); !ok || got.Kind != ActionInspectNext {
		t.Errorf("j in inspector (vim shell) = %+v (ok=%v), want InspectNext", got, ok)
	}
	if got, ok := resolve(t, km, "k", ctx); !ok || got.Kind != ActionInspectPrevious {
		t.Errorf("k in inspector (vim shell) = %+v (ok=%v), want InspectPrevious", got, ok)
	}
}

func TestPrefixDefaults(t *testing.T) {
	km := DefaultPrefixKeymap()

	if got, ok := resolve(t, km, "d", condition.EvalContext{}); !ok || got.Kind != ActionDelete {
		t.Errorf("prefix 'd' = %+v (ok=%v), want Delete", got, ok)
	}
	if got, ok := resolve(t, km, "a", condition.EvalContext{}); !ok || got.Kind != ActionCursorStart {
		t.Errorf("prefix 'a' = %+v (ok=%v), want CursorStart", got, ok)
	}

	withCtx := condition.EvalContext{HasContext: true}
	if got, ok := resolve(t, km, "c", withCtx); !ok || got.Kind != ActionClearContext {
		t.Errorf("prefix 'c' with context = %+v (ok=%v), want ClearContext", got, ok)
	}
	noCtx := condition.EvalContext{HasContext: false}
	if got, ok := resolve(t, km, "c", noCtx); !ok || got.Kind != ActionSwitchContext {
		t.Errorf("prefix 'c' without context = %+v (ok=%v), want SwitchContext", got, ok)
	}
}

func TestBuildKeymapSetOverridePrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnterAccept = true // should be ignored once any override is present

	override := KeymapSetConfig{
		Emacs: KeymapConfig{
			"ctrl-y": {{Action: string(ActionRedraw)}},
		},
	}

	set, warnings := BuildKeymapSet(cfg, override)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	ctx := makeCtx(0, 0, 0, 10)
	// Overridden key takes the new action.
	if got, ok := resolve(t, set.Emacs, "ctrl-y", ctx); !ok || got.Kind != ActionRedraw {
		t.Errorf("overridden ctrl-y = %+v (ok=%v), want Redraw", got, ok)
	}
	// enter_accept from cfg must be ignored: standard default (false) applies.
	if got, ok := resolve(t, set.Emacs, "enter", ctx); !ok || got.Kind != ActionReturnSelection {
		t.Errorf("enter with ignored enter_accept = %+v (ok=%v), want ReturnSelection", got, ok)
	}
}

func TestBuildKeymapSetInvalidOverrideSkipped(t *testing.T) {
	override := KeymapSetConfig{
		Emacs: KeymapConfig{
			"not-a-key!!!": {{Action: string(ActionRedraw)}},
			"ctrl-z":       {{Action: "not-a-real-action"}},
		},
	}
	set, warnings := BuildKeymapSet(DefaultConfig(), override)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if _, ok := resolve(t, set.Emacs, "ctrl-c", makeCtx(0, 0, 0, 0)); !ok {
		t.Error("rest of the default keymap should remain intact despite invalid overrides")
	}
}
