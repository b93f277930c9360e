package keymap

import (
	"testing"

	"github.com/shellhist/search-tui/internal/condition"
	"github.com/shellhist/search-tui/internal/keyinput"
)

func TestKeyBindingResolve(t *testing.T) {
	tests := []struct {
		name    string
		binding KeyBinding
		ctx     condition.EvalContext
		want    Action
		wantOK  bool
	}{
		{
			name:    "unconditional match",
			binding: always(ActionReturnOriginal),
			ctx:     condition.EvalContext{},
			want:    Action{Kind: ActionReturnOriginal},
			wantOK:  true,
		},
		{
			name: "first true condition wins",
			binding: KeyBinding{Rules: []KeyRule{
				when(condition.AtomExpr{Atom: condition.AtomListAtStart}, ActionExit),
				{Action: Action{Kind: ActionSelectNext}},
			}},
			ctx:    condition.EvalContext{SelectedIndex: 0},
			want:   Action{Kind: ActionExit},
			wantOK: true,
		},
		{
			name: "falls through to fallback rule",
			binding: KeyBinding{Rules: []KeyRule{
				when(condition.AtomExpr{Atom: condition.AtomListAtStart}, ActionExit),
				{Action: Action{Kind: ActionSelectNext}},
			}},
			ctx:    condition.EvalContext{SelectedIndex: 1},
			want:   Action{Kind: ActionSelectNext},
			wantOK: true,
		},
		{
			name:    "empty binding never matches",
			binding: KeyBinding{},
			ctx:     condition.EvalContext{},
			wantOK:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.binding.Resolve(tc.ctx)
			if ok != tc.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestKeymapLookupAndSequence(t *testing.T) {
	km := NewKeymap("test")
	g := keyinput.KeyInput{Code: keyinput.CodeRune, Rune: 'g'}
	d := keyinput.KeyInput{Code: keyinput.CodeRune, Rune: 'd'}

	km.BindSequence(g, g, always(ActionScrollToTop))

	if km.HasSequence(d) {
		t.Error("unexpected sequence registered for 'd'")
	}
	if !km.HasSequence(g) {
		t.Fatal("expected sequence registered for 'g'")
	}

	binding, ok := km.LookupSequence(g, g)
	if !ok {
		t.Fatal("expected 'g g' sequence to resolve")
	}
	action, ok := binding.Resolve(condition.EvalContext{})
	if !ok || action.Kind != ActionScrollToTop {
		t.Errorf("g g resolved to %+v, ok=%v", action, ok)
	}

	if _, ok := km.LookupSequence(g, d); ok {
		t.Error("'g d' should not resolve: no such continuation")
	}
}

func TestKeymapSetForMode(t *testing.T) {
	set := DefaultKeymapSet(DefaultConfig())
	tests := []struct {
		mode Mode
		want *Keymap
	}{
		{ModeEmacs, set.Emacs},
		{ModeVimNormal, set.VimNormal},
		{ModeVimInsert, set.VimInsert},
		{ModeInspector, set.Inspector},
		{ModePrefix, set.Prefix},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			if got := set.ForMode(tc.mode); got != tc.want {
				t.Errorf("ForMode(%s) = %p, want %p", tc.mode, got, tc.want)
			}
		})
	}
}

func TestIsValidAction(t *testing.T) {
	if !IsValidAction(string(ActionAccept)) {
		t.Error("ActionAccept should be valid")
	}
	if IsValidAction("not-a-real-action") {
		t.Error("unknown action name should be invalid")
	}
}
