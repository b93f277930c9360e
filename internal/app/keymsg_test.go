package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shellhist/search-tui/internal/keyinput"
)

func TestFromTeaKeyRune(t *testing.T) {
	got, ok := fromTeaKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if !ok {
		t.Fatal("expected ok")
	}
	want := keyinput.KeyInput{Code: keyinput.CodeRune, Rune: 'j'}
	if !got.Equal(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFromTeaKeyCtrlC(t *testing.T) {
	got, ok := fromTeaKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !ok {
		t.Fatal("expected ok")
	}
	want := keyinput.KeyInput{Mods: keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'c'}
	if !got.Equal(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFromTeaKeyEnter(t *testing.T) {
	got, ok := fromTeaKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !ok {
		t.Fatal("expected ok")
	}
	if got.Code != keyinput.CodeEnter {
		t.Fatalf("Code = %v, want CodeEnter", got.Code)
	}
}

func TestFromTeaKeyUnsupportedRuneCountIgnored(t *testing.T) {
	_, ok := fromTeaKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a', 'b'}})
	if ok {
		t.Fatal("expected multi-rune paste fragment to be rejected here")
	}
}
