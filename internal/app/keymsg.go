package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shellhist/search-tui/internal/keyinput"
)

// fromTeaKey converts a bubbletea key event into the core's normalized
// key model (spec §4.1), the boundary where platform-specific key
// encoding is translated away.
func fromTeaKey(msg tea.KeyMsg) (keyinput.KeyInput, bool) {
	mods := keyinput.ModNone
	if msg.Alt {
		mods |= keyinput.ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return keyinput.KeyInput{}, false
		}
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeRune, Rune: msg.Runes[0]}, true
	case tea.KeySpace:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeRune, Rune: ' '}, true
	case tea.KeyEnter:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeEnter}, true
	case tea.KeyTab:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeTab}, true
	case tea.KeyEsc:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeEsc}, true
	case tea.KeyBackspace:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeBackspace}, true
	case tea.KeyDelete:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeDelete}, true
	case tea.KeyLeft:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeLeft}, true
	case tea.KeyRight:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeRight}, true
	case tea.KeyUp:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeUp}, true
	case tea.KeyDown:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeDown}, true
	case tea.KeyHome:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeHome}, true
	case tea.KeyEnd:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodeEnd}, true
	case tea.KeyPgUp:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodePageUp}, true
	case tea.KeyPgDown:
		return keyinput.KeyInput{Mods: mods, Code: keyinput.CodePageDown}, true
	case tea.KeyCtrlA:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'a'}, true
	case tea.KeyCtrlB:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'b'}, true
	case tea.KeyCtrlC:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'c'}, true
	case tea.KeyCtrlD:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'd'}, true
	case tea.KeyCtrlE:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'e'}, true
	case tea.KeyCtrlF:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'f'}, true
	case tea.KeyCtrlG:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'g'}, true
	case tea.KeyCtrlH:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'h'}, true
	case tea.KeyCtrlK:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'k'}, true
	case tea.KeyCtrlN:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'n'}, true
	case tea.KeyCtrlO:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'o'}, true
	case tea.KeyCtrlP:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'p'}, true
	case tea.KeyCtrlR:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'r'}, true
	case tea.KeyCtrlU:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'u'}, true
	case tea.KeyCtrlW:
		return keyinput.KeyInput{Mods: mods | keyinput.ModCtrl, Code: keyinput.CodeRune, Rune: 'w'}, true
	default:
		return keyinput.KeyInput{}, false
	}
}
