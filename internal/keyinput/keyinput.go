// Package keyinput provides a normalized representation of a single key
// press and a parser from human-readable key specifiers ("ctrl-a",
// "alt-1", "g g") into that representation.
package keyinput

import (
	"fmt"
	"strings"
)

// Modifier is a bitset over the modifier keys a KeyInput may carry.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << (iota - 1)
	ModAlt
	ModShift
)

// String renders modifiers lowercase, in Ctrl < Alt < Shift order,
// joined by "-", matching the canonical form produced by Format.
func (m Modifier) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "-")
}

// Code identifies a named (non-printable) key.
type Code int

const (
	CodeNone Code = iota
	CodeRune      // a printable character, carried in KeyInput.Rune
	CodeEnter
	CodeTab
	CodeEsc
	CodeBackspace
	CodeDelete
	CodeLeft
	CodeRight
	CodeUp
	CodeDown
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

var namedKeys = map[string]Code{
	"enter":     CodeEnter,
	"tab":       CodeTab,
	"esc":       CodeEsc,
	"escape":    CodeEsc,
	"backspace": CodeBackspace,
	"delete":    CodeDelete,
	"left":      CodeLeft,
	"right":     CodeRight,
	"up":        CodeUp,
	"down":      CodeDown,
	"home":      CodeHome,
	"end":       CodeEnd,
	"pageup":    CodePageUp,
	"pgup":      CodePageUp,
	"pagedown":  CodePageDown,
	"pgdown":    CodePageDown,
	"f1":        CodeF1,
	"f2":        CodeF2,
	"f3":        CodeF3,
	"f4":        CodeF4,
	"f5":        CodeF5,
	"f6":        CodeF6,
	"f7":        CodeF7,
	"f8":        CodeF8,
	"f9":        CodeF9,
	"f10":       CodeF10,
	"f11":       CodeF11,
	"f12":       CodeF12,
}

var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(namedKeys))
	for s, c := range namedKeys {
		// Keep whichever spelling map iteration yields first; the
		// aliased keys are overridden below.
		if _, ok := m[c]; !ok {
			m[c] = s
		}
	}
	// Force canonical spellings for the three keys with aliases.
	m[CodeEsc] = "esc"
	m[CodePageUp] = "pageup"
	m[CodePageDown] = "pagedown"
	return m
}()

// KeyInput is a single normalized key press: a modifier set plus either a
// named Code or a printable rune (when Code == CodeRune).
type KeyInput struct {
	Mods Modifier
	Code Code
	Rune rune
}

// Equal reports structural equality.
func (k KeyInput) Equal(other KeyInput) bool {
	return k.Mods == other.Mods && k.Code == other.Code && k.Rune == other.Rune
}

// Format renders k back into its canonical string form: modifiers
// lowercased and ordered Ctrl<Alt<Shift, joined with "-" to the key name.
func (k KeyInput) Format() string {
	var keyPart string
	if k.Code == CodeRune {
		if k.Rune == ' ' {
			keyPart = "space"
		} else {
			keyPart = string(k.Rune)
		}
	} else if name, ok := codeNames[k.Code]; ok {
		keyPart = name
	} else {
		keyPart = "?"
	}

	mod := k.Mods.String()
	if mod == "" {
		return keyPart
	}
	return mod + "-" + keyPart
}

// Sequence is a parsed multi-key chord, e.g. "g g".
type Sequence struct {
	Keys []KeyInput
}

// ParseError describes a failure to parse a key specifier.
type ParseError struct {
	Spec   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid key spec %q: %s", e.Spec, e.Reason)
}

// Parse parses a single key token like "ctrl-a", "alt-left", "j", "G".
// Tokens are split on "-"; all but the last segment are modifiers.
func Parse(spec string) (KeyInput, error) {
	if spec == "" {
		return KeyInput{}, &ParseError{Spec: spec, Reason: "empty key spec"}
	}

	segments := strings.Split(spec, "-")
	keyTok := segments[len(segments)-1]
	modTokens := segments[:len(segments)-1]

	var mods Modifier
	seen := map[string]bool{}
	for _, tok := range modTokens {
		low := strings.ToLower(tok)
		if seen[low] {
			return KeyInput{}, &ParseError{Spec: spec, Reason: fmt.Sprintf("duplicated modifier %q", low)}
		}
		seen[low] = true
		switch low {
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt", "meta", "opt":
			mods |= ModAlt
		case "shift":
			mods |= ModShift
		default:
			return KeyInput{}, &ParseError{Spec: spec, Reason: fmt.Sprintf("unknown modifier %q", tok)}
		}
	}

	low := strings.ToLower(keyTok)
	if code, ok := namedKeys[low]; ok {
		return KeyInput{Mods: mods, Code: code}, nil
	}
	if low == "space" {
		return KeyInput{Mods: mods, Code: CodeRune, Rune: ' '}, nil
	}

	runes := []rune(keyTok)
	if len(runes) != 1 {
		return KeyInput{}, &ParseError{Spec: spec, Reason: fmt.Sprintf("unrecognized key token %q", keyTok)}
	}

	r := runes[0]
	// shift- on a printable character is absorbed into the rune itself.
	if mods&ModShift != 0 {
		r = []rune(strings.ToUpper(string(r)))[0]
		mods &^= ModShift
	}

	return KeyInput{Mods: mods, Code: CodeRune, Rune: r}, nil
}

// ParseSequence parses a top-level binding spec, which may be a single
// key ("ctrl-a") or whitespace-separated multi-key chord ("g g").
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return Sequence{}, &ParseError{Spec: spec, Reason: "empty key spec"}
	}

	keys := make([]KeyInput, 0, len(fields))
	for _, f := range fields {
		k, err := Parse(f)
		if err != nil {
			return Sequence{}, err
		}
		keys = append(keys, k)
	}
	return Sequence{Keys: keys}, nil
}

// Canonicalize normalizes the terminal-reported quirks called out in
// spec.md §4.1/§7: Ctrl-H, Ctrl-?, and Backspace are observationally
// indistinguishable on many terminals and are folded into Backspace for
// binding-lookup purposes.
func Canonicalize(k KeyInput) KeyInput {
	if k.Code == CodeRune && k.Mods == ModCtrl && (k.Rune == 'h' || k.Rune == '?') {
		return KeyInput{Code: CodeBackspace}
	}
	return k
}
