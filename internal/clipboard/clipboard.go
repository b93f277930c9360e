// Package clipboard wraps the system clipboard as a best-effort
// collaborator (spec §6): failures are swallowed and logged, never
// surfaced to the controller.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/shellhist/search-tui/internal/logging"
)

// Clipboard is the capability the Copy action invokes.
type Clipboard interface {
	SetText(text string) error
}

// System writes to the real OS clipboard via atotto/clipboard.
type System struct {
	Logger *logging.Logger
}

// NewSystem creates a System clipboard, logging failures through logger
// (a nil logger is valid; failures are simply dropped).
func NewSystem(logger *logging.Logger) *System {
	return &System{Logger: logger}
}

// SetText copies text to the system clipboard. Per spec §5/§7, clipboard
// errors are non-fatal and silent beyond a warning log.
func (s *System) SetText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("clipboard copy failed", "error", err)
		}
		return nil
	}
	return nil
}

// Noop is a Clipboard that discards everything; used for headless
// builds or tests where no system clipboard is available.
type Noop struct{}

// SetText implements Clipboard by doing nothing.
func (Noop) SetText(string) error { return nil }
