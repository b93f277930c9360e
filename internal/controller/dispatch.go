package controller

import (
	"fmt"
	"strings"

	"github.com/shellhist/search-tui/internal/apperrors"
	"github.com/shellhist/search-tui/internal/search"
	"github.com/shellhist/search-tui/internal/tui/keymap"
)

// apply is the action dispatch table (spec §4.4). It returns a terminal
// Outcome when action ends the session.
func (c *Controller) apply(action keymap.Action) (Outcome, bool, error) {
	s := c.State

	switch action.Kind {
	// Editing
	case keymap.ActionCursorLeft:
		s.Search.MoveLeft()
	case keymap.ActionCursorRight:
		s.Search.MoveRight()
	case keymap.ActionCursorWordLeft:
		s.Search.MoveWordLeft()
	case keymap.ActionCursorWordRight:
		s.Search.MoveWordRight()
	case keymap.ActionCursorStart:
		s.Search.MoveStart()
	case keymap.ActionCursorEnd:
		s.Search.MoveEnd()
	case keymap.ActionDeleteCharBefore:
		s.Search.DeleteCharBefore()
	case keymap.ActionDeleteCharAfter:
		s.Search.DeleteCharAfter()
	case keymap.ActionDeleteWordBefore:
		s.Search.DeleteWordBefore()
	case keymap.ActionDeleteWordAfter:
		s.Search.DeleteWordAfter()
	case keymap.ActionDeleteToWordBoundary:
		s.Search.DeleteToWordBoundary()
	case keymap.ActionClearLine:
		s.Search.ClearLine()
	case keymap.ActionClearToEnd:
		s.Search.ClearToEnd()

	// Selection / scrolling
	case keymap.ActionSelectNext:
		c.selectMove(1)
	case keymap.ActionSelectPrevious:
		c.selectMove(-1)
	case keymap.ActionScrollPageUp:
		c.selectMove(-c.pageDelta())
	case keymap.ActionScrollPageDown:
		c.selectMove(c.pageDelta())
	case keymap.ActionScrollHalfPageUp:
		c.selectMove(-c.halfPageDelta())
	case keymap.ActionScrollHalfPageDown:
		c.selectMove(c.halfPageDelta())
	case keymap.ActionScrollToTop:
		c.selectTo(0)
	case keymap.ActionScrollToBottom:
		c.selectTo(len(s.Results) - 1)
	case keymap.ActionScrollToScreenTop:
		c.selectTo(s.ScrollOffset)
	case keymap.ActionScrollToScreenMiddle:
		c.selectTo(s.ScrollOffset + c.viewportRows()/2)
	case keymap.ActionScrollToScreenBottom:
		c.selectTo(s.ScrollOffset + c.viewportRows() - 1)

	// Session / terminal actions (all terminal)
	case keymap.ActionAccept:
		s.AcceptFlag = true
		return c.terminalSelected(true), true, nil
	case keymap.ActionReturnSelection:
		return c.terminalSelected(false), true, nil
	case keymap.ActionReturnSelectionNth:
		return c.terminalNth(action.N), true, nil
	case keymap.ActionReturnQuery:
		return Outcome{Text: s.Search.Text()}, true, nil
	case keymap.ActionReturnOriginal:
		return Outcome{Text: ""}, true, nil
	case keymap.ActionExit:
		return Outcome{Text: ""}, true, nil

	case keymap.ActionCopy:
		if entry, ok := c.selectedEntry(); ok && c.Clip != nil {
			_ = c.Clip.SetText(entry.Command)
		}
	case keymap.ActionDelete:
		c.deleteSelected()

	case keymap.ActionRedraw:
		// No state change; the event loop forces a repaint regardless.

	// Mode transitions
	case keymap.ActionCycleSearchMode:
		s.Search.Mode = search.CycleSearchMode(s.Search.Mode, c.ConfiguredModes)
		s.ShowModeLabel = true
	case keymap.ActionCycleFilterMode:
		s.Search.Filter = search.CycleFilterMode(s.Search.Filter, c.Workspaces, s.Search.Ctx.HasContext())
	case keymap.ActionToggleTab:
		c.toggleTab()
	case keymap.ActionVimEnterNormal:
		s.KeymapMode = keymap.ModeVimNormal
	case keymap.ActionVimEnterInsert:
		s.KeymapMode = keymap.ModeVimInsert
	case keymap.ActionVimEnterInsertAfter:
		s.Search.MoveRight()
		s.KeymapMode = keymap.ModeVimInsert
	case keymap.ActionVimEnterInsertAtStart:
		s.Search.MoveStart()
		s.KeymapMode = keymap.ModeVimInsert
	case keymap.ActionVimEnterInsertAtEnd:
		s.Search.MoveEnd()
		s.KeymapMode = keymap.ModeVimInsert
	case keymap.ActionVimSearchInsert:
		s.KeymapMode = keymap.ModeVimInsert
	case keymap.ActionVimChangeToEnd:
		s.Search.ClearToEnd()
		s.KeymapMode = keymap.ModeVimInsert

	// Prefix / context
	case keymap.ActionEnterPrefixMode:
		s.PrefixActive = true
		return Outcome{}, false, nil
	case keymap.ActionSwitchContext:
		// No further directory context is known beyond the one supplied
		// at startup; switching with none available is a no-op.
	case keymap.ActionClearContext:
		s.Search.Ctx.RepoRoot = ""

	// Inspector
	case keymap.ActionInspectNext:
		c.selectMove(1)
		c.refreshStats()
	case keymap.ActionInspectPrevious:
		c.selectMove(-1)
		c.refreshStats()
	}

	// Resolving any action other than EnterPrefixMode clears prefix
	// state (spec §4.3: "on resolution, clear prefix flag").
	if action.Kind != keymap.ActionEnterPrefixMode {
		s.PrefixActive = false
	}

	return Outcome{}, false, nil
}

func (c *Controller) pageDelta() int {
	d := c.viewportRows() - c.ScrollContextLines
	if d < 1 {
		d = 1
	}
	return d
}

func (c *Controller) halfPageDelta() int {
	d := c.viewportRows() / 2
	if d < 1 {
		d = 1
	}
	return d
}

func (c *Controller) viewportRows() int {
	if c.State.ViewportRows < 1 {
		return 1
	}
	return c.State.ViewportRows
}

// selectMove applies a saturating (never wrapping) delta to Selected
// (spec §8: SelectNext/Previous saturate at the list boundary).
func (c *Controller) selectMove(delta int) {
	c.selectTo(c.State.Selected + delta)
}

func (c *Controller) selectTo(idx int) {
	s := c.State
	maxIdx := len(s.Results) - 1
	if maxIdx < 0 {
		s.Selected = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > maxIdx {
		idx = maxIdx
	}
	s.Selected = idx
	c.ensureVisible()
}

func (c *Controller) ensureVisible() {
	s := c.State
	rows := c.viewportRows()
	if s.Selected < s.ScrollOffset {
		s.ScrollOffset = s.Selected
	}
	if s.Selected >= s.ScrollOffset+rows {
		s.ScrollOffset = s.Selected - rows + 1
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (c *Controller) selectedEntry() (search.Entry, bool) {
	s := c.State
	if s.Selected < 0 || s.Selected >= len(s.Results) {
		return search.Entry{}, false
	}
	return s.Results[s.Selected], true
}

func (c *Controller) terminalSelected(accept bool) Outcome {
	entry, ok := c.selectedEntry()
	if !ok {
		return Outcome{Text: ""}
	}
	text := entry.Command
	if accept && c.ShellSupportsAccept {
		text = AcceptMarker + text
	}
	return Outcome{Text: text}
}

// terminalNth implements ReturnSelectionNth(n): selected_index + n,
// bounded; out of bounds falls back to returning the query text.
func (c *Controller) terminalNth(n int) Outcome {
	s := c.State
	idx := s.Selected + n
	if idx < 0 || idx >= len(s.Results) {
		return Outcome{Text: s.Search.Text()}
	}
	return Outcome{Text: s.Results[idx].Command}
}

func (c *Controller) deleteSelected() {
	s := c.State
	entry, ok := c.selectedEntry()
	if !ok {
		return
	}
	if err := c.Storage.Delete(entry.ID); err != nil {
		wrapped := apperrors.NewStorageError("delete failed", err)
		if c.Logger != nil {
			c.Logger.Warn("delete failed", "entry", entry.ID, "error", wrapped)
		}
		return
	}
	s.Results = append(s.Results[:s.Selected], s.Results[s.Selected+1:]...)
	if s.Selected >= len(s.Results) {
		s.Selected = len(s.Results) - 1
	}
	if s.Selected < 0 {
		s.Selected = 0
	}
	s.Tab = TabSearch
	c.ensureVisible()
}

// InsertPaste inserts pasted text directly into the query buffer,
// bypassing the keymap entirely (spec §12, bracketed paste), and
// re-queries if the text changed anything.
func (c *Controller) InsertPaste(text string) {
	if text == "" || c.State.Tab == TabInspect {
		return
	}
	pre := c.snapshot()
	c.State.Search.InsertText(text)
	c.requeryIfChanged(pre)
}

func (c *Controller) toggleTab() {
	s := c.State
	if s.Tab == TabSearch {
		s.Tab = TabInspect
		c.refreshStats()
	} else {
		s.Tab = TabSearch
	}
}

func (c *Controller) refreshStats() {
	s := c.State
	entry, ok := c.selectedEntry()
	if !ok {
		s.Stats = nil
		s.DetailView.SetContent("no entry selected")
		return
	}
	stats, err := c.Storage.Stats(entry)
	if err != nil {
		wrapped := apperrors.NewStorageError("stats lookup failed", err)
		if c.Logger != nil {
			c.Logger.Warn("stats lookup failed", "entry", entry.ID, "error", wrapped)
		}
		s.Stats = nil
		s.DetailView.SetContent(detailContent(entry, nil))
		s.DetailView.GotoTop()
		return
	}
	s.Stats = &stats
	s.DetailView.SetContent(detailContent(entry, &stats))
	s.DetailView.GotoTop()
}

// detailContent formats the Inspect tab's detail text for entry and its
// optional aggregate stats; it backs the viewport.Model content shown
// by the renderer.
func detailContent(entry search.Entry, stats *search.Stats) string {
	lines := []string{
		entry.Command,
		fmt.Sprintf("host:      %s", entry.Host),
		fmt.Sprintf("session:   %s", entry.Session),
		fmt.Sprintf("directory: %s", entry.Directory),
		fmt.Sprintf("timestamp: %s", entry.Timestamp.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("duration:  %s", entry.Duration),
		fmt.Sprintf("exit code: %d", entry.ExitCode),
	}
	if stats != nil {
		lines = append(lines,
			"",
			"aggregate",
			fmt.Sprintf("executions: %d", stats.TotalExecutions),
			fmt.Sprintf("first used: %s", stats.FirstUsed.Format("2006-01-02")),
			fmt.Sprintf("last used:  %s", stats.LastUsed.Format("2006-01-02")),
			fmt.Sprintf("avg dur:    %s", stats.AverageDuration),
			fmt.Sprintf("success:    %.0f%%", stats.SuccessRate*100),
		)
	}
	return strings.Join(lines, "\n")
}
