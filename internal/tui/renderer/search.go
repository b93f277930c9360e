// Package renderer's search view turns a ControllerState snapshot into
// the layout described by the renderer responsibility: header, tab
// strip, results, input line, and preview (or the Inspect-tab detail
// view in place of results+input).
package renderer

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shellhist/search-tui/internal/controller"
	"github.com/shellhist/search-tui/internal/search"
	"github.com/shellhist/search-tui/internal/util"
)

// compactHeightThreshold is the terminal height below which borders are
// omitted.
const compactHeightThreshold = 14

// previewMetadataColumns is subtracted from the selected command's byte
// length before the auto preview strategy compares it with the pane
// width. The preview draws its metadata (timestamp, directory, exit
// code) on its own line below the command.
const previewMetadataColumns = 19

// prefixWidth is the fixed width of the filter-mode label surround
// drawn ahead of the query text on the input line, e.g. "[global] ".
const prefixWidth = 9

// SearchView renders a ControllerState snapshot. It never mutates state.
type SearchView struct {
	ShowHelp    bool
	ShowTabs    bool
	ShowPreview bool
	Invert      bool
	Preview     PreviewConfig
}

// PreviewConfig mirrors the config surface's preview knobs.
type PreviewConfig struct {
	Strategy         string // "auto", "static", "fixed"
	MaxPreviewHeight int
}

// CursorPos is the hardware cursor placement for one rendered frame.
type CursorPos struct {
	Row int
	Col int
}

// Render produces the full frame for st within width x height, plus the
// cursor placement for the input line (spec §4.5).
func (v SearchView) Render(ctx RenderContext, st *controller.State) (string, CursorPos) {
	compact := ctx.Height < compactHeightThreshold
	var rows []string
	cursor := CursorPos{}

	headerRows := 0
	if v.ShowHelp {
		rows = append(rows, v.renderHeader(ctx))
		headerRows = 1
	}

	tabRows := 0
	if v.ShowTabs {
		rows = append(rows, v.renderTabStrip(ctx, st))
		tabRows = 1
	}

	if st.Tab == controller.TabInspect {
		infoRows := 1
		detailHeight := ctx.Height - headerRows - tabRows - infoRows
		if detailHeight < 1 {
			detailHeight = 1
		}
		rows = append(rows, v.renderInspectDetail(ctx, st, detailHeight)...)
		rows = append(rows, v.renderInspectInfoLine(ctx, st))
		return strings.Join(rows, "\n"), cursor
	}

	inputRows := 1
	if !compact {
		inputRows = 2
	}
	previewHeight := v.previewHeight(ctx, st, compact)

	resultsHeight := ctx.Height - headerRows - tabRows - inputRows - previewHeight
	if resultsHeight < 1 {
		resultsHeight = 1
	}

	resultsBlock := v.renderResults(ctx, st, resultsHeight)
	inputBlock := v.renderInput(ctx, st)
	previewBlock := v.renderPreview(ctx, st, previewHeight)

	if v.Invert {
		rows = append(rows, inputBlock, previewBlock, resultsBlock)
	} else {
		rows = append(rows, resultsBlock, inputBlock, previewBlock)
	}

	inputOrigin := headerRows + tabRows
	if v.Invert {
		inputOrigin = headerRows + tabRows
	} else {
		inputOrigin = headerRows + tabRows + resultsHeight
	}
	cursor = CursorPos{
		Row: inputOrigin,
		Col: prefixWidth + st.Search.CursorPosition(),
	}

	return strings.Join(rows, "\n"), cursor
}

func (v SearchView) renderHeader(ctx RenderContext) string {
	return ctx.Styles.Header.Width(ctx.Width).Render("shellhist")
}

func (v SearchView) renderTabStrip(ctx RenderContext, st *controller.State) string {
	search := "Search"
	inspect := "Inspect"
	if st.Tab == controller.TabSearch {
		search = ctx.Styles.Selected.Render(search)
	} else {
		inspect = ctx.Styles.Selected.Render(inspect)
	}
	return fmt.Sprintf(" %s │ %s", search, inspect)
}

func (v SearchView) renderResults(ctx RenderContext, st *controller.State, height int) string {
	if len(st.Results) == 0 {
		return ctx.Styles.Muted.Render("no matches")
	}
	end := st.ScrollOffset + height
	if end > len(st.Results) {
		end = len(st.Results)
	}
	lines := make([]string, 0, height)
	for i := st.ScrollOffset; i < end; i++ {
		entry := st.Results[i]
		line := truncateDisplay(entry.Command, ctx.Width)
		if i == st.Selected {
			line = ctx.Styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (v SearchView) renderInput(ctx RenderContext, st *controller.State) string {
	label := fmt.Sprintf("[%s]", st.Search.Filter)
	line := fmt.Sprintf("%-*s%s", prefixWidth, label, st.Search.Text())
	if st.ShowModeLabel {
		line += ctx.Styles.Muted.Render(fmt.Sprintf("  (%s)", st.Search.Mode))
	}
	return line
}

func (v SearchView) previewHeight(ctx RenderContext, st *controller.State, compact bool) int {
	if !v.ShowPreview {
		if compact {
			return 0
		}
		return 1
	}
	border := 0
	if !compact {
		border = 2
	}
	maxH := v.Preview.MaxPreviewHeight
	if maxH < 1 {
		maxH = 1
	}

	switch v.Preview.Strategy {
	case "fixed":
		return maxH + border
	case "static":
		width := previewContentWidth(ctx.Width, border)
		rows := 1
		for _, e := range st.Results {
			r := wrappedRows(e.Command, width)
			if r > rows {
				rows = r
			}
		}
		if rows > maxH {
			rows = maxH
		}
		return rows + border
	default: // "auto"
		entry, ok := selectedEntry(st)
		if !ok {
			return 1 + border
		}
		width := previewContentWidth(ctx.Width, border)
		length := len(entry.Command) - previewMetadataColumns
		if length <= width {
			return 1 + border
		}
		rows := wrappedRows(entry.Command, width)
		if rows > maxH {
			rows = maxH
		}
		return rows + border
	}
}

func (v SearchView) renderPreview(ctx RenderContext, st *controller.State, height int) string {
	if height <= 0 {
		return ""
	}
	entry, ok := selectedEntry(st)
	if !ok {
		return strings.Repeat("\n", height-1)
	}
	body := fmt.Sprintf("%s  %s  exit=%d", entry.Timestamp.Format("2006-01-02 15:04"), entry.Directory, entry.ExitCode)
	content := entry.Command + "\n" + ctx.Styles.Muted.Render(body)
	if ctx.Width > 4 {
		return NewBorderedRenderer(NewStaticRenderer(content)).Render(ctx.WithHeight(height))
	}
	return content
}

// renderInspectDetail draws the Inspect tab's scrollable detail pane.
// Content is populated by the controller (on selection/stats change);
// this method only sizes a frame-local copy of the backing
// viewport.Model and returns its rendered, already-scrolled lines.
func (v SearchView) renderInspectDetail(ctx RenderContext, st *controller.State, height int) []string {
	if _, ok := selectedEntry(st); !ok {
		return []string{ctx.Styles.Muted.Render("no entry selected")}
	}
	detail := st.DetailView
	detail.Width = ctx.Width
	detail.Height = height
	return strings.Split(detail.View(), "\n")
}

func (v SearchView) renderInspectInfoLine(ctx RenderContext, st *controller.State) string {
	return ctx.Styles.Muted.Render(fmt.Sprintf("entry %d of %d — ctrl-o to return, ctrl-d to delete", st.Selected+1, len(st.Results)))
}

func selectedEntry(st *controller.State) (search.Entry, bool) {
	if st.Selected < 0 || st.Selected >= len(st.Results) {
		return search.Entry{}, false
	}
	return st.Results[st.Selected], true
}

func previewContentWidth(width, border int) int {
	w := width - border
	if w < 1 {
		return 1
	}
	return w
}

func wrappedRows(s string, width int) int {
	if width < 1 {
		width = 1
	}
	w := runewidth.StringWidth(s)
	rows := (w + width - 1) / width
	if rows < 1 {
		rows = 1
	}
	return rows
}

func truncateDisplay(s string, width int) string {
	if width <= 0 {
		return s
	}
	return util.TruncateANSI(s, width)
}
