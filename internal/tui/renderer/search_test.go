package renderer

import (
	"strings"
	"testing"

	"github.com/shellhist/search-tui/internal/controller"
	"github.com/shellhist/search-tui/internal/search"
)

func newTestState(entries []search.Entry) *controller.State {
	st := &controller.State{
		Search:       search.New("", search.ModeFuzzy, search.FilterGlobal),
		Results:      entries,
		ViewportRows: 10,
	}
	return st
}

func TestSearchViewRendersResultsAndInput(t *testing.T) {
	st := newTestState([]search.Entry{{ID: "1", Command: "git status"}, {ID: "2", Command: "ls -la"}})
	st.Search.SetText("git")

	v := SearchView{ShowHelp: true, ShowTabs: true}
	ctx := NewRenderContext(60, 20)

	out, cursor := v.Render(ctx, st)
	if !strings.Contains(out, "git status") {
		t.Fatalf("output missing results:\n%s", out)
	}
	if !strings.Contains(out, "git") {
		t.Fatalf("output missing query text:\n%s", out)
	}
	if cursor.Col != prefixWidth+3 {
		t.Fatalf("cursor.Col = %d, want %d", cursor.Col, prefixWidth+3)
	}
}

func TestSearchViewInspectTabShowsDetail(t *testing.T) {
	st := newTestState([]search.Entry{{ID: "1", Command: "make build", Host: "box1"}})
	st.Tab = controller.TabInspect
	st.Selected = 0
	st.DetailView.SetContent("make build\nhost:      box1")

	v := SearchView{}
	ctx := NewRenderContext(60, 20)

	out, _ := v.Render(ctx, st)
	if !strings.Contains(out, "make build") {
		t.Fatalf("inspect view missing command:\n%s", out)
	}
	if !strings.Contains(out, "box1") {
		t.Fatalf("inspect view missing host:\n%s", out)
	}
}

func TestPreviewHeightFixedStrategy(t *testing.T) {
	st := newTestState([]search.Entry{{ID: "1", Command: "echo hi"}})
	st.Selected = 0

	v := SearchView{ShowPreview: true, Preview: PreviewConfig{Strategy: "fixed", MaxPreviewHeight: 3}}
	ctx := NewRenderContext(60, 20)

	got := v.previewHeight(ctx, st, false)
	if got != 5 {
		t.Fatalf("previewHeight = %d, want 5 (3 + 2 border)", got)
	}
}

func TestPreviewHeightDisabledCompact(t *testing.T) {
	st := newTestState(nil)
	v := SearchView{ShowPreview: false}
	ctx := NewRenderContext(60, 10)

	if got := v.previewHeight(ctx, st, true); got != 0 {
		t.Fatalf("previewHeight = %d, want 0", got)
	}
}
