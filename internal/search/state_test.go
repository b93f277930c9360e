package search

import "testing"

func TestStateInsertAndCursor(t *testing.T) {
	s := New("", ModeFuzzy, FilterGlobal)
	s.InsertText("ls")
	if s.Text() != "ls" {
		t.Fatalf("Text() = %q, want %q", s.Text(), "ls")
	}
	if s.CursorPosition() != 2 {
		t.Fatalf("CursorPosition() = %d, want 2", s.CursorPosition())
	}
	if s.Width() != 2 {
		t.Fatalf("Width() = %d, want 2", s.Width())
	}
}

func TestStateCombiningSequence(t *testing.T) {
	// "e" + combining acute accent is one grapheme cluster.
	s := New("café", ModeFuzzy, FilterGlobal)
	if s.Width() != 4 {
		t.Fatalf("Width() = %d, want 4 (combining sequence counts as one cluster)", s.Width())
	}
	s.MoveLeft()
	if s.CursorPosition() != 3 {
		t.Fatalf("CursorPosition() after MoveLeft = %d, want 3", s.CursorPosition())
	}
}

func TestStateDeleteCharBefore(t *testing.T) {
	s := New("ls", ModeFuzzy, FilterGlobal)
	s.DeleteCharBefore()
	if s.Text() != "l" {
		t.Fatalf("Text() = %q, want %q", s.Text(), "l")
	}
	if s.CursorPosition() != 1 {
		t.Fatalf("CursorPosition() = %d, want 1", s.CursorPosition())
	}
}

func TestStateClearLine(t *testing.T) {
	s := New("hello", ModeFuzzy, FilterGlobal)
	s.ClearLine()
	if !s.Empty() {
		t.Fatal("expected Empty() after ClearLine")
	}
	if s.CursorPosition() != 0 {
		t.Fatalf("CursorPosition() = %d, want 0", s.CursorPosition())
	}
}

func TestStateWordMotions(t *testing.T) {
	s := New("git commit amend", ModeFuzzy, FilterGlobal)
	s.MoveStart()
	s.MoveWordRight()
	if s.Text()[s.CursorPosition():] != "commit amend" {
		t.Fatalf("cursor landed wrong: suffix = %q", s.Text()[s.CursorPosition():])
	}
	s.MoveWordRight()
	s.DeleteWordBefore()
	if s.Text() != "git amend" {
		t.Fatalf("Text() = %q, want %q", s.Text(), "git amend")
	}
}

func TestCycleFilterModeWithoutWorkspace(t *testing.T) {
	m := FilterGlobal
	seen := []FilterMode{m}
	for i := 0; i < len(filterCycleBase)-1; i++ {
		m = CycleFilterMode(m, false, true)
		seen = append(seen, m)
	}
	if m != FilterDirectory {
		t.Fatalf("final mode = %q, want %q", m, FilterDirectory)
	}
	// One more cycle returns to the start (spec §8 invariant).
	if CycleFilterMode(m, false, true) != FilterGlobal {
		t.Fatal("cycle did not return to Global")
	}
}

func TestCycleFilterModeIncludesWorkspace(t *testing.T) {
	got := CycleFilterMode(FilterDirectory, true, true)
	if got != FilterWorkspace {
		t.Fatalf("CycleFilterMode() = %q, want %q", got, FilterWorkspace)
	}
	got = CycleFilterMode(FilterWorkspace, true, true)
	if got != FilterGlobal {
		t.Fatalf("CycleFilterMode() after Workspace = %q, want %q", got, FilterGlobal)
	}
}

func TestCycleFilterModeOmitsWorkspaceWithoutRepoRoot(t *testing.T) {
	got := CycleFilterMode(FilterDirectory, true, false)
	if got != FilterGlobal {
		t.Fatalf("CycleFilterMode() = %q, want %q (workspace excluded without repo root)", got, FilterGlobal)
	}
}

func TestCycleSearchMode(t *testing.T) {
	modes := []SearchMode{ModePrefix, ModeFullText, ModeFuzzy}
	got := CycleSearchMode(ModePrefix, modes)
	if got != ModeFullText {
		t.Fatalf("CycleSearchMode() = %q, want %q", got, ModeFullText)
	}
	got = CycleSearchMode(ModeFuzzy, modes)
	if got != ModePrefix {
		t.Fatalf("CycleSearchMode() wrap = %q, want %q", got, ModePrefix)
	}
}

func TestSmartSortOrdersByScoreDescending(t *testing.T) {
	entries := []Entry{
		{Command: "ls -la"},
		{Command: "git status"},
		{Command: "git push"},
	}
	sorted := SmartSort("git", entries, DefaultRank)
	if len(sorted) != 3 {
		t.Fatalf("SmartSort() changed length: got %d, want 3", len(sorted))
	}
	if sorted[0].Command != "git status" && sorted[0].Command != "git push" {
		t.Fatalf("expected a git-prefixed command first, got %q", sorted[0].Command)
	}
	if sorted[len(sorted)-1].Command != "ls -la" {
		t.Fatalf("expected non-matching entry sorted last, got %q", sorted[len(sorted)-1].Command)
	}
}
