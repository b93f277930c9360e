package searchengine

import (
	"testing"

	"github.com/shellhist/search-tui/internal/search"
	"github.com/shellhist/search-tui/internal/storage"
)

func seeded(t *testing.T) *storage.Store {
	t.Helper()
	s := storage.NewStore()
	s.Seed([]search.Entry{
		{ID: "1", Command: "git status"},
		{ID: "2", Command: "git commit -m fix"},
		{ID: "3", Command: "ls -la"},
	})
	return s
}

func stateWithText(text string) *search.State {
	st := search.New("", search.ModeFuzzy, search.FilterGlobal)
	st.SetText(text)
	return st
}

func TestPrefixEngineMatchesStart(t *testing.T) {
	e := PrefixEngine{Store: seeded(t)}
	got, err := e.Query(stateWithText("git"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestFullTextEngineRegex(t *testing.T) {
	e := FullTextEngine{Store: seeded(t)}
	got, err := e.Query(stateWithText("^git"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestFuzzyEngineOrdersTighterMatchFirst(t *testing.T) {
	e := FuzzyEngine{Store: seeded(t)}
	got, err := e.Query(stateWithText("gts"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one fuzzy match")
	}
	if got[0].Command != "git status" {
		t.Fatalf("top match = %q, want %q", got[0].Command, "git status")
	}
}

func TestFuzzyEngineEmptyQueryReturnsAll(t *testing.T) {
	e := FuzzyEngine{Store: seeded(t)}
	got, err := e.Query(stateWithText(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestFactoryResolvesMode(t *testing.T) {
	f := NewFactory(seeded(t))
	if _, ok := f.EngineFor(search.ModePrefix).(PrefixEngine); !ok {
		t.Fatal("expected PrefixEngine")
	}
	if _, ok := f.EngineFor(search.ModeFullText).(FullTextEngine); !ok {
		t.Fatal("expected FullTextEngine")
	}
	if _, ok := f.EngineFor(search.ModeSkim).(SkimEngine); !ok {
		t.Fatal("expected SkimEngine")
	}
	if _, ok := f.EngineFor(search.ModeFuzzy).(FuzzyEngine); !ok {
		t.Fatal("expected FuzzyEngine")
	}
}
