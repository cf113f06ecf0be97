package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pro-power/wordsurf/internal/wordofday"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestWordOfDayRoundTrip checks put, get and delete for a single date.
func TestWordOfDayRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := store.WordOfDay(ctx, "2026-03-01")
	if err != nil {
		t.Fatalf("WordOfDay: %v", err)
	}
	if rec != nil {
		t.Fatalf("empty store returned %+v", rec)
	}

	want := wordofday.Record{Word: "chain", BonusWord: "link", Definition: "a series of links", Date: "2026-03-01"}
	if err := store.PutWordOfDay(ctx, want); err != nil {
		t.Fatalf("PutWordOfDay: %v", err)
	}

	rec, err = store.WordOfDay(ctx, "2026-03-01")
	if err != nil {
		t.Fatalf("WordOfDay: %v", err)
	}
	if rec == nil || *rec != want {
		t.Errorf("got %+v, want %+v", rec, want)
	}

	if err := store.DeleteWordOfDay(ctx, "2026-03-01"); err != nil {
		t.Fatalf("DeleteWordOfDay: %v", err)
	}
	rec, err = store.WordOfDay(ctx, "2026-03-01")
	if err != nil {
		t.Fatalf("WordOfDay: %v", err)
	}
	if rec != nil {
		t.Errorf("record survived delete: %+v", rec)
	}
}

// TestPutWordOfDayFirstWriterWins checks a second insert for the same date is
// silently ignored.
func TestPutWordOfDayFirstWriterWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := wordofday.Record{Word: "chain", BonusWord: "link", Definition: "d1", Date: "2026-03-01"}
	second := wordofday.Record{Word: "ocean", BonusWord: "wave", Definition: "d2", Date: "2026-03-01"}

	if err := store.PutWordOfDay(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.PutWordOfDay(ctx, second); err != nil {
		t.Fatalf("second put for the same date should not error: %v", err)
	}

	rec, err := store.WordOfDay(ctx, "2026-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Word != "chain" {
		t.Errorf("stored word = %+v, want the first writer's record", rec)
	}
}

// TestWordOfDayPerDate checks records for different dates coexist.
func TestWordOfDayPerDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []wordofday.Record{
		{Word: "chain", BonusWord: "link", Date: "2026-03-01"},
		{Word: "ocean", BonusWord: "wave", Date: "2026-03-02"},
	} {
		if err := store.PutWordOfDay(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	day2, err := store.WordOfDay(ctx, "2026-03-02")
	if err != nil {
		t.Fatal(err)
	}
	if day2 == nil || day2.Word != "ocean" {
		t.Errorf("2026-03-02 record = %+v", day2)
	}
}

// TestTopScoresOrderingAndLimit checks score-descending order and the
// default top-5 cutoff.
func TestTopScoresOrderingAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	scores := []struct {
		name  string
		score int
	}{
		{"alice", 320}, {"bob", 540}, {"carol", 150},
		{"dave", 800}, {"erin", 410}, {"frank", 90},
	}
	for _, s := range scores {
		if _, err := store.SaveScore(ctx, s.name, "anonymous@example.com", s.score); err != nil {
			t.Fatalf("SaveScore(%s): %v", s.name, err)
		}
	}

	entries, err := store.TopScores(ctx, 0)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != DefaultTopScores {
		t.Fatalf("got %d entries, want %d", len(entries), DefaultTopScores)
	}
	wantOrder := []string{"dave", "bob", "erin", "alice", "carol"}
	for i, name := range wantOrder {
		if entries[i].Name != name {
			t.Errorf("entry %d = %s (%d), want %s", i, entries[i].Name, entries[i].Score, name)
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Errorf("entries not score-descending at %d: %d after %d", i, entries[i].Score, entries[i-1].Score)
		}
	}
}

// TestTopScoresExplicitLimit checks a caller-provided limit is honoured.
func TestTopScoresExplicitLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"alice", "bob", "carol"} {
		if _, err := store.SaveScore(ctx, name, "anonymous@example.com", 100*(i+1)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.TopScores(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "carol" {
		t.Errorf("top entry = %s, want carol", entries[0].Name)
	}
}

// TestSaveScoreReturnsID checks inserts yield increasing row IDs.
func TestSaveScoreReturnsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.SaveScore(ctx, "alice", "anonymous@example.com", 100)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.SaveScore(ctx, "bob", "anonymous@example.com", 200)
	if err != nil {
		t.Fatal(err)
	}
	if first <= 0 || second <= first {
		t.Errorf("ids = %d, %d, want positive and increasing", first, second)
	}
}

// TestReopenKeepsData checks the database file persists across Open calls.
func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.PutWordOfDay(ctx, wordofday.Record{Word: "chain", BonusWord: "link", Date: "2026-03-01"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	rec, err := reopened.WordOfDay(ctx, "2026-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Word != "chain" {
		t.Errorf("reopened record = %+v", rec)
	}
}
