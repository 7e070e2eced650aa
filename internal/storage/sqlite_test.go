package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	records := []SessionRecord{
		{Variant: "sandbox", Player: "alex", Seed: 1, Ticks: 600, Broken: 4, Placed: 2},
		{Variant: "sandbox", Player: "sam", Seed: 2, Ticks: 120, Broken: 0, Placed: 7},
		{Variant: "sandbox_walk", Player: "alex", Seed: 3, Ticks: 60, Broken: 1, Placed: 1},
	}
	for _, r := range records {
		if _, err := store.SaveSession(r); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	got, err := store.RecentSessions("sandbox", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 sandbox sessions, got %d", len(got))
	}

	// Newest first
	if got[0].Player != "sam" || got[0].Seed != 2 {
		t.Errorf("Expected newest session first, got %+v", got[0])
	}
	if got[1].Changed() != 6 {
		t.Errorf("Changed() = %d, expected 6", got[1].Changed())
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	all, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 sessions across variants, got %d", len(all))
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveSession(SessionRecord{Variant: "sandbox", Seed: int64(i)})
	}

	got, err := store.RecentSessions("sandbox", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(got))
	}
	if got[0].Seed != 4 || got[2].Seed != 2 {
		t.Errorf("Sessions not in expected order: %+v", got)
	}
}

func TestStoreTotals(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Totals("sandbox")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("Expected zero totals for empty store, got %+v", empty)
	}

	store.SaveSession(SessionRecord{Variant: "sandbox", Ticks: 100, Broken: 3, Placed: 1})
	store.SaveSession(SessionRecord{Variant: "sandbox", Ticks: 50, Broken: 2, Placed: 5})
	store.SaveSession(SessionRecord{Variant: "sandbox_walk", Ticks: 10, Broken: 1})

	got, err := store.Totals("sandbox")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	want := Totals{Sessions: 2, Ticks: 150, Broken: 5, Placed: 6}
	if got != want {
		t.Errorf("Totals() = %+v, expected %+v", got, want)
	}

	all, _ := store.Totals("")
	if all.Sessions != 3 {
		t.Errorf("Expected 3 sessions overall, got %d", all.Sessions)
	}

	byVariant, err := store.TotalsByVariant()
	if err != nil {
		t.Fatalf("TotalsByVariant() failed: %v", err)
	}
	if len(byVariant) != 2 || byVariant["sandbox_walk"].Broken != 1 {
		t.Errorf("Unexpected per-variant totals: %+v", byVariant)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{Variant: "sandbox"})
	store.SaveSession(SessionRecord{Variant: "sandbox"})
	store.SaveSession(SessionRecord{Variant: "sandbox_walk"})

	if err := store.ClearSessions("sandbox"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	if got, _ := store.RecentSessions("sandbox", 10); len(got) != 0 {
		t.Errorf("Expected 0 sandbox sessions after clear, got %d", len(got))
	}
	if got, _ := store.RecentSessions("sandbox_walk", 10); len(got) != 1 {
		t.Error("Other variants should not be affected by clearing")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
