package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndLastAdded(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record("apple", "Default", 1496198395707); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	added, found, err := store.LastAdded("apple", "Default")
	if err != nil {
		t.Fatalf("LastAdded() error = %v", err)
	}
	if !found {
		t.Fatal("LastAdded() found = false, want true")
	}
	if added.IsZero() {
		t.Error("LastAdded() returned zero time")
	}
}

func TestLastAddedScopedToDeck(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record("apple", "English", 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if _, found, err := store.LastAdded("apple", "Default"); err != nil || found {
		t.Errorf("LastAdded() = found %v, err %v; want not found in other deck", found, err)
	}
	if _, found, err := store.LastAdded("pear", "English"); err != nil || found {
		t.Errorf("LastAdded() = found %v, err %v; want not found for other word", found, err)
	}
}

func TestCount(t *testing.T) {
	store := openTestStore(t)

	words := []string{"alpha", "beta", "gamma"}
	for i, word := range words {
		if err := store.Record(word, "Default", int64(i+1)); err != nil {
			t.Fatalf("Record(%q) error = %v", word, err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != len(words) {
		t.Errorf("Count() = %d, want %d", n, len(words))
	}
}
