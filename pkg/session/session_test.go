package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/aedificium/pkg/aedificium"
)

func referenceGraph(t *testing.T) *aedificium.Aedificium {
	t.Helper()
	var conns []aedificium.Connection
	for p := 0; p < aedificium.Doors; p += 2 {
		conns = append(conns, aedificium.Connection{
			From: aedificium.Door{Room: 0, Port: p},
			To:   aedificium.Door{Room: 0, Port: p + 1},
		})
	}
	a, err := aedificium.New([]int{0}, 0, conns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	st := &State{ID: "abc", ProblemName: "probatio", Map: referenceGraph(t), QueryCount: 4}
	if err := store.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != st.ID || got.ProblemName != st.ProblemName || got.QueryCount != st.QueryCount {
		t.Fatalf("Load returned %+v, want %+v", got, st)
	}
	if got.Map.N() != st.Map.N() {
		t.Fatalf("Map.N() = %d, want %d", got.Map.N(), st.Map.N())
	}
}

func TestLoadMissingReturnsError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Load("missing"); err == nil {
		t.Fatal("expected an error for a missing session file")
	}
}

func TestSaveCreatesOneFilePerID(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save(&State{ID: "one", Map: referenceGraph(t)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(&State{ID: "two", Map: referenceGraph(t)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "one.json")); err != nil {
		t.Fatalf("expected one.json to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "two.json")); err != nil {
		t.Fatalf("expected two.json to exist: %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save(&State{ID: "abc", Map: referenceGraph(t)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete("abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("abc"); err != nil {
		t.Fatalf("second Delete should be a no-op, got: %v", err)
	}
}
