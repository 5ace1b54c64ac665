package treecache

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), ".kestrel", "trees.db"))
	if err != nil {
		t.Fatalf("OpenStore = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t)
	gs := core.NewGlobalState()
	tree := buildRichTree(gs)

	if err := s.Put(gs, "src/widget.krl", "hash-1", tree); err != nil {
		t.Fatalf("Put = %v", err)
	}

	gs2 := core.NewGlobalState()
	got, err := s.Get(gs2, "src/widget.krl", "hash-1")
	if err != nil {
		t.Fatalf("Get = %v", err)
	}
	if want := tree.ShowRaw(gs, 0); got.ShowRaw(gs2, 0) != want {
		t.Error("cached tree does not match the stored one")
	}
}

func TestStoreHashMismatchIsMiss(t *testing.T) {
	s := openTestStore(t)
	gs := core.NewGlobalState()

	if err := s.Put(gs, "src/widget.krl", "hash-1", buildRichTree(gs)); err != nil {
		t.Fatalf("Put = %v", err)
	}
	_, err := s.Get(gs, "src/widget.krl", "hash-2")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get with stale hash = %v, want ErrCacheMiss", err)
	}
}

func TestStoreMissingPathIsMiss(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(core.NewGlobalState(), "never/stored.krl", "hash-1")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get on missing path = %v, want ErrCacheMiss", err)
	}
}

func TestStorePutReplaces(t *testing.T) {
	s := openTestStore(t)
	gs := core.NewGlobalState()
	var b ast.Builder

	old := b.Literal(testLoc(), core.IntLit(1))
	if err := s.Put(gs, "a.krl", "hash-old", old); err != nil {
		t.Fatalf("Put = %v", err)
	}
	updated := b.Literal(testLoc(), core.IntLit(2))
	if err := s.Put(gs, "a.krl", "hash-new", updated); err != nil {
		t.Fatalf("Put = %v", err)
	}

	if _, err := s.Get(gs, "a.krl", "hash-old"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("old hash = %v, want ErrCacheMiss", err)
	}
	got, err := s.Get(gs, "a.krl", "hash-new")
	if err != nil {
		t.Fatalf("Get = %v", err)
	}
	if got.(*ast.Literal).Value.Int != 2 {
		t.Error("Get returned the replaced entry")
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)
	gs := core.NewGlobalState()
	var b ast.Builder

	if err := s.Put(gs, "a.krl", "h", b.Literal(testLoc(), core.NilLit())); err != nil {
		t.Fatalf("Put = %v", err)
	}
	if err := s.Delete("a.krl"); err != nil {
		t.Fatalf("Delete = %v", err)
	}
	if _, err := s.Get(gs, "a.krl", "h"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after delete = %v, want ErrCacheMiss", err)
	}
	// Deleting a missing entry is fine.
	if err := s.Delete("a.krl"); err != nil {
		t.Errorf("second Delete = %v", err)
	}
}

func TestStorePaths(t *testing.T) {
	s := openTestStore(t)
	gs := core.NewGlobalState()
	var b ast.Builder
	lit := b.Literal(testLoc(), core.NilLit())

	for _, p := range []string{"b.krl", "a.krl", "c.krl"} {
		if err := s.Put(gs, p, "h", lit); err != nil {
			t.Fatalf("Put(%s) = %v", p, err)
		}
	}
	paths, err := s.Paths()
	if err != nil {
		t.Fatalf("Paths = %v", err)
	}
	want := []string{"a.krl", "b.krl", "c.krl"}
	if len(paths) != len(want) {
		t.Fatalf("Paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("Paths = %v, want %v", paths, want)
		}
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "trees.db")
	gs := core.NewGlobalState()
	var b ast.Builder

	s, err := OpenStore(dbPath)
	if err != nil {
		t.Fatalf("OpenStore = %v", err)
	}
	if err := s.Put(gs, "a.krl", "h", b.Literal(testLoc(), core.IntLit(9))); err != nil {
		t.Fatalf("Put = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close = %v", err)
	}

	s, err = OpenStore(dbPath)
	if err != nil {
		t.Fatalf("reopen = %v", err)
	}
	defer s.Close()
	got, err := s.Get(gs, "a.krl", "h")
	if err != nil {
		t.Fatalf("Get after reopen = %v", err)
	}
	if got.(*ast.Literal).Value.Int != 9 {
		t.Error("entry lost across reopen")
	}
}
