package registry

import (
	"encoding/json"
	"os"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	return s
}

func entry(name, root string) InstalledIP {
	return InstalledIP{
		Name:       name,
		Repo:       "github.com/acme/" + name,
		Version:    "v1.0.0",
		Category:   "digital",
		Technology: "sky130",
		IPRoot:     root,
	}
}

func TestEnsureWritesDefaultBuckets(t *testing.T) {
	s := newTestStore(t)

	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string][]InstalledIP
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, cat := range []string{"analog", "comm", "dataconv", "digital", "technolgy"} {
		if _, ok := doc[cat]; !ok {
			t.Errorf("missing bucket %q", cat)
		}
	}
}

func TestAddDoesNotDedup(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add(entry("widget", "/roots/a")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(entry("widget", "/roots/b")); err != nil {
		t.Fatal(err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("len = %d, want 2 (multi-root installs are two entries)", len(all))
	}
}

func TestRemoveMatchesNameAndRoot(t *testing.T) {
	s := newTestStore(t)
	s.Add(entry("widget", "/roots/a"))
	s.Add(entry("widget", "/roots/b"))

	if err := s.Remove("widget", "/roots/a"); err != nil {
		t.Fatal(err)
	}

	all, _ := s.List()
	if len(all) != 1 || all[0].IPRoot != "/roots/b" {
		t.Errorf("remaining = %+v", all)
	}
}

func TestFindByNameAndTechnology(t *testing.T) {
	s := newTestStore(t)
	s.Add(entry("widget", "/roots/a"))

	got, err := s.Find("widget", "sky130")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.IPRoot != "/roots/a" {
		t.Errorf("IPRoot = %q", got.IPRoot)
	}

	if _, err := s.Find("widget", "gf180"); err == nil {
		t.Error("expected miss for wrong technology")
	}
	if _, err := s.Find("gadget", "sky130"); err == nil {
		t.Error("expected miss for unknown name")
	}
}

func TestCleanupCandidatesNoMismatch(t *testing.T) {
	s := newTestStore(t)
	s.Add(entry("widget", "/roots/a"))

	cands, err := s.CleanupCandidates("/roots/a")
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 0 {
		t.Errorf("candidates = %+v, want none", cands)
	}
}

func TestCleanupRemovesOnlyMismatchedEntry(t *testing.T) {
	s := newTestStore(t)
	s.Add(entry("widget", "/roots/a"))
	s.Add(entry("gadget", "/roots/stale"))

	cands, err := s.CleanupCandidates("/roots/a")
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 || cands[0].Name != "gadget" {
		t.Fatalf("candidates = %+v", cands)
	}
	if err := s.RemoveEntries(cands); err != nil {
		t.Fatal(err)
	}

	all, _ := s.List()
	if len(all) != 1 || all[0].Name != "widget" {
		t.Errorf("remaining = %+v", all)
	}
}

func TestReadMissingRegistryIsIOError(t *testing.T) {
	s := NewStore(t.TempDir()) // no Ensure
	_, err := s.List()
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*IOError); !ok {
		t.Errorf("err = %T, want *IOError", err)
	}
}
