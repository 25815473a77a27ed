package registry

import (
	"errors"
	"os"
	"testing"
)

func TestDepsLazyCreateAndLoad(t *testing.T) {
	d := NewDepsFile("", t.TempDir())

	if _, err := d.Load(); err == nil {
		t.Fatal("expected error before first Add")
	}

	if err := d.Add(Dependency{Name: "widget", Version: "v1.0.0", Technology: "sky130"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	entries, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "widget" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestDepsRemoveByNameOnly(t *testing.T) {
	d := NewDepsFile("", t.TempDir())
	d.Add(Dependency{Name: "widget", Version: "v1.0.0", Technology: "sky130"})
	d.Add(Dependency{Name: "widget", Version: "v2.0.0", Technology: "gf180"})
	d.Add(Dependency{Name: "gadget", Version: "v1.0.0", Technology: "sky130"})

	if err := d.Remove("widget"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	entries, err := d.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "gadget" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestDepsExplicitDirOverride(t *testing.T) {
	dir := t.TempDir()
	d := NewDepsFile(dir, "/unused")
	if err := d.Add(Dependency{Name: "widget", Version: "v1.0.0", Technology: "sky130"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(d.Path); err != nil {
		t.Fatalf("manifest not at override dir: %v", err)
	}
}

func TestDepsLoadMissingIsNotExist(t *testing.T) {
	d := NewDepsFile("", t.TempDir())
	_, err := d.Load()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %T", err)
	}
	if !os.IsNotExist(ioErr.Err) {
		t.Errorf("cause = %v, want not-exist", ioErr.Err)
	}
}
