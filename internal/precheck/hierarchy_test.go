package precheck

import (
	"os"
	"path/filepath"
	"testing"
)

func scaffold(t *testing.T, dirs, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestCheckHierarchyHardComplete(t *testing.T) {
	root := scaffold(t,
		[]string{"hdl/gl", "timing/lib", "timing/sdf", "timing/spef", "layout/gds", "layout/lef", "verify/beh_model", "fw", "hdl/rtl/bus_wrapper"},
		[]string{"widget.json", "readme.md", "doc/datasheet.pdf"},
	)
	if missing := CheckHierarchy(root, "widget", "hard", "digital"); len(missing) != 0 {
		t.Errorf("missing = %v", missing)
	}
}

func TestCheckHierarchySoftDigital(t *testing.T) {
	root := scaffold(t,
		[]string{"hdl/rtl/design", "verify/utb", "pnr", "verify/beh_model", "fw", "hdl/rtl/bus_wrapper"},
		[]string{"widget.json", "readme.md", "doc/datasheet.pdf"},
	)
	if missing := CheckHierarchy(root, "widget", "soft", "digital"); len(missing) != 0 {
		t.Errorf("missing = %v", missing)
	}
}

func TestCheckHierarchyAnalogUsesSpice(t *testing.T) {
	root := scaffold(t,
		[]string{"spice", "verify/beh_model", "fw", "hdl/rtl/bus_wrapper"},
		[]string{"widget.json", "readme.md", "doc/datasheet.pdf"},
	)
	if missing := CheckHierarchy(root, "widget", "hard", "analog"); len(missing) != 0 {
		t.Errorf("missing = %v", missing)
	}
}

func TestCheckHierarchyReportsEveryMissingEntry(t *testing.T) {
	root := scaffold(t, []string{"fw"}, []string{"readme.md"})
	missing := CheckHierarchy(root, "widget", "soft", "comm")
	// verify/beh_model, hdl/rtl/bus_wrapper, widget.json, doc/datasheet.pdf
	if len(missing) != 4 {
		t.Errorf("missing = %v, want 4 entries", missing)
	}
}
