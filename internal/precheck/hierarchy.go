package precheck

import (
	"fmt"
	"os"
	"path/filepath"
)

// commonDirs must exist in every package regardless of type.
var commonDirs = []string{"verify/beh_model", "fw", "hdl/rtl/bus_wrapper"}

// requiredFiles must exist at the package root. The metadata file name
// depends on the package and is checked separately.
var requiredFiles = []string{"readme.md", "doc/datasheet.pdf"}

// hierarchyDirs returns the directory template for a package's type and
// category.
func hierarchyDirs(pkgType, category string) []string {
	var dirs []string
	switch {
	case pkgType == "hard":
		dirs = []string{"hdl/gl", "timing/lib", "timing/sdf", "timing/spef", "layout/gds", "layout/lef"}
	case pkgType == "soft" && category == "digital":
		dirs = []string{"hdl/rtl/design", "verify/utb", "pnr"}
	}
	if category == "analog" {
		dirs = []string{"spice"}
	}
	return append(dirs, commonDirs...)
}

// CheckHierarchy verifies a candidate package directory against the
// layout template for its type and category. Every missing entry is
// reported; the check does not stop at the first.
func CheckHierarchy(ipPath, name, pkgType, category string) []string {
	var missing []string
	for _, dir := range hierarchyDirs(pkgType, category) {
		info, err := os.Stat(filepath.Join(ipPath, dir))
		if err != nil || !info.IsDir() {
			missing = append(missing, fmt.Sprintf("directory %s not found under %s", dir, ipPath))
		}
	}
	files := append([]string{name + ".json"}, requiredFiles...)
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(ipPath, f)); err != nil {
			missing = append(missing, fmt.Sprintf("file %s not found under %s", f, ipPath))
		}
	}
	return missing
}
