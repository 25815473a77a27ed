package registry

import (
	"encoding/json"
	"os"

	"github.com/chipfoundry/ipm/internal/userdata"
)

// Dependency is one manifest entry: a package some project wants
// (re)installed automatically.
type Dependency struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Technology string `json:"technology"`
}

type depsDocument struct {
	IP []Dependency `json:"IP"`
}

// DepsFile is the dependency manifest: a flat, unordered list, created
// lazily on first Add. It lives either at a caller-supplied directory or
// at the install root, and is wholly separate from the registry.
type DepsFile struct {
	Path string
}

// NewDepsFile binds a manifest at dir when given, else at ipRoot.
func NewDepsFile(dir, ipRoot string) *DepsFile {
	return &DepsFile{Path: userdata.DepsPath(dir, ipRoot)}
}

// Load reads the manifest entries. A missing file is an error; callers
// that tolerate absence check os.IsNotExist on the unwrapped cause.
func (d *DepsFile) Load() ([]Dependency, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, &IOError{Path: d.Path, Op: "reading dependency manifest", Err: err}
	}
	var doc depsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &IOError{Path: d.Path, Op: "parsing dependency manifest", Err: err}
	}
	return doc.IP, nil
}

// Add appends dep, creating the manifest on first use. No dedup.
func (d *DepsFile) Add(dep Dependency) error {
	doc := depsDocument{IP: []Dependency{}}
	if data, err := os.ReadFile(d.Path); err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return &IOError{Path: d.Path, Op: "parsing dependency manifest", Err: err}
		}
	} else if !os.IsNotExist(err) {
		return &IOError{Path: d.Path, Op: "reading dependency manifest", Err: err}
	}
	doc.IP = append(doc.IP, dep)
	return d.write(doc)
}

// Remove drops every entry with the given name. The manifest carries no
// root information, so name is the whole key.
func (d *DepsFile) Remove(name string) error {
	entries, err := d.Load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Name == name {
			continue
		}
		kept = append(kept, e)
	}
	return d.write(depsDocument{IP: kept})
}

func (d *DepsFile) write(doc depsDocument) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return &IOError{Path: d.Path, Op: "encoding dependency manifest", Err: err}
	}
	if err := os.WriteFile(d.Path, data, userdata.FilePermNormal); err != nil {
		return &IOError{Path: d.Path, Op: "writing dependency manifest", Err: err}
	}
	return nil
}
