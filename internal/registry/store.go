package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/chipfoundry/ipm/internal/userdata"
)

// IOError wraps a filesystem or JSON failure on one of the two stores.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// defaultCategories are the buckets a fresh registry starts with. The
// "technolgy" spelling is wrong but is what every existing registry file
// on disk uses, so it stays.
var defaultCategories = []string{"analog", "comm", "dataconv", "digital", "technolgy"}

// document is the registry file shape: category name to installed entries.
type document map[string][]InstalledIP

// Store is the local registry, one JSON document read-modify-written as
// a whole. There is no file locking; concurrent writers can lose updates.
type Store struct {
	Path string
}

// NewStore binds a store to the registry file under the management root.
func NewStore(home string) *Store {
	return &Store{Path: userdata.RegistryPath(home)}
}

// Ensure creates an empty registry with the default category buckets if
// the file does not exist yet.
func (s *Store) Ensure() error {
	if _, err := os.Stat(s.Path); err == nil {
		return nil
	}
	doc := document{}
	for _, c := range defaultCategories {
		doc[c] = []InstalledIP{}
	}
	return s.write(doc)
}

func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &IOError{Path: s.Path, Op: "reading registry", Err: err}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &IOError{Path: s.Path, Op: "parsing registry", Err: err}
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return &IOError{Path: s.Path, Op: "encoding registry", Err: err}
	}
	if err := os.WriteFile(s.Path, data, userdata.FilePermNormal); err != nil {
		return &IOError{Path: s.Path, Op: "writing registry", Err: err}
	}
	return nil
}

// Add appends rec to its category bucket. No dedup: a second install of
// the same name at a different root is a valid second entry.
func (s *Store) Add(rec InstalledIP) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[rec.Category] = append(doc[rec.Category], rec)
	return s.write(doc)
}

// Remove drops every entry matching both name and ip_root exactly.
// Entries for the same name at other roots are left alone.
func (s *Store) Remove(name, ipRoot string) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	for cat, entries := range doc {
		kept := entries[:0]
		for _, e := range entries {
			if e.Name == name && e.IPRoot == ipRoot {
				continue
			}
			kept = append(kept, e)
		}
		doc[cat] = kept
	}
	return s.write(doc)
}

// Find returns the first entry matching name and technology.
func (s *Store) Find(name, technology string) (InstalledIP, error) {
	doc, err := s.read()
	if err != nil {
		return InstalledIP{}, err
	}
	for _, cat := range sortedCategories(doc) {
		for _, e := range doc[cat] {
			if e.Name == name && e.Technology == technology {
				return e, nil
			}
		}
	}
	return InstalledIP{}, fmt.Errorf("ip %q is not installed for technology %q", name, technology)
}

// List returns every entry, category buckets in sorted order so bulk
// operations iterate deterministically.
func (s *Store) List() ([]InstalledIP, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var all []InstalledIP
	for _, cat := range sortedCategories(doc) {
		all = append(all, doc[cat]...)
	}
	return all, nil
}

// CleanupCandidates returns entries whose stored ip_root differs from
// targetRoot. Candidates are reported, never auto-removed.
func (s *Store) CleanupCandidates(targetRoot string) ([]InstalledIP, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []InstalledIP
	for _, e := range all {
		if e.IPRoot != targetRoot {
			out = append(out, e)
		}
	}
	return out, nil
}

// RemoveEntries deletes the given entries from the registry, matching on
// (name, ip_root). The filesystem is never touched.
func (s *Store) RemoveEntries(entries []InstalledIP) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	for cat, existing := range doc {
		kept := existing[:0]
		for _, e := range existing {
			if matchesAny(e, entries) {
				continue
			}
			kept = append(kept, e)
		}
		doc[cat] = kept
	}
	return s.write(doc)
}

func matchesAny(e InstalledIP, entries []InstalledIP) bool {
	for _, c := range entries {
		if e.Name == c.Name && e.IPRoot == c.IPRoot {
			return true
		}
	}
	return false
}

func sortedCategories(doc document) []string {
	cats := make([]string, 0, len(doc))
	for c := range doc {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
