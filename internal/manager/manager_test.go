package manager

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chipfoundry/ipm/internal/catalog"
	"github.com/chipfoundry/ipm/internal/config"
	"github.com/chipfoundry/ipm/internal/installer"
	"github.com/chipfoundry/ipm/internal/registry"
)

func tarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	tw.Close()
	gz.Close()
	return buf.Bytes()
}

// newArchiveHost serves the same tarball for every requested path over
// TLS, so install URLs built from its host resolve back to it.
func newArchiveHost(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	archive := tarGz(t, map[string]string{"a.txt": "hello"})
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return srv, strings.TrimPrefix(srv.URL, "https://")
}

func legacyCatalog(host string, packages map[string][]string) string {
	var records []string
	for name, versions := range packages {
		var rels []string
		for _, v := range versions {
			rels = append(rels, fmt.Sprintf(`{"version": %q, "date": "2023-06-01"}`, v))
		}
		records = append(records, fmt.Sprintf(`{
			"name": %q, "repo": "%s/acme/%s", "author": "Acme", "email": "ip@acme.example",
			"type": "hard", "status": "stable", "width": "10", "height": "10",
			"technology": "sky130", "tag": ["test"], "cell_count": "100", "clk_freq": "50",
			"license": "Apache-2.0", "release": [%s]
		}`, name, host, name, strings.Join(rels, ",")))
	}
	return fmt.Sprintf(`{"digital": [%s]}`, strings.Join(records, ","))
}

func newTestManager(t *testing.T, catalogDoc string, archive *httptest.Server) *Manager {
	t.Helper()
	home := t.TempDir()
	store := registry.NewStore(home)
	if err := store.Ensure(); err != nil {
		t.Fatal(err)
	}
	catPath := filepath.Join(home, "catalog.json")
	if err := os.WriteFile(catPath, []byte(catalogDoc), 0644); err != nil {
		t.Fatal(err)
	}

	in := installer.New("")
	if archive != nil {
		in.HTTPClient = archive.Client()
	}
	return &Manager{
		Settings:  &config.Settings{Home: home, CatalogURL: catPath},
		Catalog:   catalog.NewClient(catPath),
		Installer: in,
		Store:     store,
		Out:       io.Discard,
	}
}

func TestInstallUninstallRoundTrip(t *testing.T) {
	srv, host := newArchiveHost(t)
	m := newTestManager(t, legacyCatalog(host, map[string][]string{"widget": {"v1.0.0", "v1.2.0"}}), srv)
	ctx := context.Background()
	ipRoot := t.TempDir()

	if err := m.Install(ctx, "widget", "v1.0.0", "sky130", ipRoot, "", false); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if _, err := os.Stat(filepath.Join(ipRoot, "widget", "a.txt")); err != nil {
		t.Fatalf("installed file missing: %v", err)
	}
	rec, err := m.Store.Find("widget", "sky130")
	if err != nil {
		t.Fatalf("registry entry missing: %v", err)
	}
	if rec.Version != "v1.0.0" {
		t.Errorf("registry version = %q", rec.Version)
	}
	deps := registry.NewDepsFile("", rec.IPRoot)
	entries, err := deps.Load()
	if err != nil || len(entries) != 1 {
		t.Fatalf("deps entries = %v, %v", entries, err)
	}

	if err := m.Uninstall("widget", "sky130", ipRoot, ""); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}

	if _, err := os.Stat(filepath.Join(ipRoot, "widget")); !os.IsNotExist(err) {
		t.Error("install directory still present")
	}
	if _, err := m.Store.Find("widget", "sky130"); err == nil {
		t.Error("registry entry still present")
	}
	entries, err = deps.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("deps entries after uninstall = %v", entries)
	}
}

func TestInstallUnknownIP(t *testing.T) {
	srv, host := newArchiveHost(t)
	m := newTestManager(t, legacyCatalog(host, map[string][]string{"widget": {"v1.0.0"}}), srv)

	err := m.Install(context.Background(), "missing", "", "sky130", t.TempDir(), "", false)
	if _, ok := err.(*catalog.NotFoundError); !ok {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestCheckExactEqualityOnly(t *testing.T) {
	srv, host := newArchiveHost(t)
	m := newTestManager(t, legacyCatalog(host, map[string][]string{"widget": {"v1.0.0", "v1.2.0"}}), srv)

	// A local version that looks newer still counts as outdated; only
	// exact equality means up to date.
	m.Store.Add(registry.InstalledIP{Name: "widget", Version: "v9.9.9", Category: "digital", Technology: "sky130", IPRoot: "/roots/a"})

	res, err := m.Check(context.Background(), "widget", "sky130")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Status != StatusUpdateAvailable {
		t.Errorf("Status = %v, want update available", res.Status)
	}
	if res.RemoteVersion != "v1.2.0" {
		t.Errorf("RemoteVersion = %q", res.RemoteVersion)
	}
}

func TestCheckAllCountsOneOutdated(t *testing.T) {
	srv, host := newArchiveHost(t)
	doc := legacyCatalog(host, map[string][]string{
		"widget": {"v1.0.0"},
		"gadget": {"v2.0.0"},
		"gizmo":  {"v3.0.0"},
	})
	m := newTestManager(t, doc, srv)

	m.Store.Add(registry.InstalledIP{Name: "widget", Version: "v1.0.0", Category: "digital", Technology: "sky130", IPRoot: "/roots/a"})
	m.Store.Add(registry.InstalledIP{Name: "gadget", Version: "v1.9.0", Category: "digital", Technology: "sky130", IPRoot: "/roots/a"})
	m.Store.Add(registry.InstalledIP{Name: "gizmo", Version: "v3.0.0", Category: "digital", Technology: "sky130", IPRoot: "/roots/a"})

	sum, err := m.CheckAll(context.Background())
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if sum.Outdated != 1 {
		t.Errorf("Outdated = %d, want 1", sum.Outdated)
	}
	if len(sum.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(sum.Results))
	}
	for _, res := range sum.Results {
		want := StatusUpToDate
		if res.Name == "gadget" {
			want = StatusUpdateAvailable
		}
		if res.Status != want {
			t.Errorf("%s: Status = %v, want %v", res.Name, res.Status, want)
		}
	}
}

func TestUpdateReinstallsAtRemoteVersion(t *testing.T) {
	srv, host := newArchiveHost(t)
	m := newTestManager(t, legacyCatalog(host, map[string][]string{"widget": {"v1.0.0", "v1.2.0"}}), srv)
	ctx := context.Background()
	ipRoot := t.TempDir()

	if err := m.Install(ctx, "widget", "v1.0.0", "sky130", ipRoot, "", false); err != nil {
		t.Fatalf("Install: %v", err)
	}

	res, err := m.Update(ctx, "widget", "sky130")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Status != StatusUpdated {
		t.Errorf("Status = %v, want updated", res.Status)
	}

	rec, err := m.Store.Find("widget", "sky130")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Version != "v1.2.0" {
		t.Errorf("registry version = %q, want v1.2.0", rec.Version)
	}
}

func TestUpdateUpToDateIsNoOp(t *testing.T) {
	srv, host := newArchiveHost(t)
	m := newTestManager(t, legacyCatalog(host, map[string][]string{"widget": {"v1.0.0"}}), srv)
	ctx := context.Background()
	ipRoot := t.TempDir()

	if err := m.Install(ctx, "widget", "v1.0.0", "sky130", ipRoot, "", false); err != nil {
		t.Fatal(err)
	}
	res, err := m.Update(ctx, "widget", "sky130")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Status != StatusUpToDate {
		t.Errorf("Status = %v, want up to date", res.Status)
	}
}

func TestInstallDeps(t *testing.T) {
	srv, host := newArchiveHost(t)
	doc := legacyCatalog(host, map[string][]string{
		"widget": {"v1.0.0"},
		"gadget": {"v2.0.0"},
	})
	m := newTestManager(t, doc, srv)
	ipRoot := t.TempDir()

	deps := registry.NewDepsFile("", ipRoot)
	deps.Add(registry.Dependency{Name: "widget", Version: "v1.0.0", Technology: "sky130"})
	deps.Add(registry.Dependency{Name: "gadget", Version: "v2.0.0", Technology: "sky130"})

	if err := m.InstallDeps(context.Background(), ipRoot, "", false); err != nil {
		t.Fatalf("InstallDeps: %v", err)
	}

	for _, name := range []string{"widget", "gadget"} {
		if _, err := os.Stat(filepath.Join(ipRoot, name, "a.txt")); err != nil {
			t.Errorf("%s not installed: %v", name, err)
		}
		if _, err := m.Store.Find(name, "sky130"); err != nil {
			t.Errorf("%s missing from registry: %v", name, err)
		}
	}
}

func TestInstallDepsMissingManifest(t *testing.T) {
	srv, host := newArchiveHost(t)
	m := newTestManager(t, legacyCatalog(host, map[string][]string{"widget": {"v1.0.0"}}), srv)

	if err := m.InstallDeps(context.Background(), t.TempDir(), "", false); err == nil {
		t.Error("expected error for missing dependency manifest")
	}
}
