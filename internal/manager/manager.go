package manager

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chipfoundry/ipm/internal/catalog"
	"github.com/chipfoundry/ipm/internal/config"
	"github.com/chipfoundry/ipm/internal/installer"
	"github.com/chipfoundry/ipm/internal/registry"
	"github.com/chipfoundry/ipm/internal/userdata"
)

// Manager orchestrates the package workflows. Every collaborator is an
// exported field so callers (and tests) can substitute their own.
type Manager struct {
	Settings  *config.Settings
	Catalog   *catalog.Client
	Installer *installer.Installer
	Store     *registry.Store
	Out       io.Writer
}

// New wires a manager from resolved settings.
func New(settings *config.Settings) *Manager {
	return &Manager{
		Settings:  settings,
		Catalog:   catalog.NewClient(settings.CatalogURL),
		Installer: installer.New(settings.GitHubToken),
		Store:     registry.NewStore(settings.Home),
		Out:       os.Stdout,
	}
}

func (m *Manager) printf(format string, args ...any) {
	if m.Out != nil {
		fmt.Fprintf(m.Out, format, args...)
	}
}

// Install resolves name against the remote catalog, downloads and places
// the release under ipRoot, then records it in the registry and the
// dependency manifest. An empty version means the catalog's latest.
func (m *Manager) Install(ctx context.Context, name, version, technology, ipRoot, depsDir string, overwrite bool) error {
	if err := userdata.EnsureIPRoot(ipRoot); err != nil {
		return err
	}
	absRoot, err := filepath.Abs(ipRoot)
	if err != nil {
		return fmt.Errorf("resolving install root: %w", err)
	}

	// Overwriting an existing install drops its bookkeeping first so the
	// re-add below cannot leave duplicate entries for the same root.
	nonEmpty, err := installer.TargetNonEmpty(absRoot, name)
	if err != nil {
		return fmt.Errorf("inspecting install target: %w", err)
	}
	if nonEmpty && overwrite {
		m.printf("Removing existing IP %s at %s\n", name, absRoot)
		if err := m.Store.Remove(name, absRoot); err != nil {
			return err
		}
		deps := registry.NewDepsFile(depsDir, absRoot)
		if _, loadErr := deps.Load(); loadErr == nil {
			if err := deps.Remove(name); err != nil {
				return err
			}
		}
	}

	cat, err := m.Catalog.Fetch(ctx)
	if err != nil {
		return err
	}
	ip, err := cat.Find(name, technology)
	if err != nil {
		return err
	}
	desc, err := catalog.ResolveRelease(ip, version)
	if err != nil {
		return err
	}

	m.printf("Installing IP %s version %s at %s\n", name, desc.Version, filepath.Join(absRoot, name))
	if err := m.Installer.Install(ctx, desc, name, absRoot, overwrite); err != nil {
		return err
	}

	if err := m.Store.Add(registry.NewInstalledIP(ip, desc.Release, absRoot)); err != nil {
		return err
	}
	deps := registry.NewDepsFile(depsDir, absRoot)
	if err := deps.Add(registry.Dependency{Name: name, Version: desc.Version, Technology: ip.Technology}); err != nil {
		return err
	}
	m.printf("Successfully installed %s version %s\n", name, desc.Version)
	return nil
}

// InstallDeps installs every entry of the dependency manifest, a flat
// unordered list, strictly sequentially. The first failure aborts the
// rest of the batch.
func (m *Manager) InstallDeps(ctx context.Context, ipRoot, depsDir string, overwrite bool) error {
	absRoot, err := filepath.Abs(ipRoot)
	if err != nil {
		return fmt.Errorf("resolving install root: %w", err)
	}
	deps := registry.NewDepsFile(depsDir, absRoot)
	entries, err := deps.Load()
	if err != nil {
		return err
	}

	for _, dep := range entries {
		if err := m.installDep(ctx, dep, absRoot, depsDir, overwrite); err != nil {
			return err
		}
	}
	return nil
}

// installDep mirrors Install but never writes back to the manifest; the
// entry being installed is already there.
func (m *Manager) installDep(ctx context.Context, dep registry.Dependency, absRoot, depsDir string, overwrite bool) error {
	nonEmpty, err := installer.TargetNonEmpty(absRoot, dep.Name)
	if err != nil {
		return fmt.Errorf("inspecting install target: %w", err)
	}
	if nonEmpty && overwrite {
		m.printf("Removing existing IP %s at %s\n", dep.Name, absRoot)
		if err := m.Store.Remove(dep.Name, absRoot); err != nil {
			return err
		}
	}

	cat, err := m.Catalog.Fetch(ctx)
	if err != nil {
		return err
	}
	ip, err := cat.Find(dep.Name, dep.Technology)
	if err != nil {
		return err
	}
	desc, err := catalog.ResolveRelease(ip, dep.Version)
	if err != nil {
		return err
	}

	m.printf("Installing IP %s version %s at %s\n", dep.Name, desc.Version, filepath.Join(absRoot, dep.Name))
	if err := m.Installer.Install(ctx, desc, dep.Name, absRoot, overwrite); err != nil {
		return err
	}
	if err := m.Store.Add(registry.NewInstalledIP(ip, desc.Release, absRoot)); err != nil {
		return err
	}
	m.printf("Successfully installed %s version %s\n", dep.Name, desc.Version)
	return nil
}

// Uninstall removes the registry entry, the dependency entry, and the
// installed directory tree.
func (m *Manager) Uninstall(name, technology, ipRoot, depsDir string) error {
	absRoot, err := filepath.Abs(ipRoot)
	if err != nil {
		return fmt.Errorf("resolving install root: %w", err)
	}
	ipPath := filepath.Join(absRoot, name)
	if _, err := os.Stat(ipPath); err != nil {
		return fmt.Errorf("ip %q was not found at %s; it may have been removed or renamed manually", name, absRoot)
	}

	rec, err := m.Store.Find(name, technology)
	if err != nil {
		return err
	}
	if err := m.Store.Remove(name, absRoot); err != nil {
		return err
	}
	deps := registry.NewDepsFile(depsDir, absRoot)
	if _, loadErr := deps.Load(); loadErr == nil {
		if err := deps.Remove(name); err != nil {
			return err
		}
	}
	if err := os.RemoveAll(ipPath); err != nil {
		return fmt.Errorf("removing %s: %w", ipPath, err)
	}
	m.printf("Successfully uninstalled %s version %s\n", name, rec.Version)
	return nil
}
