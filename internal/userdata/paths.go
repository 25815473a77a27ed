package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chipfoundry/ipm/internal/branding"
)

// File name constants for the management root.
const (
	RegistryFile = "Installed_IPs.json"
	DepsFile     = "dependencies.json"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Home returns the management root where the registry and config live.
// It checks the IPM_IPROOT environment variable first, then falls back
// to ~/.ipm.
func Home() (string, error) {
	if v := os.Getenv(branding.EnvVar("IPROOT")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// DefaultIPRoot returns the default IP installation root. It checks the
// IP_ROOT environment variable first, then falls back to ~/.ipm.
func DefaultIPRoot() (string, error) {
	if v := os.Getenv("IP_ROOT"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// RegistryPath returns the path of the local registry document under root.
func RegistryPath(root string) string {
	return filepath.Join(root, RegistryFile)
}

// DepsPath returns the path of the dependency manifest. When dir is empty
// the manifest defaults to the given install root.
func DepsPath(dir, ipRoot string) string {
	if dir != "" {
		return filepath.Join(dir, DepsFile)
	}
	return filepath.Join(ipRoot, DepsFile)
}

// EnsureHome creates the management root directory if it does not exist.
func EnsureHome(home string) error {
	if err := os.MkdirAll(home, DirPermNormal); err != nil {
		return fmt.Errorf("creating management root %s: %w", home, err)
	}
	return nil
}

// EnsureIPRoot creates the IP installation root if it does not exist.
func EnsureIPRoot(ipRoot string) error {
	info, err := os.Stat(ipRoot)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("ip root %s exists and is not a directory", ipRoot)
		}
		return nil
	}
	if err := os.MkdirAll(ipRoot, DirPermNormal); err != nil {
		return fmt.Errorf("creating ip root %s: %w", ipRoot, err)
	}
	return nil
}
