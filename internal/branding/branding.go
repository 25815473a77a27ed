// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild. Go's //go:embed
// bakes the values into the binary; missing keys fall back to hard defaults.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	GitHubRepo  string `yaml:"github_repo"`
	CatalogURL  string `yaml:"catalog_url"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "ipm",
			DisplayName: "IPM",
			Description: "Package manager for verified hardware IP blocks",
			HomeDir:     ".ipm",
			EnvPrefix:   "IPM",
			GoModule:    "github.com/chipfoundry/ipm",
			GitHubRepo:  "chipfoundry/ipm",
			CatalogURL:  "https://raw.githubusercontent.com/chipfoundry/ipm/refs/heads/main/ip-catalog.json",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ipm").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "IPM").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ipm").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "IPM").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path (e.g., "github.com/chipfoundry/ipm").
// Used by scripts/rebrand.sh — not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string (e.g., "chipfoundry/ipm").
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// CatalogURL returns the default URL of the remote IP catalog document.
func CatalogURL() string { load(); return defaults.CatalogURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("IPROOT") → "IPM_IPROOT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
