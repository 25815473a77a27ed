package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestNewSettingsDefaults(t *testing.T) {
	viper.Reset()
	home := t.TempDir()
	t.Setenv("IPM_IPROOT", home)
	t.Setenv("IP_ROOT", "")
	os.Unsetenv("IP_ROOT")
	t.Setenv("GITHUB_TOKEN", "")
	os.Unsetenv("GITHUB_TOKEN")

	s, err := NewSettings()
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	if s.Home != home {
		t.Errorf("Home = %q, want %q", s.Home, home)
	}
	if s.CatalogURL == "" {
		t.Error("CatalogURL should fall back to the built-in default")
	}
	if s.GitHubToken != "" {
		t.Errorf("GitHubToken = %q, want empty", s.GitHubToken)
	}
}

func TestNewSettingsEnvPrecedence(t *testing.T) {
	viper.Reset()
	home := t.TempDir()
	ipRoot := t.TempDir()
	t.Setenv("IPM_IPROOT", home)
	t.Setenv("IP_ROOT", ipRoot)
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	s, err := NewSettings()
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	if s.IPRoot != ipRoot {
		t.Errorf("IPRoot = %q, want %q", s.IPRoot, ipRoot)
	}
	if s.GitHubToken != "ghp_test" {
		t.Errorf("GitHubToken = %q, want ghp_test", s.GitHubToken)
	}
}

func TestSetThenGet(t *testing.T) {
	viper.Reset()
	home := t.TempDir()
	t.Setenv("IPM_IPROOT", home)

	Load()
	if err := Set(KeyCatalogURL, "https://example.com/catalog.json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get(KeyCatalogURL); got != "https://example.com/catalog.json" {
		t.Errorf("Get = %q", got)
	}

	s, err := NewSettings()
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	if s.CatalogURL != "https://example.com/catalog.json" {
		t.Errorf("CatalogURL = %q", s.CatalogURL)
	}
}
