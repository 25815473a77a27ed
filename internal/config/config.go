package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/chipfoundry/ipm/internal/branding"
	"github.com/chipfoundry/ipm/internal/userdata"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys recognized in ~/.ipm/config.yaml.
const (
	KeyCatalogURL  = "catalog_url"
	KeyGitHubToken = "github_token"
	KeyIPRoot      = "ip_root"
)

// Settings holds the resolved runtime configuration. It is built once at
// startup and passed into the components that need it.
type Settings struct {
	// Home is the management root holding the registry and config file.
	Home string
	// IPRoot is the directory IPs are installed into.
	IPRoot string
	// CatalogURL is where the remote catalog is fetched from.
	CatalogURL string
	// GitHubToken, when non-empty, authenticates downloads from github.com.
	GitHubToken string
}

// Dir returns the path to the ipm config directory (~/.ipm/).
func Dir() string {
	home, err := userdata.Home()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return home
}

// FilePath returns the full path to the config file (~/.ipm/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// NewSettings resolves the effective configuration. Environment variables
// take precedence over the config file; built-in defaults apply last.
func NewSettings() (*Settings, error) {
	Load()

	home, err := userdata.Home()
	if err != nil {
		return nil, err
	}

	ipRoot := Get(KeyIPRoot)
	if v := os.Getenv("IP_ROOT"); v != "" {
		ipRoot = v
	}
	if ipRoot == "" {
		ipRoot, err = userdata.DefaultIPRoot()
		if err != nil {
			return nil, err
		}
	}

	catalogURL := Get(KeyCatalogURL)
	if catalogURL == "" {
		catalogURL = branding.CatalogURL()
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = Get(KeyGitHubToken)
	}

	return &Settings{
		Home:        home,
		IPRoot:      ipRoot,
		CatalogURL:  catalogURL,
		GitHubToken: token,
	}, nil
}
