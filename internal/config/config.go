package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/utils"
)

// Config holds the resolved client configuration
type Config struct {
	APIURL    string
	ConfigDir string
	// Timezone decides which calendar day "today" is. Empty means local time.
	Timezone string
	Debug    bool
}

// LoadEnvFile loads variables from a .env file into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = os.Getenv(constants.EnvEnvFile)
	}
	if path == "" {
		path = constants.DefaultEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// New builds a Config, filling empty fields with defaults and validating the result.
func New(apiURL, configDir, timezone string, debug bool) (Config, error) {
	cfg := Config{
		APIURL:    strings.TrimRight(strings.TrimSpace(apiURL), "/"),
		ConfigDir: configDir,
		Timezone:  strings.TrimSpace(timezone),
		Debug:     debug,
	}
	if cfg.APIURL == "" {
		cfg.APIURL = constants.DefaultAPIURL
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = constants.DefaultConfigDir
	}

	dir, err := ExpandHome(cfg.ConfigDir)
	if err != nil {
		return Config{}, err
	}
	cfg.ConfigDir = dir

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the API URL is an absolute http(s) URL and that the
// timezone is a known IANA name
func (c Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.APIURL)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
