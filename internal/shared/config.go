package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"
)

//go:embed config.example.ini
var exampleConf []byte

const (
	// CIEnvVar marks a continuous-integration run when set to "true".
	CIEnvVar           = "TRAVIS"
	ClientIDEnvVar     = "SPOTIFY_CLIENT_ID"
	ClientSecretEnvVar = "SPOTIFY_CLIENT_SECRET"

	ConfigFileName = "config.ini"
	ConfigSection  = "spotify"
	IDKey          = "id"
	SecretKey      = "secret"

	placeholderID     = "spotify_id_here"
	placeholderSecret = "spotify_secret_here"

	dashboardURL = "https://developer.spotify.com/dashboard/login"
)

// Credentials holds a Spotify application's client id and secret.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// DefaultConfigDir returns ~/.config/ypc.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ypc"), nil
}

// ConfigPath returns the credentials file path inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// InCI reports whether the process runs in a CI environment.
func InCI() bool {
	return os.Getenv(CIEnvVar) == "true"
}

// ResolveCredentials reads credentials from the environment when [InCI] is true, and from the
// config file in configDir otherwise.
//
// When the file cannot provide credentials, the directory and a sample file are created (if absent)
// and a configuration error is returned. Callers are expected to stop before any API call.
func ResolveCredentials(logger *log.Logger, configDir string) (*Credentials, error) {
	if InCI() {
		return credentialsFromEnv()
	}

	path := ConfigPath(configDir)
	creds, err := LoadCredentials(path)
	if err == nil {
		return creds, nil
	}

	logger.Error("error with the config file; a valid config is required for Spotify extraction", "path", path, "error", err)

	created, scaffoldErr := CreateConfigFile(configDir)
	if scaffoldErr != nil {
		return nil, errors.Join(err, scaffoldErr)
	}
	if created {
		logger.Info("sample configuration file created; create a Spotify application and fill in its id and secret", "path", path, "dashboard", dashboardURL)
	}

	return nil, err
}

func credentialsFromEnv() (*Credentials, error) {
	creds := &Credentials{
		ClientID:     os.Getenv(ClientIDEnvVar),
		ClientSecret: os.Getenv(ClientSecretEnvVar),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: %s and %s must be set", ErrMissingCredentials, ClientIDEnvVar, ClientSecretEnvVar)
	}
	return creds, nil
}

// LoadCredentials parses the [spotify] section of the INI file at path.
func LoadCredentials(path string) (*Credentials, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	section, err := cfg.GetSection(ConfigSection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var values [2]string
	for i, name := range []string{IDKey, SecretKey} {
		key, err := section.GetKey(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if values[i] = key.String(); values[i] == "" {
			return nil, fmt.Errorf("%w: key %q in section %q is empty", ErrInvalidConfig, name, ConfigSection)
		}
	}

	if values[0] == placeholderID || values[1] == placeholderSecret {
		return nil, fmt.Errorf("%w: %s still contains the sample placeholder values", ErrInvalidConfig, path)
	}

	return &Credentials{ClientID: values[0], ClientSecret: values[1]}, nil
}

// CreateConfigFile creates dir and writes the embedded sample config into it unless a file already exists.
//
// Reports whether a file was written.
func CreateConfigFile(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := ConfigPath(dir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
