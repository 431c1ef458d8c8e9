package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/inovacc/kollect/internal/kinto"
	"github.com/inovacc/kollect/internal/params"
)

// ServerSection configures the remote record server.
type ServerSection struct {
	// URL is the API root, e.g. http://127.0.0.1:8888/v1
	URL string `ini:"url"`

	// Username and Password enable HTTP basic auth when both set
	Username string `ini:"username"`
	Password string `ini:"password"`
}

// CollectionSection selects the bucket/collection to browse.
type CollectionSection struct {
	Bucket     string `ini:"bucket"`
	Collection string `ini:"collection"`
}

// UISection holds browser defaults.
type UISection struct {
	// Limit is the default page size; 0 means unlimited
	Limit int `ini:"limit"`
}

// Config is the persisted application configuration.
type Config struct {
	Server     ServerSection     `ini:"server"`
	Collection CollectionSection `ini:"collection"`
	UI         UISection         `ini:"ui"`
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() Config {
	return Config{
		Server: ServerSection{
			URL: "http://127.0.0.1:8888/v1",
		},
		Collection: CollectionSection{
			Bucket:     "default",
			Collection: "items",
		},
		UI: UISection{
			Limit: DefaultLimit,
		},
	}
}

// Resource returns the configured collection as a client resource.
func (c Config) Resource() kinto.Resource {
	return kinto.Resource{
		Bucket:     c.Collection.Bucket,
		Collection: c.Collection.Collection,
	}
}

// ClientConfig returns the client configuration for the configured
// server.
func (c Config) ClientConfig() kinto.Config {
	return kinto.Config{
		BaseURL:  c.Server.URL,
		Username: c.Server.Username,
		Password: c.Server.Password,
	}
}

// ConfigPath returns the location of the INI config file.
func ConfigPath() string {
	return filepath.Join(params.AppdataDir, "config.ini")
}

// LoadConfig reads the config file, falling back to defaults when it
// does not exist yet.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPath())
}

// LoadConfigFrom reads a config file from an explicit path.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := file.MapTo(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes the config file.
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, ConfigPath())
}

// SaveConfigTo writes the config to an explicit path.
func SaveConfigTo(cfg *Config, path string) error {
	file := ini.Empty()

	if err := file.ReflectFrom(cfg); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
