package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names the environment variable that points at a config file.
	EnvConfig = "TODO_CONFIG"
	// EnvRedisPassword overrides store.redis.password so it can stay out of
	// the file.
	EnvRedisPassword = "TODO_REDIS_PASSWORD"
)

const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config represents the todo.yaml configuration structure.
type Config struct {
	Store Store `yaml:"store"`
	Log   Log   `yaml:"log"`
	UI    UI    `yaml:"ui"`
}

type Store struct {
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`

	SQLite struct {
		Path  string `yaml:"path"`
		Table string `yaml:"table"`
	} `yaml:"sqlite"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type UI struct {
	Theme string `yaml:"theme"`
	Group bool   `yaml:"group"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config at path. An empty path searches the usual
// locations; finding nothing yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file to use: $TODO_CONFIG, then the first
// existing file among ./todo.yaml, ./.todo.yaml and ~/.todo/config.yaml.
func Path() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	locations := []string{"todo.yaml", ".todo.yaml"}
	if dir, err := HomeDir(); err == nil {
		locations = append(locations, filepath.Join(dir, "config.yaml"))
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// HomeDir is the per-user directory holding data, logs and config.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todo"), nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverMemory, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = DriverFile
	}
	if c.Store.Dir == "" {
		if dir, err := HomeDir(); err == nil {
			c.Store.Dir = dir
		} else {
			c.Store.Dir = ".todo"
		}
	}
	c.Store.Dir = ExpandHome(c.Store.Dir)
	if c.Store.SQLite.Path == "" {
		c.Store.SQLite.Path = filepath.Join(c.Store.Dir, "todo.db")
	}
	c.Store.SQLite.Path = ExpandHome(c.Store.SQLite.Path)
	if c.Store.SQLite.Table == "" {
		c.Store.SQLite.Table = "kv"
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = "localhost:6379"
	}
	if pw := strings.TrimSpace(os.Getenv(EnvRedisPassword)); pw != "" {
		c.Store.Redis.Password = pw
	}
	if c.Store.Redis.Prefix == "" {
		c.Store.Redis.Prefix = "todo:"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	c.Log.File = ExpandHome(c.Log.File)
	if c.UI.Theme == "" {
		c.UI.Theme = "classic"
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
