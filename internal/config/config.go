package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/theme"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned by Set for keys that are not settings
var ErrUnknownKey = errors.New("unknown setting")

// DatabaseConfig selects the task store backend
type DatabaseConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn" json:"dsn"`       // empty means ~/.mandarina/tasks.db for sqlite
}

// ServerConfig configures the local HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Config holds user preferences
type Config struct {
	Palette           string `yaml:"palette" json:"palette"`                           // Palette name, see theme.Names
	HourFormat        int    `yaml:"hour_format" json:"hour_format"`                   // 12 or 24
	Theme             string `yaml:"theme" json:"theme"`                               // light or dark
	FirstWeekday      string `yaml:"first_weekday" json:"first_weekday"`               // First column of week and month views
	UserID            string `yaml:"user_id" json:"user_id"`                           // Owner stamped on new tasks
	ResetOnViewSwitch bool   `yaml:"reset_on_view_switch" json:"reset_on_view_switch"` // Jump to today when switching to week/month

	Database DatabaseConfig `yaml:"database" json:"database"`
	Server   ServerConfig   `yaml:"server" json:"server"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	path string
	// values of the env-overridable keys as read from the file and after applyEnv
	fromFile, fromEnv envKeys
}

// envKeys are the settings environment variables can override
type envKeys struct {
	LogLevel   string
	LogFile    string
	LogConsole bool
	Database   DatabaseConfig
	ServerAddr string
}

func (c *Config) envKeys() envKeys {
	return envKeys{
		LogLevel:   c.LogLevel,
		LogFile:    c.LogFile,
		LogConsole: c.LogConsole,
		Database:   c.Database,
		ServerAddr: c.Server.Addr,
	}
}

// forFile returns a copy of c to write to disk: a key still holding its
// environment value gets its file value back, a key changed since load keeps
// the change
func (c *Config) forFile() Config {
	out := *c
	keep := func(cur, file, env string) string {
		if cur == env {
			return file
		}
		return cur
	}
	out.LogLevel = keep(c.LogLevel, c.fromFile.LogLevel, c.fromEnv.LogLevel)
	out.LogFile = keep(c.LogFile, c.fromFile.LogFile, c.fromEnv.LogFile)
	if c.LogConsole == c.fromEnv.LogConsole {
		out.LogConsole = c.fromFile.LogConsole
	}
	out.Database.Driver = keep(c.Database.Driver, c.fromFile.Database.Driver, c.fromEnv.Database.Driver)
	out.Database.DSN = keep(c.Database.DSN, c.fromFile.Database.DSN, c.fromEnv.Database.DSN)
	out.Server.Addr = keep(c.Server.Addr, c.fromFile.ServerAddr, c.fromEnv.ServerAddr)
	return out
}

// Dir returns the application directory, ~/.mandarina unless MANDARINA_HOME is set
func Dir() string {
	if dir := os.Getenv("MANDARINA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".mandarina"
	}
	return filepath.Join(home, ".mandarina")
}

// Path returns the default config file location
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		Palette:           theme.DefaultPalette,
		HourFormat:        int(calendar.Hour12),
		Theme:             string(theme.Light),
		FirstWeekday:      "sunday",
		UserID:            "local",
		ResetOnViewSwitch: true,
		Database: DatabaseConfig{
			Driver: "sqlite",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		LogLevel:   "INFO",
		LogFile:    filepath.Join(Dir(), "logs", "mandarina.log"),
		LogConsole: false,
		path:       Path(),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) applyEnv() {
	c.fromFile = c.envKeys()
	defer func() { c.fromEnv = c.envKeys() }()

	c.LogLevel = getEnv("MANDARINA_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("MANDARINA_LOG_FILE", c.LogFile)
	if v := os.Getenv("MANDARINA_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true" || v == "1"
	}
	c.Database.Driver = getEnv("MANDARINA_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("MANDARINA_DB_DSN", c.Database.DSN)
	c.Server.Addr = getEnv("MANDARINA_SERVER_ADDR", c.Server.Addr)
}

// Load loads config from ~/.mandarina/config.yaml, writing defaults on first run
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(Path())
}

// LoadFrom loads config from path, writing defaults there if it does not exist
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the application cannot use
func (c *Config) Validate() error {
	if _, ok := theme.Lookup(c.Palette); !ok {
		return fmt.Errorf("unknown palette %q (available: %s)", c.Palette, strings.Join(theme.Names(), ", "))
	}
	if !calendar.HourFormat(c.HourFormat).Valid() {
		return fmt.Errorf("hour_format must be 12 or 24, got %d", c.HourFormat)
	}
	if _, err := theme.ParseMode(c.Theme); err != nil {
		return err
	}
	if _, ok := calendar.ParseWeekday(c.FirstWeekday); !ok {
		return fmt.Errorf("unknown first_weekday %q", c.FirstWeekday)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id cannot be empty")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	return nil
}

// Save writes the config back to the file it was loaded from
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = Path()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := c.forFile()
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// File returns the path Save writes to
func (c *Config) File() string {
	if c.path == "" {
		return Path()
	}
	return c.path
}

// Mode returns the configured light/dark mode
func (c *Config) Mode() theme.Mode {
	m, err := theme.ParseMode(c.Theme)
	if err != nil {
		return theme.Light
	}
	return m
}

// Colors resolves the configured palette and mode
func (c *Config) Colors() theme.Colors {
	return theme.MustLookup(c.Palette).Colors(c.Mode())
}

// Format returns the configured hour format
func (c *Config) Format() calendar.HourFormat {
	f := calendar.HourFormat(c.HourFormat)
	if !f.Valid() {
		return calendar.Hour12
	}
	return f
}

// Weekday returns the configured first day of the week
func (c *Config) Weekday() calendar.Weekday {
	w, ok := calendar.ParseWeekday(c.FirstWeekday)
	if !ok {
		return calendar.Sunday
	}
	return w
}

var setters = map[string]func(c *Config, v string) error{
	"palette": func(c *Config, v string) error {
		p, ok := theme.Lookup(v)
		if !ok {
			return fmt.Errorf("unknown palette %q", v)
		}
		c.Palette = p.Name
		return nil
	},
	"hour_format": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || !calendar.HourFormat(n).Valid() {
			return fmt.Errorf("hour_format must be 12 or 24, got %q", v)
		}
		c.HourFormat = n
		return nil
	},
	"theme": func(c *Config, v string) error {
		m, err := theme.ParseMode(v)
		if err != nil {
			return err
		}
		c.Theme = string(m)
		return nil
	},
	"first_weekday": func(c *Config, v string) error {
		w, ok := calendar.ParseWeekday(v)
		if !ok {
			return fmt.Errorf("unknown weekday %q", v)
		}
		c.FirstWeekday = strings.ToLower(w.Long())
		return nil
	},
	"user_id": func(c *Config, v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New("user_id cannot be empty")
		}
		c.UserID = strings.TrimSpace(v)
		return nil
	},
	"reset_on_view_switch": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("reset_on_view_switch must be true or false, got %q", v)
		}
		c.ResetOnViewSwitch = b
		return nil
	},
	"log_level": func(c *Config, v string) error {
		c.LogLevel = strings.ToUpper(v)
		return nil
	},
	"log_file": func(c *Config, v string) error {
		c.LogFile = v
		return nil
	},
	"log_console": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("log_console must be true or false, got %q", v)
		}
		c.LogConsole = b
		return nil
	},
	"database.driver": func(c *Config, v string) error {
		if v != "sqlite" && v != "postgres" {
			return fmt.Errorf("database driver must be sqlite or postgres, got %q", v)
		}
		c.Database.Driver = v
		return nil
	},
	"database.dsn": func(c *Config, v string) error {
		c.Database.DSN = v
		return nil
	},
	"server.addr": func(c *Config, v string) error {
		c.Server.Addr = v
		return nil
	},
}

// Keys lists the settings accepted by Set
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses and assigns one setting by its yaml key
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w %q (available: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return set(c, value)
}
