package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ledgerline/mfin/internal/util"
)

// DatabaseURLEnv overrides source.url without touching the config file.
const DatabaseURLEnv = "MFIN_DATABASE_URL"

// Config represents the global mfin settings stored in the user's config
// directory.
type Config struct {
	Table  TableConfig  `toml:"table"`
	Source SourceConfig `toml:"source"`
	Log    LogConfig    `toml:"log"`
}

// TableConfig contains table display and export settings
type TableConfig struct {
	PageSize  int    `toml:"page_size" config:"table.page_size" default:"10" min:"1" max:"500" desc:"Rows per page"`
	ExportDir string `toml:"export_dir" config:"table.export_dir" default:"." desc:"Directory for CSV exports"`
	Locale    string `toml:"locale" config:"table.locale" default:"en-IN" desc:"Collation locale for sorting text"`
}

// SourceConfig selects where screen records come from
type SourceConfig struct {
	Kind  string `toml:"kind" config:"source.kind" default:"sample" oneof:"sample,file,postgres" desc:"Record source (sample, file, postgres)"`
	Path  string `toml:"path" config:"source.path" desc:"Data file, or directory of <screen>.{json,yaml,csv} files"`
	URL   string `toml:"url" config:"source.url" desc:"PostgreSQL connection URL"`
	Table string `toml:"table" config:"source.table" desc:"Table to read (empty = screen name with _ for -)"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level      string `toml:"level" config:"log.level" default:"warn" oneof:"debug,info,warn,error" desc:"Minimum log level"`
	File       string `toml:"file" config:"log.file" desc:"Log file (empty = stderr)"`
	MaxSizeMB  int    `toml:"max_size_mb" config:"log.max_size_mb" default:"10" min:"1" max:"1024" desc:"Rotate the log file after this many MB"`
	MaxBackups int    `toml:"max_backups" config:"log.max_backups" default:"3" min:"1" max:"100" desc:"Rotated log files to keep"`
}

// Default returns a config with every default tag applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Path returns the path to the global config file
// Follows the XDG base directory layout on Linux, platform conventions elsewhere
func Path() (string, error) {
	return util.ConfigPath()
}

// Load reads the global config file. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path, applying defaults for missing values
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, util.NewError("Invalid config file").
			WithContext(path).
			WithSuggestion("mfin config --list      # Show the effective settings").
			Wrap(err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Save writes the global config file
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating the directory if needed
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// DatabaseURL returns the effective PostgreSQL URL: the environment
// override when set, else source.url.
func (c *Config) DatabaseURL() string {
	if url := os.Getenv(DatabaseURLEnv); url != "" {
		return url
	}
	return c.Source.URL
}

// ExportDir returns table.export_dir with a leading ~ expanded.
func (c *Config) ExportDir() string {
	return util.ExpandHome(c.Table.ExportDir)
}

// GetValue returns a config value by key (uses reflection)
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a config value by key (uses reflection with validation)
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}
