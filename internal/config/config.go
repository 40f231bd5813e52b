// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/wovenlab/loom/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`

	// ParseDebounceMs is how long typing must pause before a background
	// re-parse is requested. TaskWorkers sizes the worker pool those
	// parses run on.
	ParseDebounceMs int `toml:"parse_debounce_ms"`
	TaskWorkers     int `toml:"task_workers"`

	// Autosave writes the buffer to disk shortly after changes settle.
	Autosave bool `toml:"autosave"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: DefaultSystemClipboard,
			StatusBarHeight: StatusBarHeight,
			ParseDebounceMs: int(DefaultParseDebounce.Milliseconds()),
			TaskWorkers:     DefaultTaskWorkers,
			Autosave:        false,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file. A missing
// file is not an error; the defaults simply stand.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file %q: %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Logger may not be initialized yet, so remember the complaint for
		// LoadConfig's caller instead of printing anything here.
		logger.Warnf("config file %q: unrecognized keys: %v", filePath, undecoded)
	}
	return cfg, nil
}

// validate clamps invalid values back to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Editor.ParseDebounceMs < 0 {
		c.Editor.ParseDebounceMs = defaults.Editor.ParseDebounceMs
	}
	if c.Editor.TaskWorkers <= 0 {
		c.Editor.TaskWorkers = defaults.Editor.TaskWorkers
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig merges defaults, the config file, and flag overrides, in that
// order. Call once from main, before logger.Init consumes the result.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			if configDir, err := os.UserConfigDir(); err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				mergeFileConfig(cfg, fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// mergeFileConfig overlays values the file actually set onto the defaults.
func mergeFileConfig(cfg, fileCfg *Config) {
	if fileCfg.Logger.LogLevel != "" {
		cfg.Logger = fileCfg.Logger
	}
	if fileCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = fileCfg.Editor.TabWidth
	}
	if fileCfg.Editor.ScrollOff >= 0 {
		cfg.Editor.ScrollOff = fileCfg.Editor.ScrollOff
	}
	if fileCfg.Editor.StatusBarHeight > 0 {
		cfg.Editor.StatusBarHeight = fileCfg.Editor.StatusBarHeight
	}
	if fileCfg.Editor.ParseDebounceMs > 0 {
		cfg.Editor.ParseDebounceMs = fileCfg.Editor.ParseDebounceMs
	}
	if fileCfg.Editor.TaskWorkers > 0 {
		cfg.Editor.TaskWorkers = fileCfg.Editor.TaskWorkers
	}
	cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
	cfg.Editor.Autosave = fileCfg.Editor.Autosave
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called; that is a programming error, not a runtime condition.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
