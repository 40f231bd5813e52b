// Package logger provides slog-backed logging with Printf-style wrappers
// and config-driven filtering by tag, package, or file.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all logger settings. It decodes from the [logger] table of
// the application config file.
type Config struct {
	// LogLevel is the minimum level to emit: "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output file. Empty means the path given on the
	// command line, or no logging at all.
	LogFilePath string `toml:"log_file"`

	// EnabledTags, when non-empty, restricts tagged debug output (see
	// DebugTagf) to these tags. DisabledTags always wins over enabled.
	EnabledTags  []string `toml:"enabled_tags"`
	DisabledTags []string `toml:"disabled_tags"`

	// Package filters match the immediate source directory name
	// (e.g. "core", "syntax", "app").
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`

	// File filters match the base filename (e.g. "editor.go").
	EnabledFiles  []string `toml:"enabled_files"`
	DisabledFiles []string `toml:"disabled_files"`

	level               slog.Leveler
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// process parses the string level and converts filter slices into lookup
// sets. Called once by Init.
func (c *Config) process() {
	c.level = slog.LevelInfo
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		c.level = slog.LevelDebug
	case "info":
		c.level = slog.LevelInfo
	case "warn", "warning":
		c.level = slog.LevelWarn
	case "error", "err":
		c.level = slog.LevelError
	}

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

// hasFilters reports whether any filter list is active, i.e. whether the
// filtering handler is worth installing.
func (c *Config) hasFilters() bool {
	return c.enabledTagsSet != nil || c.disabledTagsSet != nil ||
		c.enabledPackagesSet != nil || c.disabledPackagesSet != nil ||
		c.enabledFilesSet != nil || c.disabledFilesSet != nil
}

// excludesSource decides whether a record from the given package/file is
// filtered out. The reason string feeds the debugFilter trace.
func (c *Config) excludesSource(pkg, file string) (bool, string) {
	if pkg != "" {
		p := strings.ToLower(pkg)
		if foundInSet(c.disabledPackagesSet, p) {
			return true, "package disabled"
		}
		if c.enabledPackagesSet != nil && !foundInSet(c.enabledPackagesSet, p) {
			return true, "package not in enabled list"
		}
	}
	f := strings.ToLower(file)
	if foundInSet(c.disabledFilesSet, f) {
		return true, "file disabled"
	}
	if c.enabledFilesSet != nil && !foundInSet(c.enabledFilesSet, f) {
		return true, "file not in enabled list"
	}
	return false, ""
}

// excludesTag decides whether a record with the given tag (or no tag) is
// filtered out.
func (c *Config) excludesTag(tag string, hasTag bool) (bool, string) {
	if !hasTag {
		if c.enabledTagsSet != nil {
			return true, "untagged while tags are restricted"
		}
		return false, ""
	}
	if foundInSet(c.disabledTagsSet, tag) {
		return true, "tag disabled"
	}
	if c.enabledTagsSet != nil && !foundInSet(c.enabledTagsSet, tag) {
		return true, "tag not in enabled list"
	}
	return false, ""
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// sliceToSet lowercases entries into a set, returning nil for an empty
// list so callers can treat nil as "filter inactive".
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
