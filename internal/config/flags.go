// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from the command line. Pointer fields
// distinguish "not given" from an explicit zero value.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	ScrollOff      *int
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	SystemClipbrd  *bool
	Autosave       *bool
	TaskWorkers    *int
}

// DefineFlags registers the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error), overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file ('-' for stderr), overrides config file")
	f.TabWidth = flag.Int("tabwidth", 0, "Spaces per tab, overrides config file")
	f.ScrollOff = flag.Int("scrolloff", -1, "Lines of context above/below cursor, overrides config file")
	f.EnableTags = flag.String("log-tags", "", "Comma-separated log tags to enable")
	f.DisableTags = flag.String("log-disable-tags", "", "Comma-separated log tags to disable")
	f.EnablePkgs = flag.String("log-packages", "", "Comma-separated source packages to log")
	f.DisablePkgs = flag.String("log-disable-packages", "", "Comma-separated source packages to mute")
	f.EnableFiles = flag.String("log-files", "", "Comma-separated source files to log")
	f.DisableFiles = flag.String("log-disable-files", "", "Comma-separated source files to mute")
	f.SystemClipbrd = flag.Bool("system-clipboard", true, "Use the system clipboard for yank and paste")
	f.Autosave = flag.Bool("autosave", false, "Save the buffer automatically after edits settle")
	f.TaskWorkers = flag.Int("workers", 0, "Background worker goroutines for parsing, overrides config file")
}

// ParseFlags parses the command line and returns the remaining
// non-flag arguments (the file to open).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides copies explicitly-set flags onto cfg. flag.Visit only
// walks flags that appeared on the command line, so config-file values
// survive unless the user said otherwise.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipbrd
		case "autosave":
			cfg.Editor.Autosave = *f.Autosave
		case "workers":
			if *f.TaskWorkers > 0 {
				cfg.Editor.TaskWorkers = *f.TaskWorkers
			}
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
