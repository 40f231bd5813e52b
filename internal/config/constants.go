package config

import "time"

// Base application details
const AppName = "loom"
const Version = "0.1.0"
const ConfigDirName = "loom"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "loom.log"

// UI layout
const StatusBarHeight = 1

// Status bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultSystemClipboard = true

// Background parsing defaults. The debounce absorbs bursts of keystrokes
// before a re-parse is scheduled; two workers keep one parse running while
// a superseding job queues behind it.
const DefaultParseDebounce = 65 * time.Millisecond
const DefaultTaskWorkers = 2

// Autosave defaults
const DefaultAutosaveDelay = 2 * time.Second
