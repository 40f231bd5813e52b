// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/logger"
)

// Manager holds loaded themes and tracks the active one. Theme names are
// matched case-insensitively.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
	loadError   error
}

// NewManager loads built-in themes plus any TOML themes from the user
// config directory and picks an initial active theme.
func NewManager() *Manager {
	mgr := &Manager{
		themes: make(map[string]*Theme),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir, custom themes disabled: %v", err)
	} else {
		mgr.themesDir = filepath.Join(configDir, config.ConfigDirName, config.ThemesDirName)
	}

	mgr.loadBuiltinThemes()

	if mgr.themesDir != "" {
		mgr.loadError = mgr.LoadThemesFromDir()
		if mgr.loadError != nil {
			logger.Errorf("Error loading themes from '%s': %v", mgr.themesDir, mgr.loadError)
		}
	}

	if t, ok := mgr.themes[strings.ToLower(DevComfortDark.Name)]; ok {
		mgr.activeTheme = t
	} else {
		for _, t := range mgr.themes {
			mgr.activeTheme = t
			break
		}
	}

	if mgr.activeTheme == nil {
		logger.Errorf("No themes loaded, falling back to failsafe theme")
		mgr.activeTheme = &Theme{
			Name: "Failsafe",
			Styles: map[string]tcell.Style{
				"Default": tcell.StyleDefault,
			},
		}
	} else {
		logger.Infof("Active theme: %s", mgr.activeTheme.Name)
	}

	return mgr
}

func (m *Manager) loadBuiltinThemes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.themes[strings.ToLower(DevComfortDark.Name)] = &DevComfortDark
}

// LoadThemesFromDir scans the themes directory for .toml files. A missing
// directory is created, not treated as an error.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}

	if _, err := os.Stat(m.themesDir); os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist, creating it", m.themesDir)
		if err := os.MkdirAll(m.themesDir, 0755); err != nil {
			return fmt.Errorf("failed to create theme dir: %w", err)
		}
		return nil
	}

	files, err := os.ReadDir(m.themesDir)
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		th, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}

		nameLower := strings.ToLower(th.Name)
		if existing, ok := m.themes[nameLower]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", th.Name, filePath, existing.Name)
		}
		m.themes[nameLower] = th
		loadedCount++
	}
	if loadedCount > 0 {
		logger.Infof("Loaded %d custom themes from %s", loadedCount, m.themesDir)
	}
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.activeTheme == nil {
		return &Theme{Name: "Failsafe", Styles: map[string]tcell.Style{"Default": tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme switches the active theme by name, case-insensitively.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	th, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}

	if m.activeTheme != th {
		m.activeTheme = th
		logger.Infof("Active theme set to: %s", th.Name)
	}
	return nil
}

// ListThemes returns the display names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, th := range m.themes {
		names = append(names, th.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme looks up a theme by name, case-insensitively.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	th, ok := m.themes[strings.ToLower(name)]
	return th, ok
}
