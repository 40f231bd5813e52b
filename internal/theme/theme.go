// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/logger"
)

// Theme maps style names to terminal styles. Style names are either UI
// element names ("StatusBar", "Selection") or highlight capture names
// ("keyword", "string.escape").
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name. Dotted capture names fall back to their
// base name ("constant.builtin" -> "constant") and finally to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, using 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': neither '%s' nor 'Default' defined, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// --- DevComfort Dark ---

var DevComfortDark Theme

func init() {
	dcBackground := tcell.NewHexColor(0x2a2f38) // status bar, overlays
	dcForeground := tcell.NewHexColor(0xc5cdd9) // default text
	dcComment := tcell.NewHexColor(0x5c6370)
	dcRed := tcell.NewHexColor(0xe06c75)     // properties, struct fields
	dcOrange := tcell.NewHexColor(0xd19a66)  // numbers, constants
	dcYellow := tcell.NewHexColor(0xe5c07b)  // functions
	dcGreen := tcell.NewHexColor(0x98c379)   // strings
	dcCyan := tcell.NewHexColor(0x56b6c2)    // types, builtins
	dcBlue := tcell.NewHexColor(0x61afef)    // keywords
	dcMagenta := tcell.NewHexColor(0xc678dd) // escapes, labels

	// Text inherits the terminal background so transparency survives.
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)
	panelStyle := tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI ---
			"Default":           baseStyle,
			"LineNumber":        baseStyle.Foreground(dcComment),
			"Selection":         baseStyle.Reverse(true),
			"SearchHighlight":   tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			"StatusBar":         panelStyle,
			"StatusBarModified": panelStyle.Foreground(dcYellow),
			"StatusBarMessage":  panelStyle.Bold(true),
			"StatusBarFind":     panelStyle.Foreground(dcGreen).Bold(true),

			// History overlay. Dotted names inherit from "HistoryPanel"
			// only via explicit entries; GetStyle's dot fallback uses the
			// part before the first dot.
			"HistoryPanel":    panelStyle,
			"HistoryBorder":   panelStyle.Foreground(dcComment),
			"HistoryHead":     panelStyle.Foreground(dcYellow).Bold(true),
			"HistoryBranch":   panelStyle.Foreground(dcComment),
			"HistorySelected": panelStyle.Reverse(true),
			"HistorySummary":  panelStyle.Foreground(dcComment).Italic(true),

			// --- Highlight captures ---
			"keyword":          baseStyle.Foreground(dcBlue).Bold(true),
			"string":           baseStyle.Foreground(dcGreen),
			"string.escape":    baseStyle.Foreground(dcMagenta),
			"string.special":   baseStyle.Foreground(dcMagenta),
			"comment":          baseStyle.Foreground(dcComment).Italic(true),
			"number":           baseStyle.Foreground(dcOrange),
			"constant":         baseStyle.Foreground(dcOrange),
			"type":             baseStyle.Foreground(dcCyan),
			"type.builtin":     baseStyle.Foreground(dcCyan).Bold(true),
			"function":         baseStyle.Foreground(dcYellow),
			"function.builtin": baseStyle.Foreground(dcCyan).Italic(true),
			"property":         baseStyle.Foreground(dcRed),
			"variable":         baseStyle.Foreground(dcForeground),
			"variable.builtin": baseStyle.Foreground(dcCyan),
			"namespace":        baseStyle.Foreground(dcCyan),
			"label":            baseStyle.Foreground(dcMagenta),
			"operator":         baseStyle.Foreground(dcForeground),
			"punctuation":      baseStyle.Foreground(dcComment),
		},
	}
}
