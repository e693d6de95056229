package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names a color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" and "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Preview lipgloss.Style
	Status  lipgloss.Style
}

// StyleFor returns the built-in style of theme t.
func StyleFor(t Theme) Style {
	if t == ThemeDark {
		return DarkStyle()
	}
	return LightStyle()
}

func LightStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#24292e")).Bold(true),
		Text:          lipgloss.NewStyle().Foreground(lipgloss.Color("#24292e")),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("#b3d4fc")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Preview:       lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("#dddddd")).PaddingLeft(1),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
	}
}

func DarkStyle() Style {
	stone := lipgloss.Color("#999999")
	return Style{
		Gutter:        lipgloss.NewStyle().Foreground(stone),
		LineNum:       lipgloss.NewStyle().Foreground(stone),
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d4")).Bold(true),
		Text:          lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d4")),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("#0b4b73")),
		Cursor:        lipgloss.NewStyle().Background(lipgloss.Color("#888888")).Foreground(lipgloss.Color("#17171a")),
		Preview:       lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("#21252b")).PaddingLeft(1),
		Status:        lipgloss.NewStyle().Foreground(stone),
	}
}
