package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/kvfold/internal/view"
)

// Theme defines the colors used to draw a document. A nil color keeps the
// terminal default.
type Theme struct {
	KeyColor         color.Color // object keys
	StringColor      color.Color
	NumberColor      color.Color
	BoolColor        color.Color
	NullColor        color.Color
	PunctuationColor color.Color // braces, brackets, commas and fold toggles
	ButtonColor      color.Color // "(table view)" and "(array view)"
	IndexColor       color.Color // table row numbers
	HeaderColor      color.Color // table column names
	BorderColor      color.Color // table grid lines
	PlaceholderColor color.Color // values that cannot be shown
	StatusColor      color.Color // status line
}

// fallbackDefaultTheme is the bright ANSI palette used when the embedded
// configuration cannot be read.
func fallbackDefaultTheme() Theme {
	return Theme{
		KeyColor:    lipgloss.Color("12"),
		StringColor: lipgloss.Color("10"),
		NumberColor: lipgloss.Color("14"),
		BoolColor:   lipgloss.Color("11"),
		NullColor:   lipgloss.Color("9"),
		ButtonColor: lipgloss.Color("8"),
		IndexColor:  lipgloss.Color("8"),
		StatusColor: lipgloss.Color("8"),
	}
}

// Styles converts the theme into the styles used by the document view.
// With noColor every style is plain.
func (t Theme) Styles(noColor bool) view.Styles {
	if noColor {
		return view.PlainStyles()
	}
	fg := func(c color.Color) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c != nil {
			s = s.Foreground(c)
		}
		return s
	}
	return view.Styles{
		Key:         fg(t.KeyColor),
		String:      fg(t.StringColor),
		Number:      fg(t.NumberColor),
		Bool:        fg(t.BoolColor),
		Null:        fg(t.NullColor),
		Punctuation: fg(t.PunctuationColor),
		Button:      fg(t.ButtonColor),
		Index:       fg(t.IndexColor),
		Header:      fg(t.HeaderColor).Bold(true),
		Border:      fg(t.BorderColor),
		Placeholder: fg(t.PlaceholderColor),
	}
}

// StatusStyle is the style of the status line.
func (t Theme) StatusStyle(noColor bool) lipgloss.Style {
	s := lipgloss.NewStyle()
	if !noColor && t.StatusColor != nil {
		s = s.Foreground(t.StatusColor)
	}
	return s
}

// loadedThemes stores the themes of the active configuration. It is filled
// by InitializeThemes.
var loadedThemes = map[string]Theme{}

// GetTheme returns a loaded theme by name.
func GetTheme(name string) (Theme, bool) {
	th, ok := loadedThemes[name]
	return th, ok
}

// ThemeNames returns the loaded theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(loadedThemes))
	for name := range loadedThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTheme returns the theme called name. An empty name selects the
// configured default.
func ResolveTheme(cfg ConfigFile, name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(cfg.UI.Theme.Default)
	}
	if name == "" {
		return fallbackDefaultTheme(), nil
	}
	if th, ok := GetTheme(name); ok {
		return th, nil
	}
	if len(loadedThemes) == 0 {
		return Theme{}, fmt.Errorf("no themes loaded; call InitializeThemes() first")
	}
	return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
}

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: s,
		}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	// Accept both ints and strings; store the literal value.
	*c = ColorValue(value.Value)
	return nil
}

// ThemeConfig is a YAML-friendly theme configuration (colors accept ints or strings).
// The value "default" keeps the terminal color.
type ThemeConfig struct {
	KeyColor         ColorValue `yaml:"key_color,omitempty"`
	StringColor      ColorValue `yaml:"string_color,omitempty"`
	NumberColor      ColorValue `yaml:"number_color,omitempty"`
	BoolColor        ColorValue `yaml:"bool_color,omitempty"`
	NullColor        ColorValue `yaml:"null_color,omitempty"`
	PunctuationColor ColorValue `yaml:"punctuation_color,omitempty"`
	ButtonColor      ColorValue `yaml:"button_color,omitempty"`
	IndexColor       ColorValue `yaml:"index_color,omitempty"`
	HeaderColor      ColorValue `yaml:"header_color,omitempty"`
	BorderColor      ColorValue `yaml:"border_color,omitempty"`
	PlaceholderColor ColorValue `yaml:"placeholder_color,omitempty"`
	StatusColor      ColorValue `yaml:"status_color,omitempty"`
}

// ThemeFromConfig builds a Theme from a ThemeConfig, falling back to the
// built-in palette for fields that are empty.
func ThemeFromConfig(cfg ThemeConfig) Theme {
	th := fallbackDefaultTheme()
	set := func(val ColorValue, dst *color.Color) {
		switch strings.TrimSpace(string(val)) {
		case "":
		case "default", "none":
			*dst = nil
		default:
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.KeyColor, &th.KeyColor)
	set(cfg.StringColor, &th.StringColor)
	set(cfg.NumberColor, &th.NumberColor)
	set(cfg.BoolColor, &th.BoolColor)
	set(cfg.NullColor, &th.NullColor)
	set(cfg.PunctuationColor, &th.PunctuationColor)
	set(cfg.ButtonColor, &th.ButtonColor)
	set(cfg.IndexColor, &th.IndexColor)
	set(cfg.HeaderColor, &th.HeaderColor)
	set(cfg.BorderColor, &th.BorderColor)
	set(cfg.PlaceholderColor, &th.PlaceholderColor)
	set(cfg.StatusColor, &th.StatusColor)
	return th
}

// MergeThemeConfig overlays the non-empty colors of override on base.
func MergeThemeConfig(base, override ThemeConfig) ThemeConfig {
	pick := func(b, o ColorValue) ColorValue {
		if o != "" {
			return o
		}
		return b
	}
	return ThemeConfig{
		KeyColor:         pick(base.KeyColor, override.KeyColor),
		StringColor:      pick(base.StringColor, override.StringColor),
		NumberColor:      pick(base.NumberColor, override.NumberColor),
		BoolColor:        pick(base.BoolColor, override.BoolColor),
		NullColor:        pick(base.NullColor, override.NullColor),
		PunctuationColor: pick(base.PunctuationColor, override.PunctuationColor),
		ButtonColor:      pick(base.ButtonColor, override.ButtonColor),
		IndexColor:       pick(base.IndexColor, override.IndexColor),
		HeaderColor:      pick(base.HeaderColor, override.HeaderColor),
		BorderColor:      pick(base.BorderColor, override.BorderColor),
		PlaceholderColor: pick(base.PlaceholderColor, override.PlaceholderColor),
		StatusColor:      pick(base.StatusColor, override.StatusColor),
	}
}

// InitializeThemes loads all themes from the provided configuration into loadedThemes.
// It should be called before ResolveTheme.
func InitializeThemes(cfg *ConfigFile) error {
	if cfg == nil {
		return fmt.Errorf("cannot initialize themes with nil configuration")
	}
	if len(cfg.UI.Themes) == 0 {
		return fmt.Errorf("no themes found in configuration")
	}
	loadedThemes = make(map[string]Theme, len(cfg.UI.Themes))
	for name, themeCfg := range cfg.UI.Themes {
		loadedThemes[name] = ThemeFromConfig(themeCfg)
	}
	return nil
}
