package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/oakwood-commons/kvfold/internal/ui"
	"github.com/oakwood-commons/kvfold/pkg/settings"
)

// resolveConfigPath returns the explicit configFile if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/kvfold/config.yaml) or ~/.config/kvfold/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadMergedConfig returns the embedded defaults overlaid with the config
// file at cfgPath. An empty path returns the defaults.
func loadMergedConfig(cfgPath string) (ui.ConfigFile, error) {
	defaults, err := ui.EmbeddedDefaultConfig()
	if err != nil {
		return ui.ConfigFile{}, fmt.Errorf("load default config: %w", err)
	}
	if defaults.UI.Theme.Default == "" || len(defaults.UI.Themes) == 0 {
		return ui.ConfigFile{}, fmt.Errorf("default config is missing required theme defaults")
	}
	merged := mergeConfig(defaults, ui.ConfigFile{})
	if cfgPath == "" {
		return merged, nil
	}

	user, err := ui.LoadConfigFile(cfgPath)
	if err != nil {
		return merged, err
	}
	return mergeConfig(merged, user), nil
}

// mergeConfig overlays the settings present in override on base. Themes
// with the same name are merged color by color. Neither argument is
// modified.
func mergeConfig(base, override ui.ConfigFile) ui.ConfigFile {
	out := base
	if override.UI.Theme.Default != "" {
		out.UI.Theme.Default = override.UI.Theme.Default
	}
	if override.UI.Fullscreen != nil {
		out.UI.Fullscreen = override.UI.Fullscreen
	}
	if override.UI.Fold.ObjectDepth != nil {
		out.UI.Fold.ObjectDepth = override.UI.Fold.ObjectDepth
	}
	if override.UI.Fold.ArrayDepth != nil {
		out.UI.Fold.ArrayDepth = override.UI.Fold.ArrayDepth
	}

	themes := make(map[string]ui.ThemeConfig, len(base.UI.Themes)+len(override.UI.Themes))
	for name, th := range base.UI.Themes {
		themes[name] = th
	}
	for name, th := range override.UI.Themes {
		if existing, ok := themes[name]; ok {
			th = ui.MergeThemeConfig(existing, th)
		}
		themes[name] = th
	}
	out.UI.Themes = themes
	return out
}

func themeNames(cfg ui.ConfigFile) []string {
	out := make([]string, 0, len(cfg.UI.Themes))
	for k := range cfg.UI.Themes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
