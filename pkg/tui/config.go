package tui

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/kvfold/internal/limiter"
	"github.com/oakwood-commons/kvfold/internal/ui"
)

// Auto-decode modes for serialized strings inside the document.
const (
	AutoDecodeLazy  = "lazy"  // decode the projected root when it is a serialized string
	AutoDecodeEager = "eager" // decode every string leaf before projection
)

// Config holds host-provided settings for running the viewer.
type Config struct {
	Width      int // 0 detects the terminal width
	Height     int // 0 detects the terminal height
	NoColor    bool
	Fullscreen *bool  // nil uses ui.fullscreen of the config file
	ThemeName  string // "" uses ui.theme.default of the config file

	// UIConfig is the merged configuration file. Nil uses the embedded
	// defaults.
	UIConfig *ui.ConfigFile

	ObjectDepth *int // overrides ui.fold.objectDepth
	ArrayDepth  *int // overrides ui.fold.arrayDepth

	Expression string // CEL expression applied to the root before viewing
	Limit      int
	Offset     int
	Tail       int
	AutoDecode string // "", AutoDecodeLazy or AutoDecodeEager

	StartKeys []string
	Logger    logr.Logger
}

// DefaultConfig returns a config with the embedded defaults and logging
// discarded.
func DefaultConfig() Config {
	return Config{Logger: logr.Discard()}
}

// Validate checks flag combinations that cannot be satisfied.
func (c Config) Validate() error {
	if err := c.limits().Validate(); err != nil {
		return err
	}
	switch c.AutoDecode {
	case "", AutoDecodeLazy, AutoDecodeEager:
	default:
		return fmt.Errorf("invalid auto-decode mode %q (expected %q or %q)", c.AutoDecode, AutoDecodeLazy, AutoDecodeEager)
	}
	if c.ObjectDepth != nil && *c.ObjectDepth < 0 {
		return fmt.Errorf("object depth must be non-negative, got %d", *c.ObjectDepth)
	}
	if c.ArrayDepth != nil && *c.ArrayDepth < 0 {
		return fmt.Errorf("array depth must be non-negative, got %d", *c.ArrayDepth)
	}
	return nil
}

func (c Config) limits() limiter.Config {
	return limiter.Config{Limit: c.Limit, Offset: c.Offset, Tail: c.Tail}
}

// options resolves the model options from the config file and the
// overrides set on c.
func (c Config) options() (ui.Options, error) {
	file := c.UIConfig
	if file == nil {
		embedded, err := ui.EmbeddedDefaultConfig()
		if err != nil {
			return ui.Options{}, fmt.Errorf("load default config: %w", err)
		}
		file = &embedded
	}
	if err := ui.InitializeThemes(file); err != nil {
		return ui.Options{}, err
	}
	theme, err := ui.ResolveTheme(*file, c.ThemeName)
	if err != nil {
		return ui.Options{}, err
	}

	opts := ui.DefaultOptions()
	opts.Theme = theme
	opts.NoColor = c.NoColor
	opts.Width = c.Width
	opts.Height = c.Height
	opts.ObjectDepth, opts.ArrayDepth = file.UI.Fold.Depths()
	if c.ObjectDepth != nil {
		opts.ObjectDepth = *c.ObjectDepth
	}
	if c.ArrayDepth != nil {
		opts.ArrayDepth = *c.ArrayDepth
	}
	switch {
	case c.Fullscreen != nil:
		opts.Fullscreen = *c.Fullscreen
	case file.UI.Fullscreen != nil:
		opts.Fullscreen = *file.UI.Fullscreen
	}
	if c.Logger.GetSink() != nil {
		opts.Logger = c.Logger
	}
	return opts, nil
}
