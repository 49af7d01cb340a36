// Package tui runs the fold-tree viewer for host applications and the
// kvfold CLI.
package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/kvfold/internal/cel"
	"github.com/oakwood-commons/kvfold/internal/document"
	"github.com/oakwood-commons/kvfold/internal/ui"
	"github.com/oakwood-commons/kvfold/pkg/loader"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS and LINES
// environment variables. If detection fails completely, returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	width, height = defaultFallbackTermWidth, ui.DefaultHeight
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		width = w
	}
	if h, err := strconv.Atoi(os.Getenv("LINES")); err == nil && h > 0 {
		height = h
	}
	return width, height
}

// Prepare turns root into the document the viewer shows: it loads root
// (parsing strings and bytes, converting Go values), decodes serialized
// strings when asked, projects it through the CEL expression and applies
// the record limits.
func Prepare(root any, cfg Config) (*document.Value, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger

	doc, err := loader.LoadObject(root)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	if cfg.AutoDecode == AutoDecodeEager {
		doc = loader.RecursiveDecode(doc)
	}

	if cfg.Expression != "" {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		doc, err = eval.Evaluate(cfg.Expression, doc)
		if err != nil {
			return nil, fmt.Errorf("expression %q: %w", cfg.Expression, err)
		}
		log.V(1).Info("projected document", "expression", cfg.Expression, "kind", doc.Kind().String())
	}

	if cfg.AutoDecode == AutoDecodeLazy && doc.Kind() == document.String {
		if decoded, ok := loader.TryDecode(doc.Str()); ok {
			doc = decoded
		}
	}

	if limits := cfg.limits(); limits.IsActive() {
		doc = limits.Apply(doc)
		log.V(1).Info("limited document", "limit", limits.Limit, "offset", limits.Offset, "tail", limits.Tail, "records", doc.Len())
	}
	return doc, nil
}

// Run prepares root and starts the interactive viewer. Host applications
// can pass optional tea.ProgramOption values to control IO.
func Run(root any, cfg Config, opts ...tea.ProgramOption) error {
	doc, err := Prepare(root, cfg)
	if err != nil {
		return err
	}
	uiOpts, err := cfg.options()
	if err != nil {
		return err
	}
	return ui.RunModel(doc, uiOpts, cfg.StartKeys, opts...)
}

// RenderSnapshot renders a single frame of the viewer for root after
// replaying cfg.StartKeys. A zero width or height is detected from the
// terminal.
func RenderSnapshot(root any, cfg Config) (string, error) {
	doc, err := Prepare(root, cfg)
	if err != nil {
		return "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := DetectTerminalSize()
		if cfg.Width <= 0 {
			cfg.Width = w
		}
		if cfg.Height <= 0 {
			cfg.Height = h
		}
	}
	uiOpts, err := cfg.options()
	if err != nil {
		return "", err
	}
	return ui.RenderSnapshot(doc, ui.SnapshotConfig{Options: uiOpts, StartKeys: cfg.StartKeys}), nil
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
