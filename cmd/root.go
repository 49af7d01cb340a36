package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/kvfold/internal/document"
	"github.com/oakwood-commons/kvfold/internal/ui"
	"github.com/oakwood-commons/kvfold/pkg/loader"
	"github.com/oakwood-commons/kvfold/pkg/logger"
	"github.com/oakwood-commons/kvfold/pkg/settings"
	"github.com/oakwood-commons/kvfold/pkg/tui"
)

// errNoInput is returned by readInput when there is no file argument and
// stdin is a terminal.
var errNoInput = errors.New("no input provided")

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	run *settings.Run

	expression  string
	themeName   string
	configFile  string
	autoDecode  string
	debug       bool
	snapshot    bool
	keyBindings bool
	startKeys   []string
	width       int
	height      int
	limit       int
	offset      int
	tail        int
	objectDepth int
	arrayDepth  int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{run: settings.NewCliParams()}

	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Browse JSON, YAML, TOML and CSV documents as a fold tree",
		Long: `kvfold shows a structured document as a pretty-printed tree whose objects
and arrays fold and unfold. Arrays of objects sharing their keys are shown as
tables. The document is read from the file argument or from stdin.`,
		Example:       "\n  kvfold deployment.yaml\n  kubectl get pods -o json | kvfold -e '_.items'\n  kvfold -f --theme warm data.json\n  kvfold --snapshot --press '+' data.json",
		Args:          cobra.MaximumNArgs(1),
		Version:       cliVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.debug {
				opts.run.MinLogLevel = -1
			}
			lgr, err := logger.Get(opts.run.MinLogLevel, opts.run.LogFile)
			if err != nil {
				return err
			}
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
			ctx := logger.WithLogger(cmd.Context(), lgr)
			cmd.SetContext(settings.IntoContext(ctx, opts.run))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	f := cmd.Flags()
	f.BoolVarP(&opts.run.Fullscreen, "fullscreen", "f", false, "use the whole terminal (alternate screen, mouse enabled); default from config")
	f.BoolVarP(&opts.keyBindings, "keybindings", "k", false, "print the key and mouse bindings and exit")
	f.StringVarP(&opts.expression, "expression", "e", "", "CEL expression using '_' as root, applied before viewing. Examples: '_.items', '_.items.filter(x, x.ready)'")
	f.IntVar(&opts.limit, "limit", 0, "show at most N records of the root array or object")
	f.IntVar(&opts.offset, "offset", 0, "skip the first N records")
	f.IntVar(&opts.tail, "tail", 0, "show the last N records (mutually exclusive with --limit; ignores --offset)")
	f.StringVar(&opts.autoDecode, "auto-decode", "", "decode serialized JSON/YAML strings: 'lazy' (the projected root only) or 'eager' (every string)")
	f.IntVar(&opts.objectDepth, "object-depth", 0, "expand objects down to this depth at start; default from config")
	f.IntVar(&opts.arrayDepth, "array-depth", 0, "expand arrays down to this depth at start; default from config")
	f.StringVar(&opts.themeName, "theme", "", "theme name (default from config; see 'kvfold themes')")
	f.BoolVar(&opts.run.NoColor, "no-color", false, "disable color output")
	f.BoolVar(&opts.snapshot, "snapshot", false, "render a single frame and exit; honors --width/--height and --press")
	f.StringArrayVar(&opts.startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <Down>, <CR>, <Space>, <PgDn>, <WheelDown>). Literal text is typed as keys")
	f.IntVar(&opts.width, "width", 0, "frame width in columns (default: terminal width)")
	f.IntVar(&opts.height, "height", 0, "frame height in rows (default: terminal height)")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config-file", "", "path to a YAML config file (themes, fold depths, fullscreen)")
	pf.StringVar(&opts.run.LogFile, "log-file", "", "write JSON logs to this path ('stderr' or a file); logs are discarded by default")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newVersionCmd(), newThemesCmd(opts), newConfigCmd(opts), newFunctionsCmd())
	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	out := cmd.OutOrStdout()
	run := settings.RunFromContext(cmd.Context())
	if opts.keyBindings {
		fmt.Fprintln(out, renderKeyBindings(run.NoColor))
		return nil
	}

	lgr := logger.FromContext(cmd.Context())
	if len(args) == 1 {
		run.InputPath = args[0]
	}
	doc, err := readInput(run, opts.expression, cmd.InOrStdin())
	if errors.Is(err, errNoInput) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}

	cfgPath := resolveConfigPath(opts.configFile)
	merged, err := loadMergedConfig(cfgPath)
	if err != nil {
		return err
	}
	lgr.V(1).Info("configuration loaded", "path", cfgPath, "theme", merged.UI.Theme.Default)

	cfg := opts.tuiConfig(cmd.Flags(), merged, *lgr)
	if opts.snapshot || stdoutIsPiped() {
		frame, err := tui.RenderSnapshot(doc, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, frame)
		return nil
	}

	progOpts, cleanup := getProgramOptions()
	defer cleanup()
	return tui.Run(doc, cfg, progOpts...)
}

// tuiConfig maps the flags onto a viewer config. Flags that were not set
// leave the config file values in place.
func (o *rootOptions) tuiConfig(flags *pflag.FlagSet, merged ui.ConfigFile, lgr logr.Logger) tui.Config {
	cfg := tui.DefaultConfig()
	cfg.Width = o.width
	cfg.Height = o.height
	cfg.NoColor = o.run.NoColor
	cfg.ThemeName = o.themeName
	cfg.UIConfig = &merged
	cfg.Expression = o.expression
	cfg.Limit = o.limit
	cfg.Offset = o.offset
	cfg.Tail = o.tail
	cfg.AutoDecode = o.autoDecode
	cfg.StartKeys = o.startKeys
	cfg.Logger = lgr

	if flags.Changed("fullscreen") {
		fullscreen := o.run.Fullscreen
		cfg.Fullscreen = &fullscreen
	}
	if flags.Changed("object-depth") {
		depth := o.objectDepth
		cfg.ObjectDepth = &depth
	}
	if flags.Changed("array-depth") {
		depth := o.arrayDepth
		cfg.ArrayDepth = &depth
	}
	return cfg
}

// readInput loads the document from the file named in run or from stdin.
// Without piped input an expression is evaluated against an empty object.
func readInput(run *settings.Run, expression string, stdin io.Reader) (*document.Value, error) {
	if !run.FromStdin() {
		doc, err := loader.LoadFile(run.InputPath)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", run.InputPath, err)
		}
		return doc, nil
	}

	if !stdinIsPiped() {
		if strings.TrimSpace(expression) == "" {
			return nil, errNoInput
		}
		return document.NewObject(), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return document.NewObject(), nil
	}
	return loader.LoadRootBytes(data)
}
