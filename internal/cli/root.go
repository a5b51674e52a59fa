package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/render"
	"github.com/olivier-w/swipe/internal/ui"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// flags holds the root command's flag values.
type flags struct {
	configPath string
	verbose    bool
	logFile    string
	start      int
	fps        int
	shuffle    bool
	wrap       bool
	color      string
	preset     string
}

// Execute runs the swipe CLI under ctx and returns an error if the command
// fails. Cancelling ctx closes the viewer.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "swipe [folder | image | list]",
		Short: "A spring-driven photo carousel for the terminal",
		Long: `swipe shows a folder of images, a single image with its siblings, or an
.m3u/.pls slide list as a carousel. Drag with the mouse and flick to change
slides; arrow keys animate with the same spring. Without an argument a file
browser opens in the current directory.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, closeLog, err := openLog(f.logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			level := log.InfoLevel
			if f.verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(w, level))

			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return runViewer(ctx, target, f, cmd.Flags())
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("swipe %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default "+displayPath(config.DefaultPath())+")")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&f.logFile, "log-file", "", "append logs to this file")

	fl := root.Flags()
	fl.IntVar(&f.start, "start", 0, "1-based slide to open on")
	fl.IntVar(&f.fps, "fps", 0, "frame rate while animating (overrides config)")
	fl.BoolVar(&f.shuffle, "shuffle", false, "start with the slides shuffled")
	fl.BoolVar(&f.wrap, "wrap", false, "wrap around from the last slide to the first")
	fl.StringVar(&f.color, "color", "", "colour output: auto, none, 16, 256 or true (overrides config)")
	fl.StringVarP(&f.preset, "preset", "p", "", "spring preset to start with")

	root.AddCommand(newPresetsCmd(&f))
	return root
}

func runViewer(ctx context.Context, target string, f flags, fs *pflag.FlagSet) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	opts, err := viewerOptions(cfg, f, fs.Changed)
	if err != nil {
		return err
	}
	opts.Logger = logger
	logger.Debug("starting", "target", target, "color", opts.Color, "fps", cfg.Display.FPS)

	p := tea.NewProgram(ui.NewLoader(target, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if l, ok := final.(ui.Loader); ok && l.Err() != nil {
		return l.Err()
	}
	return nil
}

func loadConfig(f flags) (config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// viewerOptions merges flags over cfg. changed reports whether a flag was
// set on the command line.
func viewerOptions(cfg config.Config, f flags, changed func(string) bool) (ui.Options, error) {
	if changed("fps") {
		cfg.Display.FPS = f.fps
	}
	colorName := cfg.Display.Color
	if changed("color") {
		colorName = f.color
	}
	if err := cfg.Validate(); err != nil {
		return ui.Options{}, err
	}
	mode, err := render.ParseColorMode(colorName)
	if err != nil {
		return ui.Options{}, err
	}
	if f.start < 0 {
		return ui.Options{}, fmt.Errorf("--start must be 1 or more, got %d", f.start)
	}
	if f.preset != "" {
		if _, ok := cfg.Preset(f.preset); !ok {
			return ui.Options{}, fmt.Errorf("%w: unknown preset %q (have %v)", config.ErrInvalid, f.preset, cfg.PresetNames())
		}
	}
	return ui.Options{
		Config:  cfg,
		Color:   mode,
		Shuffle: f.shuffle,
		Wrap:    f.wrap,
		Preset:  f.preset,
		Start:   f.start,
	}, nil
}

func displayPath(p string) string {
	if p == "" {
		return "none"
	}
	return p
}
