package modpick

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/config"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/arthur-debert/modpick/pkg/logging"
	"github.com/arthur-debert/modpick/pkg/mods"
	"github.com/arthur-debert/modpick/pkg/paths"
	"github.com/arthur-debert/modpick/pkg/rules"
	"github.com/arthur-debert/modpick/pkg/rulesfile"
	"github.com/arthur-debert/modpick/pkg/style"
	"github.com/arthur-debert/modpick/pkg/texts"
	"github.com/arthur-debert/modpick/pkg/ui"
	"github.com/arthur-debert/modpick/pkg/watch"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbosity  int
	configFile string
	gameDir    string
	noColor    bool
}

func (o globalOptions) overrides() map[string]interface{} {
	out := map[string]interface{}{}
	if o.gameDir != "" {
		out["game_dir"] = o.gameDir
	}
	if o.noColor {
		out["output.no_color"] = true
	}
	return out
}

// app carries what the commands share once configuration is loaded.
type app struct {
	cfg    *config.Config
	paths  paths.Paths
	files  config.Resolved
	fs     filesystem.FS
	texts  *texts.Table
	logger zerolog.Logger
}

func newApp(opts globalOptions, fsys filesystem.FS) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.configFile, Overrides: opts.overrides()})
	if err != nil {
		return nil, err
	}

	verbosity := opts.verbosity
	if cfg.Logging.Verbosity > verbosity {
		verbosity = cfg.Logging.Verbosity
	}
	logging.SetupLogger(verbosity)

	p, err := paths.New(cfg.GameDir)
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		logger := logging.GetLogger("cli")
		logger.Info().Msgf(MsgFallbackGameDir, p.GameDir())
	}

	files := cfg.Resolve(p)
	table, err := texts.Load(cfg.Language, files.LangDirs, fsys, logging.GetLogger("texts"))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		paths:  p,
		files:  files,
		fs:     fsys,
		texts:  table,
		logger: logging.GetLogger("cli"),
	}, nil
}

func (a *app) deps() rules.Deps {
	return rules.Deps{
		Walker:     mods.NewDirectoryWalker(a.paths.GameDir(), a.fs, logging.GetLogger("mods")),
		Translator: a.texts,
		Logger:     logging.GetLogger("rules"),
	}
}

func (a *app) loadRules() (*rules.Rules, error) {
	return rulesfile.LoadRules(a.fs, a.files.RulesFile, a.deps())
}

// loadChoices returns the saved choices, or the defaults of root when
// nothing was saved yet.
func (a *app) loadChoices(root *rules.Rules) (*choice.Holder, error) {
	h, err := rulesfile.LoadChoices(a.fs, a.files.ChoicesFile, root, logging.GetLogger("choices"))
	if err != nil {
		return nil, err
	}
	if h != nil {
		return h, nil
	}
	a.logger.Debug().Str("file", a.files.ChoicesFile).Msg("No saved choices, using defaults")
	return rules.DefaultChoices(root)
}

// resolve loads the rule tree and the choices and resolves them.
func (a *app) resolve() (*rules.Rules, rules.Exclusions, error) {
	root, err := a.loadRules()
	if err != nil {
		return nil, nil, err
	}
	h, err := a.loadChoices(root)
	if err != nil {
		return nil, nil, err
	}
	excl, err := root.Resolve(h)
	if err != nil {
		return nil, nil, err
	}
	return root, excl, nil
}

// watchTargets lists the paths whose changes can alter the exclusions of
// root.
func (a *app) watchTargets(root *rules.Rules) []string {
	targets := []string{a.files.RulesFile, a.files.ChoicesFile}
	for _, dir := range root.Directories() {
		targets = append(targets, a.paths.Resolve(dir))
	}
	return targets
}

// watchExclusions writes the exclusions file, then rewrites it whenever the
// rules file, the choices file or a mod directory of the tree changes, until
// ctx is done. Each round loads a fresh tree so new mods are scanned, and the
// watcher is rebuilt when the tree names other directories.
func (a *app) watchExclusions(ctx context.Context, root *rules.Rules, status io.Writer) error {
	printer := a.printer(status)
	latest := root
	update := func() error {
		tree, excl, err := a.resolve()
		if err != nil {
			return err
		}
		latest = tree
		if err := rulesfile.SaveExclusions(a.fs, a.files.ExclusionsFile, excl); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(status, printer.Template(MsgExclusionsWritten, map[string]string{"path": a.files.ExclusionsFile}))
		return nil
	}
	if err := update(); err != nil {
		return err
	}

	targets := a.watchTargets(latest)
	for {
		w, err := watch.New(targets, watch.DefaultDebounce, logging.GetLogger("watch"))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(status, printer.Template(MsgWatching, map[string]string{"count": strconv.Itoa(len(targets))}))

		round, stop := context.WithCancel(ctx)
		var next []string
		err = w.Run(round, func(changed []string) error {
			a.logger.Info().Strs("changed", changed).Msg("Inputs changed, resolving again")
			if err := update(); err != nil {
				return err
			}
			if t := a.watchTargets(latest); !slices.Equal(t, targets) {
				next = t
				stop()
			}
			return nil
		})
		stop()
		if err != nil || next == nil {
			return err
		}
		a.logger.Info().Int("paths", len(next)).Msg("Watched paths changed, restarting watcher")
		targets = next
	}
}

// printer styles status lines written to w.
func (a *app) printer(w io.Writer) *style.Printer {
	file, _ := w.(*os.File)
	f := ui.OutputFormat(ui.FormatAuto, file, a.cfg.Output.NoColor)
	return style.NewPrinter(f != ui.FormatTerminal)
}

// outputFormat settles the format for w. flag overrides the configured
// format when set.
func (a *app) outputFormat(flag string, w io.Writer) (ui.Format, error) {
	name := a.cfg.Output.Format
	if flag != "" {
		name = flag
	}
	f, err := ui.ParseFormat(name)
	if err != nil {
		return f, err
	}
	file, _ := w.(*os.File)
	return ui.OutputFormat(f, file, a.cfg.Output.NoColor), nil
}
