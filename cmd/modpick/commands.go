package modpick

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modpick/internal/version"
	"github.com/arthur-debert/modpick/pkg/config"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/logging"
	"github.com/arthur-debert/modpick/pkg/rules"
	"github.com/arthur-debert/modpick/pkg/rulesfile"
	"github.com/arthur-debert/modpick/pkg/style"
	"github.com/arthur-debert/modpick/pkg/ui"
)

// selectHeight caps the options shown at once by interactive selects.
const selectHeight = 15

func newRulesCmd(env *app) *cobra.Command {
	var (
		expand bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := env.loadRules()
			if err != nil {
				return err
			}
			h, err := env.loadChoices(root)
			if err != nil {
				return err
			}
			nodes, err := style.BuildTree(root, h, env.texts, expand)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			f, err := env.outputFormat(format, out)
			if err != nil {
				return err
			}
			if f == ui.FormatJSON {
				data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(nodes, "", "  ")
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to encode rule tree")
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			printer := style.NewPrinter(f != ui.FormatTerminal)
			_, err = fmt.Fprintln(out, printer.Tree(env.texts.Resolve(root.ScreenTitle()), nodes))
			return err
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, MsgFlagExpand)
	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	return cmd
}

func newChooseCmd(env *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "choose",
		Short:   MsgChooseShort,
		Long:    MsgChooseLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done := logging.LogOperationStart(env.logger, "choose")
			defer done()

			root, err := env.loadRules()
			if err != nil {
				return err
			}
			prev, err := env.loadChoices(root)
			if err != nil {
				return err
			}

			var presenter rules.Presenter = ui.AcceptPresenter{}
			switch {
			case yes:
			case !isatty.IsTerminal(os.Stdin.Fd()):
				env.logger.Warn().Msg(MsgNoTerminal)
			default:
				presenter = ui.NewConsolePresenter(ui.NewTerminalPrompter(selectHeight), env.texts, logging.GetLogger("ui"))
			}

			ctx := cmd.Context()
			h, err := presenter.PresentNested(ctx, root, prev).Await(ctx)
			if future.IsCancelled(err) {
				return errors.New(errors.ErrCancelled, MsgCancelled)
			}
			if err != nil {
				return err
			}

			if err := rulesfile.SaveChoices(env.fs, env.files.ChoicesFile, h); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, err = fmt.Fprintln(out, env.printer(out).Template(MsgChoicesSaved, map[string]string{"path": env.files.ChoicesFile}))
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newResolveCmd(env *app) *cobra.Command {
	var (
		format string
		write  bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			f, err := env.outputFormat(format, out)
			if err != nil {
				return err
			}

			root, excl, err := env.resolve()
			if err != nil {
				return err
			}

			if watch {
				return env.watchExclusions(cmd.Context(), root, cmd.ErrOrStderr())
			}

			if write {
				if err := rulesfile.SaveExclusions(env.fs, env.files.ExclusionsFile, excl); err != nil {
					return err
				}
				status := cmd.ErrOrStderr()
				_, _ = fmt.Fprintln(status, env.printer(status).Template(MsgExclusionsWritten, map[string]string{"path": env.files.ExclusionsFile}))
			}

			if f == ui.FormatJSON {
				data, err := rulesfile.EncodeExclusions(excl)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			printer := style.NewPrinter(f != ui.FormatTerminal)
			_, err = fmt.Fprintln(out, printer.Exclusions(excl, MsgNothingExcluded))
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&watch, "watch", false, MsgFlagWatch)
	return cmd
}

func newGenConfigCmd(env *app) *cobra.Command {
	var (
		template bool
		write    bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !template {
				data, err := config.Marshal(env.cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
				return err
			}

			target := env.paths.ConfigFile()
			if filesystem.Exists(env.fs, target) {
				return errors.Newf(errors.ErrAlreadyExists, MsgConfigExists, target)
			}
			if err := env.fs.MkdirAll(env.paths.ConfigDir(), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", env.paths.ConfigDir())
			}
			if err := env.fs.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
			}
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintln(out, env.printer(out).Template(MsgConfigWritten, map[string]string{"path": target}))
			return err
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWriteCfg)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
