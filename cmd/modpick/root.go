package modpick

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modpick/internal/version"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
)

// skipSetup marks commands that run without loading the configuration.
const skipSetup = "modpick/skip-setup"

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewOS())
}

func newRootCmd(fsys filesystem.FS) *cobra.Command {
	var opts globalOptions
	env := &app{}

	rootCmd := &cobra.Command{
		Use:     "modpick",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			built, err := newApp(opts, fsys)
			if err != nil {
				return err
			}
			*env = *built
			env.logger.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.gameDir, "game-dir", "", MsgFlagGameDir)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newRulesCmd(env))
	rootCmd.AddCommand(newChooseCmd(env))
	rootCmd.AddCommand(newResolveCmd(env))
	rootCmd.AddCommand(newGenConfigCmd(env))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}
