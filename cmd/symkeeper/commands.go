package symkeeper

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/symkeeper/internal/version"
	"github.com/arthur-debert/symkeeper/pkg/config"
	"github.com/arthur-debert/symkeeper/pkg/core"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/paths"
	"github.com/arthur-debert/symkeeper/pkg/ui"
	"github.com/arthur-debert/symkeeper/pkg/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// session is everything a command needs after flags and settings are
// resolved.
type session struct {
	settings   *config.Settings
	configPath string
	printer    *ui.Printer
	dryRun     bool
}

func newSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["format"] = opts.format
	}
	settings, err := config.LoadSettings(paths.SettingsPath(), overrides)
	if err != nil {
		return nil, fmt.Errorf(MsgErrSettings, err)
	}

	configPath, err := paths.FindConfig(opts.configPath, settings.ConfigFile)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("config", configPath).Bool("dryRun", opts.dryRun).Msg("Session ready")
	return &session{
		settings:   settings,
		configPath: configPath,
		printer:    ui.NewPrinter(cmd.OutOrStdout(), settings.Format),
		dryRun:     opts.dryRun,
	}, nil
}

func (s *session) runner(force bool) *core.Runner {
	return core.NewRunner(core.RunnerOptions{
		ConfigPath:    s.configPath,
		LockExtension: s.settings.LockExtension,
		EnvFile:       s.settings.EnvFile,
		Force:         force,
		DryRun:        s.dryRun,
		Reporter:      s.printer,
	})
}

func (s *session) envFilePath() string {
	if s.settings.EnvFile == "" || filepath.IsAbs(s.settings.EnvFile) {
		return s.settings.EnvFile
	}
	return filepath.Join(filepath.Dir(s.configPath), s.settings.EnvFile)
}

func (s *session) finish(changed bool) {
	if s.dryRun {
		s.printer.DryRunBanner()
		return
	}
	if !changed && s.printer.Format() != ui.FormatJSON {
		s.printer.Notice(MsgUpToDate)
	}
}

func newSyncCmd(opts *globalOptions) *cobra.Command {
	var force, watchMode bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.sync")
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			sync := func(ctx context.Context) error {
				res, err := s.runner(force).Sync(ctx)
				if err != nil {
					return err
				}
				logger.Info().
					Str("runID", res.RunID).
					Int("mutations", res.Plan.Mutations()).
					Int("removed", len(res.Removed)).
					Msg("Sync completed")
				s.finish(res.Plan.Mutations() > 0 || len(res.Removed) > 0)
				return nil
			}

			if !watchMode {
				return sync(cmd.Context())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := watch.New([]string{s.configPath, s.envFilePath()}, s.settings.WatchDebounce)
			if err != nil {
				return err
			}

			report := func(ctx context.Context) error {
				err := sync(ctx)
				if err != nil {
					PrintError(cmd.ErrOrStderr(), err)
				}
				return err
			}
			if err := report(ctx); err != nil {
				logger.Warn().Err(err).Msg("Initial sync failed, waiting for changes")
			}
			s.printer.Notice(fmt.Sprintf(MsgWatching, s.configPath))
			return w.Run(ctx, report)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, MsgFlagWatch)
	return cmd
}

func newCleanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		Long:    MsgCleanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			res, err := s.runner(false).Clean(cmd.Context())
			if err != nil {
				return err
			}
			if s.dryRun {
				s.printer.DryRunBanner()
			}
			logger := logging.GetLogger("cmd.clean")
			logger.Info().Int("removed", len(res.Removed)).Msg("Clean completed")
			return nil
		},
	}
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			rows, err := s.runner(false).Status(cmd.Context())
			if err != nil {
				return err
			}
			s.printer.Status(rows)
			return nil
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
