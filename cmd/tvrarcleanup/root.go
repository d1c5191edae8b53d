package main

import (
	"fmt"
	"strconv"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const rootLong = `Scans <scanRoot> for episode directories (names containing SxxExx).

Directories holding only .rar archives are extracted and marked with
DeleteWhenWatched.towatch. Delete that marker once the episode is watched and
the next run moves the videos into <libraryRoot> and removes the directory, or
moves it under [deletionGround] when one is given. Finally, loose videos in
<libraryRoot> are sorted into <show>/<season> folders.

Every value can also come from the environment or a .env file:
SCAN_ROOT, LIBRARY_DIR, PREVIEW_ONLY, DELETION_GROUND, UNRAR_BINARY,
EXTRACT_TIMEOUT_MINUTES, SCHEDULE, CONFIG_DIR, JOURNAL_RETENTION_DAYS, LOG_LEVEL.`

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           "tvrarcleanup <scanRoot> <libraryRoot> [previewOnly] [deletionGround]",
		Short:         "Extract, mark and clean up downloaded TV episode directories",
		Long:          rootLong,
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
				return nil
			}
			if err := applyArgs(v, args); err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return err
			}
			return runSweep(cmd.Context(), v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("preview", false, "Log what would happen without touching any file")
	flags.String("deletion-ground", "", "Move finished directories here instead of deleting them")
	flags.String("unrar", "", "Path to the unrar executable (default \"unrar\")")
	flags.String("schedule", "", "Cron expression; keep running and sweep on this schedule")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default \"info\")")
	flags.String("config-dir", "", "Directory for the journal, ignore list and lock (default ~/.config/tvrarcleanup)")

	bindFlags(v, flags, map[string]string{
		"preview":         config.KeyPreviewOnly,
		"deletion-ground": config.KeyDeletionGround,
		"unrar":           config.KeyUnrarBinary,
		"schedule":        config.KeySchedule,
		"log-level":       config.KeyLogLevel,
		"config-dir":      config.KeyConfigDir,
	})

	rootCmd.AddCommand(newHistoryCommand(v))

	return rootCmd
}

// bindFlags wires each flag to its configuration key
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		// Lookup never fails for flags registered above
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// applyArgs maps <scanRoot> <libraryRoot> [previewOnly] [deletionGround]
// onto configuration keys, taking precedence over flags and environment
func applyArgs(v *viper.Viper, args []string) error {
	v.Set(config.KeyScanRoot, args[0])
	if len(args) > 1 {
		v.Set(config.KeyLibraryDir, args[1])
	}
	if len(args) > 2 {
		preview, err := strconv.ParseBool(args[2])
		if err != nil {
			return fmt.Errorf("previewOnly must be true or false, got %q: %w", args[2], config.ErrUsage)
		}
		v.Set(config.KeyPreviewOnly, preview)
	}
	if len(args) > 3 {
		v.Set(config.KeyDeletionGround, args[3])
	}
	return nil
}
