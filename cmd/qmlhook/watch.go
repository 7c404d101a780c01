package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mv/qmlhook/internal/cli"
	"github.com/mv/qmlhook/internal/watch"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and reformat QML files as they change",
	Long: `watch keeps qmlformat running over the given trees (default: the
current directory). File events are debounced so editors that write in
bursts trigger a single reformat. Runs until interrupted.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cfg := buildConfig(args)
		cfg.Debounce = debounce
		exitCode = cli.RunWatch(ctx, cfg)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Delay before reformatting after a burst of events")
	rootCmd.AddCommand(watchCmd)
}
