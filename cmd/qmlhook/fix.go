package main

import (
	"github.com/spf13/cobra"

	"github.com/mv/qmlhook/internal/cli"
)

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Reformat files one at a time and report which ones changed",
	Long: `fix runs qmlformat -i over each file in order, comparing content
before and after. It stops at the first error. The exit status is 1 when
any file changed or any step failed, 0 when everything was already
formatted.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = cli.RunFix(cmd.Context(), buildConfig(args))
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
