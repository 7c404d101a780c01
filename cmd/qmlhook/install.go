package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mv/qmlhook/internal/cli"
	"github.com/mv/qmlhook/internal/hookinstall"
)

var force bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a git pre-commit hook that checks staged QML files",
	Long: `install writes .git/hooks/pre-commit in the repository containing
the current directory. The hook runs "qmlhook --staged --check", so commits
with unformatted QML files are rejected.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := cli.NewLogger(verbose)
		path, err := hookinstall.Install(cmd.Context(), ".", force)
		if err != nil {
			if errors.Is(err, hookinstall.ErrHookExists) {
				logger.Error("hook not installed, rerun with --force to replace it", "err", err)
			} else {
				logger.Error("hook not installed", "err", err)
			}
			exitCode = 1
			return
		}
		fmt.Printf("installed %s\n", path)
	},
}

func init() {
	installCmd.Flags().BoolVar(&force, "force", false, "Replace an existing pre-commit hook")
	rootCmd.AddCommand(installCmd)
}
