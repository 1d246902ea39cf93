package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
	"github.com/aretw0/argot/internal/presentation/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read command lines from stdin and parse each one",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		env := setup(ctx)
		defer env.Close()
		interactive := cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout)
		if interactive {
			tui.PrintBanner(os.Stdout)
		}
		return cli.RunShell(ctx, env, os.Stdin, os.Stdout, interactive)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
