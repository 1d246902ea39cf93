package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the catalog commands and their usages",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := setup(cmd.Context())
		defer env.Close()
		return cli.RunCommands(cmd.Context(), env, os.Stdout, cli.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
