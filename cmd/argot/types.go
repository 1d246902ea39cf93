package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered argument types",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := setup(cmd.Context())
		defer env.Close()
		return cli.RunTypes(env, os.Stdout, cli.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
