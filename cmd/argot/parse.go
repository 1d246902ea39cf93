package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
	"github.com/aretw0/argot/internal/presentation/tui"
)

var parseCmd = &cobra.Command{
	Use:   "parse <command> [tokens...]",
	Short: "Parse a command line and print the converted values as JSON",
	Long: `Looks the command up in the catalog and parses the remaining tokens against its usage.
Use --line to pass a whole command line with shell-style quoting instead.`,
	Example: `  argot parse move 3 north
  argot parse --line 'greet "Ada Lovelace"'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, _ := cmd.Flags().GetString("line")

		tokens := args
		if line != "" {
			if len(args) > 0 {
				return fmt.Errorf("--line and positional tokens cannot be used together")
			}
			var err error
			if tokens, err = cli.SplitLine(line); err != nil {
				return err
			}
		}

		env := setup(cmd.Context())
		if err := cli.RunParse(cmd.Context(), env, os.Stdout, tokens); err != nil {
			var rest []string
			if len(tokens) > 1 {
				rest = tokens[1:]
			}
			fmt.Fprintln(os.Stderr, tui.FormatError(err, rest, cli.IsTerminal(os.Stderr)))
			_ = env.Close()
			os.Exit(cli.ExitCode(err))
		}
		return env.Close()
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("line", "l", "", "Whole command line, split with shell quoting rules")
}
