package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every usage in the catalog",
	Long:  `Validates each command usage against the type registry and the optional-slot rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		env := setup(cmd.Context())
		defer env.Close()
		if err := cli.RunValidate(cmd.Context(), env, os.Stdout); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			_ = env.Close()
			os.Exit(1)
		}
		fmt.Println("Catalog is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
