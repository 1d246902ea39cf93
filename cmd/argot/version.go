package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of argot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("argot version %s\n", argot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
