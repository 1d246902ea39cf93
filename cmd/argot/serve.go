package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the parser and the command catalog as a JSON API over HTTP, plus /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		env := setup(ctx)
		defer env.Close()
		fmt.Printf("Starting argot server on %s\n", addr)
		if err := cli.RunServe(ctx, env, addr); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			fmt.Printf("argot server stopped gracefully (%v)\n", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
