package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/argot/internal/cli"
)

var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "argot",
	Short: "argot parses positional arguments against typed usages",
	Long: `argot validates and converts positional command-line tokens using a catalog
of command usages and a registry of pluggable argument types.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup builds the shared environment from the persistent flags.
func setup(ctx context.Context) *cli.Env {
	env, err := cli.Setup(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing argot: %v\n", err)
		os.Exit(1)
	}
	return env
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", cli.DefaultCatalog, "Command catalog file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (silent when empty)")
	rootCmd.PersistentFlags().BoolVar(&opts.Strict, "strict", true, "Reject tokens left over after the last slot")
	rootCmd.PersistentFlags().BoolVar(&opts.Builtins, "builtins", true, "Register float, boolean, enum and duration types")
	rootCmd.PersistentFlags().StringVar(&opts.RedisAddr, "redis", "", "Redis address for the command store (in-memory when empty)")
	rootCmd.PersistentFlags().StringVar(&opts.RedisPrefix, "redis-prefix", "", "Key prefix for the Redis command store")
}
