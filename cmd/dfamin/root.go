package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/config"
	"github.com/geange/dfamin/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dfamin",
	Short: "dfamin minimizes deterministic finite automata",
	Long: `dfamin reduces a DFA to the unique minimal DFA accepting the same language, using
Hopcroft's partition refinement. It runs as an HTTP service or on files from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a dfamin.yaml configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// loadConfig reads the configuration file and applies the persistent flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level, cfg.Log.Format), nil
}

// coreOptions merges the minimize section of cfg with the --lenient and --separator flags.
func coreOptions(cmd *cobra.Command, cfg *config.Config) []dfamin.Option {
	lenient := cfg.Minimize.LenientReferences
	separator := cfg.Minimize.Separator
	if cmd.Flags().Changed("lenient") {
		lenient, _ = cmd.Flags().GetBool("lenient")
	}
	if cmd.Flags().Changed("separator") {
		separator, _ = cmd.Flags().GetString("separator")
	}

	opts := []dfamin.Option{dfamin.WithSeparator(separator)}
	if lenient {
		opts = append(opts, dfamin.WithLenientReferences())
	}
	return opts
}
