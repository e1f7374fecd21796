package main

import (
	"github.com/geange/dfamin"
	"github.com/spf13/cobra"
)

var minimizeCmd = &cobra.Command{
	Use:   "minimize [file]",
	Short: "Minimize a DFA description",
	Long: `Reads a DFA description (JSON or YAML) from a file or stdin and writes the minimal
equivalent DFA to stdout. Merged states are named after the states they replace.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		desc, err := readDescription(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		out, err := dfamin.MinimizeDescription(desc, coreOptions(cmd, cfg)...)
		if err != nil {
			return err
		}
		logger.Debug("minimized automaton", "states_in", len(desc.States), "states_out", len(out.States))

		format, _ := cmd.Flags().GetString("output")
		return writeDescription(cmd.OutOrStdout(), out, format)
	},
}

func init() {
	rootCmd.AddCommand(minimizeCmd)
	minimizeCmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
	minimizeCmd.Flags().Bool("lenient", false, "Ignore references to undeclared states and symbols")
	minimizeCmd.Flags().String("separator", "", "Separator between labels in merged state names")
}
