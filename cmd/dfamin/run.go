package main

import (
	"fmt"

	"github.com/geange/dfamin"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file> [symbols...]",
	Short: "Run a word through a DFA",
	Long:  `Loads a DFA description and prints "accept" or "reject" for the word made of the given symbols.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		desc, err := readDescription(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		dfa, err := dfamin.Load(desc, coreOptions(cmd, cfg)...)
		if err != nil {
			return err
		}
		if minimized, _ := cmd.Flags().GetBool("minimized"); minimized {
			dfa = dfa.Minimize()
		}

		verdict := "reject"
		if dfa.Accepts(args[1:]...) {
			verdict = "accept"
		}
		fmt.Fprintln(cmd.OutOrStdout(), verdict)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("lenient", false, "Ignore references to undeclared states and symbols")
	runCmd.Flags().Bool("minimized", false, "Run the word through the minimized DFA")
}
