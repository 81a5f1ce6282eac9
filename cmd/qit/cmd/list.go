package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scenarioNames() {
			fmt.Printf("%-16s %s\n", name, scenarios[name].short)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
