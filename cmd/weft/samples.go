package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weft/internal/sample"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in sample generators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range sample.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
