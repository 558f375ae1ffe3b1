package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weft/internal/diag"
	"weft/internal/gen"
	"weft/internal/sample"
	"weft/internal/types"
)

var lowerCmd = &cobra.Command{
	Use:   "lower sample",
	Short: "Dump the lowered state machine of a sample generator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := types.NewInterner()
		fn, err := sample.Build(args[0], in)
		if err != nil {
			return err
		}
		machine, err := gen.Lower(fn, in)
		if err != nil {
			var te *diag.TypingError
			if diag.AsTypingError(err, &te) {
				bag := diag.NewBag(0)
				for _, d := range te.Diags {
					bag.Add(d)
				}
				for _, d := range bag.Items() {
					fmt.Fprintln(cmd.ErrOrStderr(), d)
				}
				return fmt.Errorf("%s cannot be lowered natively", fn.Name)
			}
			return err
		}
		return gen.DumpMachine(cmd.OutOrStdout(), machine, in)
	},
}
