package main

import (
	"os"

	"github.com/spf13/cobra"

	"weft/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Generator lowering core and runtime",
	Long:  `Weft compiles suspendable functions into resumable state machines and runs them`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("manifest", "weft.toml", "project manifest path")
	rootCmd.PersistentFlags().String("trace", "", "trace level (off|phase|detail|debug), overrides the manifest")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
