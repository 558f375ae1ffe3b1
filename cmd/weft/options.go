package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weft/internal/compile"
	"weft/internal/trace"
)

// loadOptions resolves pipeline options from the manifest and the
// --trace override.
func loadOptions(cmd *cobra.Command) (compile.Options, error) {
	manifestPath, err := cmd.Root().PersistentFlags().GetString("manifest")
	if err != nil {
		return compile.Options{}, err
	}
	manifest, err := compile.LoadManifest(manifestPath)
	if err != nil {
		return compile.Options{}, err
	}
	opts, err := manifest.Options(os.Stderr)
	if err != nil {
		return compile.Options{}, err
	}

	override, err := cmd.Root().PersistentFlags().GetString("trace")
	if err != nil {
		return compile.Options{}, err
	}
	if override != "" {
		level, err := trace.ParseLevel(override)
		if err != nil {
			return compile.Options{}, fmt.Errorf("--trace: %w", err)
		}
		opts.Tracer = nil
		if level > trace.LevelOff {
			opts.Tracer = trace.NewStreamTracer(os.Stderr, level)
		}
	}
	return opts, nil
}
