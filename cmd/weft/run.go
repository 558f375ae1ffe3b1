package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"weft/internal/bufrt"
	"weft/internal/cfg"
	"weft/internal/compile"
	"weft/internal/genrt"
	"weft/internal/sample"
	"weft/internal/types"
)

var (
	runElems string
	runLimit int
	runStats bool
)

func init() {
	runCmd.Flags().StringVar(&runElems, "elems", "1,2,3,4,5", "comma-separated elements for buffer arguments")
	runCmd.Flags().IntVar(&runLimit, "limit", 32, "stop after this many values (generators may be infinite)")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "print buffer runtime statistics")
}

var runCmd = &cobra.Command{
	Use:   "run [flags] sample [int args...]",
	Short: "Compile a sample generator and drive it to exhaustion",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	in := types.NewInterner()
	fn, err := sample.Build(args[0], in)
	if err != nil {
		return err
	}
	compiled, err := compile.Compile(fn, in, opts)
	if err != nil {
		return err
	}
	if !compiled.Native() {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s runs interpreted: %v\n", compiled.Name, compiled.TypingErr)
	}

	rt := bufrt.New()
	if opts.Tracer != nil {
		rt.SetTracer(opts.Tracer)
	}
	gargs, owned, err := buildArgs(in, fn, args[1:], rt)
	if err != nil {
		return err
	}

	g, err := compiled.New(rt, gargs)
	if err != nil {
		return err
	}
	produced := 0
	for produced < runLimit {
		v, ok, err := g.Advance()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		produced++
	}
	if err := g.Close(); err != nil {
		return err
	}
	for _, h := range owned {
		if err := rt.Release(h); err != nil {
			return err
		}
	}

	if runStats {
		stats := rt.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "handles: acquired=%d finalized=%d live=%d\n",
			stats.Acquired, stats.Finalized, stats.Live)
	}
	return nil
}

// buildArgs maps positional integers and the --elems buffer onto the
// sample's parameters. Returned handles are the caller's references to
// release after the run.
func buildArgs(in *types.Interner, fn *cfg.Func, positional []string, rt *bufrt.Runtime) ([]genrt.Value, []bufrt.Handle, error) {
	var (
		args  []genrt.Value
		owned []bufrt.Handle
	)
	for _, p := range fn.Params() {
		t := in.MustLookup(p.Type)
		if t.Kind == types.KindBuffer {
			elems, err := parseElems(runElems)
			if err != nil {
				return nil, nil, err
			}
			h := genrt.NewFloatBuffer(rt, elems)
			owned = append(owned, h)
			args = append(args, genrt.BufferValue(h))
			continue
		}
		if len(positional) == 0 {
			return nil, nil, fmt.Errorf("missing value for parameter %q", p.Name)
		}
		n, err := strconv.ParseInt(positional[0], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		positional = positional[1:]
		args = append(args, genrt.IntValue(n))
	}
	if len(positional) > 0 {
		return nil, nil, fmt.Errorf("%d unused positional arguments", len(positional))
	}
	return args, owned, nil
}

func parseElems(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	elems := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("--elems: %w", err)
		}
		elems = append(elems, f)
	}
	return elems, nil
}
