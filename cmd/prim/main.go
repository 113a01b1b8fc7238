package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"prim/internal/version"
)

// cleanupStack holds the teardown of profilers and tracers started by the
// root pre-run. It must run whether or not the command succeeded.
type cleanupStack []func()

func (c *cleanupStack) push(fn func()) { *c = append(*c, fn) }

func (c *cleanupStack) run() {
	for i := len(*c) - 1; i >= 0; i-- {
		(*c)[i]()
	}
	*c = nil
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithCleanup(new(cleanupStack))
}

func newRootCmdWithCleanup(cleanups *cleanupStack) *cobra.Command {
	root := &cobra.Command{
		Use:   "prim",
		Short: "Grammar-free source formatter for JavaScript-like code",
		Long: `prim rewrites the layout of JavaScript-like source files: whitespace,
indentation, line breaks and quote style. It works on tokens, without a
grammar, so it never rejects its input.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorMode(cmd); err != nil {
				return err
			}
			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups.push(stopProfiling)
			stopTracing, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups.push(stopTracing)
			return nil
		},
	}

	root.AddCommand(newFmtCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newVersionCmd())

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("trace", "", "write trace events to file (- for stderr, .ndjson for NDJSON)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
	return root
}

// main runs the root command and exits with status 1 on any error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	var cleanups cleanupStack
	root := newRootCmdWithCleanup(&cleanups)
	err := root.ExecuteContext(ctx)
	cleanups.run()
	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "prim:", msg)
		}
		stop()
		os.Exit(1)
	}
}

// applyColorMode sets the process-wide color switch from --color.
func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
