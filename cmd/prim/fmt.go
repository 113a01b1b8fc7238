package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"prim/internal/diagfmt"
	"prim/internal/diff"
	"prim/internal/driver"
	"prim/internal/fmtcache"
	"prim/internal/observ"
)

var (
	errFormatFailed   = errors.New("fmt: failed to format some files")
	errChangesPending = errors.New("fmt: formatting changes required")
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path|-> [path...]",
		Short: "Format source files",
		Long: `Format rewrites .js, .jsx, .mjs, .cjs, .ts and .tsx files in place.
Directories are walked recursively; "-" formats stdin to stdout.
Options come from flags, then the nearest .primrc.toml or prim.toml,
then built-in defaults.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFmt,
	}
	flags := cmd.Flags()
	flags.Bool("check", false, "report files that need formatting without writing them")
	flags.Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	flags.Bool("diff", false, "print a unified diff for every changed file")
	flags.String("format", "text", "report format (text|json)")
	flags.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	flags.Bool("watch", false, "keep running and reformat files as they change")
	flags.String("config", "", "use this config file instead of discovering one")
	flags.Bool("no-config", false, "ignore config files")
	flags.Bool("cache", false, "skip files recorded as formatted in the cache")
	flags.String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/prim)")
	flags.String("stdin-filepath", "<stdin>", "path used to pick config overrides for stdin")
	registerOptionFlags(flags)
	return cmd
}

type fmtFlags struct {
	check, stdout, diff, watch bool
	quiet, timings             bool
	outputFormat               string
	ui                         uiMode
	stdinPath                  string
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	flags := cmd.Flags()
	get := func(name string, dst *bool) {
		if err == nil {
			*dst, err = flags.GetBool(name)
		}
	}
	get("check", &f.check)
	get("stdout", &f.stdout)
	get("diff", &f.diff)
	get("watch", &f.watch)
	get("quiet", &f.quiet)
	get("timings", &f.timings)
	if err != nil {
		return f, err
	}
	if f.outputFormat, err = flags.GetString("format"); err != nil {
		return f, err
	}
	if f.stdinPath, err = flags.GetString("stdin-filepath"); err != nil {
		return f, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}

	switch f.outputFormat {
	case "text", "json":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.outputFormat)
	}
	if f.stdout && f.check {
		return f, fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if f.stdout && f.outputFormat != "text" {
		return f, fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if f.watch && (f.stdout || f.check) {
		return f, fmt.Errorf("fmt: --watch cannot be combined with --stdout or --check")
	}
	return f, nil
}

func buildFormatRequest(cmd *cobra.Command, args []string, f fmtFlags) (driver.FormatRequest, error) {
	flags := cmd.Flags()
	ov, err := overridesFromFlags(flags)
	if err != nil {
		return driver.FormatRequest{}, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.FormatRequest{}, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return driver.FormatRequest{}, err
	}
	noConfig, err := flags.GetBool("no-config")
	if err != nil {
		return driver.FormatRequest{}, err
	}

	req := driver.FormatRequest{
		Paths:  args,
		Check:  f.check,
		Stdout: f.stdout,
		Diff:   f.diff || f.outputFormat == "json",
		Jobs:   jobs,
		Options: driver.OptionSource{
			Overrides:  ov,
			ConfigPath: configPath,
			NoConfig:   noConfig,
		},
	}
	if f.timings {
		req.Timer = observ.NewTimer()
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return driver.FormatRequest{}, err
	}
	if useCache {
		dir, err := flags.GetString("cache-dir")
		if err != nil {
			return driver.FormatRequest{}, err
		}
		var cache *fmtcache.Cache
		if dir != "" {
			cache, err = fmtcache.OpenDir(dir)
		} else {
			cache, err = fmtcache.Open("prim")
		}
		if err != nil {
			return driver.FormatRequest{}, fmt.Errorf("fmt: cache: %w", err)
		}
		req.Cache = cache
	}
	return req, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	f, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	req, err := buildFormatRequest(cmd, args, f)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if len(args) == 1 && args[0] == "-" {
		return runFmtStdin(cmd, req, f)
	}

	if f.watch {
		err := driver.Watch(cmd.Context(), req, func(results []driver.FormatResult) {
			_ = renderFmtResults(out, errOut, results, f)
		})
		printTimings(errOut, req.Timer)
		return err
	}

	var results []driver.FormatResult
	if shouldUseTUI(f.ui) && !f.stdout && !f.diff && f.outputFormat == "text" {
		files, err := driver.CollectFiles(cmd.Context(), req.Paths)
		if err != nil {
			return err
		}
		results, err = runFormatWithUI(cmd.Context(), out, "prim fmt", files, req)
		if err != nil {
			return err
		}
	} else {
		results, err = driver.FormatPaths(cmd.Context(), req)
		if err != nil {
			return err
		}
	}

	if err := renderFmtResults(out, errOut, results, f); err != nil {
		return err
	}
	printTimings(errOut, req.Timer)
	return fmtStatus(results, f.check)
}

// renderFmtResults writes formatted content (--stdout) or the report.
func renderFmtResults(out, errOut io.Writer, results []driver.FormatResult, f fmtFlags) error {
	if f.stdout {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
				continue
			}
			if _, err := out.Write(res.Output); err != nil {
				return err
			}
		}
		return nil
	}
	if f.outputFormat == "json" {
		return diagfmt.FormatReportJSON(out, results)
	}
	return diagfmt.FormatReportText(out, results, diagfmt.ReportOpts{
		Check:   f.check,
		Diff:    f.diff,
		Quiet:   f.quiet,
		NoColor: color.NoColor,
	})
}

func fmtStatus(results []driver.FormatResult, check bool) error {
	s := diagfmt.Summarize(results)
	if s.Errors > 0 {
		return errFormatFailed
	}
	if check && s.Changed > 0 {
		return errChangesPending
	}
	return nil
}

func runFmtStdin(cmd *cobra.Command, req driver.FormatRequest, f fmtFlags) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("fmt: read stdin: %w", err)
	}
	res := driver.FormatSource(cmd.Context(), f.stdinPath, content, req)
	if res.Err != nil {
		return fmt.Errorf("fmt: %s: %w", f.stdinPath, res.Err)
	}
	out := cmd.OutOrStdout()
	switch {
	case f.outputFormat == "json":
		if err := diagfmt.FormatReportJSON(out, []driver.FormatResult{res}); err != nil {
			return err
		}
	case f.diff:
		if res.Changed {
			if err := (diff.Renderer{NoColor: color.NoColor}).Render(out, f.stdinPath, res.Diff); err != nil {
				return err
			}
		}
	case f.check:
		if res.Changed && !f.quiet {
			fmt.Fprintf(out, "would reformat %s\n", f.stdinPath)
		}
	default:
		if _, err := out.Write(res.Output); err != nil {
			return err
		}
	}
	printTimings(cmd.ErrOrStderr(), req.Timer)
	if f.check && res.Changed {
		return errChangesPending
	}
	return nil
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}
