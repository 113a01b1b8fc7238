package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"prim/internal/diff"
	"prim/internal/driver"
)

// ReportOpts configures the text report of a formatting run.
type ReportOpts struct {
	Check   bool // wording: "would reformat" instead of "formatted"
	Diff    bool // print diffs of changed files
	Quiet   bool // only errors and diffs
	NoColor bool
}

// Summary counts the outcomes of a run.
type Summary struct {
	Files   int `json:"files"`
	Changed int `json:"changed"`
	Cached  int `json:"cached"`
	Errors  int `json:"errors"`
}

// Summarize counts results.
func Summarize(results []driver.FormatResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Errors++
		case r.Changed:
			s.Changed++
		}
		if r.Cached {
			s.Cached++
		}
	}
	return s
}

// FormatReportText prints one line per changed or failed file, the diffs
// when requested, and a summary.
func FormatReportText(w io.Writer, results []driver.FormatResult, opts ReportOpts) error {
	errStyle := color.New(color.FgRed, color.Bold)
	changeStyle := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	if opts.NoColor {
		for _, c := range []*color.Color{errStyle, changeStyle, dim} {
			c.DisableColor()
		}
	}

	for _, r := range results {
		var err error
		switch {
		case r.Err != nil:
			_, err = fmt.Fprintf(w, "%s %s: %v\n", errStyle.Sprint("error:"), r.Path, r.Err)
		case r.Changed && opts.Diff:
			err = diff.Renderer{NoColor: opts.NoColor}.Render(w, r.Path, r.Diff)
		case r.Changed && !opts.Quiet:
			verb := "formatted"
			if opts.Check {
				verb = "would reformat"
			}
			_, err = fmt.Fprintf(w, "%s %s\n", changeStyle.Sprint(verb), r.Path)
		}
		if err != nil {
			return err
		}
	}
	if opts.Quiet {
		return nil
	}
	s := Summarize(results)
	_, err := dim.Fprintf(w, "%d files, %d changed, %d errors\n", s.Files, s.Changed, s.Errors)
	return err
}

type resultOutput struct {
	Path    string          `json:"path"`
	Changed bool            `json:"changed"`
	Cached  bool            `json:"cached,omitempty"`
	Error   string          `json:"error,omitempty"`
	Diff    json.RawMessage `json:"diff,omitempty"`
}

type reportOutput struct {
	Summary Summary        `json:"summary"`
	Files   []resultOutput `json:"files"`
}

// FormatReportJSON writes the run as one JSON document.
func FormatReportJSON(w io.Writer, results []driver.FormatResult) error {
	out := reportOutput{Summary: Summarize(results), Files: make([]resultOutput, 0, len(results))}
	for _, r := range results {
		ro := resultOutput{Path: r.Path, Changed: r.Changed, Cached: r.Cached}
		if r.Err != nil {
			ro.Error = r.Err.Error()
		}
		if r.Diff.HasChanges() {
			raw, err := diff.MarshalJSON(r.Path, r.Diff)
			if err != nil {
				return err
			}
			ro.Diff = raw
		}
		out.Files = append(out.Files, ro)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
