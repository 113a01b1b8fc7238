package main

import (
	"github.com/spf13/pflag"

	"prim/internal/format"
)

// registerOptionFlags adds one flag per format option. Defaults shown in
// help are the built-in defaults; only flags set explicitly override config.
func registerOptionFlags(fs *pflag.FlagSet) {
	def := format.DefaultOptions()
	fs.Int("print-width", def.PrintWidth, "line width the printer wraps at")
	fs.Int("tab-width", def.TabWidth, "spaces per indentation level")
	fs.Bool("use-tabs", def.UseTabs, "indent with tabs")
	fs.Bool("semi", def.Semi, "insert missing semicolons")
	fs.Bool("single-quote", def.SingleQuote, "prefer single quotes")
	fs.String("trailing-comma", string(def.TrailingComma), "trailing commas (none|es5|all)")
	fs.Bool("bracket-spacing", def.BracketSpacing, "spaces inside object literal braces")
	fs.Bool("bracket-same-line", def.BracketSameLine, "accepted for compatibility; has no effect")
	fs.String("arrow-parens", string(def.ArrowParens), "parentheses around a sole arrow parameter (always|avoid)")
	fs.Bool("extended-braces", def.ExtendedBraces, "read '{' after return, declarations and logical operators as an object")
}

// overridesFromFlags collects the option flags the user actually set.
func overridesFromFlags(fs *pflag.FlagSet) (format.Overrides, error) {
	var ov format.Overrides
	var err error
	intFlag := func(name string) *int {
		if err != nil || !fs.Changed(name) {
			return nil
		}
		var v int
		v, err = fs.GetInt(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if err != nil || !fs.Changed(name) {
			return nil
		}
		var v bool
		v, err = fs.GetBool(name)
		return &v
	}
	stringFlag := func(name string) (string, bool) {
		if err != nil || !fs.Changed(name) {
			return "", false
		}
		var v string
		v, err = fs.GetString(name)
		return v, err == nil
	}

	ov.PrintWidth = intFlag("print-width")
	ov.TabWidth = intFlag("tab-width")
	ov.UseTabs = boolFlag("use-tabs")
	ov.Semi = boolFlag("semi")
	ov.SingleQuote = boolFlag("single-quote")
	ov.BracketSpacing = boolFlag("bracket-spacing")
	ov.BracketSameLine = boolFlag("bracket-same-line")
	ov.ExtendedBraces = boolFlag("extended-braces")
	if s, ok := stringFlag("trailing-comma"); ok {
		tc, perr := format.ParseTrailingComma(s)
		if perr != nil {
			return format.Overrides{}, perr
		}
		ov.TrailingComma = &tc
	}
	if s, ok := stringFlag("arrow-parens"); ok {
		ap, perr := format.ParseArrowParens(s)
		if perr != nil {
			return format.Overrides{}, perr
		}
		ov.ArrowParens = &ap
	}
	if err != nil {
		return format.Overrides{}, err
	}
	return ov, nil
}
