package format

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is wrapped by every option validation error.
var ErrInvalidOption = errors.New("invalid format option")

// TrailingComma controls what happens to a comma directly before a
// closing bracket.
type TrailingComma string

const (
	// TrailingCommaNone drops trailing commas before ')', ']' and an
	// object literal '}'.
	TrailingCommaNone TrailingComma = "none"
	// TrailingCommaES5 drops trailing commas only before ')'.
	TrailingCommaES5 TrailingComma = "es5"
	// TrailingCommaAll keeps every trailing comma.
	TrailingCommaAll TrailingComma = "all"
)

// ParseTrailingComma converts a string into a TrailingComma value.
func ParseTrailingComma(s string) (TrailingComma, error) {
	switch tc := TrailingComma(s); tc {
	case TrailingCommaNone, TrailingCommaES5, TrailingCommaAll:
		return tc, nil
	default:
		return "", fmt.Errorf("%w: trailingComma %q (want none, es5 or all)", ErrInvalidOption, s)
	}
}

func (tc *TrailingComma) UnmarshalText(text []byte) error {
	v, err := ParseTrailingComma(string(text))
	if err != nil {
		return err
	}
	*tc = v
	return nil
}

// ArrowParens controls parentheses around a sole arrow function parameter.
type ArrowParens string

const (
	// ArrowParensAlways prints `(x) => x`.
	ArrowParensAlways ArrowParens = "always"
	// ArrowParensAvoid prints `x => x`.
	ArrowParensAvoid ArrowParens = "avoid"
)

// ParseArrowParens converts a string into an ArrowParens value.
func ParseArrowParens(s string) (ArrowParens, error) {
	switch ap := ArrowParens(s); ap {
	case ArrowParensAlways, ArrowParensAvoid:
		return ap, nil
	default:
		return "", fmt.Errorf("%w: arrowParens %q (want always or avoid)", ErrInvalidOption, s)
	}
}

func (ap *ArrowParens) UnmarshalText(text []byte) error {
	v, err := ParseArrowParens(string(text))
	if err != nil {
		return err
	}
	*ap = v
	return nil
}

// Options is a fully resolved set of printer options.
type Options struct {
	PrintWidth     int           `json:"printWidth" msgpack:"print_width"`
	TabWidth       int           `json:"tabWidth" msgpack:"tab_width"`
	UseTabs        bool          `json:"useTabs" msgpack:"use_tabs"`
	Semi           bool          `json:"semi" msgpack:"semi"`
	SingleQuote    bool          `json:"singleQuote" msgpack:"single_quote"`
	TrailingComma  TrailingComma `json:"trailingComma" msgpack:"trailing_comma"`
	BracketSpacing bool          `json:"bracketSpacing" msgpack:"bracket_spacing"`
	// BracketSameLine only affects JSX, which is not lexed. It is accepted
	// and validated so configurations stay portable.
	BracketSameLine bool        `json:"bracketSameLine" msgpack:"bracket_same_line"`
	ArrowParens     ArrowParens `json:"arrowParens" msgpack:"arrow_parens"`
	// ExtendedBraces also treats '{' after `? && || ?? return const let var`
	// as an object literal, and keeps a block '}' on the line of a
	// following `) ] , ; .`.
	ExtendedBraces bool `json:"extendedBraces" msgpack:"extended_braces"`
}

// DefaultOptions returns the option set used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		PrintWidth:      80,
		TabWidth:        2,
		UseTabs:         false,
		Semi:            true,
		SingleQuote:     false,
		TrailingComma:   TrailingCommaNone,
		BracketSpacing:  true,
		BracketSameLine: false,
		ArrowParens:     ArrowParensAlways,
		ExtendedBraces:  false,
	}
}

// Validate reports the first out-of-range option.
func (o Options) Validate() error {
	if o.PrintWidth <= 0 {
		return fmt.Errorf("%w: printWidth must be positive, got %d", ErrInvalidOption, o.PrintWidth)
	}
	if o.TabWidth < 0 {
		return fmt.Errorf("%w: tabWidth must not be negative, got %d", ErrInvalidOption, o.TabWidth)
	}
	if _, err := ParseTrailingComma(string(o.TrailingComma)); err != nil {
		return err
	}
	if _, err := ParseArrowParens(string(o.ArrowParens)); err != nil {
		return err
	}
	return nil
}

// sanitized replaces invalid values with defaults so the printer stays
// total over any Options value.
func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.PrintWidth <= 0 {
		o.PrintWidth = def.PrintWidth
	}
	if o.TabWidth < 0 {
		o.TabWidth = def.TabWidth
	}
	if _, err := ParseTrailingComma(string(o.TrailingComma)); err != nil {
		o.TrailingComma = def.TrailingComma
	}
	if _, err := ParseArrowParens(string(o.ArrowParens)); err != nil {
		o.ArrowParens = def.ArrowParens
	}
	return o
}

// Overrides is a partial option set. Nil fields leave the base value
// untouched; it is the shape decoded from configuration files.
type Overrides struct {
	PrintWidth      *int           `toml:"printWidth" json:"printWidth,omitempty"`
	TabWidth        *int           `toml:"tabWidth" json:"tabWidth,omitempty"`
	UseTabs         *bool          `toml:"useTabs" json:"useTabs,omitempty"`
	Semi            *bool          `toml:"semi" json:"semi,omitempty"`
	SingleQuote     *bool          `toml:"singleQuote" json:"singleQuote,omitempty"`
	TrailingComma   *TrailingComma `toml:"trailingComma" json:"trailingComma,omitempty"`
	BracketSpacing  *bool          `toml:"bracketSpacing" json:"bracketSpacing,omitempty"`
	BracketSameLine *bool          `toml:"bracketSameLine" json:"bracketSameLine,omitempty"`
	ArrowParens     *ArrowParens   `toml:"arrowParens" json:"arrowParens,omitempty"`
	ExtendedBraces  *bool          `toml:"extendedBraces" json:"extendedBraces,omitempty"`
}

// Apply returns base with every non-nil override applied.
func (ov Overrides) Apply(base Options) Options {
	if ov.PrintWidth != nil {
		base.PrintWidth = *ov.PrintWidth
	}
	if ov.TabWidth != nil {
		base.TabWidth = *ov.TabWidth
	}
	if ov.UseTabs != nil {
		base.UseTabs = *ov.UseTabs
	}
	if ov.Semi != nil {
		base.Semi = *ov.Semi
	}
	if ov.SingleQuote != nil {
		base.SingleQuote = *ov.SingleQuote
	}
	if ov.TrailingComma != nil {
		base.TrailingComma = *ov.TrailingComma
	}
	if ov.BracketSpacing != nil {
		base.BracketSpacing = *ov.BracketSpacing
	}
	if ov.BracketSameLine != nil {
		base.BracketSameLine = *ov.BracketSameLine
	}
	if ov.ArrowParens != nil {
		base.ArrowParens = *ov.ArrowParens
	}
	if ov.ExtendedBraces != nil {
		base.ExtendedBraces = *ov.ExtendedBraces
	}
	return base
}

// Merge layers next over ov: fields set in next win.
func (ov Overrides) Merge(next Overrides) Overrides {
	if next.PrintWidth != nil {
		ov.PrintWidth = next.PrintWidth
	}
	if next.TabWidth != nil {
		ov.TabWidth = next.TabWidth
	}
	if next.UseTabs != nil {
		ov.UseTabs = next.UseTabs
	}
	if next.Semi != nil {
		ov.Semi = next.Semi
	}
	if next.SingleQuote != nil {
		ov.SingleQuote = next.SingleQuote
	}
	if next.TrailingComma != nil {
		ov.TrailingComma = next.TrailingComma
	}
	if next.BracketSpacing != nil {
		ov.BracketSpacing = next.BracketSpacing
	}
	if next.BracketSameLine != nil {
		ov.BracketSameLine = next.BracketSameLine
	}
	if next.ArrowParens != nil {
		ov.ArrowParens = next.ArrowParens
	}
	if next.ExtendedBraces != nil {
		ov.ExtendedBraces = next.ExtendedBraces
	}
	return ov
}

// Resolve applies ov over the defaults and validates the result.
func (ov Overrides) Resolve() (Options, error) {
	opts := ov.Apply(DefaultOptions())
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
