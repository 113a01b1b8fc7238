package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"prim/internal/diagfmt"
	"prim/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file|->",
		Short: "Print the token stream of a source file",
		Long:  `Tokenize lexes a file (or stdin with "-") and prints every token with its kind and position.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("tokenize: unknown format %q (expected pretty|json)", outFormat)
	}

	var result *driver.TokenizeResult
	if args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("tokenize: read stdin: %w", err)
		}
		result, err = driver.TokenizeSource(cmd.Context(), "<stdin>", content)
		if err != nil {
			return fmt.Errorf("tokenize: %w", err)
		}
	} else {
		result, err = driver.Tokenize(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("tokenize: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if outFormat == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
