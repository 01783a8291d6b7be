package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grammarworks/internal/diagfmt"
	"grammarworks/internal/lexer"
	"grammarworks/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.g",
		Short: "Tokenize a grammar file",
		Long:  `Tokenize breaks a grammar file into tokens covering every non-whitespace character`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().String("dialect", "grammar", "token dialect (grammar|generic)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	dialectName, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}
	dialect, err := readDialect(dialectName)
	if err != nil {
		return err
	}

	file, err := source.Load(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	seq, _ := lexer.Tokenize(file.Content, lexer.Options{Dialect: dialect})

	// Выводим токены в выбранном формате
	switch strings.ToLower(format) {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), seq)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), seq)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func readDialect(value string) (lexer.Dialect, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "grammar":
		return lexer.DialectGrammar, nil
	case "generic":
		return lexer.DialectGeneric, nil
	default:
		return 0, fmt.Errorf("invalid --dialect value %q (expected grammar|generic)", value)
	}
}
