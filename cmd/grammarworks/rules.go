package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grammarworks/internal/diagfmt"
	"grammarworks/internal/syntax"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [flags] file.g",
		Short: "List the rules of a grammar file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRules,
	}
	cmd.Flags().String("kind", "all", "which rules to list (all|lexer|parser)")
	cmd.Flags().Bool("sorted", false, "order by name instead of source position")
	return cmd
}

func runRules(cmd *cobra.Command, args []string) error {
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	sorted, err := cmd.Flags().GetBool("sorted")
	if err != nil {
		return fmt.Errorf("failed to get sorted flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	var rules []*syntax.Rule
	kind = strings.ToLower(kind)
	switch kind {
	case "all":
		rules = m.Rules
		if sorted {
			rules = m.SortedRules()
		}
	case "lexer":
		rules = m.LexerRules()
	case "parser":
		rules = m.ParserRules()
	default:
		return fmt.Errorf("invalid --kind value %q (expected all|lexer|parser)", kind)
	}
	if sorted && kind != "all" {
		rules = append([]*syntax.Rule(nil), rules...)
		syntax.SortRules(rules)
	}
	diagfmt.WriteRules(cmd.OutOrStdout(), m, rules, useColor(cfg.Output.Color, stdoutFile(cmd)))
	return nil
}

func newRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rule file.g name",
		Short: "Show one rule: alternatives, left recursion and its rewrite",
		Args:  cobra.ExactArgs(2),
		RunE:  runRule,
	}
}

func runRule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	name := args[1]
	r := m.RuleByName(name)
	if r == nil {
		if hints := m.Suggest(name); len(hints) > 0 {
			return fmt.Errorf("rule %q not found, did you mean %s?", name, strings.Join(hints, ", "))
		}
		return fmt.Errorf("rule %q not found", name)
	}
	diagfmt.WriteRuleDetail(cmd.OutOrStdout(), m, r, useColor(cfg.Output.Color, stdoutFile(cmd)))
	return nil
}
