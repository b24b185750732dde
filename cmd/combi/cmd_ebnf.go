package main

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combi/ebnfparse"
	"github.com/dhamidi/combi/monoid"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfMatchCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnfparse.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			check := ebnfparse.Check
			if startProduction != "" {
				check = func(g ebnf.Grammar) error { return ebnfparse.CheckFrom(g, startProduction) }
			}
			if err := check(grammar); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "production the grammar is parsed from (if empty, any production may be)")

	return cmd
}

func newEbnfMatchCmd() *cobra.Command {
	var (
		startProduction string
		tokens          bool
		stats           bool
		trace           bool
		cut             []string
	)

	cmd := &cobra.Command{
		Use:   "match <grammar> [input]",
		Short: "Match an input file (or stdin) against a grammar production",
		Long: `Match reads the input and parses all of it with the start production.

By default the matched text is printed. With --tokens, every match of an
upper-case (lexical) production is printed on its own line.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := matcher{
				start:  startProduction,
				tokens: tokens,
				stats:  stats,
			}
			if trace {
				m.opts = append(m.opts, ebnfparse.WithTrace())
			}
			if len(cut) > 0 {
				m.opts = append(m.opts, ebnfparse.WithCut(cut...))
			}
			if err := m.run(cmd, args); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production (required)")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "print the tokens of lexical productions")
	cmd.Flags().BoolVar(&stats, "stats", false, "print how many tokens of each kind were matched")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every production attempt at debug level")
	cmd.Flags().StringSliceVar(&cut, "cut", nil, "productions whose failures stop the parse")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

type matcher struct {
	start  string
	tokens bool
	stats  bool
	opts   []ebnfparse.Option
}

func (m matcher) run(cmd *cobra.Command, args []string) error {
	grammar, err := ebnfparse.LoadGrammar(args[0])
	if err != nil {
		return err
	}

	filename, input, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !m.tokens && !m.stats {
		p, err := ebnfparse.Match(grammar, m.start, m.opts...)
		if err != nil {
			return err
		}
		text, err := ebnfparse.ParseAll(p, filename, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	p, err := ebnfparse.Tokenize(grammar, m.start, m.opts...)
	if err != nil {
		return err
	}
	toks, err := ebnfparse.TokenizeAll(p, filename, input)
	if err != nil {
		return err
	}
	if m.tokens {
		for _, tok := range toks {
			fmt.Fprintln(out, tok)
		}
	}
	if m.stats {
		printStats(out, toks)
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return args[0], string(data), nil
}

func printStats(w io.Writer, tokens ebnfparse.Tokens) {
	counts := ebnfparse.Count(tokens)
	for _, kind := range monoid.Sorted(ebnfparse.Kinds(tokens)) {
		fmt.Fprintf(w, "%s\t%d\n", kind, counts[kind].Value)
	}
	total := monoid.ConcatSeq(maps.Values(counts))
	fmt.Fprintf(w, "total\t%d\n", total.Value)
}

func printErrors(w io.Writer, err error) {
	for _, e := range ebnfparse.Errors(err) {
		fmt.Fprintln(w, e)
	}
}
