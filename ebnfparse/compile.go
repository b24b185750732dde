// Package ebnfparse turns EBNF grammars into parsers built from monoidparser
// combinators.
//
// Grammars use the notation of golang.org/x/exp/ebnf. They are interpreted top
// down: alternatives are tried in order and the first match wins, repetitions
// and options are greedy. Left-recursive productions are rejected.
//
// Productions whose name starts with an upper-case letter are lexical: Tokenize
// reports each of their matches as one Token, without looking inside.
package ebnfparse

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combi/monoid"
	"github.com/dhamidi/combi/monoidparser"
	"github.com/dhamidi/combi/parser"
)

type cursor = parser.Cursor

// Option configures how a grammar is compiled.
type Option func(*options)

type options struct {
	trace bool
	cut   map[string]bool
}

// WithTrace logs every production attempt at debug level.
func WithTrace() Option {
	return func(o *options) {
		o.trace = true
	}
}

// WithCut makes every recoverable failure of the named productions fatal,
// including a failure to match at all. Once a cut production is attempted, the
// parse either gets through it or stops; enclosing alternatives, options and
// repetitions cannot recover. Cut only productions that are reached after the
// input has committed to them, such as the body after a keyword.
func WithCut(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.cut[name] = true
		}
	}
}

// Match compiles g into a parser that returns the text matched by start.
func Match(g ebnf.Grammar, start string, opts ...Option) (parser.Parser[cursor, monoid.Text], error) {
	c := newCompiler(g, opts,
		func(s string) monoid.Text { return monoid.Text(s) },
		func(_ string, p parser.Parser[cursor, monoid.Text]) parser.Parser[cursor, monoid.Text] { return p },
	)
	return c.compile(start)
}

type rule[O monoid.Monoid[O]] struct {
	p parser.Parser[cursor, O]
}

type compiler[O monoid.Monoid[O]] struct {
	grammar ebnf.Grammar
	options options
	rules   map[string]*rule[O]

	// literal converts matched terminal text into an output.
	literal func(string) O
	// production wraps the parser of a named production.
	production func(name string, p parser.Parser[cursor, O]) parser.Parser[cursor, O]
}

func newCompiler[O monoid.Monoid[O]](
	g ebnf.Grammar,
	opts []Option,
	literal func(string) O,
	production func(string, parser.Parser[cursor, O]) parser.Parser[cursor, O],
) *compiler[O] {
	c := &compiler[O]{
		grammar:    g,
		options:    options{cut: make(map[string]bool)},
		rules:      make(map[string]*rule[O], len(g)),
		literal:    literal,
		production: production,
	}
	for _, opt := range opts {
		opt(&c.options)
	}
	return c
}

func (c *compiler[O]) compile(start string) (parser.Parser[cursor, O], error) {
	if err := findStart(c.grammar, start); err != nil {
		return nil, err
	}
	if err := c.compileAll(); err != nil {
		return nil, err
	}
	return c.rules[start].p, nil
}

func (c *compiler[O]) compileAll() error {
	if err := checkLeftRecursion(c.grammar); err != nil {
		return err
	}

	names := make([]string, 0, len(c.grammar))
	for name := range c.grammar {
		names = append(names, name)
		c.rules[name] = &rule[O]{}
	}
	slices.Sort(names)

	for _, name := range names {
		p, err := c.expr(c.grammar[name].Expr)
		if err != nil {
			return err
		}
		p = c.production(name, p)
		if c.options.cut[name] {
			p = parser.Cut(p)
		}
		if c.options.trace {
			p = parser.Trace(name, p)
		}
		c.rules[name].p = p
	}
	return nil
}

// Check reports the problems that keep g from being compiled: left recursion,
// references to undefined productions and malformed ranges. Errors are prefixed
// with the position of the offending production or expression.
func Check(g ebnf.Grammar) error {
	c := newCompiler(g, nil,
		func(s string) monoid.Text { return monoid.Text(s) },
		func(_ string, p parser.Parser[cursor, monoid.Text]) parser.Parser[cursor, monoid.Text] { return p },
	)
	return c.compileAll()
}

// CheckFrom is Check for a grammar that will be parsed from start: start must
// name a production of g.
func CheckFrom(g ebnf.Grammar, start string) error {
	if err := findStart(g, start); err != nil {
		return err
	}
	return Check(g)
}

func findStart(g ebnf.Grammar, start string) error {
	if _, ok := g[start]; !ok {
		return fmt.Errorf("production %q not found in grammar", start)
	}
	return nil
}

func (c *compiler[O]) expr(expr ebnf.Expression) (parser.Parser[cursor, O], error) {
	switch e := expr.(type) {
	case nil:
		return monoidparser.Concat[cursor, O](), nil

	case *ebnf.Token:
		return parser.Map(parser.Tag(e.String), c.literal), nil

	case *ebnf.Range:
		lo, err := singleRune(e.Begin)
		if err != nil {
			return nil, err
		}
		hi, err := singleRune(e.End)
		if err != nil {
			return nil, err
		}
		return parser.Map(parser.RuneRange(lo, hi), c.literal), nil

	case *ebnf.Name:
		r, ok := c.rules[e.String]
		if !ok {
			return nil, fmt.Errorf("%s: undefined production %s", e.Pos(), e.String)
		}
		return parser.Lazy(func() parser.Parser[cursor, O] { return r.p }), nil

	case ebnf.Sequence:
		ps, err := c.exprs(e)
		if err != nil {
			return nil, err
		}
		return monoidparser.Concat(ps...), nil

	case ebnf.Alternative:
		ps, err := c.exprs(e)
		if err != nil {
			return nil, err
		}
		return parser.Alt(ps...), nil

	case *ebnf.Group:
		return c.expr(e.Body)

	case *ebnf.Option:
		body, err := c.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return monoidparser.Maybe(body), nil

	case *ebnf.Repetition:
		body, err := c.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return monoidparser.Many0(body), nil

	default:
		return nil, fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
	}
}

func (c *compiler[O]) exprs(list []ebnf.Expression) ([]parser.Parser[cursor, O], error) {
	ps := make([]parser.Parser[cursor, O], 0, len(list))
	for _, item := range list {
		p, err := c.expr(item)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func singleRune(tok *ebnf.Token) (rune, error) {
	r, size := utf8.DecodeRuneInString(tok.String)
	if size == 0 || size != len(tok.String) {
		return 0, fmt.Errorf("%s: range bound %q is not a single character", tok.Pos(), tok.String)
	}
	return r, nil
}
