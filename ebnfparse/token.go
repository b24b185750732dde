package ebnfparse

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combi/monoid"
	"github.com/dhamidi/combi/parser"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Token is one match of a lexical production.
type Token struct {
	Kind    string
	Literal string
	Span    Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Span.Start, t.Kind, t.Literal)
}

// Tokens is the output of a Tokenize parser.
type Tokens = monoid.Slice[Token]

// IsLexical reports whether a production name denotes a token kind.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// Tokenize compiles g into a parser that returns the tokens matched by start,
// in input order. Only the offsets of each span are set; ParseAll fills in lines
// and columns.
func Tokenize(g ebnf.Grammar, start string, opts ...Option) (parser.Parser[cursor, Tokens], error) {
	c := newCompiler(g, opts,
		func(string) Tokens { return nil },
		func(name string, p parser.Parser[cursor, Tokens]) parser.Parser[cursor, Tokens] {
			if !IsLexical(name) {
				return p
			}
			return emit(name, p)
		},
	)
	return c.compile(start)
}

// emit replaces whatever p produces with a single token covering its match.
func emit(kind string, p parser.Parser[cursor, Tokens]) parser.Parser[cursor, Tokens] {
	return parser.Map[cursor, Span, Tokens](parser.Func[cursor, Span](func(c cursor) (cursor, Span, error) {
		rest, _, err := p.Parse(c)
		if err != nil {
			return c, Span{}, err
		}
		return rest, Span{Start: Position{Offset: c.Pos}, End: Position{Offset: rest.Pos}}, nil
	}), func(span Span) Tokens {
		return Tokens{{Kind: kind, Span: span}}
	})
}

// Kinds returns the set of token kinds that occur in tokens.
func Kinds(tokens []Token) monoid.Set[string] {
	return monoid.ConcatSeq(func(yield func(monoid.Set[string]) bool) {
		for _, tok := range tokens {
			if !yield(monoid.SetOf(tok.Kind)) {
				return
			}
		}
	})
}

// Count returns how many tokens of each kind occur in tokens.
func Count(tokens []Token) map[string]monoid.Sum[int] {
	counts := make(map[string]monoid.Sum[int])
	for _, tok := range tokens {
		counts[tok.Kind] = counts[tok.Kind].Combine(monoid.Sum[int]{Value: 1})
	}
	return counts
}

// locate fills in the literal, line and column of every token. tokens must be
// ordered by offset, as Tokenize produces them.
func locate(filename, src string, tokens []Token) {
	line, col, off := 1, 1, 0
	advance := func(to int) Position {
		for off < to {
			r, size := utf8.DecodeRuneInString(src[off:])
			if r == '\n' {
				line++
				col = 1
			} else {
				col += size
			}
			off += size
		}
		return Position{Filename: filename, Offset: to, Line: line, Column: col}
	}
	for i := range tokens {
		tok := &tokens[i]
		tok.Literal = src[tok.Span.Start.Offset:tok.Span.End.Offset]
		tok.Span.Start = advance(tok.Span.Start.Offset)
		tok.Span.End = advance(tok.Span.End.Offset)
	}
}
