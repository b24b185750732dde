package ebnfparse

import (
	"errors"
	"fmt"

	"github.com/dhamidi/combi/parser"
)

// SyntaxError is a parse failure located in a named source.
type SyntaxError struct {
	Pos Position
	Err *parser.Error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: %s failure: expected %s", e.Pos, e.Err.Kind, e.Err.Expected)
	if e.Err.Err != nil {
		msg += ": " + e.Err.Err.Error()
	}
	return msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseAll runs p over all of src. Input left over after p succeeds is a
// recoverable failure at the first unconsumed byte.
func ParseAll[O any](p parser.Parser[cursor, O], filename, src string) (O, error) {
	out, rest, err := parser.Run(p, src)
	if err == nil && !rest.AtEnd() {
		err = parser.Fail(rest.Pos, "end of input")
	}
	if err != nil {
		var zero O
		return zero, locateError(filename, src, err)
	}
	return out, nil
}

// TokenizeAll is ParseAll for a Tokenize parser; the returned tokens carry full
// positions and their literal text.
func TokenizeAll(p parser.Parser[cursor, Tokens], filename, src string) (Tokens, error) {
	tokens, err := ParseAll(p, filename, src)
	if err != nil {
		return nil, err
	}
	locate(filename, src, tokens)
	return tokens, nil
}

func locateError(filename, src string, err error) error {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return err
	}
	offset := min(max(perr.Offset, 0), len(src))
	line, col := parser.Cursor{Src: src, Pos: offset}.LineCol()
	return &SyntaxError{
		Pos: Position{Filename: filename, Offset: offset, Line: line, Column: col},
		Err: perr,
	}
}
