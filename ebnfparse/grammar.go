package ebnfparse

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"golang.org/x/exp/ebnf"
)

// LoadGrammar loads an EBNF grammar from a file.
//
// Only the syntax is checked. ebnf.Verify is not used: it treats lower-case
// productions as lexical, the opposite of the convention Tokenize follows, and
// would reject grammars that reference a token production. Use Check or
// CheckFrom for the semantic checks.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar reads an EBNF grammar from r. Like LoadGrammar it only checks
// the syntax.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Errors unpacks err into the individual errors it carries. golang.org/x/exp/ebnf
// returns its errors as a slice behind an unexported type; that slice is found by
// following the Unwrap chain. Any other error is returned as the only element.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			errs := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if inner, ok := v.Index(i).Interface().(error); ok {
					errs = append(errs, inner)
				}
			}
			return errs
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return []error{err}
}
