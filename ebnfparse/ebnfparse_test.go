package ebnfparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combi/monoid"
	"github.com/dhamidi/combi/parser"
)

const listGrammar = `
	list = item { Sep item } .
	item = Number | Word .
	Number = Digit { Digit } .
	Word = Letter { Letter } .
	Sep = "," | "\n" .
	Digit = "0" … "9" .
	Letter = "a" … "z" .
`

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ParseGrammar("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func TestMatch(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	p, err := Match(g, "list")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	tests := []struct {
		input   string
		want    monoid.Text
		wantErr bool
	}{
		{"ab", "ab", false},
		{"ab,12,c", "ab,12,c", false},
		{"x\ny", "x\ny", false},
		{"ab,", "", true},
		{"", "", true},
		{"AB", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAll(p, "input", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	p, err := Tokenize(g, "list")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got, err := TokenizeAll(p, "in.txt", "ab,12\ncd")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	pos := func(offset, line, col int) Position {
		return Position{Filename: "in.txt", Offset: offset, Line: line, Column: col}
	}
	want := Tokens{
		{Kind: "Word", Literal: "ab", Span: Span{pos(0, 1, 1), pos(2, 1, 3)}},
		{Kind: "Sep", Literal: ",", Span: Span{pos(2, 1, 3), pos(3, 1, 4)}},
		{Kind: "Number", Literal: "12", Span: Span{pos(3, 1, 4), pos(5, 1, 6)}},
		{Kind: "Sep", Literal: "\n", Span: Span{pos(5, 1, 6), pos(6, 2, 1)}},
		{Kind: "Word", Literal: "cd", Span: Span{pos(6, 2, 1), pos(8, 2, 3)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Number", "Sep", "Word"}, monoid.Sorted(Kinds(got))); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	counts := Count(got)
	if counts["Word"].Value != 2 || counts["Sep"].Value != 2 || counts["Number"].Value != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	p, err := Match(g, "list")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	_, err = ParseAll(p, "in.txt", "ab\ncd,")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	want := Position{Filename: "in.txt", Offset: 5, Line: 2, Column: 3}
	if serr.Pos != want {
		t.Errorf("position = %v, want %v", serr.Pos, want)
	}
	if !parser.IsRecoverable(err) {
		t.Errorf("trailing input should be a recoverable failure, got %v", err)
	}
}

func TestLeftRecursion(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		start   string
	}{
		{"direct", `expr = expr "+" term | term . term = "x" .`, "expr"},
		{"indirect through option", `a = b "x" . b = [ "y" ] a .`, "a"},
		{"through nullable name", `a = e a "x" | "x" . e = .`, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrammar(t, tt.grammar)
			_, err := Match(g, tt.start)
			if err == nil || !strings.Contains(err.Error(), "left recursion") {
				t.Errorf("err = %v, want left recursion", err)
			}
		})
	}
}

func TestRightRecursionAllowed(t *testing.T) {
	g := mustGrammar(t, `nested = "(" [ nested ] ")" .`)
	p, err := Match(g, "nested")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	got, err := ParseAll(p, "", "((()))")
	if err != nil || got != "((()))" {
		t.Errorf("got %q, err %v", got, err)
	}
}

func TestWithCut(t *testing.T) {
	const src = `
		stmt = "let " assignment | expr .
		assignment = Name "=" Name .
		expr = Name .
		Name = Letter { Letter } .
		Letter = "a" … "z" .
	`
	g := mustGrammar(t, src)

	plain, err := Match(g, "stmt")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := ParseAll(plain, "", "let x y"); !parser.IsRecoverable(err) {
		t.Errorf("without cut: err = %v, want recoverable", err)
	}

	cut, err := Match(g, "stmt", WithCut("assignment"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := ParseAll(cut, "", "let x y"); !parser.IsFatal(err) {
		t.Errorf("with cut: err = %v, want fatal", err)
	}
	if got, err := ParseAll(cut, "", "let x=y"); err != nil || got != "let x=y" {
		t.Errorf("got %q, err %v", got, err)
	}
}

func TestWithCutInsideRepetition(t *testing.T) {
	g := mustGrammar(t, `
		list = item { "," item } .
		item = "x" .
	`)
	cut, err := Match(g, "list", WithCut("item"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got, err := ParseAll(cut, "", "x,x"); err != nil || got != "x,x" {
		t.Errorf("got %q, err %v", got, err)
	}
	if _, err := ParseAll(cut, "", "x,y"); !parser.IsFatal(err) {
		t.Errorf("err = %v, want fatal once the cut item fails", err)
	}
}

func TestEmptyProduction(t *testing.T) {
	g := mustGrammar(t, `s = "a" e "b" . e = .`)
	p, err := Match(g, "s")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got, err := ParseAll(p, "", "ab"); err != nil || got != "ab" {
		t.Errorf("got %q, err %v", got, err)
	}
}

func TestWithTrace(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	p, err := Match(g, "list", WithTrace())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got, err := ParseAll(p, "", "a,1"); err != nil || got != "a,1" {
		t.Errorf("got %q, err %v", got, err)
	}
}

func TestUnknownStart(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	if _, err := Match(g, "missing"); err == nil {
		t.Error("expected an error for an unknown start production")
	}
}

func TestParseGrammarErrors(t *testing.T) {
	_, err := ParseGrammar("bad.ebnf", strings.NewReader("a = \"x\"\nb = .\n"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	errs := Errors(err)
	if len(errs) == 0 {
		t.Fatalf("Errors(%v) is empty", err)
	}
	for _, e := range errs {
		if !strings.HasPrefix(e.Error(), "bad.ebnf:") {
			t.Errorf("error %q has no position", e)
		}
	}
}

func TestErrorsSingle(t *testing.T) {
	err := errors.New("boom")
	if diff := cmp.Diff([]string{"boom"}, errorStrings(Errors(err))); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
	if Errors(nil) != nil {
		t.Error("Errors(nil) should be empty")
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

// Upper-case productions referenced from lower-case ones, with ranges inside
// them, must load and check cleanly.
func TestTokenGrammarLoads(t *testing.T) {
	g, err := ParseGrammar("g.ebnf", strings.NewReader(`
		list = Word { "," Word } .
		Word = Letter { Letter } .
		Letter = "a" … "z" .
	`))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := CheckFrom(g, "list"); err != nil {
		t.Fatalf("CheckFrom: %v", err)
	}
	p, err := Tokenize(g, "list")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	got, err := TokenizeAll(p, "in", "ab,c")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var literals []string
	for _, tok := range got {
		literals = append(literals, tok.Kind+" "+tok.Literal)
	}
	if diff := cmp.Diff([]string{"Word ab", "Word c"}, literals); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckFrom(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	if err := CheckFrom(g, "missing"); err == nil || !strings.Contains(err.Error(), `"missing" not found`) {
		t.Errorf("err = %v, want unknown start", err)
	}
	if err := CheckFrom(mustGrammar(t, "a = b .\n"), "a"); err == nil || !strings.Contains(err.Error(), "undefined production b") {
		t.Errorf("err = %v, want undefined production", err)
	}
}

func TestSyntaxErrorIncludesCause(t *testing.T) {
	cause := errors.New("bad digit")
	err := &SyntaxError{
		Pos: Position{Filename: "in", Line: 1, Column: 2},
		Err: &parser.Error{Kind: parser.Fatal, Offset: 1, Expected: "digit", Err: cause},
	}
	if got, want := err.Error(), "in:1:2: fatal failure: expected digit: bad digit"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through Unwrap")
	}
}

func TestCheck(t *testing.T) {
	if err := Check(mustGrammar(t, listGrammar)); err != nil {
		t.Errorf("Check(list grammar) = %v", err)
	}

	g := mustGrammar(t, "a = b .\n")
	err := Check(g)
	if err == nil || !strings.HasPrefix(err.Error(), "test.ebnf:1:5: undefined production b") {
		t.Errorf("err = %v, want undefined production at 1:5", err)
	}

	g = mustGrammar(t, "a = \"x\" .\nb = b \"y\" .\n")
	err = Check(g)
	if err == nil || !strings.HasPrefix(err.Error(), "test.ebnf:2:1: left recursion: b → b") {
		t.Errorf("err = %v, want left recursion at 2:1", err)
	}
}
