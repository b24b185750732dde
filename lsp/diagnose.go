package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/combi/ebnfparse"
)

const source = "combi"

// Diagnose checks the grammar in text and returns one diagnostic per problem.
// Syntax errors are reported first; only a grammar that parses is checked for
// left recursion and undefined productions.
func Diagnose(filename, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	g, err := ebnfparse.ParseGrammar(filename, strings.NewReader(text))
	if err == nil {
		err = ebnfparse.Check(g)
	}
	if err == nil {
		return diagnostics
	}

	for _, e := range ebnfparse.Errors(err) {
		diagnostics = append(diagnostics, diagnostic(filename, e.Error()))
	}
	return diagnostics
}

// diagnostic turns a "file:line:col: message" error into a diagnostic. Messages
// without a position are attached to the start of the document.
func diagnostic(filename, msg string) protocol.Diagnostic {
	line, col := 1, 1
	if rest, ok := strings.CutPrefix(msg, filename+":"); ok {
		var l, c int
		if n, _ := fmt.Sscanf(rest, "%d:%d:", &l, &c); n == 2 {
			line, col = l, c
			if i := strings.Index(rest, ": "); i >= 0 {
				msg = rest[i+2:]
			}
		}
	}

	start := protocol.Position{
		Line:      protocol.UInteger(max(line-1, 0)),
		Character: protocol.UInteger(max(col-1, 0)),
	}
	end := start
	end.Character++

	severity := protocol.DiagnosticSeverityError
	src := source
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &src,
		Message:  msg,
	}
}
