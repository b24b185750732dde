package ebnfparse

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/ebnf"
)

// checkLeftRecursion reports a production that can reach itself without
// consuming input. Such a production would recurse forever under the
// top-down interpretation used here.
func checkLeftRecursion(g ebnf.Grammar) error {
	nullable := nullableSet(g)

	edges := make(map[string][]string, len(g))
	for name, prod := range g {
		edges[name] = leftNames(prod.Expr, nullable, nil)
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case active:
			i := slices.Index(path, name)
			cycle := append(slices.Clone(path[i:]), name)
			return fmt.Errorf("%s: left recursion: %s", g[name].Pos(), strings.Join(cycle, " → "))
		case done:
			return nil
		}
		state[name] = active
		path = append(path, name)
		for _, next := range edges[name] {
			if _, ok := g[next]; !ok {
				continue
			}
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// nullableSet returns the productions that can match the empty string.
func nullableSet(g ebnf.Grammar) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, prod := range g {
			if !nullable[name] && isNullable(prod.Expr, nullable) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func isNullable(expr ebnf.Expression, nullable map[string]bool) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *ebnf.Token:
		return e.String == ""
	case *ebnf.Range:
		return false
	case *ebnf.Name:
		return nullable[e.String]
	case ebnf.Sequence:
		for _, item := range e {
			if !isNullable(item, nullable) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, alt := range e {
			if isNullable(alt, nullable) {
				return true
			}
		}
		return false
	case *ebnf.Group:
		return isNullable(e.Body, nullable)
	case *ebnf.Option, *ebnf.Repetition:
		return true
	default:
		return false
	}
}

// leftNames appends to names every production expr may call before it has
// consumed any input.
func leftNames(expr ebnf.Expression, nullable map[string]bool, names []string) []string {
	switch e := expr.(type) {
	case *ebnf.Name:
		return append(names, e.String)
	case ebnf.Sequence:
		for _, item := range e {
			names = leftNames(item, nullable, names)
			if !isNullable(item, nullable) {
				break
			}
		}
	case ebnf.Alternative:
		for _, alt := range e {
			names = leftNames(alt, nullable, names)
		}
	case *ebnf.Group:
		return leftNames(e.Body, nullable, names)
	case *ebnf.Option:
		return leftNames(e.Body, nullable, names)
	case *ebnf.Repetition:
		return leftNames(e.Body, nullable, names)
	}
	return names
}
