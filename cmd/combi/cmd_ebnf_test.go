package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const grammar = `
list = Word { Sep Word } .
Word = Letter { Letter } .
Sep = "," .
Letter = "a" … "z" .
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runEbnf(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newEbnfCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEbnfCheck(t *testing.T) {
	path := writeFile(t, "list.ebnf", grammar)
	if _, stderr, err := runEbnf(t, "", "check", "--start", "list", path); err != nil {
		t.Fatalf("check failed: %v\n%s", err, stderr)
	}

	if _, stderr, err := runEbnf(t, "", "check", "--start", "missing", path); err == nil {
		t.Error("expected an unknown start production to be reported")
	} else if !strings.Contains(stderr, `"missing" not found`) {
		t.Errorf("stderr = %q", stderr)
	}

	bad := writeFile(t, "bad.ebnf", "a = a \"x\" .\n")
	_, stderr, err := runEbnf(t, "", "check", bad)
	if err == nil {
		t.Fatal("expected left recursion to be reported")
	}
	if !strings.Contains(stderr, "left recursion") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestEbnfMatch(t *testing.T) {
	path := writeFile(t, "list.ebnf", grammar)

	stdout, stderr, err := runEbnf(t, "ab,cd", "match", "--start", "list", path)
	if err != nil {
		t.Fatalf("match failed: %v\n%s", err, stderr)
	}
	if stdout != "ab,cd\n" {
		t.Errorf("stdout = %q", stdout)
	}

	input := writeFile(t, "input.txt", "ab,cd")
	stdout, stderr, err = runEbnf(t, "", "match", "--start", "list", "--tokens", "--stats", path, input)
	if err != nil {
		t.Fatalf("match failed: %v\n%s", err, stderr)
	}
	want := []string{
		input + `:1:1 Word "ab"`,
		input + `:1:3 Sep ","`,
		input + `:1:4 Word "cd"`,
		"Sep\t1",
		"Word\t2",
		"total\t3",
	}
	if got := strings.Split(strings.TrimSpace(stdout), "\n"); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout, strings.Join(want, "\n"))
	}
}

func TestEbnfMatchSyntaxError(t *testing.T) {
	path := writeFile(t, "list.ebnf", grammar)
	_, stderr, err := runEbnf(t, "ab,", "match", "--start", "list", path)
	if err == nil {
		t.Fatal("expected trailing input to fail")
	}
	if !strings.Contains(stderr, "<stdin>:1:3") {
		t.Errorf("stderr = %q, want a located error", stderr)
	}
}
