package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Cursor is a position in a source text. Cursors are values; advancing returns a
// new Cursor and leaves the old one unchanged.
type Cursor struct {
	Src string
	Pos int
}

// NewCursor returns a Cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

// Rest returns the unconsumed text.
func (c Cursor) Rest() string {
	return c.Src[c.Pos:]
}

// AtEnd reports whether all of the source has been consumed.
func (c Cursor) AtEnd() bool {
	return c.Pos >= len(c.Src)
}

// Advance returns c moved n bytes forward.
func (c Cursor) Advance(n int) Cursor {
	c.Pos += n
	return c
}

// LineCol returns the 1-based line and column (in bytes) of c.
func (c Cursor) LineCol() (line, col int) {
	consumed := c.Src[:c.Pos]
	line = strings.Count(consumed, "\n") + 1
	col = c.Pos - strings.LastIndexByte(consumed, '\n')
	return line, col
}

func (c Cursor) String() string {
	line, col := c.LineCol()
	rest := c.Rest()
	if len(rest) > 16 {
		rest = rest[:16] + "…"
	}
	return fmt.Sprintf("%d:%d %q", line, col, rest)
}

// Tag matches the literal s.
func Tag(s string) Parser[Cursor, string] {
	expected := strconv.Quote(s)
	return Func[Cursor, string](func(c Cursor) (Cursor, string, error) {
		if !strings.HasPrefix(c.Rest(), s) {
			return c, "", Fail(c.Pos, expected)
		}
		return c.Advance(len(s)), s, nil
	})
}

// Satisfy matches one rune for which pred returns true.
func Satisfy(expected string, pred func(rune) bool) Parser[Cursor, string] {
	return Func[Cursor, string](func(c Cursor) (Cursor, string, error) {
		r, size := utf8.DecodeRuneInString(c.Rest())
		if size == 0 || (r == utf8.RuneError && size == 1) || !pred(r) {
			return c, "", Fail(c.Pos, expected)
		}
		return c.Advance(size), c.Src[c.Pos : c.Pos+size], nil
	})
}

// Rune matches r.
func Rune(r rune) Parser[Cursor, string] {
	return Satisfy(strconv.QuoteRune(r), func(got rune) bool { return got == r })
}

// RuneRange matches one rune in the inclusive range lo to hi.
func RuneRange(lo, hi rune) Parser[Cursor, string] {
	expected := strconv.QuoteRune(lo) + "…" + strconv.QuoteRune(hi)
	return Satisfy(expected, func(r rune) bool { return lo <= r && r <= hi })
}

// TakeWhile1 matches the longest non-empty run of runes satisfying pred.
func TakeWhile1(expected string, pred func(rune) bool) Parser[Cursor, string] {
	return Func[Cursor, string](func(c Cursor) (Cursor, string, error) {
		rest := c.Rest()
		n := 0
		for n < len(rest) {
			r, size := utf8.DecodeRuneInString(rest[n:])
			if (r == utf8.RuneError && size == 1) || !pred(r) {
				break
			}
			n += size
		}
		if n == 0 {
			return c, "", Fail(c.Pos, expected)
		}
		return c.Advance(n), rest[:n], nil
	})
}

// EOF succeeds only at the end of the input.
func EOF() Parser[Cursor, string] {
	return Func[Cursor, string](func(c Cursor) (Cursor, string, error) {
		if !c.AtEnd() {
			return c, "", Fail(c.Pos, "end of input")
		}
		return c, "", nil
	})
}

// Recognize returns the text consumed by p instead of its output.
func Recognize[O any](p Parser[Cursor, O]) Parser[Cursor, string] {
	return Func[Cursor, string](func(c Cursor) (Cursor, string, error) {
		rest, _, err := p.Parse(c)
		if err != nil {
			return c, "", err
		}
		return rest, c.Src[c.Pos:rest.Pos], nil
	})
}

// Run parses src with p and returns the output and the unconsumed input.
func Run[O any](p Parser[Cursor, O], src string) (O, Cursor, error) {
	rest, out, err := p.Parse(NewCursor(src))
	return out, rest, err
}
