package parser

// Many0 applies p until it fails recoverably and returns every output in order.
// Zero matches is a success with no outputs. Repetition also stops after a match
// that consumed nothing, so a parser that accepts empty input cannot loop forever.
// A fatal failure is returned as is and the outputs collected so far are dropped.
func Many0[I comparable, O any](p Parser[I, O]) Parser[I, []O] {
	return many[I, O]{p: p, min: 0}
}

// Many1 is Many0 but requires at least one match. When p fails recoverably on
// its first attempt, that failure is returned.
func Many1[I comparable, O any](p Parser[I, O]) Parser[I, []O] {
	return many[I, O]{p: p, min: 1}
}

type many[I comparable, O any] struct {
	p   Parser[I, O]
	min int
}

func (m many[I, O]) Parse(input I) (I, []O, error) {
	var outs []O
	for {
		rest, out, err := m.p.Parse(input)
		if err != nil {
			if IsRecoverable(err) && len(outs) >= m.min {
				return input, outs, nil
			}
			return input, nil, err
		}
		outs = append(outs, out)
		if rest == input {
			return input, outs, nil
		}
		input = rest
	}
}

// Opt applies p once. A recoverable failure becomes a success with no output and
// the input left untouched; otherwise the output is returned as a single element.
func Opt[I, O any](p Parser[I, O]) Parser[I, []O] {
	return Func[I, []O](func(input I) (I, []O, error) {
		rest, out, err := p.Parse(input)
		switch {
		case err == nil:
			return rest, []O{out}, nil
		case IsRecoverable(err):
			return input, nil, nil
		default:
			return input, nil, err
		}
	})
}
