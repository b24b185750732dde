package parser

import (
	"github.com/tliron/commonlog"
)

// Trace logs every call of p at debug level under the "combi.parser" logger, with
// the input it was given and how it finished.
func Trace[I, O any](name string, p Parser[I, O]) Parser[I, O] {
	log := commonlog.GetLogger("combi.parser")
	return Func[I, O](func(input I) (I, O, error) {
		log.Debugf("%s: enter at %v", name, input)
		rest, out, err := p.Parse(input)
		switch {
		case err == nil:
			log.Debugf("%s: matched, rest %v", name, rest)
		case IsRecoverable(err):
			log.Debugf("%s: no match: %s", name, err)
		default:
			log.Debugf("%s: failed: %s", name, err)
		}
		return rest, out, err
	})
}
