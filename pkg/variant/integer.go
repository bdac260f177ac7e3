package variant

import (
	"regexp"

	"github.com/henderiw/rangeset/pkg/box"
)

var integerVariant = &numeric{grammar: grammar{
	name:      "integer",
	kind:      box.KindInteger,
	delimiter: "..",
	patternRe: regexp.MustCompile(`^\s*[-+]?\d+\s*(?:\.\.\s*[-+]?\d+)?\s*$`),
	rangeRe:   regexp.MustCompile(`^\s*(?P<start>[-+]?\d+)\s*\.\.\s*(?P<end>[-+]?\d+)\s*$`),
	parseFn:   func(s string) (box.Box, error) { return box.ParseInteger(s) },
}}

// Integer returns the signed integer variant: "-5..5", "7".
func Integer() Variant { return integerVariant }

// numeric implements Wrap and Size for the int64 backed domains.
type numeric struct {
	grammar
}

func (n *numeric) Wrap(v any) (box.Box, error) {
	switch b := v.(type) {
	case box.Integer:
		if n.kind == box.KindInteger {
			return b, nil
		}
		return nil, mismatch(n.kind, v)
	case box.Serial:
		if n.kind == box.KindSerial {
			return b, nil
		}
		return nil, mismatch(n.kind, v)
	case box.Box:
		return nil, mismatch(n.kind, v)
	}
	i, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if n.kind == box.KindSerial {
		return box.NewSerial(i)
	}
	return box.Integer(i), nil
}

func (n *numeric) Size(start, end box.Box) uint64 {
	return uint64(asInt64(end)) - uint64(asInt64(start)) + 1
}

func asInt64(b box.Box) int64 {
	switch v := b.(type) {
	case box.Integer:
		return int64(v)
	case box.Serial:
		return int64(v)
	}
	panic("variant: not a numeric box")
}
