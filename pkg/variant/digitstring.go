package variant

import (
	"fmt"
	"regexp"

	"github.com/henderiw/rangeset/pkg/box"
)

const digitToken = `(?:[#*]\d{1,15}|\d{1,16})`

var digitStringVariant = &digitString{grammar: grammar{
	name:      "digitstring",
	kind:      box.KindDigitString,
	delimiter: "-",
	patternRe: regexp.MustCompile(`^\s*` + digitToken + `\s*(?:(?:\.\.|-)\s*` + digitToken + `)?\s*$`),
	rangeRe:   regexp.MustCompile(`^\s*(?P<start>` + digitToken + `)\s*(?:\.\.|-)\s*(?P<end>` + digitToken + `)\s*$`),
	parseFn:   func(s string) (box.Box, error) { return box.ParseDigitString(s) },
}}

// DigitString returns the zero padded identifier variant: "0010-0100",
// "*010..*100".
func DigitString() Variant { return digitStringVariant }

type digitString struct {
	grammar
}

func (d *digitString) Wrap(v any) (box.Box, error) {
	if b, ok := v.(box.DigitString); ok {
		return b, nil
	}
	return nil, mismatch(d.kind, v)
}

// CheckRange requires both ends to share prefix and width.
func (d *digitString) CheckRange(start, end box.Box) error {
	if err := d.grammar.CheckRange(start, end); err != nil {
		return err
	}
	s, e := start.(box.DigitString), end.(box.DigitString)
	if !s.SameFormat(e) {
		return fmt.Errorf("%w: %s and %s differ in prefix or width", box.ErrInvalidInput, s, e)
	}
	return nil
}

func (d *digitString) Size(start, end box.Box) uint64 {
	return end.(box.DigitString).Numeric() - start.(box.DigitString).Numeric() + 1
}
