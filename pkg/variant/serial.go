package variant

import (
	"regexp"

	"github.com/henderiw/rangeset/pkg/box"
)

var serialVariant = &numeric{grammar: grammar{
	name:      "serial",
	kind:      box.KindSerial,
	delimiter: "-",
	patternRe: regexp.MustCompile(`^\s*\d+(?:(?:\.\.|-)\d+)?\s*$`),
	rangeRe:   regexp.MustCompile(`^\s*(?P<start>\d+)(?:\.\.|-)(?P<end>\d+)\s*$`),
	parseFn:   func(s string) (box.Box, error) { return box.ParseSerial(s) },
}}

// Serial returns the non-negative integer variant: "0-9", "3..5".
func Serial() Variant { return serialVariant }
