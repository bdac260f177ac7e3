package rangeset

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/henderiw/rangeset/pkg/variant"
)

// DefaultItemSeparator joins entries in String.
const DefaultItemSeparator = ","

// Config describes a RangeSet. It is validated once by New and not
// modified afterwards.
type Config struct {
	// Type is the registered variant name: integer, serial, digitstring
	// or ipv4.
	Type string
	// Values are added to the set at construction.
	Values []any
	// ItemSeparator joins entries in String. Defaults to ",".
	ItemSeparator string
	// Pattern replaces the validation regexp of the variant.
	Pattern string
}

// Validate reports every problem with the config.
func (c Config) Validate() error {
	_, err := c.resolve()
	return err
}

func (c Config) resolve() (variant.Variant, error) {
	var errm error
	v, err := variant.Lookup(c.Type)
	if err != nil {
		errm = errors.Join(errm, err)
	}
	var re *regexp.Regexp
	if c.Pattern != "" {
		re, err = regexp.Compile(c.Pattern)
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("%w: pattern %q: %v", ErrInvalidInput, c.Pattern, err))
		}
	}
	if errm != nil {
		return nil, errm
	}
	return variant.Override(v, re), nil
}

func (c Config) separator() string {
	if c.ItemSeparator == "" {
		return DefaultItemSeparator
	}
	return c.ItemSeparator
}
