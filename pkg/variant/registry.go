package variant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/henderiw/rangeset/pkg/box"
)

var registry = map[string]Variant{
	"integer":     integerVariant,
	"serial":      serialVariant,
	"digitstring": digitStringVariant,
	"ipv4":        ipv4Variant,
}

// Lookup resolves a variant by its type name. Names are case insensitive.
func Lookup(name string) (Variant, error) {
	v, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown range type %q, expected one of %s",
			box.ErrInvalidInput, name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// Names returns the registered type names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
