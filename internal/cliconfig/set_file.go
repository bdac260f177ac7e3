package cliconfig

import (
	"fmt"
	"os"

	"github.com/henderiw/rangeset/pkg/rangeset"
	toml "github.com/pelletier/go-toml/v2"
)

// SetFile is a TOML document describing a range set and the edits applied
// to it, in order: values, then add, then remove.
//
//	type = "serial"
//	separator = "; "
//	values = ["1-10", "20-30"]
//	add = ["11"]
//	remove = ["25"]
type SetFile struct {
	Type      string   `toml:"type"`
	Separator string   `toml:"separator"`
	Pattern   string   `toml:"pattern"`
	Values    []string `toml:"values"`
	Add       []string `toml:"add"`
	Remove    []string `toml:"remove"`
}

// LoadSetFile reads and parses a set file.
func LoadSetFile(path string) (SetFile, error) {
	var sf SetFile
	b, err := os.ReadFile(path)
	if err != nil {
		return sf, err
	}
	if err := toml.Unmarshal(b, &sf); err != nil {
		return sf, err
	}
	return sf, nil
}

// Build evaluates the set file. Settings missing from the file are taken
// from cfg.
func (sf SetFile) Build(cfg Config) (*rangeset.RangeSet, error) {
	s := newConfigSetter(nil)
	s.setString("type", sf.Type, &cfg.Type)
	s.setString("separator", sf.Separator, &cfg.Separator)
	s.setString("pattern", sf.Pattern, &cfg.Pattern)

	r, err := rangeset.New(cfg.SetConfig(toAny(sf.Values)...))
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	if err := r.Add(toAny(sf.Add)...); err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	if err := r.Remove(toAny(sf.Remove)...); err != nil {
		return nil, fmt.Errorf("remove: %w", err)
	}
	return r, nil
}

func toAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
