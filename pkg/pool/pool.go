package pool

import (
	"errors"
	"fmt"
	"net/netip"
	"sort"
	"sync"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/box"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/rs/zerolog"
	"k8s.io/apimachinery/pkg/labels"
)

// Pool hands out single values of a range set and tracks who holds them
// with a label set.
type Pool interface {
	Get(value string) (labels.Set, error)
	Claim(value string, d labels.Set) error
	ClaimFree(d labels.Set) (string, error)
	ClaimRange(expr string, d labels.Set) error
	Release(value string) error
	ReleaseByLabel(selector labels.Selector) error
	Update(value string, d labels.Set) error

	Count() int
	Has(value string) bool

	IsFree(value string) bool
	FindFree() (string, error)

	Free() (*rangeset.RangeSet, error)
	Claimed() *rangeset.RangeSet

	GetAll() map[string]labels.Set
	GetByLabel(selector labels.Selector) map[string]labels.Set

	// Routes and RoutesByLabel are only served by ipv4 pools.
	Routes() (table.Routes, error)
	RoutesByLabel(selector labels.Selector) (table.Routes, error)
}

// Config describes the values a pool hands out.
type Config struct {
	// Type is the range set variant, e.g. serial or ipv4.
	Type string
	// Range is the expression of all values of the pool.
	Range string
	// Reserved values are claimed at creation and can never be released.
	Reserved []string
}

// ReservedLabels mark the values claimed through Config.Reserved.
var ReservedLabels = labels.Set{"status": "reserved"}

type Option func(*pool)

// WithLogger sets the logger claims and releases are logged to.
func WithLogger(l zerolog.Logger) Option {
	return func(p *pool) {
		p.log = l
	}
}

type entry struct {
	value box.Box
	d     labels.Set
}

type pool struct {
	m        *sync.RWMutex
	typ      string
	domain   *rangeset.RangeSet
	claimed  *rangeset.RangeSet
	table    map[string]entry
	reserved map[string]struct{}
	log      zerolog.Logger
}

func New(cfg Config, opts ...Option) (Pool, error) {
	if cfg.Range == "" {
		return nil, fmt.Errorf("%w: pool range is required", rangeset.ErrInvalidInput)
	}
	domain, err := rangeset.New(rangeset.Config{Type: cfg.Type, Values: []any{cfg.Range}})
	if err != nil {
		return nil, fmt.Errorf("pool range: %w", err)
	}
	claimed, err := rangeset.New(rangeset.Config{Type: cfg.Type})
	if err != nil {
		return nil, err
	}
	p := &pool{
		m:        new(sync.RWMutex),
		typ:      cfg.Type,
		domain:   domain,
		claimed:  claimed,
		table:    map[string]entry{},
		reserved: map[string]struct{}{},
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(p)
	}

	var errm error
	for _, expr := range cfg.Reserved {
		values, err := p.claimRange(expr, ReservedLabels)
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("reserved %q: %w", expr, err))
			continue
		}
		for _, v := range values {
			p.reserved[v] = struct{}{}
		}
	}
	if errm != nil {
		return nil, errm
	}
	p.log.Debug().Str("range", domain.String()).Int("reserved", len(p.reserved)).Msg("pool created")
	return p, nil
}

// point parses value as a single value of the pool.
func (r *pool) point(value string) (box.Box, error) {
	start, end, err := r.domain.Variant().Parse(value)
	if err != nil {
		return nil, err
	}
	if start.Compare(end) != 0 {
		return nil, fmt.Errorf("%w: %q is not a single value", rangeset.ErrInvalidInput, value)
	}
	ok, err := r.domain.Contains(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, start)
	}
	return start, nil
}

func (r *pool) Get(value string) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	b, err := r.point(value)
	if err != nil {
		return nil, err
	}
	e, ok := r.table[b.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotClaimed, b)
	}
	return labels.Merge(labels.Set{}, e.d), nil
}

func (r *pool) Claim(value string, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	b, err := r.point(value)
	if err != nil {
		return err
	}
	if _, ok := r.table[b.String()]; ok {
		return fmt.Errorf("%w: %s", ErrClaimed, b)
	}
	return r.add(b, d)
}

func (r *pool) ClaimFree(d labels.Set) (string, error) {
	r.m.Lock()
	defer r.m.Unlock()

	b, err := r.findFree()
	if err != nil {
		return "", err
	}
	if err := r.add(b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ClaimRange claims every value of expr or, when one of them is claimed or
// out of range, none.
func (r *pool) ClaimRange(expr string, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	_, err := r.claimRange(expr, d)
	return err
}

func (r *pool) claimRange(expr string, d labels.Set) ([]string, error) {
	req, err := rangeset.New(rangeset.Config{Type: r.typ, Values: []any{expr}})
	if err != nil {
		return nil, err
	}
	outside, err := r.domain.ContainsAll(req)
	if err != nil {
		return nil, err
	}
	if outside.Size() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, outside)
	}
	free, err := req.Difference(r.claimed)
	if err != nil {
		return nil, err
	}
	if !free.Equal(req) {
		taken, err := req.Difference(free)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrClaimed, taken)
	}

	var values []string
	iter := req.By()
	for iter.Next() {
		// getting an error is unlikely as we have a lock
		if err := r.add(iter.Value(), d); err != nil {
			return nil, err
		}
		values = append(values, iter.Value().String())
	}
	return values, nil
}

func (r *pool) add(b box.Box, d labels.Set) error {
	if err := r.claimed.Add(b); err != nil {
		return err
	}
	r.table[b.String()] = entry{value: b, d: labels.Merge(labels.Set{}, d)}
	r.log.Debug().Str("value", b.String()).Str("labels", d.String()).Msg("claimed")
	return nil
}

func (r *pool) Release(value string) error {
	r.m.Lock()
	defer r.m.Unlock()

	b, err := r.point(value)
	if err != nil {
		return err
	}
	if _, ok := r.table[b.String()]; !ok {
		return fmt.Errorf("%w: %s", ErrNotClaimed, b)
	}
	return r.delete(b)
}

// ReleaseByLabel releases every claimed value whose labels match selector.
// Reserved values are kept.
func (r *pool) ReleaseByLabel(selector labels.Selector) error {
	r.m.Lock()
	defer r.m.Unlock()

	var errm error
	for _, key := range r.keys() {
		e := r.table[key]
		if _, ok := r.reserved[key]; ok || !selector.Matches(e.d) {
			continue
		}
		if err := r.delete(e.value); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return errm
}

func (r *pool) delete(b box.Box) error {
	key := b.String()
	if _, ok := r.reserved[key]; ok {
		return fmt.Errorf("%w: %s", ErrReserved, key)
	}
	if err := r.claimed.Remove(b); err != nil {
		return err
	}
	delete(r.table, key)
	r.log.Debug().Str("value", key).Msg("released")
	return nil
}

func (r *pool) Update(value string, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	b, err := r.point(value)
	if err != nil {
		return err
	}
	key := b.String()
	e, ok := r.table[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotClaimed, key)
	}
	if _, ok := r.reserved[key]; ok {
		return fmt.Errorf("%w: %s", ErrReserved, key)
	}
	e.d = labels.Merge(labels.Set{}, d)
	r.table[key] = e
	return nil
}

func (r *pool) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *pool) Has(value string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	b, err := r.point(value)
	if err != nil {
		return false
	}
	_, ok := r.table[b.String()]
	return ok
}

func (r *pool) IsFree(value string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	b, err := r.point(value)
	if err != nil {
		return false
	}
	_, ok := r.table[b.String()]
	return !ok
}

func (r *pool) FindFree() (string, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	b, err := r.findFree()
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *pool) findFree() (box.Box, error) {
	free, err := r.free()
	if err != nil {
		return nil, err
	}
	iter := free.By()
	if iter.Next() {
		return iter.Value(), nil
	}
	return nil, ErrExhausted
}

// Free returns the values that can still be claimed.
func (r *pool) Free() (*rangeset.RangeSet, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free()
}

func (r *pool) free() (*rangeset.RangeSet, error) {
	free, err := r.domain.Difference(r.claimed)
	if err != nil {
		return nil, fmt.Errorf("free values: %w", err)
	}
	return free, nil
}

func (r *pool) Claimed() *rangeset.RangeSet {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Clone()
}

func (r *pool) GetAll() map[string]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[string]labels.Set, len(r.table))
	for key, e := range r.table {
		entries[key] = labels.Merge(labels.Set{}, e.d)
	}
	return entries
}

func (r *pool) GetByLabel(selector labels.Selector) map[string]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[string]labels.Set{}
	for key, e := range r.table {
		if selector.Matches(e.d) {
			entries[key] = labels.Merge(labels.Set{}, e.d)
		}
	}
	return entries
}

func (r *pool) Routes() (table.Routes, error) {
	return r.RoutesByLabel(labels.Everything())
}

// RoutesByLabel returns a host route per claimed address whose labels
// match selector, in address order. The route carries the claim labels.
func (r *pool) RoutesByLabel(selector labels.Selector) (table.Routes, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if r.domain.Variant().Kind() != box.KindIPv4 {
		return nil, fmt.Errorf("%w: routes need an ipv4 pool, got %s", rangeset.ErrTypeMismatch, r.domain.Variant().Name())
	}
	routes := table.Routes{}
	for _, key := range r.keys() {
		e := r.table[key]
		if !selector.Matches(e.d) {
			continue
		}
		addr := e.value.(box.IPv4).Addr()
		routes = append(routes, table.NewRoute(netip.PrefixFrom(addr, addr.BitLen()), labels.Merge(labels.Set{}, e.d), nil))
	}
	return routes, nil
}

// keys returns the claimed values in ascending order.
func (r *pool) keys() []string {
	keys := make([]string, 0, len(r.table))
	for key := range r.table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return r.table[keys[i]].value.Compare(r.table[keys[j]].value) < 0
	})
	return keys
}
