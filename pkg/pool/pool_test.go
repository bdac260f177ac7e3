package pool

import (
	"errors"
	"testing"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
)

var vlanConfig = Config{
	Type:     "serial",
	Range:    "0-4095",
	Reserved: []string{"0-1", "4095"},
}

func TestNew(t *testing.T) {
	cases := map[string]struct {
		cfg      Config
		count    int
		free     string
		expected error
	}{
		"VLAN": {
			cfg:   vlanConfig,
			count: 3,
			free:  "2-4094",
		},
		"IPv4": {
			cfg:   Config{Type: "ipv4", Range: "10.0.0.0-10.0.0.255", Reserved: []string{"10.0.0.0", "10.0.0.255"}},
			count: 2,
			free:  "10.0.0.1-10.0.0.254",
		},
		"NoRange": {
			cfg:      Config{Type: "serial"},
			expected: rangeset.ErrInvalidInput,
		},
		"UnknownType": {
			cfg:      Config{Type: "vlan", Range: "1-10"},
			expected: rangeset.ErrInvalidInput,
		},
		"ReservedOutOfRange": {
			cfg:      Config{Type: "serial", Range: "1-10", Reserved: []string{"11"}},
			expected: ErrOutOfRange,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New(tc.cfg)
			if tc.expected != nil {
				assert.True(t, errors.Is(err, tc.expected), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.count, r.Count())
			free, err := r.Free()
			assert.NoError(t, err)
			assert.Equal(t, tc.free, free.String())
		})
	}
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		newSuccessEntries map[string]labels.Set
		newFailedEntries  map[string]labels.Set
		expectedEntries   int
	}{
		"Normal": {
			newSuccessEntries: map[string]labels.Set{
				"10": map[string]string{},
				"11": map[string]string{},
			},
			newFailedEntries: map[string]labels.Set{
				"5000": map[string]string{},
				"0":    map[string]string{},
				"1-2":  map[string]string{},
				"x":    map[string]string{},
			},
			expectedEntries: 5,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New(vlanConfig)
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)
			}
			for id, d := range tc.newFailedEntries {
				err := r.Claim(id, d)
				assert.Error(t, err)
			}
			for _, id := range vlanConfig.Reserved {
				assert.False(t, r.IsFree(id), id)
			}
			for id := range tc.newSuccessEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting success claim entry: %s\n", name, id)
				}
			}
			for id := range tc.newFailedEntries {
				if id != "0" && r.Has(id) {
					t.Errorf("%s no expecting failed claim entry: %s\n", name, id)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestClaimErrors(t *testing.T) {
	r, err := New(vlanConfig)
	assert.NoError(t, err)

	assert.NoError(t, r.Claim("100", labels.Set{"owner": "a"}))
	assert.True(t, errors.Is(r.Claim("100", nil), ErrClaimed))
	assert.True(t, errors.Is(r.Claim("4096", nil), ErrOutOfRange))
	assert.True(t, errors.Is(r.Release("200"), ErrNotClaimed))
	assert.True(t, errors.Is(r.Release("4095"), ErrReserved))
	assert.True(t, errors.Is(r.Update("0", labels.Set{"owner": "b"}), ErrReserved))
	assert.True(t, errors.Is(r.Update("300", labels.Set{"owner": "b"}), ErrNotClaimed))

	_, err = r.Get("300")
	assert.True(t, errors.Is(err, ErrNotClaimed))
}

func TestClaimFree(t *testing.T) {
	r, err := New(Config{Type: "serial", Range: "1-3", Reserved: []string{"2"}})
	assert.NoError(t, err)

	free, err := r.FindFree()
	assert.NoError(t, err)
	assert.Equal(t, "1", free)

	v, err := r.ClaimFree(labels.Set{"owner": "a"})
	assert.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = r.ClaimFree(labels.Set{"owner": "b"})
	assert.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = r.ClaimFree(labels.Set{"owner": "c"})
	assert.True(t, errors.Is(err, ErrExhausted))
	_, err = r.FindFree()
	assert.True(t, errors.Is(err, ErrExhausted))

	assert.Equal(t, "1-3", r.Claimed().String())
	remaining, err := r.Free()
	assert.NoError(t, err)
	assert.Equal(t, "", remaining.String())
}

func TestClaimRange(t *testing.T) {
	r, err := New(vlanConfig)
	assert.NoError(t, err)

	assert.NoError(t, r.ClaimRange("100-109", labels.Set{"owner": "a"}))
	assert.Equal(t, 13, r.Count())

	// overlapping claims are all or nothing
	err = r.ClaimRange("105-120", labels.Set{"owner": "b"})
	assert.True(t, errors.Is(err, ErrClaimed))
	assert.True(t, r.IsFree("115"))

	err = r.ClaimRange("4090-4100", labels.Set{"owner": "b"})
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, r.IsFree("4090"))

	assert.Equal(t, "0-1,100-109,4095", r.Claimed().String())
}

func TestGetByLabelAndRelease(t *testing.T) {
	r, err := New(vlanConfig)
	assert.NoError(t, err)

	assert.NoError(t, r.ClaimRange("10-12", labels.Set{"owner": "a"}))
	assert.NoError(t, r.Claim("20", labels.Set{"owner": "b"}))
	assert.NoError(t, r.Update("12", labels.Set{"owner": "b"}))

	d, err := r.Get("12")
	assert.NoError(t, err)
	assert.Equal(t, labels.Set{"owner": "b"}, d)

	selector := labels.SelectorFromSet(labels.Set{"owner": "b"})
	assert.Equal(t, map[string]labels.Set{
		"12": {"owner": "b"},
		"20": {"owner": "b"},
	}, r.GetByLabel(selector))

	reserved := r.GetByLabel(labels.SelectorFromSet(ReservedLabels))
	assert.Equal(t, 3, len(reserved))

	assert.NoError(t, r.ReleaseByLabel(selector))
	assert.False(t, r.Has("12"))
	assert.False(t, r.Has("20"))
	assert.True(t, r.Has("11"))

	// reserved values survive a release of everything
	assert.NoError(t, r.ReleaseByLabel(labels.Everything()))
	assert.Equal(t, 3, r.Count())
	assert.Equal(t, "0-1,4095", r.Claimed().String())

	assert.NoError(t, r.Claim("11", nil))
	assert.NoError(t, r.Release("11"))
	assert.True(t, r.IsFree("11"))
}

func TestRoutes(t *testing.T) {
	cases := map[string]struct {
		claims   map[string]labels.Set
		selector labels.Selector
		all      bool
		expected map[string]string
	}{
		"All": {
			claims: map[string]labels.Set{
				"10.0.0.12": {"owner": "b"},
				"10.0.0.10": {"owner": "a"},
			},
			all: true,
			expected: map[string]string{
				"10.0.0.0/32":  "reserved",
				"10.0.0.10/32": "a",
				"10.0.0.12/32": "b",
			},
		},
		"ByLabel": {
			claims: map[string]labels.Set{
				"10.0.0.12": {"owner": "b"},
				"10.0.0.10": {"owner": "a"},
				"10.0.0.11": {"owner": "b"},
			},
			selector: labels.SelectorFromSet(labels.Set{"owner": "b"}),
			expected: map[string]string{
				"10.0.0.11/32": "b",
				"10.0.0.12/32": "b",
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New(Config{Type: "ipv4", Range: "10.0.0.0-10.0.0.255", Reserved: []string{"10.0.0.0"}})
			assert.NoError(t, err)
			for addr, d := range tc.claims {
				assert.NoError(t, r.Claim(addr, d))
			}

			var routes table.Routes
			if tc.all {
				routes, err = r.Routes()
			} else {
				routes, err = r.RoutesByLabel(tc.selector)
			}
			assert.NoError(t, err)
			assert.Equal(t, len(tc.expected), len(routes))

			var prev string
			for _, route := range routes {
				p := route.Prefix().String()
				owner, ok := tc.expected[p]
				if !ok {
					t.Errorf("%s: unexpected route %s", name, p)
					continue
				}
				if owner == "reserved" {
					assert.Equal(t, "reserved", route.Labels()["status"])
				} else {
					assert.Equal(t, owner, route.Labels()["owner"])
				}
				// routes come in address order
				assert.True(t, prev < p || prev == "", "%s after %s", p, prev)
				prev = p
			}
		})
	}
}

func TestRoutesNeedIPv4(t *testing.T) {
	r, err := New(vlanConfig)
	assert.NoError(t, err)

	_, err = r.Routes()
	assert.True(t, errors.Is(err, rangeset.ErrTypeMismatch))
	_, err = r.RoutesByLabel(labels.Everything())
	assert.True(t, errors.Is(err, rangeset.ErrTypeMismatch))
}
