package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already spaced", "30oz x Large", "30oz x Large"},
		{"glued on the right", "30ozx Large", "30oz x Large"},
		{"glued both sides", "30ozxLarge", "30oz x Large"},
		{"extra spacing", "30oz  x  Large", "30oz x Large"},
		{"surrounding whitespace", "  Tumbler 30oz x Blue  ", "Tumbler 30oz x Blue"},
		{"no multiplier", "Plain Widget", "Plain Widget"},
		{"lowercase tail untouched", "box of matches", "box of matches"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeName(tc.in))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"30ozx Large", "30ozxLarge", "Tumbler 40oz x Pink", "Plain Widget"}
	for _, in := range inputs {
		once := NormalizeName(in)
		require.Equal(t, once, NormalizeName(once), "normalizing twice must be a no-op for %q", in)
	}
}
