package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Source names are inconsistent about spacing around the "x" multiplier
// token ("30ozx Large", "30ozxLarge", "30oz x Large" all occur). Every
// name is rewritten to the spaced form before any comparison; catalog,
// legacy and invoice names must all go through this or matching breaks.
var (
	multiplierSpaced = regexp.MustCompile(`(\w)\s*x\s*([A-Z])`)
	multiplierGlued  = regexp.MustCompile(`(\w)x([A-Z])`)
)

// NormalizeName canonicalises a product name for comparison. Applying it
// to an already-normalized name is a no-op.
func NormalizeName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	name = multiplierSpaced.ReplaceAllString(name, "$1 x $2")
	name = multiplierGlued.ReplaceAllString(name, "$1 x $2")
	return name
}
