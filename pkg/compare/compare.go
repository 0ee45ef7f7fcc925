// pkg/compare/compare.go - version ordering for reconciliation.

package compare

import (
	"strings"

	version "github.com/hashicorp/go-version"
)

// IsNewer reports whether a denotes a strictly newer release than b.
//
// Both strings are parsed as versions first, which handles differing
// segment counts ("1.2" ranks equal to "1.2.0") and prerelease suffixes
// ("1.0-beta" ranks below "1.0"). When either side does not parse, both
// sides are compared lexically instead; version strings are vendor
// supplied and a malformed one must order deterministically rather than
// fail the run.
//
// The relation is a total preorder: IsNewer(a, b) and IsNewer(b, a) are
// never both true, and when neither holds the two rank equal. Equal rank
// does not imply the strings are textually equal.
func IsNewer(a, b string) bool {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA == nil && errB == nil {
		return va.GreaterThan(vb)
	}
	return lexicalNewer(a, b)
}

// lexicalNewer is the fallback ordering for unparseable versions. The
// branch taken depends only on the pair, so antisymmetry carries over.
func lexicalNewer(a, b string) bool {
	return strings.Compare(strings.TrimSpace(a), strings.TrimSpace(b)) > 0
}
