// pkg/reconcile/reconcile.go - installed-vs-available classification.

package reconcile

import (
	"sort"

	"github.com/google/uuid"

	"github.com/robotadmins/vendorwatch/pkg/catalog"
	"github.com/robotadmins/vendorwatch/pkg/compare"
)

// Action classifies one published version relative to an installed
// component.
type Action string

const (
	// ActionUpdate marks a published version strictly newer than the
	// installed one.
	ActionUpdate Action = "update"

	// ActionHoldAtLatest marks a published version textually equal to the
	// installed one. It is surfaced as "To Latest" rather than "no
	// action"; the label is part of the presentation contract.
	ActionHoldAtLatest Action = "to-latest"

	// ActionDowngrade marks everything else, including versions the
	// comparator ranks equal but that differ textually.
	ActionDowngrade Action = "downgrade"
)

// Component is a component currently present in the workspace. Identity
// is the only stable join key against the catalog; name and version are
// never used for matching.
type Component struct {
	Identity uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	Version  string    `json:"version"`
}

// VersionRecommendation is one classified catalog version.
type VersionRecommendation struct {
	Version string `json:"version"`
	Action  Action `json:"action"`
}

// Recommendation is the reconciliation output for one installed
// component. Candidates is empty when no catalog entry shares the
// component's identity.
type Recommendation struct {
	Name           string                  `json:"name"`
	CurrentVersion string                  `json:"current_version"`
	Candidates     []VersionRecommendation `json:"candidates"`
}

// Reconcile scans the raw catalog once per installed component and
// classifies every entry sharing its identity. The catalog is taken as
// fetched: classification works off the raw comparator result, and
// ordering the candidates is a separate pass (SortNewestFirst). Output
// preserves the input order of installed, one Recommendation per
// component even when nothing matches.
func Reconcile(installed []Component, entries []catalog.Entry) []Recommendation {
	recommendations := make([]Recommendation, 0, len(installed))

	for _, component := range installed {
		rec := Recommendation{
			Name:           component.Name,
			CurrentVersion: component.Version,
		}
		for _, entry := range entries {
			if entry.Identity != component.Identity {
				continue
			}
			rec.Candidates = append(rec.Candidates, VersionRecommendation{
				Version: entry.Version,
				Action:  classify(entry.Version, component.Version),
			})
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations
}

// classify orders the checks so that the strict comparator runs first and
// textual equality only decides among non-newer versions.
func classify(published, installed string) Action {
	switch {
	case compare.IsNewer(published, installed):
		return ActionUpdate
	case published == installed:
		return ActionHoldAtLatest
	default:
		return ActionDowngrade
	}
}

// SortNewestFirst returns a fresh slice of candidates ordered newest
// first. The sort is stable: the comparator ranks many distinct version
// strings equal, and those must keep their input order.
func SortNewestFirst(candidates []VersionRecommendation) []VersionRecommendation {
	sorted := make([]VersionRecommendation, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compare.IsNewer(sorted[i].Version, sorted[j].Version)
	})
	return sorted
}
