// pkg/catalog/catalog.go - remote component catalog model and latest-wins view.

package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/robotadmins/vendorwatch/pkg/compare"
)

// Entry is one published version of one component as listed by the remote
// catalog. Several entries may share Identity (the same component at
// different versions), and exact duplicates may appear when the document
// is assembled from multiple source lists.
type Entry struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Identity    uuid.UUID `json:"uuid"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
}

// SeasonURL builds the URL of the catalog document for a season.
func SeasonURL(baseURL string, season int) string {
	return fmt.Sprintf("%s/catalogs/%d.json", strings.TrimRight(baseURL, "/"), season)
}

// Deduplicate reduces a raw catalog to one entry per identity. The scan
// runs once, in order: the first occurrence of an identity fixes the
// entry's position in the result, and a later entry overwrites its content
// in place only when strictly newer. Ties keep the existing entry, so
// consumers relying on position see first-seen order with newest-seen
// content.
func Deduplicate(entries []Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	index := make(map[uuid.UUID]int, len(entries))

	for _, entry := range entries {
		at, seen := index[entry.Identity]
		if !seen {
			index[entry.Identity] = len(result)
			result = append(result, entry)
			continue
		}
		if compare.IsNewer(entry.Version, result[at].Version) {
			result[at] = entry
		}
	}
	return result
}
