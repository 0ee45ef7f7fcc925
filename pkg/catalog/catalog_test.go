package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	visionID = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	driveID  = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
)

func testEntry(id uuid.UUID, name, version string) Entry {
	return Entry{
		Path:        "/" + name,
		Name:        name,
		Version:     version,
		Identity:    id,
		Description: name + " component",
		Website:     "https://example.com/" + name,
	}
}

func TestDeduplicateKeepsNewestAtFirstSeenPosition(t *testing.T) {
	in := []Entry{
		testEntry(visionID, "vision", "1.0"),
		testEntry(driveID, "drive", "3.1"),
		testEntry(visionID, "vision", "2.0"),
	}

	out := Deduplicate(in)

	require.Len(t, out, 2)
	// vision keeps slot 0 but carries the newer content.
	assert.Equal(t, visionID, out[0].Identity)
	assert.Equal(t, "2.0", out[0].Version)
	assert.Equal(t, driveID, out[1].Identity)
}

func TestDeduplicateOlderEntryLeavesExistingUntouched(t *testing.T) {
	in := []Entry{
		testEntry(visionID, "vision", "2.0"),
		testEntry(visionID, "vision", "1.0"),
	}

	out := Deduplicate(in)

	require.Len(t, out, 1)
	assert.Equal(t, "2.0", out[0].Version)
}

func TestDeduplicateTieKeepsExistingEntry(t *testing.T) {
	// "2.0.0" ranks equal to "2.0"; neither is newer, so the first entry
	// stays as-is.
	first := testEntry(visionID, "vision", "2.0")
	in := []Entry{first, testEntry(visionID, "vision", "2.0.0")}

	out := Deduplicate(in)

	require.Len(t, out, 1)
	assert.Equal(t, first, out[0])
}

func TestDeduplicateExactDuplicates(t *testing.T) {
	entry := testEntry(driveID, "drive", "1.4")
	out := Deduplicate([]Entry{entry, entry, entry})

	require.Len(t, out, 1)
	assert.Equal(t, entry, out[0])
}

func TestDeduplicateEmptyCatalog(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}

func TestSeasonURL(t *testing.T) {
	assert.Equal(t, "https://repo.example.com/catalogs/2026.json",
		SeasonURL("https://repo.example.com", 2026))
	assert.Equal(t, "https://repo.example.com/catalogs/2026.json",
		SeasonURL("https://repo.example.com/", 2026))
}
