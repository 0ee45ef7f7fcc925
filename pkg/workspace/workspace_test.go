package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `components:
  - name: vision
    uuid: 0f8fad5b-d9cb-469f-a165-70867728950e
    version: "2.1.0"
  - name: drive
    uuid: not-a-uuid
    version: "1.0"
`

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(body), 0644))
}

func TestInstalledComponentsParsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	components, err := Source{}.InstalledComponents(dir)

	require.NoError(t, err)
	// The entry with the unparseable uuid is skipped, not fatal.
	require.Len(t, components, 1)
	assert.Equal(t, "vision", components[0].Name)
	assert.Equal(t, uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"), components[0].Identity)
	assert.Equal(t, "2.1.0", components[0].Version)
}

func TestInstalledComponentsMissingManifest(t *testing.T) {
	_, err := Source{}.InstalledComponents(t.TempDir())
	require.Error(t, err)
}

func TestInstalledComponentsMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "components: [unclosed")

	_, err := Source{}.InstalledComponents(dir)
	require.Error(t, err)
}

func TestInstalledComponentsEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "components: []\n")

	components, err := Source{}.InstalledComponents(dir)

	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestDetectPrefersConfiguredPath(t *testing.T) {
	path, ok := Detect("/opt/workspaces/robot")
	assert.True(t, ok)
	assert.Equal(t, "/opt/workspaces/robot", path)
}

func TestDetectFallsBackToWorkingDirectoryWithManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	_, ok := Detect("")
	assert.True(t, ok)
}

func TestDetectNoWorkspace(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	_, ok := Detect("")
	assert.False(t, ok)
}
