// pkg/workspace/workspace.go - installed-component discovery for a workspace.

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/robotadmins/vendorwatch/pkg/logging"
	"github.com/robotadmins/vendorwatch/pkg/reconcile"
)

// ManifestName is the file at the workspace root that lists the vendor
// components installed in it.
const ManifestName = "components.yaml"

type manifest struct {
	Components []manifestComponent `yaml:"components"`
}

type manifestComponent struct {
	Name    string `yaml:"name"`
	UUID    string `yaml:"uuid"`
	Version string `yaml:"version"`
}

// Source reads installed components from the workspace manifest.
type Source struct{}

// InstalledComponents parses the manifest at the workspace root. A
// component with an unparseable uuid is skipped with a warning; one bad
// local entry must not take down the run for the rest.
func (Source) InstalledComponents(workspace string) ([]reconcile.Component, error) {
	path := filepath.Join(workspace, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing workspace manifest %s: %w", path, err)
	}

	components := make([]reconcile.Component, 0, len(m.Components))
	for _, mc := range m.Components {
		id, err := uuid.Parse(mc.UUID)
		if err != nil {
			logging.Warn("Skipping component with invalid uuid",
				"name", mc.Name, "uuid", mc.UUID)
			continue
		}
		components = append(components, reconcile.Component{
			Identity: id,
			Name:     mc.Name,
			Version:  mc.Version,
		})
	}
	return components, nil
}

// Detect resolves the active workspace: the configured path when set,
// otherwise the working directory when it carries a manifest. The second
// return is false when no workspace is active.
func Detect(configured string) (string, bool) {
	if configured != "" {
		return configured, true
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(filepath.Join(wd, ManifestName)); err != nil {
		return "", false
	}
	return wd, true
}
