// pkg/engine/engine.go - one-shot reconciliation pipeline.

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robotadmins/vendorwatch/pkg/catalog"
	"github.com/robotadmins/vendorwatch/pkg/logging"
	"github.com/robotadmins/vendorwatch/pkg/reconcile"
)

// ErrNoWorkspace means there is no active workspace to reconcile against.
// The run is skipped entirely and nothing is published.
var ErrNoWorkspace = errors.New("no active workspace")

// InstalledSource discovers the components installed in a workspace.
type InstalledSource interface {
	InstalledComponents(workspace string) ([]reconcile.Component, error)
}

// CatalogSource retrieves a catalog document.
type CatalogSource interface {
	Fetch(ctx context.Context, url string) ([]catalog.Entry, error)
}

// URLResolver maps a season to its catalog document URL.
type URLResolver func(season int) string

// Result is the published output of one completed run. CatalogAvailable
// is false when catalog acquisition failed and the run degraded to an
// empty catalog; the presentation layer uses it to show a
// "reconciliation unavailable" state instead of an empty list.
type Result struct {
	Installed        []reconcile.Recommendation `json:"installed"`
	Available        []catalog.Entry            `json:"available"`
	CatalogAvailable bool                       `json:"catalog_available"`
}

// Engine runs reconciliations and holds the last completed result. Runs
// are stateless: each takes a snapshot of the installed components and
// builds wholly new output structures, nothing carries over between runs.
type Engine struct {
	source  InstalledSource
	fetcher CatalogSource
	urls    URLResolver
	season  int

	mu   sync.RWMutex
	last *Result
}

// New assembles an engine from its collaborators.
func New(source InstalledSource, fetcher CatalogSource, urls URLResolver, season int) *Engine {
	return &Engine{source: source, fetcher: fetcher, urls: urls, season: season}
}

// Refresh executes one reconciliation run and publishes the result.
//
// All four catalog acquisition failures (transport, bad status, malformed
// payload, schema mismatch) are absorbed here: the run proceeds with an
// empty catalog so every installed component still receives a
// recommendation, with empty candidates. An empty workspace skips the
// run with ErrNoWorkspace; a failure discovering installed components
// aborts without publishing.
//
// Refresh may be called from overlapping goroutines; each publication is
// internally consistent, but which run's result is observed last is the
// caller's ordering responsibility.
func (e *Engine) Refresh(ctx context.Context, workspace string) error {
	if workspace == "" {
		return ErrNoWorkspace
	}

	installed, err := e.source.InstalledComponents(workspace)
	if err != nil {
		return fmt.Errorf("discovering installed components: %w", err)
	}

	url := e.urls(e.season)
	available := true
	entries, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		logging.Warn("Catalog unavailable this run", "url", url, "error", err)
		entries = nil
		available = false
	} else {
		logging.Info("Fetched catalog", "url", url, "entries", len(entries))
	}

	result := &Result{
		Installed:        make([]reconcile.Recommendation, 0, len(installed)),
		Available:        catalog.Deduplicate(entries),
		CatalogAvailable: available,
	}
	for _, rec := range reconcile.Reconcile(installed, entries) {
		rec.Candidates = reconcile.SortNewestFirst(rec.Candidates)
		result.Installed = append(result.Installed, rec)
	}

	e.mu.Lock()
	e.last = result
	e.mu.Unlock()
	return nil
}

// Recommendations returns a copy of the last completed run's output. The
// copy is deep down to the candidate lists, so writes through the returned
// value never reach the published result. The second return is false when
// no run has completed yet.
func (e *Engine) Recommendations() (Result, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.last == nil {
		return Result{}, false
	}

	installed := make([]reconcile.Recommendation, len(e.last.Installed))
	for i, rec := range e.last.Installed {
		rec.Candidates = append(
			make([]reconcile.VersionRecommendation, 0, len(rec.Candidates)),
			rec.Candidates...)
		installed[i] = rec
	}
	return Result{
		Installed:        installed,
		Available:        append(make([]catalog.Entry, 0, len(e.last.Available)), e.last.Available...),
		CatalogAvailable: e.last.CatalogAvailable,
	}, true
}
