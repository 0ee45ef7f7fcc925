// pkg/report/report.go - per-run records for external monitoring tools.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/robotadmins/vendorwatch/pkg/engine"
	"github.com/robotadmins/vendorwatch/pkg/reconcile"
)

// RunRecord summarizes one reconciliation run as written to the report
// file, one JSON document per line.
type RunRecord struct {
	SessionID       string `json:"session_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationSeconds int64  `json:"duration_seconds"`

	Hostname        string `json:"hostname,omitempty"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty"`
	UptimeSeconds   uint64 `json:"uptime_seconds,omitempty"`

	CatalogAvailable bool `json:"catalog_available"`
	Components       int  `json:"components"`
	AvailableEntries int  `json:"available_entries"`
	Updates          int  `json:"updates"`
	AtLatest         int  `json:"at_latest"`
	Downgrades       int  `json:"downgrades"`
}

// NewSessionID creates a unique session identifier.
func NewSessionID() string {
	now := time.Now()
	return fmt.Sprintf("vendorwatch-%d-%s", now.Unix(), now.Format("2006-01-02-150405"))
}

// NewRunRecord summarizes a completed run. Host metadata is best effort:
// a failing host lookup leaves those fields empty rather than failing the
// record.
func NewRunRecord(sessionID string, start, end time.Time, result engine.Result) RunRecord {
	record := RunRecord{
		SessionID:        sessionID,
		StartTime:        start.UTC().Format(time.RFC3339),
		EndTime:          end.UTC().Format(time.RFC3339),
		DurationSeconds:  int64(end.Sub(start).Seconds()),
		CatalogAvailable: result.CatalogAvailable,
		Components:       len(result.Installed),
		AvailableEntries: len(result.Available),
	}

	if info, err := host.Info(); err == nil {
		record.Hostname = info.Hostname
		record.Platform = info.Platform
		record.PlatformVersion = info.PlatformVersion
		record.UptimeSeconds = info.Uptime
	}

	for _, rec := range result.Installed {
		for _, candidate := range rec.Candidates {
			switch candidate.Action {
			case reconcile.ActionUpdate:
				record.Updates++
			case reconcile.ActionHoldAtLatest:
				record.AtLatest++
			case reconcile.ActionDowngrade:
				record.Downgrades++
			}
		}
	}
	return record
}

// Write appends the record to path as a single JSON line.
func Write(path string, record RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("serializing run record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening report file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	return nil
}
