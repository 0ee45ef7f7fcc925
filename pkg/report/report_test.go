package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotadmins/vendorwatch/pkg/catalog"
	"github.com/robotadmins/vendorwatch/pkg/engine"
	"github.com/robotadmins/vendorwatch/pkg/reconcile"
)

func sampleResult() engine.Result {
	return engine.Result{
		CatalogAvailable: true,
		Installed: []reconcile.Recommendation{
			{
				Name:           "vision",
				CurrentVersion: "1.0",
				Candidates: []reconcile.VersionRecommendation{
					{Version: "2.0", Action: reconcile.ActionUpdate},
					{Version: "1.0", Action: reconcile.ActionHoldAtLatest},
					{Version: "0.5", Action: reconcile.ActionDowngrade},
				},
			},
		},
		Available: []catalog.Entry{{Name: "vision", Version: "2.0"}},
	}
}

func TestNewRunRecordSummarizesRun(t *testing.T) {
	start := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Second)

	record := NewRunRecord("session-1", start, end, sampleResult())

	assert.Equal(t, "session-1", record.SessionID)
	assert.Equal(t, int64(3), record.DurationSeconds)
	assert.True(t, record.CatalogAvailable)
	assert.Equal(t, 1, record.Components)
	assert.Equal(t, 1, record.AvailableEntries)
	assert.Equal(t, 1, record.Updates)
	assert.Equal(t, 1, record.AtLatest)
	assert.Equal(t, 1, record.Downgrades)
}

func TestWriteAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "runs.jsonl")
	record := NewRunRecord(NewSessionID(), time.Now(), time.Now(), sampleResult())

	require.NoError(t, Write(path, record))
	require.NoError(t, Write(path, record))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var parsed RunRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parsed))
	assert.Equal(t, record.SessionID, parsed.SessionID)
	assert.Equal(t, record.Updates, parsed.Updates)
}
