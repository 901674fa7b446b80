package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddlint/internal/finding"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), ".ddlint", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func report(runID string, rows int) *finding.Report {
	r := &finding.Report{Summary: finding.Summary{
		RunID: runID, Rows: rows, Cols: 5, DictFields: 5, Completeness: 0.9,
	}}
	r.Append(finding.Finding{Type: finding.DomainMismatch, Severity: finding.SeverityError, Variable: "sex"})
	return r
}

func TestRecordAndList(t *testing.T) {
	l := openLedger(t)

	require.NoError(t, l.Record("studyA", "/runs/v1/findings.json", report("run-1", 100)))
	require.NoError(t, l.Record("studyA", "/runs/v2/findings.json", report("run-2", 120)))
	require.NoError(t, l.Record("studyB", "/other/findings.json", report("run-3", 10)))

	entries, err := l.List("studyA", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-2", entries[0].RunID, "newest first")
	assert.Equal(t, 1, entries[0].Errors)
	assert.Equal(t, 120, entries[0].Rows)

	all, err := l.List("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := l.List("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLatest(t *testing.T) {
	l := openLedger(t)

	latest, err := l.Latest("studyA")
	require.NoError(t, err)
	assert.Nil(t, latest, "no runs recorded yet")

	require.NoError(t, l.Record("studyA", "/runs/v1/findings.json", report("run-1", 100)))
	latest, err = l.Latest("studyA")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "run-1", latest.RunID)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	l := openLedger(t)

	require.NoError(t, l.Record("studyA", "/runs/v1/findings.json", report("run-1", 100)))
	assert.Error(t, l.Record("studyA", "/runs/v1/findings.json", report("run-1", 100)))
}
