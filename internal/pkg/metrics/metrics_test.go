package metrics

import (
	"attackSimBackend/internal/core/domain"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Lifecycle(t *testing.T) {
	c := NewCollector()
	c.sample = func() systemSample {
		return systemSample{cpuPercent: 12.5, memPercent: 40, heapAllocMB: 3}
	}

	c.StartCollection("run-1")
	now := time.Now()
	c.Observe("run-1", domain.LogEvent{Kind: domain.LogInfo, Timestamp: now})
	c.Observe("run-1", domain.LogEvent{Kind: domain.LogAttempt, Timestamp: now})
	c.Observe("run-1", domain.LogEvent{Kind: domain.LogAttempt, Timestamp: now})
	c.Observe("unknown", domain.LogEvent{Kind: domain.LogAttempt, Timestamp: now})

	live := c.GetMetrics("run-1")
	require.NotNil(t, live)
	assert.Equal(t, 2, live.EventCounts[domain.LogAttempt])

	m := c.StopCollection("run-1", domain.RunResult{TotalAttempts: 20, Lockouts: 3, ElapsedSeconds: 4})
	assert.Equal(t, 1, m.EventCounts[domain.LogInfo])
	assert.Equal(t, 2, m.EventCounts[domain.LogAttempt])
	assert.Equal(t, 3, m.Blocks)
	assert.InDelta(t, 5.0, m.AttemptsPerSec, 0.001)
	assert.Equal(t, 12.5, m.CPUUsage)
	assert.Equal(t, int64(3), m.MemoryUsageMB)

	assert.Nil(t, c.GetMetrics("run-1"))
}

func TestCollector_StopUnknownRun(t *testing.T) {
	c := NewCollector()
	m := c.StopCollection("ghost", domain.RunResult{TotalAttempts: 1})
	assert.Equal(t, "ghost", m.RunID)
	assert.Zero(t, m.AttemptsPerSec)
	assert.NotNil(t, m.EventCounts)
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestReporter_Flush(t *testing.T) {
	buf := nopCloser{&bytes.Buffer{}}
	r := NewWriterReporter(buf)

	require.NoError(t, r.Flush())
	assert.Zero(t, buf.Len())

	r.Record("result", map[string]int{"riskScore": 20})
	require.NoError(t, r.Close())

	var doc map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc["result"], 1)
	assert.Contains(t, doc["result"][0], "timestamp")
}

func TestNewReporter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r, err := NewReporter(path)
	require.NoError(t, err)

	r.Record("metrics", domain.RunMetrics{RunID: "abc"})
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"runId": "abc"`)
}
