package service

import (
	"attackSimBackend/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLog_AppendOrdering(t *testing.T) {
	times := []time.Time{epoch, epoch.Add(time.Second), epoch.Add(-time.Minute)}
	i := 0
	log := NewEventLog(func() time.Time {
		ts := times[i]
		i++
		return ts
	})

	for _, msg := range []string{"one", "two", "three"} {
		_, ok := log.Append(domain.LogInfo, msg)
		require.True(t, ok)
	}

	events := log.Events()
	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, uint64(i+1), ev.SequenceID)
	}
	assert.Equal(t, epoch.Add(time.Second), events[2].Timestamp, "clock going backwards must not reorder timestamps")
}

func TestEventLog_Close(t *testing.T) {
	log := NewEventLog(nil)
	var observed []string
	log.OnAppend(func(ev domain.LogEvent) { observed = append(observed, ev.Message) })

	log.Append(domain.LogInfo, "before")
	log.Close()
	log.Close()
	_, ok := log.Append(domain.LogInfo, "after")

	assert.False(t, ok)
	assert.Equal(t, 1, log.Len())
	assert.Equal(t, []string{"before"}, observed)

	batch, closed, changed := log.since(0)
	assert.Len(t, batch, 1)
	assert.True(t, closed)
	select {
	case <-changed:
	default:
		t.Fatal("closed log must not block readers")
	}
}

func TestEventLog_SinceWakesReaders(t *testing.T) {
	log := NewEventLog(nil)
	_, _, changed := log.since(0)

	log.Append(domain.LogWarning, "wake")
	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("append did not wake reader")
	}

	batch, closed, _ := log.since(0)
	require.Len(t, batch, 1)
	assert.False(t, closed)
	assert.Equal(t, domain.LogWarning, batch[0].Kind)

	none, _, _ := log.since(5)
	assert.Empty(t, none)
}
