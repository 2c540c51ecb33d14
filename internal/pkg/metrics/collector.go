package metrics

import (
	"attackSimBackend/internal/core/domain"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Collector tracks per-run event counts and attaches a process snapshot when a run stops.
type Collector struct {
	mu      sync.RWMutex
	metrics map[string]*domain.RunMetrics
	sample  func() systemSample
}

type systemSample struct {
	cpuPercent  float64
	memPercent  float64
	heapAllocMB int64
}

func NewCollector() *Collector {
	return &Collector{
		metrics: make(map[string]*domain.RunMetrics),
		sample:  sampleSystem,
	}
}

func (c *Collector) StartCollection(runID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics[runID] = &domain.RunMetrics{
		RunID:       runID,
		EventCounts: make(map[domain.LogKind]int),
		LastUpdated: time.Now(),
	}
}

// Observe counts one log event. Unknown run ids are ignored.
func (c *Collector) Observe(runID string, ev domain.LogEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, exists := c.metrics[runID]; exists {
		m.EventCounts[ev.Kind]++
		m.LastUpdated = ev.Timestamp
	}
}

// StopCollection finalizes the run's metrics from its result and returns them.
func (c *Collector) StopCollection(runID string, result domain.RunResult) domain.RunMetrics {
	s := c.sample()

	c.mu.Lock()
	defer c.mu.Unlock()

	m, exists := c.metrics[runID]
	if !exists {
		m = &domain.RunMetrics{RunID: runID, EventCounts: make(map[domain.LogKind]int)}
	}
	delete(c.metrics, runID)

	m.TotalAttempts = result.TotalAttempts
	m.Blocks = result.Lockouts
	m.ElapsedSeconds = result.ElapsedSeconds
	if result.ElapsedSeconds > 0 {
		m.AttemptsPerSec = float64(result.TotalAttempts) / result.ElapsedSeconds
	}
	m.CPUUsage = s.cpuPercent
	m.SystemMemory = s.memPercent
	m.MemoryUsageMB = s.heapAllocMB
	m.LastUpdated = time.Now()
	return copyMetrics(m)
}

func (c *Collector) GetMetrics(runID string) *domain.RunMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, exists := c.metrics[runID]; exists {
		out := copyMetrics(m)
		return &out
	}
	return nil
}

func copyMetrics(m *domain.RunMetrics) domain.RunMetrics {
	out := *m
	out.EventCounts = make(map[domain.LogKind]int, len(m.EventCounts))
	for k, v := range m.EventCounts {
		out.EventCounts[k] = v
	}
	return out
}

func sampleSystem() systemSample {
	var s systemSample

	if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
		s.cpuPercent = usage[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.memPercent = vm.UsedPercent
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.heapAllocMB = int64(ms.Alloc / 1024 / 1024)
	return s
}
