package concurrency

import (
	"attackSimBackend/internal/core/domain"
	"context"
	"sync"
	"time"
)

type WorkerPool struct {
	workers    []*Worker
	tasks      chan Task
	results    chan Result
	numWorkers int
	metrics    *PoolMetrics
	wg         sync.WaitGroup
	stopOnce   sync.Once
	stop       chan struct{}
	collector  sync.WaitGroup
}

type Worker struct {
	id        int
	tasks     chan Task
	results   chan Result
	metrics   *WorkerMetrics
	isWorking bool
	mu        sync.RWMutex
}

// Task is one isolated simulation. Function must honor ctx.
type Task struct {
	ID       string
	JobID    string
	Function func(ctx context.Context) (domain.RunResult, error)
	// Timeout bounds the task. Zero means no limit beyond the pool's context.
	Timeout time.Duration
}

type Result struct {
	TaskID   string
	JobID    string
	Value    domain.RunResult
	Error    error
	Duration time.Duration
	WorkerID int
}

type PoolMetrics struct {
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	TotalDuration  time.Duration
	AverageLatency time.Duration
	mu             sync.RWMutex
}

// PoolSnapshot is a point-in-time copy of PoolMetrics.
type PoolSnapshot struct {
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	AverageLatency time.Duration
	TasksPerSec    float64
	LastUpdated    time.Time
}

type WorkerMetrics struct {
	TasksCompleted int64
	TasksFailed    int64
	TotalDuration  time.Duration
	LastActive     time.Time
	mu             sync.RWMutex
}

func NewWorkerPool(numWorkers int, queueSize int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pool := &WorkerPool{
		workers:    make([]*Worker, numWorkers),
		tasks:      make(chan Task, queueSize),
		results:    make(chan Result, queueSize),
		numWorkers: numWorkers,
		metrics:    &PoolMetrics{},
		stop:       make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		pool.workers[i] = &Worker{
			id:      i,
			tasks:   pool.tasks,
			results: pool.results,
			metrics: &WorkerMetrics{
				LastActive: time.Now(),
			},
		}
	}

	return pool
}

func (p *WorkerPool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		p.wg.Add(1)
		go worker.start(ctx, &p.wg)
	}

	p.collector.Add(1)
	go p.collectMetrics(ctx)
}

// Submit queues a task. It blocks while the queue is full and must not be
// called after Stop.
func (p *WorkerPool) Submit(task Task) {
	p.tasks <- task
}

func (p *WorkerPool) Results() <-chan Result {
	return p.results
}

// Stop lets workers drain queued tasks, then closes Results. Safe to call twice.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.tasks)
		p.wg.Wait()
		close(p.stop)
		p.collector.Wait()
		p.updatePoolMetrics()
		close(p.results)
	})
}

func (p *WorkerPool) GetMetrics() PoolSnapshot {
	p.updatePoolMetrics()

	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()

	return PoolSnapshot{
		ActiveWorkers:  p.metrics.ActiveWorkers,
		CompletedTasks: p.metrics.CompletedTasks,
		FailedTasks:    p.metrics.FailedTasks,
		AverageLatency: p.metrics.AverageLatency,
		TasksPerSec:    p.tasksPerSecond(),
		LastUpdated:    time.Now(),
	}
}

func (w *Worker) start(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.tasks {
		w.mu.Lock()
		w.isWorking = true
		w.mu.Unlock()

		startTime := time.Now()
		value, err := w.executeTask(ctx, task)
		duration := time.Since(startTime)

		w.updateMetrics(err == nil, duration)

		w.results <- Result{
			TaskID:   task.ID,
			JobID:    task.JobID,
			Value:    value,
			Error:    err,
			Duration: duration,
			WorkerID: w.id,
		}

		w.mu.Lock()
		w.isWorking = false
		w.mu.Unlock()
	}
}

func (w *Worker) executeTask(ctx context.Context, task Task) (domain.RunResult, error) {
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}
	return task.Function(ctx)
}

func (w *Worker) updateMetrics(success bool, duration time.Duration) {
	w.metrics.mu.Lock()
	defer w.metrics.mu.Unlock()

	if success {
		w.metrics.TasksCompleted++
	} else {
		w.metrics.TasksFailed++
	}
	w.metrics.TotalDuration += duration
	w.metrics.LastActive = time.Now()
}

func (p *WorkerPool) collectMetrics(ctx context.Context) {
	defer p.collector.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.updatePoolMetrics()
		}
	}
}

func (p *WorkerPool) updatePoolMetrics() {
	activeWorkers := 0
	var totalCompleted, totalFailed int64
	var totalDuration time.Duration

	for _, worker := range p.workers {
		worker.metrics.mu.RLock()
		totalCompleted += worker.metrics.TasksCompleted
		totalFailed += worker.metrics.TasksFailed
		totalDuration += worker.metrics.TotalDuration
		worker.metrics.mu.RUnlock()

		worker.mu.RLock()
		if worker.isWorking {
			activeWorkers++
		}
		worker.mu.RUnlock()
	}

	p.metrics.mu.Lock()
	p.metrics.ActiveWorkers = activeWorkers
	p.metrics.CompletedTasks = totalCompleted
	p.metrics.FailedTasks = totalFailed
	p.metrics.TotalDuration = totalDuration
	if finished := totalCompleted + totalFailed; finished > 0 {
		p.metrics.AverageLatency = totalDuration / time.Duration(finished)
	}
	p.metrics.mu.Unlock()
}

// tasksPerSecond expects p.metrics.mu to be held.
func (p *WorkerPool) tasksPerSecond() float64 {
	if p.metrics.TotalDuration == 0 {
		return 0
	}
	return float64(p.metrics.CompletedTasks+p.metrics.FailedTasks) / p.metrics.TotalDuration.Seconds()
}
