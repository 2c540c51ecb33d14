package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Reporter buffers categorized records and writes them as one JSON document per Flush.
type Reporter struct {
	mu      sync.Mutex
	out     io.WriteCloser
	metrics map[string][]interface{}
}

func NewReporter(path string) (*Reporter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	return NewWriterReporter(file), nil
}

func NewWriterReporter(w io.WriteCloser) *Reporter {
	return &Reporter{
		out:     w,
		metrics: make(map[string][]interface{}),
	}
}

func (r *Reporter) Record(category string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := map[string]interface{}{
		"timestamp": time.Now(),
		"data":      data,
	}

	r.metrics[category] = append(r.metrics[category], entry)
}

func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.metrics) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(r.metrics, "", "  ")
	if err != nil {
		return err
	}

	if _, err := r.out.Write(append(data, '\n')); err != nil {
		return err
	}

	r.metrics = make(map[string][]interface{})
	return nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("failed to flush metrics: %w", err)
	}
	return r.out.Close()
}
