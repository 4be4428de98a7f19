package export

import (
	"sync"

	"github.com/krisalay/pagesim/types"
)

/*
This file defines how finished runs reach the export file.

Both policies are render.Sinks: they ignore steps and act on OnComplete, so the
runner can export as a side effect of presenting a run.

  - WriteThrough: every finished run rewrites the file immediately
  - WriteBack: finished runs are queued and written by a background worker;
    Close waits for the queue and writes the file once more
*/

// WritePolicy is a sink that persists finished runs.
type WritePolicy interface {
	OnStep(policy string, step types.StepResult, total int)
	OnComplete(result types.RunResult)

	// Close flushes pending writes and reports the first write error.
	Close() error
}

// WriteThroughPolicy writes synchronously on every completed run.
type WriteThroughPolicy struct {
	path        string
	compression Compression

	mu        sync.Mutex
	summaries []Summary
	err       error
}

// NewWriteThroughPolicy creates a write-through exporter for path.
func NewWriteThroughPolicy(path string, c Compression) *WriteThroughPolicy {
	return &WriteThroughPolicy{path: path, compression: c}
}

func (w *WriteThroughPolicy) OnStep(string, types.StepResult, int) {}

// OnComplete adds the run to the file. The write is complete when this returns.
func (w *WriteThroughPolicy) OnComplete(result types.RunResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.summaries = append(w.summaries, FromResult(result))
	if err := SaveFile(w.path, w.compression, w.summaries...); err != nil && w.err == nil {
		w.err = err
	}
}

// Close is required by WritePolicy. There is nothing pending in write-through mode.
func (w *WriteThroughPolicy) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// WriteBackPolicy manages asynchronous writes of finished runs.
type WriteBackPolicy struct {
	path        string
	compression Compression

	// ch is a buffered channel that holds finished runs waiting to be written.
	ch chan Summary

	// wg is used to wait for the worker during shutdown.
	wg sync.WaitGroup

	// mu guards closed; senders hold it shared so Close cannot close ch under them.
	mu     sync.RWMutex
	closed bool

	summaries []Summary
	err       error
	closeOnce sync.Once
}

// NewWriteBackPolicy creates a write-back exporter and starts its worker.
func NewWriteBackPolicy(path string, c Compression, buffer int) *WriteBackPolicy {
	w := &WriteBackPolicy{
		path:        path,
		compression: c,
		ch:          make(chan Summary, buffer),
	}
	w.wg.Add(1)
	go w.worker()
	return w
}

func (w *WriteBackPolicy) OnStep(string, types.StepResult, int) {}

// OnComplete queues the run. Unlike a cache write-back, nothing is dropped:
// when the queue is full this blocks until the worker catches up.
// Runs completed after Close are ignored.
func (w *WriteBackPolicy) OnComplete(result types.RunResult) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	w.ch <- FromResult(result)
}

// worker runs in the background, rewriting the file after every queued run.
func (w *WriteBackPolicy) worker() {
	defer w.wg.Done()
	for s := range w.ch {
		w.summaries = append(w.summaries, s)
		// the file is rewritten once more on Close; only the last error matters
		_ = SaveFile(w.path, w.compression, w.summaries...)
	}
}

/*
Close shuts down the write-back policy gracefully.

 1. Close the channel (no more runs accepted)
 2. Wait for the worker to drain the queue
 3. Write the complete file one final time
*/
func (w *WriteBackPolicy) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.ch)
		w.mu.Unlock()

		w.wg.Wait()
		if len(w.summaries) > 0 {
			w.err = SaveFile(w.path, w.compression, w.summaries...)
		}
	})
	return w.err
}
