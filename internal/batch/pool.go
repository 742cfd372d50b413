// Package batch runs engine evaluations for many market windows in parallel.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Analyzer is the evaluation surface the pool drives.
type Analyzer interface {
	Evaluate(md types.MarketData) (*types.Evaluation, error)
}

// WorkerPool manages parallel evaluation execution
type WorkerPool struct {
	analyzer    Analyzer
	workerCount int
	jobQueue    chan Job
	resultQueue chan Result
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// Job represents a single evaluation task
type Job struct {
	ID   string
	Data types.MarketData
}

// Result represents the outcome of an evaluation job
type Result struct {
	ID         string
	Symbol     string
	Evaluation *types.Evaluation
	Duration   time.Duration
	Error      error
}

// NewWorkerPool creates a new worker pool for parallel evaluation
func NewWorkerPool(analyzer Analyzer, workerCount, jobBufferSize int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		analyzer:    analyzer,
		workerCount: workerCount,
		jobQueue:    make(chan Job, jobBufferSize),
		resultQueue: make(chan Result, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the worker pool
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop stops the worker pool gracefully
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// Submit submits an evaluation job to the pool
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// Results returns the result channel for collecting completed jobs
func (wp *WorkerPool) Results() <-chan Result {
	return wp.resultQueue
}

// worker processes evaluation jobs
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			result := wp.processJob(job)

			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob runs a single window through the analyzer
func (wp *WorkerPool) processJob(job Job) Result {
	startTime := time.Now()

	result := Result{
		ID:     job.ID,
		Symbol: job.Data.Symbol,
	}

	eval, err := wp.analyzer.Evaluate(job.Data)
	if err != nil {
		result.Error = err
	} else {
		result.Evaluation = eval
	}
	result.Duration = time.Since(startTime)

	return result
}

// EvaluateAll runs every window through a pool sized to workerCount and
// collects one result per window. Results arrive in completion order.
func EvaluateAll(analyzer Analyzer, windows []types.MarketData, workerCount int) []Result {
	pool := NewWorkerPool(analyzer, workerCount, len(windows))
	pool.Start()
	defer pool.Stop()

	submitted := 0
	for i, md := range windows {
		job := Job{
			ID:   generateJobID(md.Symbol, i),
			Data: md,
		}
		if err := pool.Submit(job); err != nil {
			break
		}
		submitted++
	}

	results := make([]Result, 0, submitted)
	for i := 0; i < submitted; i++ {
		results = append(results, <-pool.Results())
	}

	return results
}

// generateJobID generates a unique job ID
func generateJobID(symbol string, index int) string {
	return fmt.Sprintf("%s_%d", symbol, index)
}
