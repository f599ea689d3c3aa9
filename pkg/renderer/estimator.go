// Package renderer evaluates integrators in parallel along probe rays.
package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/log"
)

// Config contains estimator configuration
type Config struct {
	Samples   int   // Total number of integrator evaluations
	Workers   int   // Parallel workers; 0 uses runtime.NumCPU()
	BatchSize int   // Samples per task; 0 uses the default
	Seed      int64 // Base seed; batch i uses Seed+i
}

// DefaultConfig returns the default estimator configuration
func DefaultConfig() Config {
	return Config{
		Samples:   4096,
		Workers:   0,
		BatchSize: 256,
		Seed:      1,
	}
}

// Estimator fans integrator evaluations for one ray across a worker pool
type Estimator struct {
	config   Config
	logger   log.Logger
	reporter core.Logger // Optional, receives a one-line summary per estimate
}

// NewEstimator creates an estimator, filling unset fields from DefaultConfig
func NewEstimator(config Config) *Estimator {
	defaults := DefaultConfig()
	if config.Samples <= 0 {
		config.Samples = defaults.Samples
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &Estimator{config: config, logger: log.New("estimator")}
}

// SetLogger routes estimate summaries to an injected logger
func (e *Estimator) SetLogger(logger core.Logger) {
	e.reporter = logger
}

// Estimate evaluates integ along ray. The integrator must already be preprocessed for scene.
// The result is deterministic for a given Config regardless of the worker count.
func (e *Estimator) Estimate(ctx context.Context, integ integrator.Integrator, scene integrator.Scene, ray core.Ray) (Estimate, error) {
	start := time.Now()

	var tasks []BatchTask
	for remaining, id := e.config.Samples, 0; remaining > 0; id++ {
		n := min(remaining, e.config.BatchSize)
		tasks = append(tasks, BatchTask{TaskID: id, Samples: n, Seed: e.config.Seed + int64(id)})
		remaining -= n
	}

	pool := NewWorkerPool(integ, scene, ray, e.config.Workers, len(tasks))
	pool.Start()
	e.logger.Infof("evaluating %d samples of %s in %d batches on %d workers",
		e.config.Samples, integ.Name(), len(tasks), pool.GetNumWorkers())

	var cancelled error
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		pool.SubmitTask(task)
	}
	pool.Stop()

	results := make([]*SampleStats, len(tasks))
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats := result.Stats
		results[result.TaskID] = &stats
	}

	if cancelled != nil {
		return Estimate{}, fmt.Errorf("renderer: estimate cancelled: %w", cancelled)
	}

	// Merge in task order so floating point sums are reproducible
	var total SampleStats
	for _, stats := range results {
		total.Merge(*stats)
	}

	elapsed := time.Since(start)
	e.logger.Infof("estimated %s in %d ms", integ.Name(), elapsed.Nanoseconds()/1e6)
	if e.reporter != nil {
		e.reporter.Printf("%s: %d samples in %v\n", integ.Name(), total.SampleCount, elapsed)
	}
	return Estimate{Mean: total.Mean(), Variance: total.Variance(), Samples: total.SampleCount}, nil
}
