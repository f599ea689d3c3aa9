package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
)

// BatchTask asks a worker to evaluate a batch of samples along the pool's probe ray
type BatchTask struct {
	TaskID  int   // For deterministic ordering
	Samples int   // Number of samples in this batch
	Seed    int64 // Seed of the batch's sampler stream
}

// BatchResult contains the result from evaluating a batch
type BatchResult struct {
	TaskID int
	Stats  SampleStats
}

// WorkerPool manages parallel sample evaluation
type WorkerPool struct {
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual batch tasks
type Worker struct {
	ID          int
	integrator  integrator.Integrator
	scene       integrator.Scene
	ray         core.Ray
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks bounds the number of tasks that can be queued without blocking.
func NewWorkerPool(integ integrator.Integrator, scene integrator.Scene, ray core.Ray, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BatchTask, maxTasks),
		resultQueue: make(chan BatchResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			integrator:  integ,
			scene:       scene,
			ray:         ray,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers after the queued tasks finish
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a batch task to the worker pool
func (wp *WorkerPool) SubmitTask(task BatchTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed batch result
func (wp *WorkerPool) GetResult() (BatchResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Every batch owns its sampler, so results do not
// depend on which worker evaluates it.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		sampler := core.NewSeededSampler(task.Seed)
		var stats SampleStats
		for i := 0; i < task.Samples; i++ {
			stats.AddSample(w.integrator.Li(w.scene, sampler, w.ray))
		}
		w.resultQueue <- BatchResult{TaskID: task.TaskID, Stats: stats}
	}
}
