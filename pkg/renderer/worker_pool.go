package renderer

import (
	"context"
	"runtime"
	"sync"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band   Band
	TaskID int // For deterministic ordering
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	renderer    *Renderer
	out         PixelWriter
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks bounds the queues so submitting never blocks.
func NewWorkerPool(renderer *Renderer, out PixelWriter, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, maxTasks),
		resultQueue: make(chan BandResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			out:         out,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each band writes a disjoint set of rows, so the shared output is safe
		stats, err := w.renderer.renderBand(ctx, task.Band, w.out)
		w.resultQueue <- BandResult{
			TaskID: task.TaskID,
			Stats:  stats,
			Error:  err,
		}
	}
}
