package fetch

import (
	"context"
	"sync"
	"time"

	"trailerdl/pkg/logger"
)

// screenshotJob is one screenshot fetch task.
type screenshotJob struct {
	Index int
	URL   string
	Rel   string
}

// screenshotResult is the result of one screenshot fetch.
type screenshotResult struct {
	Job      screenshotJob
	Success  bool
	Err      error
	Size     int64
	Duration time.Duration
}

// workerPool runs screenshot fetches on a fixed set of workers and
// returns results indexed by job order.
type workerPool struct {
	numWorkers int
	run        func(ctx context.Context, job screenshotJob) (int64, error)
	logger     logger.Logger
}

func newWorkerPool(numWorkers int, run func(ctx context.Context, job screenshotJob) (int64, error), log logger.Logger) *workerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &workerPool{
		numWorkers: numWorkers,
		run:        run,
		logger:     log,
	}
}

// Process runs all jobs and returns their results ordered by job index.
func (wp *workerPool) Process(ctx context.Context, jobs []screenshotJob) []screenshotResult {
	jobQueue := make(chan screenshotJob, len(jobs))
	results := make([]screenshotResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < wp.numWorkers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for job := range jobQueue {
				start := time.Now()
				size, err := wp.run(ctx, job)
				res := screenshotResult{
					Job:      job,
					Success:  err == nil,
					Err:      err,
					Size:     size,
					Duration: time.Since(start),
				}

				if err != nil {
					wp.logger.WarnWithFields("screenshot download failed", map[string]interface{}{
						"worker": worker,
						"url":    job.URL,
						"error":  err.Error(),
					})
				} else {
					wp.logger.DebugWithFields("screenshot downloaded", map[string]interface{}{
						"worker":   worker,
						"url":      job.URL,
						"size":     size,
						"duration": res.Duration,
					})
				}

				results[job.Index] = res
			}
		}(i)
	}

	for _, job := range jobs {
		jobQueue <- job
	}
	close(jobQueue)

	wg.Wait()
	return results
}
