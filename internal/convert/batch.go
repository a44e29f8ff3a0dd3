package convert

import (
	"context"
	"runtime"
	"sync"

	"github.com/enermodel/h2khpxml/internal/ctxlog"
)

// BatchStatus summarizes a batch outcome.
type BatchStatus int

const (
	// BatchOK: every file converted.
	BatchOK BatchStatus = iota
	// BatchPartial: some files converted, some failed.
	BatchPartial
	// BatchFailed: every file failed.
	BatchFailed
)

func (s BatchStatus) String() string {
	switch s {
	case BatchOK:
		return "ok"
	case BatchPartial:
		return "partial failure"
	case BatchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BatchResult reports every file's outcome independently, in input order.
type BatchResult struct {
	Files  []Result
	Status BatchStatus
}

// Failed counts files that did not convert.
func (b *BatchResult) Failed() int {
	n := 0
	for _, f := range b.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// ProgressFunc observes each file's result as it completes. Called from
// worker goroutines; implementations must be safe for concurrent use.
type ProgressFunc func(Result)

// ConvertBatch converts files with a bounded worker pool. A file's fatal
// error never aborts its siblings; cancellation stops workers from taking
// new files and marks the untaken ones as failed with the context error.
func ConvertBatch(ctx context.Context, inputs []string, opts Options, progress ProgressFunc) *BatchResult {
	logger := ctxlog.FromContext(ctx)
	res := &BatchResult{Files: make([]Result, len(inputs))}
	if len(inputs) == 0 {
		return res
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) - 1
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	logger.Debug("Batch conversion starting.", "files", len(inputs), "workers", workers)

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerLogger := logger.With("workerID", workerID)
			for j := range jobs {
				// Each worker completes one file before taking the next.
				if err := ctx.Err(); err != nil {
					res.Files[j.index] = Result{InputPath: j.path, Stage: "start", Err: err}
				} else {
					workerLogger.Debug("Worker picked up file.", "file", j.path)
					res.Files[j.index] = Convert(ctx, j.path, opts)
				}
				if progress != nil {
					progress(res.Files[j.index])
				}
			}
		}(w)
	}

	for i, path := range inputs {
		jobs <- job{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	res.Status = statusOf(res)
	logger.Info("Batch conversion finished.", "status", res.Status.String(), "failed", res.Failed(), "total", len(inputs))
	return res
}

func statusOf(res *BatchResult) BatchStatus {
	failed := res.Failed()
	switch {
	case failed == 0:
		return BatchOK
	case failed == len(res.Files):
		return BatchFailed
	default:
		return BatchPartial
	}
}
