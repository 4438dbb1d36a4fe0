package attendance

import (
	"context"
	"sync"

	"github.com/workclock/attendance-engine-go/internal/domain/employee"
)

// BatchJob is one independent per-employee invocation of the pipeline.
type BatchJob struct {
	Employee employee.Employee
	Input    RunInput
}

// BatchOutcome carries the result or failure of one job. A failed employee
// never aborts the rest of the batch.
type BatchOutcome struct {
	EmployeeID string
	Result     *RunResult
	Err        error
}

// BatchRunner fans independent per-employee runs out across a bounded
// worker pool. Parallelism is across employees only; one employee's day
// sequence stays sequential. The engine (and its configuration) is shared
// read-only between workers.
type BatchRunner struct {
	workers int
	engine  *Engine
}

func NewBatchRunner(workers int, engine *Engine) *BatchRunner {
	if workers <= 0 {
		workers = 4
	}
	return &BatchRunner{workers: workers, engine: engine}
}

// Run executes all jobs and returns outcomes in job order. Cancellation is
// coarse-grained: outstanding jobs are abandoned, in-flight runs complete.
func (b *BatchRunner) Run(ctx context.Context, jobs []BatchJob) []BatchOutcome {
	if len(jobs) == 0 {
		return nil
	}

	type indexedJob struct {
		index int
		job   BatchJob
	}

	jobChan := make(chan indexedJob, len(jobs))
	outcomes := make([]BatchOutcome, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range jobChan {
				select {
				case <-ctx.Done():
					outcomes[ij.index] = BatchOutcome{
						EmployeeID: ij.job.Employee.ID,
						Err:        ctx.Err(),
					}
				default:
					result, err := b.engine.Run(ij.job.Employee, ij.job.Input)
					outcomes[ij.index] = BatchOutcome{
						EmployeeID: ij.job.Employee.ID,
						Result:     result,
						Err:        err,
					}
				}
			}
		}()
	}

	for i, job := range jobs {
		jobChan <- indexedJob{index: i, job: job}
	}
	close(jobChan)

	wg.Wait()
	return outcomes
}
