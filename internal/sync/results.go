package sync

import (
	"context"
	"sync"
)

// task is one independently-issued remote operation. The label names the
// document or collection the task touches, for log and error messages.
type task struct {
	label string
	run   func(ctx context.Context) error
}

// outcome is the terminal state of one task.
type outcome struct {
	label string
	err   error
}

func (o outcome) failed() bool { return o.err != nil }

// gather issues every task concurrently and waits for all of them to reach
// a terminal state. It returns one outcome per task, in task order, and
// performs no interpretation of the errors; classification is the caller's
// job so the fan-in stays reusable across backup and restore.
func gather(ctx context.Context, tasks []task) []outcome {
	outcomes := make([]outcome, len(tasks))

	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = outcome{label: t.label, err: t.run(ctx)}
		}()
	}
	wg.Wait()

	return outcomes
}

// failedOutcomes filters the failures out of a gather result.
func failedOutcomes(outcomes []outcome) []outcome {
	var failed []outcome
	for _, o := range outcomes {
		if o.failed() {
			failed = append(failed, o)
		}
	}
	return failed
}
