// Package queue is the shared request queue, it caps how many requests are in
// flight at once and admits the excess in the order it arrived.
package queue

import (
	"carddraw-backend/internal/components/assert"
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

type Task func(ctx context.Context) error

type Queue struct {
	sem      *semaphore.Weighted
	inflight *int64
}

// New creates a queue allowing at most `limit` tasks to run concurrently.
func New(limit int) *Queue {
	assert.Positive(limit)

	var inflight int64
	return &Queue{
		sem:      semaphore.NewWeighted(int64(limit)),
		inflight: &inflight,
	}
}

// Add blocks until the task was admitted and ran to completion. Tasks waiting for a
// slot are admitted first come first served. The only error returned that isn't the
// task's own is the context ending before admission.
func (q *Queue) Add(ctx context.Context, task Task) error {
	err := q.sem.Acquire(ctx, 1)
	if err != nil {
		return err
	}
	defer q.sem.Release(1)

	atomic.AddInt64(q.inflight, 1)
	defer atomic.AddInt64(q.inflight, -1)

	return task(ctx)
}

// InFlight returns the number of tasks currently running.
func (q *Queue) InFlight() int {
	return int(atomic.LoadInt64(q.inflight))
}

// Do is Add for tasks that produce a value.
func Do[T any](ctx context.Context, q *Queue, task func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := q.Add(ctx, func(ctx context.Context) error {
		var err error
		result, err = task(ctx)
		return err
	})
	return result, err
}
