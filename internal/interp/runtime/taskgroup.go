// Package runtime provides the concurrency primitive behind a minipar
// par-block: fan out every child statement as its own task, then join,
// without letting one task's failure cancel its siblings.
package runtime

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TaskGroup wraps errgroup.Group (unbounded, no context) so that a failing
// child task neither cancels nor aborts its siblings — only errgroup's
// context-bearing variant cancels peers, and this deliberately uses the
// plain Group for that reason. Every child's error is captured
// independently and all of them are returned from Wait, rather than just
// the first (errgroup.Group.Wait itself only ever returns the first).
type TaskGroup struct {
	g       errgroup.Group
	mu      sync.Mutex
	errs    []error
}

// NewTaskGroup creates an empty TaskGroup.
func NewTaskGroup() *TaskGroup {
	return &TaskGroup{}
}

// Go schedules fn as a fresh task. A panic inside fn (e.g. a nil pointer
// dereference in evaluator code) is recovered and converted into a
// captured error rather than crashing the process and every sibling task
// with it — one task's uncaught exception must not abort the others.
func (tg *TaskGroup) Go(fn func() error) {
	tg.g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in par task: %v", r)
			}
			if err != nil {
				tg.mu.Lock()
				tg.errs = append(tg.errs, err)
				tg.mu.Unlock()
			}
		}()
		return fn()
	})
}

// Wait blocks until every scheduled task has returned and reports every
// captured error, in the order tasks finished.
func (tg *TaskGroup) Wait() []error {
	tg.g.Wait()
	tg.mu.Lock()
	defer tg.mu.Unlock()
	return tg.errs
}
