// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"sync/atomic"
	"time"
)

// TaskStatus is a task's lifecycle state (C6, §4.6).
type TaskStatus int32

const (
	TaskStatusNone TaskStatus = iota
	TaskStatusRunning
	TaskStatusCompleted
	TaskStatusFailed
	TaskStatusCancelled
	TaskStatusReleased
)

// TaskResult is the outcome [Task.OnRun] reports on success.
type TaskResult int

const (
	TaskResultOK TaskResult = iota
	TaskResultFailed
)

// Task is identified, cancellable, optionally delayed work scheduled by a
// [TaskManager] (C6), distinct from a [WorkerPool] callable: a task has an
// id, a status, and a cancellation flag a handler can observe at its own
// checkpoints.
type Task interface {
	// ID returns the task's stable identifier.
	ID() int64

	// OnRun executes the task body. ctx is cancelled if the manager stops
	// while the task is running.
	OnRun(ctx context.Context) (TaskResult, error)

	// OnError is invoked when OnRun returns an error, converting the
	// failure into the §4.6 Failed outcome.
	OnError(code int, message string)

	// OnRelease is invoked when the task is dropped without running (e.g.
	// still queued at [TaskManager.Stop]).
	OnRelease()

	// OnCancel is invoked synchronously from [TaskManager.Cancel].
	OnCancel()

	// RetryInterval surfaces a task-level retry contract to higher-level
	// retry logic; the manager itself never retries.
	RetryInterval() time.Duration
}

// BaseTask is an embeddable implementation of the bookkeeping every [Task]
// needs (id, tag, status, cancellation), mirroring the split between the
// identity-bearing task and its handler body. Embed it and implement
// OnRun/OnError/OnRelease/OnCancel/RetryInterval.
type BaseTask struct {
	id        int64
	tag       string
	status    atomic.Int32
	cancelled atomic.Bool
}

// NewBaseTask returns a [BaseTask] with the given id, status
// [TaskStatusNone].
func NewBaseTask(id int64) BaseTask {
	return BaseTask{id: id}
}

// ID returns the task's id.
func (t *BaseTask) ID() int64 { return t.id }

// Tag returns the caller-assigned tag, if any.
func (t *BaseTask) Tag() string { return t.tag }

// SetTag sets a caller-assigned tag, for the caller's own bookkeeping.
func (t *BaseTask) SetTag(tag string) { t.tag = tag }

// Status returns the task's current status.
func (t *BaseTask) Status() TaskStatus { return TaskStatus(t.status.Load()) }

// IsCancelled reports whether [BaseTask.cancel] has been called.
func (t *BaseTask) IsCancelled() bool { return t.cancelled.Load() }

// run transitions status None->Running via compare-and-swap. If the
// current status is not None, run returns false and does not invoke the
// caller's body (§4.6: "run returns ErrorStatus without invoking on_run").
func (t *BaseTask) run() bool {
	return t.status.CompareAndSwap(int32(TaskStatusNone), int32(TaskStatusRunning))
}

// finish sets the terminal status reached after OnRun returns.
func (t *BaseTask) finish(status TaskStatus) {
	t.status.Store(int32(status))
}

// Reset unconditionally writes status back to [TaskStatusNone], mirroring
// the original Task::reset() (task.cpp): a plain store with no
// compare-and-swap guard, so it un-terminals a task from any status
// (including [TaskStatusCancelled] and [TaskStatusReleased]) back to None.
// Call it before re-[TaskManager.Enqueue]ing a task the manager has already
// released, cancelled, or run to completion.
func (t *BaseTask) Reset() {
	t.status.Store(int32(TaskStatusNone))
}

// cancel unconditionally sets status to Cancelled and the cancel flag.
func (t *BaseTask) cancel() {
	t.cancelled.Store(true)
	t.status.Store(int32(TaskStatusCancelled))
}

// release transitions status None->Released via compare-and-swap, mirroring
// Task::release() (task.cpp). It reports false, and does not invoke the
// caller's OnRelease, if the task is not still None (e.g. already running,
// already cancelled, or already finished) — matching the Data Model
// invariant that Released may only be entered from None.
func (t *BaseTask) release() bool {
	return t.status.CompareAndSwap(int32(TaskStatusNone), int32(TaskStatusReleased))
}
