// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaskManager(t *testing.T, typ ManagerType) *TaskManager {
	t.Helper()
	cfg := NewConfig()
	cfg.DelayedTaskTick = 10 * time.Millisecond
	return NewTaskManager(cfg, typ)
}

func TestTaskManagerEnqueueRunsToCompletion(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	m.Start(2)
	defer m.Stop()

	task := newFakeTask(1)
	done := make(chan struct{})
	task.onRunFunc = func(ctx context.Context) (TaskResult, error) {
		close(done)
		return TaskResultOK, nil
	}

	require.NoError(t, m.Enqueue(task))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestTaskManagerEnqueueAgainstStoppedManagerFails(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	// never started: running=false

	task := newFakeTask(1)
	err := m.Enqueue(task)
	require.Error(t, err)
	var managerErr *ErrorManagerError
	assert.ErrorAs(t, err, &managerErr)
	assert.ErrorIs(t, err, ErrTaskManagerStopped)

	err = m.DelayedEnqueue(task, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskManagerStopped)
}

// S6: enqueue a task whose OnRun loops checking IsCancelled every 10ms;
// after 50ms call Cancel(id); expect OnCancel invoked exactly once, OnRun
// observes cancellation and returns, final status Cancelled, id removed
// from the index.
func TestTaskManagerCancelMidFlight(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	m.Start(1)
	defer m.Stop()

	task := newFakeTask(1)
	returned := make(chan struct{})
	task.onRunFunc = func(ctx context.Context) (TaskResult, error) {
		for !task.IsCancelled() {
			time.Sleep(10 * time.Millisecond)
		}
		close(returned)
		return TaskResultFailed, nil
	}

	require.NoError(t, m.Enqueue(task))
	time.Sleep(50 * time.Millisecond)
	m.Cancel(task.ID())

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("OnRun never observed cancellation")
	}

	assert.True(t, task.cancelled, "OnCancel must be invoked")
	assert.Equal(t, TaskStatusCancelled, task.Status())

	m.mu.Lock()
	_, stillIndexed := m.index[task.ID()]
	m.mu.Unlock()
	assert.False(t, stillIndexed, "id must be removed from the index")
}

func TestTaskManagerCancelUnknownIDIsNoop(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	m.Start(1)
	defer m.Stop()

	assert.NotPanics(t, func() {
		m.Cancel(12345)
	})
}

func TestTaskManagerOnErrorOnHandlerFailure(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	m.Start(1)
	defer m.Stop()

	task := newFakeTask(1)
	done := make(chan struct{})
	task.onRunFunc = func(ctx context.Context) (TaskResult, error) {
		defer close(done)
		return TaskResultFailed, assertErr
	}

	require.NoError(t, m.Enqueue(task))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	// give OnError a moment to run after OnRun returns.
	time.Sleep(20 * time.Millisecond)
	assert.True(t, task.errored)
	assert.Equal(t, 500, task.errCode)
}

func TestTaskManagerDelayedEnqueuePromotesAfterDelay(t *testing.T) {
	m := newTestTaskManager(t, ManagerBoth)
	m.Start(1)
	defer m.Stop()

	task := newFakeTask(1)
	done := make(chan struct{})
	var ran time.Time
	start := time.Now()
	task.onRunFunc = func(ctx context.Context) (TaskResult, error) {
		ran = time.Now()
		close(done)
		return TaskResultOK, nil
	}

	require.NoError(t, m.DelayedEnqueue(task, 50*time.Millisecond))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delayed task never promoted")
	}
	assert.GreaterOrEqual(t, ran.Sub(start), 30*time.Millisecond)
}

func TestTaskManagerStopReleasesQueuedTasks(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	// Don't start workers: the task sits in the queue until Stop releases it.
	m.mu.Lock()
	m.running = true
	m.mu.Unlock()

	task := newFakeTask(1)
	require.NoError(t, m.Enqueue(task))

	m.Stop()
	assert.True(t, task.released)
}

func TestTaskManagerStartIsIdempotentWhileRunning(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	m.Start(2)
	defer m.Stop()
	assert.NotPanics(t, func() {
		m.Start(2)
	})
}

func TestTaskManagerStopIsIdempotent(t *testing.T) {
	m := newTestTaskManager(t, ManagerNormal)
	m.Start(1)
	m.Stop()
	assert.NotPanics(t, func() {
		m.Stop()
	})
}

var assertErr = &HandlerFailedError{Method: "task", Message: "boom"}
