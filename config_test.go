// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)

	assert.NotNil(t, cfg.Clock)
	assert.NotNil(t, cfg.IDGenerator)
	assert.NotNil(t, cfg.ErrClassifier)
	assert.NotNil(t, cfg.Logger)

	assert.Equal(t, DefaultDockPipeName, cfg.DockPipeName)
	assert.Equal(t, DefaultWorkerCount, cfg.WorkerCount)
	assert.Equal(t, DefaultConnectWait, cfg.ConnectWait)
	assert.Equal(t, DefaultDelayedTaskTick, cfg.DelayedTaskTick)
	assert.Equal(t, DefaultEnvelopeBufferLimit, cfg.EnvelopeBufferLimit)
	assert.Equal(t, DefaultWriteQueueCapacity, cfg.WriteQueueCapacity)

	now := cfg.Clock.NowMS()
	assert.NotZero(t, now)
}
