// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppPreBindsExit(t *testing.T) {
	a := NewApp(nil, "app-1", "app-pipe", RegisterAppInfo{Name: "demo"})
	require.NotNil(t, a)

	// exit is bound (present in the registry) but must not appear in the
	// advertised functions list; it is not invoked here since it terminates
	// the process.
	a.dispatcher.mu.RLock()
	_, bound := a.dispatcher.handlers["exit"]
	a.dispatcher.mu.RUnlock()
	assert.True(t, bound)
	assert.NotContains(t, a.appInfo.Functions, "exit")
}

func TestAppBindAdvertisesFunctionName(t *testing.T) {
	a := NewApp(nil, "app-1", "app-pipe", RegisterAppInfo{})
	a.Bind("add", func(x, y int) int { return x + y })

	assert.Contains(t, a.appInfo.Functions, "add")

	resp := a.dispatcher.Dispatch(RPCRequestPayload{
		ID: "r1", Method: "add", Params: rawParams(t, 2, 3),
	})
	require.False(t, resp.HasError)
	assert.JSONEq(t, "5", string(resp.Result))
}

func TestAppDeclareEventsGrowsSet(t *testing.T) {
	a := NewApp(nil, "app-1", "app-pipe", RegisterAppInfo{})
	a.DeclareEvents("progress", "done")

	assert.Contains(t, a.appInfo.Events, "progress")
	assert.Contains(t, a.appInfo.Events, "done")
}

func TestAppEmitBeforeRunIsNoop(t *testing.T) {
	a := NewApp(nil, "app-1", "app-pipe", RegisterAppInfo{})
	assert.NotPanics(t, func() {
		a.Emit("progress", map[string]int{"pct": 1})
	})
}

func TestAppPipeNameOverridesAppInfo(t *testing.T) {
	a := NewApp(nil, "app-1", "my-pipe", RegisterAppInfo{PipeName: "ignored"})
	assert.Equal(t, "my-pipe", a.appInfo.PipeName)
}

func TestNewAppDefaultsConfigWhenNil(t *testing.T) {
	a := NewApp(nil, "app-1", "app-pipe", RegisterAppInfo{})
	assert.NotNil(t, a.cfg)
	assert.Equal(t, DefaultDockPipeName, a.cfg.DockPipeName)
}
