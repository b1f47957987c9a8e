// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"os"
)

// App is the top-level façade (C7, §4.7): bind RPC methods, declare
// events, then Run to drive the handshake and serve traffic until the
// session closes.
//
// Bind and DeclareEvent/DeclareEvents must be called before Run; the
// dispatcher's bindings and the event set are otherwise read-only once
// traffic begins (§4.4, §4.7).
type App struct {
	cfg        *Config
	sys        SystemActions
	dispatcher *Dispatcher

	appID       string
	appPipeName string
	appInfo     RegisterAppInfo

	session *Session
}

// NewApp constructs an App identified by appID, advertising appPipeName as
// its own endpoint name, using cfg (or [NewConfig] defaults if cfg is nil).
func NewApp(cfg *Config, appID, appPipeName string, appInfo RegisterAppInfo) *App {
	if cfg == nil {
		cfg = NewConfig()
	}
	a := &App{
		cfg:         cfg,
		sys:         NewDefaultSystemActions(cfg),
		dispatcher:  NewDispatcher(),
		appID:       appID,
		appPipeName: appPipeName,
		appInfo:     appInfo,
	}
	a.appInfo.PipeName = appPipeName
	a.Bind("exit", a.exit)
	return a
}

// Bind registers fn under name (delegates to C4) and adds name to the set
// advertised in the register envelope's `functions` list. Must be called
// before Run.
func (a *App) Bind(name string, fn any) {
	a.dispatcher.Bind(name, fn)
	if name == "exit" {
		return
	}
	a.appInfo.Functions = append(a.appInfo.Functions, name)
}

// DeclareEvent grows the advertised event set by one name.
func (a *App) DeclareEvent(name string) {
	a.appInfo.Events = append(a.appInfo.Events, name)
}

// DeclareEvents grows the advertised event set by names.
func (a *App) DeclareEvents(names ...string) {
	for _, n := range names {
		a.DeclareEvent(n)
	}
}

// Emit sends an `rpc-event` envelope for name if declared and connected;
// otherwise it is dropped (§4.7).
func (a *App) Emit(name string, data any) {
	if a.session == nil {
		return
	}
	a.session.Emit(name, data)
}

// Run drives the session to Active, parks until Closed, then returns.
func (a *App) Run(ctx context.Context) error {
	a.session = NewSession(a.cfg, a.sys, a.dispatcher, a.appID, a.cfg.DockPipeName, a.appPipeName, a.appInfo)
	for _, ev := range a.appInfo.Events {
		a.session.DeclareEvent(ev)
	}
	return a.session.Run(ctx)
}

// Stop transitions the running session to Closing.
func (a *App) Stop() {
	if a.session != nil {
		a.session.Stop()
	}
}

// exit is the built-in pre-bound method (§4.7): it terminates the process
// gracefully after the response encoding its success.
func (a *App) exit() error {
	go func() {
		a.Stop()
		os.Exit(0)
	}()
	return nil
}
