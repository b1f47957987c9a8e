// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"fmt"
	"sync"
)

// SessionState is one of the eight states of the handshake/traffic state
// machine (C3, §4.3).
type SessionState int

const (
	StateInitial SessionState = iota
	StateDockConnected
	StateRegistered
	StateHandshakingStep1
	StateHandshakingStep2
	StateActive
	StateClosing
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateDockConnected:
		return "DockConnected"
	case StateRegistered:
		return "Registered"
	case StateHandshakingStep1:
		return "HandshakingStep1"
	case StateHandshakingStep2:
		return "HandshakingStep2"
	case StateActive:
		return "Active"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// transition is one row of the §4.3 table, expressed as data rather than
// branching logic.
type transition struct {
	from SessionState
	to   SessionState
}

// allowedTransitions maps (from, event) to the resulting state and backs
// [Session.transitionOrViolate]. Stop, app disconnect, and drain are applied
// directly by [Session.beginClosing], so the "appDisconnect" and "drained"
// rows record those moves but are not looked up.
var allowedTransitions = map[string]transition{
	"start":             {StateInitial, StateDockConnected},
	"registerAccepted":  {StateDockConnected, StateRegistered},
	"handshakeStep1":    {StateRegistered, StateHandshakingStep1},
	"handshakeStep2Ack": {StateHandshakingStep1, StateHandshakingStep2},
	"handshakeStep3":    {StateHandshakingStep2, StateActive},
	"appDisconnect":     {StateActive, StateClosing},
	"drained":           {StateClosing, StateClosed},
}

func allowedFrom(state SessionState, event string) (SessionState, bool) {
	t, ok := allowedTransitions[event]
	if !ok || t.from != state {
		return state, false
	}
	return t.to, true
}

// Session drives one app connection through the C3 state machine: dock
// registration, the three-step handshake, and Active RPC/event traffic,
// until the app stream disconnects or [Session.Stop] is called.
//
// Construct via [NewSession]; a Session is used once (§4.3's
// no-re-entry-after-Closed rule) — start a new one for the next connection.
type Session struct {
	cfg        *Config
	sys        SystemActions
	codec      *Codec
	dispatcher *Dispatcher
	pool       *WorkerPool

	appID        string
	dockPipeName string
	appPipeName  string
	appInfo      RegisterAppInfo

	mu     sync.Mutex
	state  SessionState
	dock   Stream
	app    Stream
	buffer []Envelope
	events map[string]bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewSession constructs a Session for one app identified by appID, bound to
// dockPipeName (dialed) and appPipeName (listened on), wired from cfg.
func NewSession(cfg *Config, sys SystemActions, dispatcher *Dispatcher, appID, dockPipeName, appPipeName string, appInfo RegisterAppInfo) *Session {
	return &Session{
		cfg:          cfg,
		sys:          sys,
		codec:        NewCodec(cfg),
		dispatcher:   dispatcher,
		pool:         NewWorkerPool(),
		appID:        appID,
		dockPipeName: dockPipeName,
		appPipeName:  appPipeName,
		appInfo:      appInfo,
		state:        StateInitial,
		events:       make(map[string]bool),
		done:         make(chan struct{}),
	}
}

// State returns the session's current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DeclareEvent adds name to the set of events [Session.Emit] may send.
func (s *Session) DeclareEvent(name string) {
	s.mu.Lock()
	s.events[name] = true
	s.mu.Unlock()
}

func (s *Session) setState(to SessionState) {
	s.mu.Lock()
	s.state = to
	s.mu.Unlock()
}

// transitionOrViolate attempts event from the session's current state; on
// failure it transitions to Closing and returns the [ProtocolViolationError]
// so the caller can stop driving the session.
func (s *Session) transitionOrViolate(event string) error {
	s.mu.Lock()
	to, ok := allowedFrom(s.state, event)
	cur := s.state
	if ok {
		s.state = to
	}
	s.mu.Unlock()
	if !ok {
		err := &ProtocolViolationError{State: cur, Event: event}
		s.beginClosing()
		return err
	}
	return nil
}

// Run drives the session to Active, then parks until the app stream
// disconnects or [Session.Stop] is called, then returns.
func (s *Session) Run(ctx context.Context) error {
	s.pool.Start(s.cfg.WorkerCount)
	defer s.pool.Stop()

	dock, app, err := s.sys.OpenStreamPair(ctx, s.dockPipeName, s.appPipeName)
	if err != nil {
		s.cfg.Logger.Error("sessionOpenStreamPairFailed", "appId", s.appID, "err", err.Error())
		s.setState(StateClosed)
		return err
	}
	s.mu.Lock()
	s.dock, s.app = dock, app
	s.mu.Unlock()

	stopDockWatch := watchContext(ctx, dock)
	stopAppWatch := watchContext(ctx, app)
	defer stopDockWatch()
	defer stopAppWatch()

	if err := s.transitionOrViolate("start"); err != nil {
		return err
	}

	if err := s.register(); err != nil {
		s.closeDockAndApp()
		s.setState(StateClosed)
		return err
	}

	if err := s.handshake(ctx); err != nil {
		s.closeDockAndApp()
		s.setState(StateClosed)
		return err
	}

	s.serve(ctx)

	<-s.done
	return nil
}

func (s *Session) register() error {
	payload := RegisterPayload{
		Command: "register",
		AppID:   s.appID,
		AppInfo: s.appInfo,
	}
	frame, err := s.codec.EncodeRegisterFlat(payload)
	if err != nil {
		return err
	}
	if err := s.dock.WriteFrame(frame); err != nil {
		return err
	}
	return s.transitionOrViolate("registerAccepted")
}

// handshake runs the three-step handshake (§4.3): wait for step 1 on the
// app stream, send step 2, wait for step 3, then close the dock stream.
//
// A background watcher observes the dock stream's disconnect signal for as
// long as the handshake is in flight: if the dock stream fails before step
// 3, the session transitions to Closing and the app stream is closed (§4.3),
// instead of leaving [Session.Run] parked forever on the app stream's next
// read.
func (s *Session) handshake(ctx context.Context) error {
	watchDone := make(chan struct{})
	var watchDoneOnce sync.Once
	stopWatch := func() { watchDoneOnce.Do(func() { close(watchDone) }) }
	defer stopWatch()

	dockFailed := make(chan struct{})
	go func() {
		select {
		case <-s.dock.Disconnected():
			select {
			case <-watchDone:
				return
			default:
			}
			close(dockFailed)
			_ = s.app.Close()
		case <-watchDone:
		}
	}()

	for {
		frame, err := s.app.ReadFrame(ctx)
		if err != nil {
			select {
			case <-dockFailed:
				s.setState(StateClosing)
				return &DisconnectedError{Cause: ErrDisconnected}
			default:
			}
			return &DisconnectedError{Cause: err}
		}
		env, err := s.codec.Decode(frame)
		if err != nil && err != ErrUnknownType {
			continue
		}
		if env.Type != EnvelopeHandshake {
			if !s.bufferPreActive(env) {
				err := &ProtocolViolationError{State: s.State(), Event: "envelopeBufferOverflow"}
				s.beginClosing()
				return err
			}
			continue
		}
		var hs HandshakePayload
		if decErr := decodeJSON(env.Payload, &hs); decErr != nil {
			continue
		}
		switch hs.Step {
		case 1:
			if err := s.transitionOrViolate("handshakeStep1"); err != nil {
				return err
			}
			if err := s.sendHandshake(2); err != nil {
				return err
			}
			if err := s.transitionOrViolate("handshakeStep2Ack"); err != nil {
				return err
			}
		case 3:
			if err := s.transitionOrViolate("handshakeStep3"); err != nil {
				return err
			}
			stopWatch()
			_ = s.dock.Close()
			return nil
		}
	}
}

func (s *Session) sendHandshake(step int) error {
	env, err := s.codec.New(s.appID, EnvelopeHandshake, HandshakePayload{Step: step})
	if err != nil {
		return err
	}
	frame, err := s.codec.Encode(env)
	if err != nil {
		return err
	}
	return s.app.WriteFrame(frame)
}

// bufferPreActive buffers an envelope received before Active (§4.3),
// bounded to cfg.EnvelopeBufferLimit. It reports false on overflow so the
// caller can treat it as a [ProtocolViolationError] and close the session,
// instead of silently dropping the envelope and continuing as if nothing
// happened.
func (s *Session) bufferPreActive(env Envelope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buffer) >= s.cfg.EnvelopeBufferLimit {
		return false
	}
	s.buffer = append(s.buffer, env)
	return true
}

// serve replays the pre-Active buffer, then drives Active traffic until
// the app stream disconnects or Stop is called.
func (s *Session) serve(ctx context.Context) {
	s.mu.Lock()
	buffered := s.buffer
	s.buffer = nil
	s.mu.Unlock()

	for _, env := range buffered {
		s.handleActiveEnvelope(env)
	}

	go s.readLoop(ctx)
}

func (s *Session) readLoop(ctx context.Context) {
	for {
		frame, err := s.app.ReadFrame(ctx)
		if err != nil {
			s.onAppDisconnect()
			return
		}
		env, err := s.codec.Decode(frame)
		if err != nil && err != ErrUnknownType {
			continue
		}
		s.handleActiveEnvelope(env)
	}
}

func (s *Session) handleActiveEnvelope(env Envelope) {
	switch env.Type {
	case EnvelopeHandshake:
		s.cfg.Logger.Warn("handshakeInActive", "appId", s.appID)
	case EnvelopeRPCRequest:
		var req RPCRequestPayload
		if err := decodeJSON(env.Payload, &req); err != nil {
			return
		}
		s.pool.Submit(func() {
			s.dispatchAndRespond(req)
		})
	case EnvelopeUnregister:
		s.onAppDisconnect()
	default:
		if !knownEnvelopeTypes[env.Type] {
			s.cfg.Logger.Warn("unknownEnvelopeType", "appId", s.appID, "type", string(env.Type))
		}
	}
}

func (s *Session) dispatchAndRespond(req RPCRequestPayload) {
	resp := s.dispatcher.Dispatch(req)
	env, err := s.codec.New(s.appID, EnvelopeRPCResponse, resp)
	if err != nil {
		s.cfg.Logger.Error("responseEncodeFailed", "method", req.Method, "err", err.Error())
		return
	}
	frame, err := s.codec.Encode(env)
	if err != nil {
		s.cfg.Logger.Error("responseEncodeFailed", "method", req.Method, "err", err.Error())
		return
	}
	s.mu.Lock()
	app := s.app
	s.mu.Unlock()
	if app == nil {
		return
	}
	if err := app.WriteFrame(frame); err != nil {
		s.cfg.Logger.Debug("responseWriteFailed", "method", req.Method, "err", err.Error())
	}
}

// Emit sends an `rpc-event` envelope on the app stream if name was declared
// and the session is connected; otherwise the event is dropped (§4.7). An
// undeclared name is also logged at Warn level.
func (s *Session) Emit(name string, data any) {
	s.mu.Lock()
	declared := s.events[name]
	app := s.app
	state := s.state
	s.mu.Unlock()
	if !declared {
		s.cfg.Logger.Warn("undeclaredEvent", "appId", s.appID, "event", name)
		return
	}
	if app == nil || state != StateActive {
		return
	}

	raw, err := encodeJSON(data)
	if err != nil {
		s.cfg.Logger.Error("emitEncodeFailed", "event", name, "err", err.Error())
		return
	}
	env, err := s.codec.New(s.appID, EnvelopeRPCEvent, RPCEventPayload{
		ID:    s.cfg.IDGenerator.NewEnvelopeID(),
		Event: name,
		Data:  raw,
	})
	if err != nil {
		return
	}
	frame, err := s.codec.Encode(env)
	if err != nil {
		return
	}
	_ = app.WriteFrame(frame)
}

func (s *Session) onAppDisconnect() {
	s.beginClosing()
}

func (s *Session) beginClosing() {
	s.mu.Lock()
	if s.state == StateClosing || s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosing
	s.mu.Unlock()

	s.closeDockAndApp()
	s.pool.Stop()

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Session) closeDockAndApp() {
	s.mu.Lock()
	dock, app := s.dock, s.app
	s.mu.Unlock()
	if dock != nil {
		_ = dock.Close()
	}
	if app != nil {
		_ = app.Close()
	}
}

// Stop transitions the session to Closing (any state, §4.3), draining the
// worker pool before reaching Closed.
func (s *Session) Stop() {
	s.beginClosing()
}
