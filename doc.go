// SPDX-License-Identifier: GPL-3.0-or-later

// Package dockrpc implements the RPC runtime core used by a native sidecar
// application ("app") to register itself with a host "dock" process and
// expose a typed RPC surface (methods and events) over a pair of local
// full-duplex byte streams.
//
// # Core Abstraction
//
// An [App] binds methods ([App.Bind]), declares events ([App.DeclareEvent],
// [App.DeclareEvents]), and drives the session lifecycle ([App.Run]) from
// registration through handshake to active traffic. Everything below the
// façade is built from smaller, independently testable pieces:
//
//   - [Stream]: a newline-framed, full-duplex local byte transport,
//     constructed via [DialStream] (client role) or [ListenStream] (server
//     role, accepting exactly one peer at a time).
//   - [Codec]: deterministic [Envelope] serialization/deserialization,
//     envelope ID generation, and timestamping.
//   - [Session]: the handshake and lifecycle state machine that routes
//     decoded envelopes to the dispatcher and emits events/responses.
//   - [Dispatcher]: the method registry and typed argument binder that
//     turns an `rpc-request` into an `rpc-response`.
//   - [WorkerPool]: the fixed-size worker pool that executes dispatched requests.
//   - [TaskManager]: identified, cancellable, optionally delayed units of
//     work, distinct from the pool's anonymous callables.
//
// # Data Flow
//
// The app opens the dock stream (client role) and sends a `register`
// envelope announcing the app's id, metadata, declared methods/events, and
// the name of its own inbound stream. The host replies `handshake{step=1}`
// on the app stream (server role, accepting the host as its one peer). The
// app replies `handshake{step=2}`. The host replies `handshake{step=3}` and
// closes the dock stream; the app closes the dock stream on receipt.
// Subsequent traffic — RPC requests inbound, RPC responses and events
// outbound — flows on the app stream only.
//
// # Observability
//
// All primitives support structured logging via [SLogger] (compatible with
// [log/slog]). By default, logging is disabled; set a logger via [Config]
// to enable it. Error classification is configurable via [ErrClassifier];
// the default wraps this module's own [errclass] package.
//
// # Non-goals
//
// This package is strictly local (no networked transport), performs no
// wire authentication or encryption, persists no state to disk, and uses a
// simple bounded-queue policy instead of flow-control windows (see
// [Stream]'s write-queue documentation).
package dockrpc
