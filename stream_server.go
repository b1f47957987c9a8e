// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"net"
	"sync"
)

// Listener accepts at most one peer at a time on a named local endpoint
// (server role, §4.1).
//
// After a peer disconnects, callers MAY call [Listener.AcceptOne] again to
// accept a new peer (the restart loop described in §4.1); the listener
// itself never needs re-creation. Construct via [ListenStream].
type Listener struct {
	name string
	cfg  *Config

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// ListenStream creates a single-instance server endpoint for name (§4.1).
// Call [Listener.AcceptOne] to accept a peer.
func ListenStream(cfg *Config, name string) (*Listener, error) {
	nl, err := platformListen(name)
	if err != nil {
		return nil, err
	}
	return &Listener{name: name, cfg: cfg, listener: nl}, nil
}

// AcceptOne blocks until a peer connects, ctx is done, or the listener is
// closed. At most one peer is connected at any time: callers wanting the
// restart-after-disconnect behavior described in §4.1 should call AcceptOne
// again once the returned [Stream]'s Disconnected channel fires.
func (l *Listener) AcceptOne(ctx context.Context) (Stream, error) {
	l.mu.Lock()
	nl := l.listener
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil, &DisconnectedError{Cause: ErrDisconnected}
	}

	type acceptResult struct {
		conn net.Conn
		err  error
	}
	resultCh := make(chan acceptResult, 1)
	go func() {
		conn, err := nl.Accept()
		resultCh <- acceptResult{conn, err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return nil, res.err
		}
		l.cfg.Logger.Info("streamAccepted", "name", l.name)
		return newFrameConn(res.conn, l.cfg), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close closes the underlying listener, causing any blocked AcceptOne to
// return an error.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.listener.Close()
}
