// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import "context"

// SystemActions is the seam [Session] uses to open its two stream
// endpoints, kept narrow so the out-of-scope system_kit wrappers and
// library manager remain genuinely external collaborators (§1, §6).
type SystemActions interface {
	// OpenStreamPair dials dockPipe (client role) and accepts exactly one
	// peer on appPipe (server role), concurrently, returning once both
	// succeed or either fails.
	OpenStreamPair(ctx context.Context, dockPipe, appPipe string) (dock, app Stream, err error)
}

// defaultSystemActions wires [DialStream]/[ListenStream] directly, the
// common case for a standalone dockrpc process.
type defaultSystemActions struct {
	cfg *Config
}

// NewDefaultSystemActions returns the default [SystemActions], wired from
// cfg.
func NewDefaultSystemActions(cfg *Config) SystemActions {
	return &defaultSystemActions{cfg: cfg}
}

func (s *defaultSystemActions) OpenStreamPair(ctx context.Context, dockPipe, appPipe string) (Stream, Stream, error) {
	type dialResult struct {
		stream Stream
		err    error
	}

	dockCh := make(chan dialResult, 1)
	go func() {
		st, err := DialStream(ctx, s.cfg, dockPipe)
		dockCh <- dialResult{st, err}
	}()

	appCh := make(chan dialResult, 1)
	go func() {
		l, err := ListenStream(s.cfg, appPipe)
		if err != nil {
			appCh <- dialResult{nil, err}
			return
		}
		st, err := l.AcceptOne(ctx)
		appCh <- dialResult{st, err}
	}()

	dockRes := <-dockCh
	appRes := <-appCh

	if dockRes.err != nil {
		if appRes.stream != nil {
			_ = appRes.stream.Close()
		}
		return nil, nil, dockRes.err
	}
	if appRes.err != nil {
		_ = dockRes.stream.Close()
		return nil, nil, appRes.err
	}
	return dockRes.stream, appRes.stream, nil
}
