// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/leigod/dockrpc/errclass"
)

// DialStream connects to the named local endpoint (client role, §4.1).
//
// DialStream blocks until connected, cfg.ConnectWait elapses, or a
// permanent failure occurs. On a retryable failure (e.g. no server
// listening yet) it retries with a bounded wait of at least
// cfg.ConnectWait before giving up with [ErrUnreachable].
func DialStream(ctx context.Context, cfg *Config, name string) (Stream, error) {
	deadline := time.Now().Add(cfg.ConnectWait)
	const retryInterval = 100 * time.Millisecond

	for {
		conn, err := platformDial(ctx, name)
		if err == nil {
			cfg.Logger.Info("streamConnected", "name", name)
			return newFrameConn(conn, cfg), nil
		}

		label := cfg.ErrClassifier.Classify(err)
		cfg.Logger.Debug("streamConnectRetry", "name", name, "errClass", label)
		// A missing socket file or pipe means no server is listening yet.
		retryable := errclass.Retryable(label) || errors.Is(err, fs.ErrNotExist)
		if !retryable || time.Now().After(deadline) {
			return nil, &UnreachableError{Name: name, Wait: cfg.ConnectWait.String()}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
