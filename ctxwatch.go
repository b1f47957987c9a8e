// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"io"
)

// watchContext arranges for closer to be closed when ctx is done
// (cancelled or deadline exceeded), so a goroutine blocked in a Read that
// the standard library cannot interrupt any other way (frameConn's
// readLoop holds a single blocking net.Conn.Read) unblocks promptly when
// the caller's context ends, rather than waiting for the peer to notice.
//
// The returned stop function unregisters the watcher; callers must call it
// once closer's normal lifecycle ends, context-cancellation or not, to
// avoid leaking the watcher.
func watchContext(ctx context.Context, closer io.Closer) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		closer.Close()
	})
}
