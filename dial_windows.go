//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"net"

	"github.com/Microsoft/go-winio"
	"github.com/leigod/dockrpc/pipeaddr"
)

// platformDial connects to name's Windows named pipe.
func platformDial(ctx context.Context, name string) (net.Conn, error) {
	_, address := pipeaddr.Resolve(name)
	return winio.DialPipeContext(ctx, address)
}

// platformListen creates name's Windows named pipe listener.
func platformListen(name string) (net.Listener, error) {
	_, address := pipeaddr.Resolve(name)
	return winio.ListenPipe(address, nil)
}
