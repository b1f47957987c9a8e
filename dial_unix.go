//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"net"
	"os"

	"github.com/leigod/dockrpc/pipeaddr"
)

// platformDial connects to name's Unix domain socket.
func platformDial(ctx context.Context, name string) (net.Conn, error) {
	network, address := pipeaddr.Resolve(name)
	var d net.Dialer
	return d.DialContext(ctx, network, address)
}

// platformListen binds name's Unix domain socket, removing a stale socket
// file left behind by a prior process (§4.1 restart semantics).
func platformListen(name string) (net.Listener, error) {
	network, address := pipeaddr.Resolve(name)
	if err := os.Remove(address); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return net.Listen(network, address)
}
