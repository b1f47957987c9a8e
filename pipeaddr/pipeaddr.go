// SPDX-License-Identifier: GPL-3.0-or-later

// Package pipeaddr maps a logical stream endpoint name (the dock's
// well-known name or an app's advertised pipe name) to a platform network
// and address pair.
//
// On unix-like systems this resolves to a `unix` domain socket path under
// the OS temporary directory. On Windows this resolves to a named pipe
// path under the conventional `\\.\pipe\` namespace, dialed and listened via
// [github.com/Microsoft/go-winio]. Either way, callers use [Resolve] and
// never construct the platform address themselves, keeping C1 (the stream
// endpoint) portable across the two.
package pipeaddr

// Prefix is prepended to every logical name before platform mapping, so
// that dockrpc sockets/pipes are recognizable in `ls`/pipe-list tooling
// and do not collide with unrelated local sockets.
const Prefix = "dockrpc_"

// Resolve maps a logical endpoint name to a (network, address) pair
// suitable for [net.Dial]/[net.Listen] (unix) or
// [github.com/Microsoft/go-winio] (windows).
func Resolve(name string) (network, address string) {
	return resolve(name)
}
