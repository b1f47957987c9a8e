//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package pipeaddr

// resolve maps name to a Windows named-pipe path under the conventional
// `\\.\pipe\` namespace, dialed/listened via
// [github.com/Microsoft/go-winio]. The "network" return value is unused on
// this platform (go-winio addresses pipes by path alone) and is returned
// only to keep [Resolve]'s signature uniform across platforms.
func resolve(name string) (network, address string) {
	return "winpipe", `\\.\pipe\` + Prefix + name
}
