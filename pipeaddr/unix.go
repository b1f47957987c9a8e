//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package pipeaddr

import (
	"os"
	"path/filepath"
)

// resolve maps name to a unix domain socket path under the OS temp
// directory, matching §6's "conventional local-pipe prefix" requirement
// for systems with a filesystem namespace.
func resolve(name string) (network, address string) {
	return "unix", filepath.Join(os.TempDir(), Prefix+name+".sock")
}
