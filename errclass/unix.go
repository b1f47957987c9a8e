//go:build unix

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/unix.go
//

package errclass

import (
	"errors"

	"golang.org/x/sys/unix"
)

// classifyErrno maps a unix syscall errno surfaced through a [net.OpError]
// or similar wrapper to one of this package's labels.
func classifyErrno(err error) string {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	switch errno {
	case unix.ECONNREFUSED:
		return ECONNREFUSED
	case unix.ECONNRESET:
		return ECONNRESET
	case unix.ECONNABORTED:
		return ECONNABORTED
	case unix.ENOTCONN, unix.EHOSTUNREACH, unix.ENETDOWN, unix.ENETUNREACH:
		return ENOTCONN
	case unix.ETIMEDOUT:
		return ETIMEDOUT
	case unix.EADDRINUSE, unix.EINTR, unix.ENOBUFS:
		return EBUSY
	default:
		return ""
	}
}
