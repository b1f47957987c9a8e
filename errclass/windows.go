//go:build windows

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/windows.go
//

package errclass

import (
	"errors"

	"golang.org/x/sys/windows"
)

// classifyErrno maps a windows syscall errno surfaced through a [net.OpError]
// or a go-winio pipe error to one of this package's labels.
func classifyErrno(err error) string {
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	switch errno {
	case windows.WSAECONNREFUSED:
		return ECONNREFUSED
	case windows.WSAECONNRESET:
		return ECONNRESET
	case windows.WSAECONNABORTED:
		return ECONNABORTED
	case windows.WSAENOTCONN, windows.WSAEHOSTUNREACH, windows.WSAENETDOWN, windows.WSAENETUNREACH:
		return ENOTCONN
	case windows.WSAETIMEDOUT:
		return ETIMEDOUT
	case windows.ERROR_PIPE_BUSY, windows.WSAEADDRINUSE, windows.WSAEINTR, windows.WSAENOBUFS:
		return EBUSY
	default:
		return ""
	}
}
