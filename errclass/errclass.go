// SPDX-License-Identifier: GPL-3.0-or-later

// Package errclass classifies I/O errors from the dock/app stream transport
// into short, platform-independent labels.
//
// Labels are stable strings suitable for structured logging and for the
// stream/session layers to decide whether a connect failure is transient
// (retry within the bounded wait) or permanent (surface [dockrpc.ErrUnreachable]).
package errclass

import (
	"context"
	"errors"
	"net"
	"os"
)

// Label values returned by [New].
const (
	ETIMEDOUT    = "ETIMEDOUT"
	ECONNREFUSED = "ECONNREFUSED"
	ECONNRESET   = "ECONNRESET"
	ECONNABORTED = "ECONNABORTED"
	ENOTCONN     = "ENOTCONN"
	EBUSY        = "EBUSY"
	ECANCELED    = "ECANCELED"
	EGENERIC     = "EGENERIC"
)

// New classifies err into one of the labels above.
//
// A nil error classifies as the empty string, matching the convention used
// by [dockrpc.DefaultErrClassifier].
func New(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.Canceled):
		return ECANCELED
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return ETIMEDOUT
	case errors.Is(err, net.ErrClosed):
		return ENOTCONN
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ETIMEDOUT
	}

	if label := classifyErrno(err); label != "" {
		return label
	}

	return EGENERIC
}

// Retryable reports whether a connect failure classified as label should be
// retried within the bounded connect wait (see [dockrpc.DialStream]).
func Retryable(label string) bool {
	switch label {
	case ECONNREFUSED, EBUSY, ENOTCONN:
		return true
	default:
		return false
	}
}
