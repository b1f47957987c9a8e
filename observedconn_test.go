// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveConnPassesThroughReadWrite(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	oc := observeConn(a, DefaultSLogger(), DefaultErrClassifier)
	defer oc.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := b.Write([]byte("hello"))
		require.NoError(t, err)
	}()

	buf := make([]byte, 5)
	n, err := oc.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
	<-done
}

func TestObserveConnCloseIsIdempotent(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	oc := observeConn(a, DefaultSLogger(), DefaultErrClassifier)
	require.NoError(t, oc.Close())
	// second close must not panic and reports net.ErrClosed rather than
	// closing the underlying conn again.
	assert.ErrorIs(t, oc.Close(), net.ErrClosed)
}

func TestObserveConnAddrsDelegateToUnderlyingConn(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	oc := observeConn(a, DefaultSLogger(), DefaultErrClassifier)
	assert.Equal(t, a.LocalAddr(), oc.LocalAddr())
	assert.Equal(t, a.RemoteAddr(), oc.RemoteAddr())
}

func TestSafeAddrStringHandlesNil(t *testing.T) {
	assert.Equal(t, "", safeAddrString(nil))
}
