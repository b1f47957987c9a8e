// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeStreams(t *testing.T) (a, b *frameConn) {
	t.Helper()
	cfg := NewConfig()
	c1, c2 := net.Pipe()
	a = newFrameConn(c1, cfg)
	b = newFrameConn(c2, cfg)
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func TestFrameConnWriteThenReadRoundTrip(t *testing.T) {
	a, b := pipeStreams(t)

	require.NoError(t, a.WriteFrame([]byte("hello\n")))

	frame, err := b.ReadFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(frame))
}

func TestFrameConnMultipleFramesPreserveOrder(t *testing.T) {
	a, b := pipeStreams(t)

	go func() {
		_ = a.WriteFrame([]byte("one\n"))
		_ = a.WriteFrame([]byte("two\n"))
		_ = a.WriteFrame([]byte("three\n"))
	}()

	for _, want := range []string{"one", "two", "three"} {
		frame, err := b.ReadFrame(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, string(frame))
	}
}

func TestFrameConnReadRespectsContextCancellation(t *testing.T) {
	a, b := pipeStreams(t)
	_ = a

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := b.ReadFrame(ctx)
		errCh <- err
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("ReadFrame did not observe context cancellation")
	}
}

func TestFrameConnDisconnectDetection(t *testing.T) {
	a, b := pipeStreams(t)

	require.NoError(t, a.Close())

	select {
	case <-b.Disconnected():
	case <-time.After(5 * time.Second):
		t.Fatal("peer disconnect not surfaced within bound")
	}

	_, err := b.ReadFrame(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestFrameConnCloseIsIdempotent(t *testing.T) {
	a, _ := pipeStreams(t)
	require.NoError(t, a.Close())
	assert.NotPanics(t, func() {
		a.Close()
	})
}

func TestFrameConnWriteAfterCloseFails(t *testing.T) {
	a, _ := pipeStreams(t)
	require.NoError(t, a.Close())

	err := a.WriteFrame([]byte("x\n"))
	require.Error(t, err)
}

func TestFrameConnWriteBusyWhenQueueFull(t *testing.T) {
	cfg := NewConfig()
	cfg.WriteQueueCapacity = 1
	c1, c2 := net.Pipe()
	a := newFrameConn(c1, cfg)
	defer a.Close()
	defer c2.Close()
	// Nothing ever reads from c2, so every write blocks in the writer
	// goroutine until the queue genuinely backs up.

	go func() { _ = a.WriteFrame([]byte("first\n")) }()
	time.Sleep(50 * time.Millisecond) // let writeLoop pick up "first" and block on conn.Write

	go func() { _ = a.WriteFrame([]byte("second\n")) }()
	time.Sleep(50 * time.Millisecond) // "second" now occupies the one-slot channel

	err := a.WriteFrame([]byte("third\n"))
	assert.ErrorIs(t, err, ErrWriteBusy)
}

func TestSplitOnNewline(t *testing.T) {
	adv, tok, err := splitOnNewline([]byte("abc\ndef"), false)
	require.NoError(t, err)
	assert.Equal(t, 4, adv)
	assert.Equal(t, "abc", string(tok))

	adv, tok, err = splitOnNewline([]byte("noNewlineYet"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, adv)
	assert.Nil(t, tok)

	adv, tok, err = splitOnNewline([]byte("trailing"), true)
	require.NoError(t, err)
	assert.Equal(t, len("trailing"), adv)
	assert.Equal(t, "trailing", string(tok))
}

func TestListenStreamAcceptOne(t *testing.T) {
	cfg := NewConfig()
	name := "test-listen-" + randomSuffix(t)

	l, err := ListenStream(cfg, name)
	require.NoError(t, err)
	defer l.Close()

	serverCh := make(chan Stream, 1)
	serverErrCh := make(chan error, 1)
	go func() {
		s, err := l.AcceptOne(context.Background())
		if err != nil {
			serverErrCh <- err
			return
		}
		serverCh <- s
	}()

	client, err := DialStream(context.Background(), cfg, name)
	require.NoError(t, err)
	defer client.Close()

	select {
	case srv := <-serverCh:
		defer srv.Close()
		require.NoError(t, client.WriteFrame([]byte("ping\n")))
		frame, err := srv.ReadFrame(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ping", string(frame))
	case err := <-serverErrCh:
		t.Fatalf("accept failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("accept never completed")
	}
}

func randomSuffix(t *testing.T) string {
	t.Helper()
	return DefaultIDGenerator().NewEnvelopeID()
}
