// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"net"
	"sync"
	"time"
)

// observeConn wraps conn to log read errors, write errors, and the first
// close through logger, classifying I/O errors via classifier. frameConn uses this to
// give C1's reader/writer goroutines the same observability texture as
// the rest of the runtime, independent of the frame-level logging
// [Stream] itself performs.
func observeConn(conn net.Conn, logger SLogger, classifier ErrClassifier) net.Conn {
	return &observedConn{
		conn:      conn,
		logger:    logger,
		classify:  classifier,
		localAddr: safeAddrString(conn.LocalAddr()),
	}
}

func safeAddrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

type observedConn struct {
	closeonce sync.Once
	conn      net.Conn
	logger    SLogger
	classify  ErrClassifier
	localAddr string
}

// Close implements net.Conn, logging exactly once per connection even if
// called multiple times (callers are expected to tolerate [net.ErrClosed]
// on subsequent calls, matching the standard library's own contract).
func (c *observedConn) Close() (err error) {
	err = net.ErrClosed
	c.closeonce.Do(func() {
		err = c.conn.Close()
		c.logger.Debug("streamClosed", "localAddr", c.localAddr, "errClass", c.classify.Classify(err))
	})
	return
}

func (c *observedConn) Read(buf []byte) (int, error) {
	n, err := c.conn.Read(buf)
	if err != nil {
		c.logger.Debug("streamReadError", "localAddr", c.localAddr, "errClass", c.classify.Classify(err))
	}
	return n, err
}

func (c *observedConn) Write(data []byte) (int, error) {
	n, err := c.conn.Write(data)
	if err != nil {
		c.logger.Debug("streamWriteError", "localAddr", c.localAddr, "errClass", c.classify.Classify(err))
	}
	return n, err
}

func (c *observedConn) LocalAddr() net.Addr  { return c.conn.LocalAddr() }
func (c *observedConn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

func (c *observedConn) SetDeadline(t time.Time) error      { return c.conn.SetDeadline(t) }
func (c *observedConn) SetReadDeadline(t time.Time) error  { return c.conn.SetReadDeadline(t) }
func (c *observedConn) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }
