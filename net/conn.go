package net

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// UDPConn is a connected udp socket that provides Read/Write with context.
//
// Multiple goroutines may invoke methods on a UDPConn simultaneously.
type UDPConn struct {
	connection *net.UDPConn
	heartBeat  time.Duration
	closed     atomic.Bool
	lock       sync.Mutex
}

var defaultUDPConnOptions = udpConnOptions{
	heartBeat: time.Millisecond * 200,
}

type udpConnOptions struct {
	heartBeat time.Duration
}

// A UDPOption sets options such as heartBeat.
type UDPOption interface {
	applyUDP(*udpConnOptions)
}

type heartBeatOption time.Duration

func (h heartBeatOption) applyUDP(o *udpConnOptions) {
	o.heartBeat = time.Duration(h)
}

// WithHeartBeat sets the polling interval used to make blocking reads and
// writes cancellable.
func WithHeartBeat(v time.Duration) UDPOption {
	return heartBeatOption(v)
}

// DialUDP opens a connected udp socket to the remote address.
func DialUDP(network, raddr string, opts ...UDPOption) (*UDPConn, error) {
	cfg := defaultUDPConnOptions
	for _, o := range opts {
		o.applyUDP(&cfg)
	}
	addr, err := net.ResolveUDPAddr(network, raddr)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve address: %w", err)
	}
	connection, err := net.DialUDP(network, nil, addr)
	if err != nil {
		return nil, err
	}
	return &UDPConn{
		connection: connection,
		heartBeat:  cfg.heartBeat,
	}, nil
}

// NewUDPConn wraps an already-open connected udp socket.
func NewUDPConn(connection *net.UDPConn, opts ...UDPOption) *UDPConn {
	cfg := defaultUDPConnOptions
	for _, o := range opts {
		o.applyUDP(&cfg)
	}
	return &UDPConn{
		connection: connection,
		heartBeat:  cfg.heartBeat,
	}
}

// LocalAddr returns the local network address. The Addr returned is shared by all invocations of LocalAddr, so do not modify it.
func (c *UDPConn) LocalAddr() net.Addr {
	return c.connection.LocalAddr()
}

// RemoteAddr returns the remote network address. The Addr returned is shared by all invocations of RemoteAddr, so do not modify it.
func (c *UDPConn) RemoteAddr() net.Addr {
	return c.connection.RemoteAddr()
}

// Close closes the connection.
func (c *UDPConn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.connection.Close()
}

// WriteWithContext sends a single datagram. Delivery is not guaranteed.
func (c *UDPConn) WriteWithContext(ctx context.Context, data []byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.closed.Load() {
			return ErrConnectionClosed
		}
		deadline := time.Now().Add(c.heartBeat)
		if err := c.connection.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("cannot set write deadline for udp connection: %w", err)
		}
		n, err := c.connection.Write(data)
		if err != nil {
			if isTemporary(err, deadline) {
				continue
			}
			return err
		}
		if n != len(data) {
			return ErrWriteTruncated
		}
		return nil
	}
}

// ReadWithContext receives a single datagram into buffer. It blocks until a
// datagram arrives, ctx is done, or the connection is closed. The context's
// deadline error is returned as-is so the caller can tell an elapsed wait
// from a failed socket.
func (c *UDPConn) ReadWithContext(ctx context.Context, buffer []byte) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if c.closed.Load() {
			return -1, ErrConnectionClosed
		}
		deadline := time.Now().Add(c.heartBeat)
		if err := c.connection.SetReadDeadline(deadline); err != nil {
			return -1, fmt.Errorf("cannot set read deadline for udp connection: %w", err)
		}
		n, err := c.connection.Read(buffer)
		if err != nil {
			if isTemporary(err, deadline) {
				continue
			}
			return -1, err
		}
		return n, nil
	}
}
