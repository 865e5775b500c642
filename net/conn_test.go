package net

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newLoopbackPair(t *testing.T) (*UDPConn, *net.UDPConn) {
	peer, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = peer.Close()
	})

	c, err := DialUDP("udp", peer.LocalAddr().String(), WithHeartBeat(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c, peer
}

func TestWriteWithContext(t *testing.T) {
	c, peer := newLoopbackPair(t)

	err := c.WriteWithContext(context.Background(), []byte("ping"))
	require.NoError(t, err)

	require.NoError(t, peer.SetReadDeadline(time.Now().Add(time.Second)))
	buffer := make([]byte, 1024)
	n, _, err := peer.ReadFromUDP(buffer)
	require.NoError(t, err)
	require.Equal(t, []byte("ping"), buffer[:n])
}

func TestReadWithContext(t *testing.T) {
	c, peer := newLoopbackPair(t)

	raddr, err := net.ResolveUDPAddr("udp", c.LocalAddr().String())
	require.NoError(t, err)
	_, err = peer.WriteToUDP([]byte("pong"), raddr)
	require.NoError(t, err)

	buffer := make([]byte, 1024)
	n, err := c.ReadWithContext(context.Background(), buffer)
	require.NoError(t, err)
	require.Equal(t, []byte("pong"), buffer[:n])
}

func TestReadWithContextDeadline(t *testing.T) {
	c, _ := newLoopbackPair(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	buffer := make([]byte, 1024)
	_, err := c.ReadWithContext(ctx, buffer)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadWithContextCancel(t *testing.T) {
	c, _ := newLoopbackPair(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	buffer := make([]byte, 1024)
	start := time.Now()
	_, err := c.ReadWithContext(ctx, buffer)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), time.Second)
}

func TestConnectionClosed(t *testing.T) {
	c, _ := newLoopbackPair(t)
	require.NoError(t, c.Close())
	// Close is idempotent
	require.NoError(t, c.Close())

	err := c.WriteWithContext(context.Background(), []byte("x"))
	require.ErrorIs(t, err, ErrConnectionClosed)
	_, err = c.ReadWithContext(context.Background(), make([]byte, 16))
	require.ErrorIs(t, err, ErrConnectionClosed)
}
