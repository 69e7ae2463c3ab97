//
// protocol.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Conn implements a buffered, byte-ordered duplex channel between two
// parties. It is the concrete Channel implementation consumed by the
// vole, solver, oprf, opprf and mpsi packages: blocking reads/writes,
// big-endian fixed-width integers, and length-prefixed byte vectors.
type Conn struct {
	closer io.Closer
	io     *bufio.ReadWriter
	Stats  IOStats
}

// IOStats tracks bytes sent and received over a Conn. The --verbose
// CLI summary and benchmarks read this to report per-peer traffic.
type IOStats struct {
	Sent  uint64
	Recvd uint64
}

// Sub returns the element-wise difference stats-o.
func (stats IOStats) Sub(o IOStats) IOStats {
	return IOStats{
		Sent:  stats.Sent - o.Sent,
		Recvd: stats.Recvd - o.Recvd,
	}
}

// Sum returns Sent+Recvd.
func (stats IOStats) Sum() uint64 {
	return stats.Sent + stats.Recvd
}

// NewConn wraps conn with buffered I/O. If conn also implements
// io.Closer, Close forwards to it.
func NewConn(conn io.ReadWriter) *Conn {
	closer, _ := conn.(io.Closer)

	return &Conn{
		closer: closer,
		io: bufio.NewReadWriter(bufio.NewReader(conn),
			bufio.NewWriter(conn)),
	}
}

// Flush flushes any buffered, unwritten data to the peer.
func (c *Conn) Flush() error {
	return c.io.Flush()
}

// Close flushes and closes the connection.
func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// SendByte sends a single byte.
func (c *Conn) SendByte(val byte) error {
	if err := c.io.WriteByte(val); err != nil {
		return err
	}
	c.Stats.Sent++
	return nil
}

// ReceiveByte receives a single byte.
func (c *Conn) ReceiveByte() (byte, error) {
	b, err := c.io.ReadByte()
	if err != nil {
		return 0, err
	}
	c.Stats.Recvd++
	return b, nil
}

// SendUint16 sends a big-endian uint16.
func (c *Conn) SendUint16(val int) error {
	if err := binary.Write(c.io, binary.BigEndian, uint16(val)); err != nil {
		return err
	}
	c.Stats.Sent += 2
	return nil
}

// ReceiveUint16 receives a big-endian uint16.
func (c *Conn) ReceiveUint16() (int, error) {
	var buf [2]byte
	if _, err := io.ReadFull(c.io, buf[:]); err != nil {
		return 0, err
	}
	c.Stats.Recvd += 2
	return int(binary.BigEndian.Uint16(buf[:])), nil
}

// SendUint32 sends a big-endian uint32.
func (c *Conn) SendUint32(val int) error {
	err := binary.Write(c.io, binary.BigEndian, uint32(val))
	if err != nil {
		return err
	}
	c.Stats.Sent += 4
	return nil
}

// ReceiveUint32 receives a big-endian uint32.
func (c *Conn) ReceiveUint32() (int, error) {
	var buf [4]byte

	_, err := io.ReadFull(c.io, buf[:])
	if err != nil {
		return 0, err
	}
	c.Stats.Recvd += 4

	return int(binary.BigEndian.Uint32(buf[:])), nil
}

// SendUint64 sends a big-endian uint64.
func (c *Conn) SendUint64(val uint64) error {
	if err := binary.Write(c.io, binary.BigEndian, val); err != nil {
		return err
	}
	c.Stats.Sent += 8
	return nil
}

// ReceiveUint64 receives a big-endian uint64.
func (c *Conn) ReceiveUint64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(c.io, buf[:]); err != nil {
		return 0, err
	}
	c.Stats.Recvd += 8
	return binary.BigEndian.Uint64(buf[:]), nil
}

// SendUsize sends a usize value as a fixed 8-byte big-endian integer,
// so both ends agree on the width regardless of platform word size.
func (c *Conn) SendUsize(val int) error {
	return c.SendUint64(uint64(val))
}

// ReceiveUsize receives a usize value sent by SendUsize.
func (c *Conn) ReceiveUsize() (int, error) {
	v, err := c.ReceiveUint64()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// SendData sends a length-prefixed byte slice, flushed immediately.
func (c *Conn) SendData(val []byte) error {
	err := c.SendUsize(len(val))
	if err != nil {
		return err
	}
	_, err = c.io.Write(val)
	if err != nil {
		return err
	}
	c.Stats.Sent += uint64(len(val))
	return c.Flush()
}

// ReceiveData receives a length-prefixed byte slice.
func (c *Conn) ReceiveData() ([]byte, error) {
	n, err := c.ReceiveUsize()
	if err != nil {
		return nil, err
	}

	result := make([]byte, n)
	_, err = io.ReadFull(c.io, result)
	if err != nil {
		return nil, err
	}
	c.Stats.Recvd += uint64(n)

	return result, nil
}

// SendString sends a length-prefixed UTF-8 string.
func (c *Conn) SendString(val string) error {
	return c.SendData([]byte(val))
}

// ReceiveString receives a string sent by SendString.
func (c *Conn) ReceiveString() (string, error) {
	data, err := c.ReceiveData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
