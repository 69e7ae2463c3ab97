//
// transport.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/markkurossi/mpsi/p2p"
)

// transport names which local substitute for a peer-to-peer
// connection a run should use. This binary always runs every party
// in one process, so all three options are just different ways of
// wiring that process's own goroutines together; only "tcp" puts
// real sockets, and therefore the kernel's network stack, on the
// path.
type transport struct {
	kind string
	port int32
}

// dial establishes one duplex connection, returning both ends.
func (t *transport) dial() (*p2p.Conn, *p2p.Conn, error) {
	switch t.kind {
	case "tcp":
		return t.dialTCP()
	case "unix":
		c0, c1 := net.Pipe()
		return p2p.NewConn(c0), p2p.NewConn(c1), nil
	case "crossbeam":
		c0, c1 := p2p.Pipe()
		return c0, c1, nil
	default:
		return nil, nil, fmt.Errorf("unknown transport %q, want unix|tcp|crossbeam", t.kind)
	}
}

// dialTCP opens a loopback TCP connection to itself on the next port
// past the configured base, incrementing so concurrent calls never
// collide.
func (t *transport) dialTCP() (*p2p.Conn, *p2p.Conn, error) {
	port := atomic.AddInt32(&t.port, 1)
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	type acceptResult struct {
		conn net.Conn
		err  error
	}
	acceptCh := make(chan acceptResult, 1)
	go func() {
		nc, err := ln.Accept()
		acceptCh <- acceptResult{nc, err}
	}()

	client, err := net.Dial("tcp", addr)
	if err != nil {
		ln.Close()
		return nil, nil, err
	}

	ar := <-acceptCh
	ln.Close()
	if ar.err != nil {
		client.Close()
		return nil, nil, ar.err
	}

	return p2p.NewConn(ar.conn), p2p.NewConn(client), nil
}
