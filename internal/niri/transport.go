// Package niri speaks the niri compositor control-socket protocol.
package niri

import (
	"context"
	"errors"
	"io"
	"net"
)

const readChunkSize = 1024

// Send opens a fresh unix-socket connection, writes one newline-terminated
// request and reads the response until the compositor closes the stream.
//
// ctx bounds only the dial. Reads have no deadline: the protocol has no
// length prefix, so a peer that never closes blocks the caller.
func Send(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", endpoint)
	if err != nil {
		return nil, &ConnectError{Endpoint: endpoint, Err: err}
	}
	defer conn.Close()

	frame := make([]byte, 0, len(payload)+1)
	frame = append(frame, payload...)
	frame = append(frame, '\n')
	if _, err := conn.Write(frame); err != nil {
		return nil, &IOError{Op: "write", Err: err}
	}

	return readUntilEOF(conn)
}

// readUntilEOF concatenates fixed-size reads until the peer closes.
func readUntilEOF(r io.Reader) ([]byte, error) {
	var out []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, err := r.Read(chunk)
		out = append(out, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, &IOError{Op: "read", Err: err}
		}
	}
}
