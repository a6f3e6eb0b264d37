//go:build linux

package niri

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// PeerUID dials endpoint and returns the uid of the process owning the socket.
// No request is written; the connection is closed immediately.
func PeerUID(ctx context.Context, endpoint string) (uint32, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", endpoint)
	if err != nil {
		return 0, &ConnectError{Endpoint: endpoint, Err: err}
	}
	defer conn.Close()

	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return 0, fmt.Errorf("connection is not unix")
	}

	raw, err := unixConn.SyscallConn()
	if err != nil {
		return 0, err
	}

	var cred *unix.Ucred
	var sockErr error
	if err := raw.Control(func(fd uintptr) {
		cred, sockErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	}); err != nil {
		return 0, err
	}
	if sockErr != nil {
		return 0, fmt.Errorf("read peer credentials: %w", sockErr)
	}
	return cred.Uid, nil
}
