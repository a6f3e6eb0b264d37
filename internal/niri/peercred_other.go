//go:build !linux

package niri

import (
	"context"
	"errors"
)

// PeerUID is only implemented on linux.
func PeerUID(context.Context, string) (uint32, error) {
	return 0, errors.New("peer credentials are not supported on this platform")
}
