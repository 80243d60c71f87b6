//go:build !linux

package system

import "context"

// WatchKeys needs evdev; elsewhere there is nothing to read.
func WatchKeys(ctx context.Context, l logger, bindings map[uint16]func()) {
	if l != nil && len(bindings) > 0 {
		l.Infof("input", "key bindings need Linux evdev, disabled")
	}
}
