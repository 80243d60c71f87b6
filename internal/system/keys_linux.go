//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// WatchKeys reads every /dev/input/event* device and calls the action bound
// to a key when it is pressed. Actions may run on any reader goroutine. Keys
// are not exclusive: the console still sees them.
//
// Without input devices it logs and returns.
func WatchKeys(ctx context.Context, l logger, bindings map[uint16]func()) {
	if len(bindings) == 0 {
		return
	}

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if l != nil {
			l.Infof("input", "no evdev devices, key bindings disabled")
		}
		return
	}

	var mu sync.Mutex
	fire := func(code uint16) {
		action, ok := bindings[code]
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if l != nil {
			l.Infof("input", "key %d pressed", code)
		}
		action()
	}

	for _, path := range paths {
		go readKeys(ctx, path, tvSize, eventSize, fire)
	}
}

func readKeys(ctx context.Context, path string, tvSize, eventSize int, fire func(uint16)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 64*eventSize)
	for ctx.Err() == nil {
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, code := range keyPresses(buf[:n], tvSize, eventSize) {
			fire(code)
		}
	}
}

// keyPresses decodes input_event records and returns the codes of key-down events.
func keyPresses(buf []byte, tvSize, eventSize int) []uint16 {
	var codes []uint16
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ == evKey && value == 1 {
			codes = append(codes, code)
		}
	}
	return codes
}
