//go:build linux

package system

import (
	"encoding/binary"
	"testing"

	"golang.org/x/sys/unix"
)

func event(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestKeyPressesKeepsOnlyKeyDown(t *testing.T) {
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 8
	var buf []byte
	buf = append(buf, event(tvSize, evKey, KeyF5, 1)...)
	buf = append(buf, event(tvSize, evKey, KeyF5, 0)...)
	buf = append(buf, event(tvSize, 0x00, 0, 0)...)
	buf = append(buf, event(tvSize, evKey, KeyF4, 2)...)
	buf = append(buf, event(tvSize, evKey, KeyEsc, 1)...)
	buf = append(buf, 0x01, 0x02) // trailing partial record

	codes := keyPresses(buf, tvSize, eventSize)
	if len(codes) != 2 || codes[0] != KeyF5 || codes[1] != KeyEsc {
		t.Fatalf("codes = %v", codes)
	}
}
