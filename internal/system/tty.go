package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Candidate devices for the active virtual terminal, most specific first.
var vtPaths = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console hides the text console behind the framebuffer while the face runs.
// Failures are logged and otherwise ignored; a desktop session has no VT to
// switch and the face still renders.
type Console struct {
	Logger logger
	Paths  []string
}

// Enter switches the VT to KD_GRAPHICS and hides the cursor.
func (c Console) Enter() {
	c.report(setMode(c.paths(), kdGraphics), "KD_GRAPHICS set")
	c.report(writeVT(c.paths(), "\x1b[?25l"), "cursor hidden")
}

// Leave undoes Enter.
func (c Console) Leave() {
	c.report(writeVT(c.paths(), "\x1b[?25h"), "cursor shown")
	c.report(setMode(c.paths(), kdText), "KD_TEXT set")
}

func (c Console) paths() []string {
	if len(c.Paths) > 0 {
		return c.Paths
	}
	return vtPaths
}

func (c Console) report(err error, ok string) {
	if c.Logger == nil {
		return
	}
	if err != nil {
		c.Logger.Errorf("tty", "%v", err)
		return
	}
	c.Logger.Infof("tty", "%s", ok)
}

func setMode(paths []string, mode int) error {
	var lastErr error
	for _, p := range paths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("KDSETMODE %d: no console device", mode)
}

func writeVT(paths []string, s string) error {
	var lastErr error
	for _, p := range paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT: %w", lastErr)
	}
	return fmt.Errorf("write VT: no console device")
}
