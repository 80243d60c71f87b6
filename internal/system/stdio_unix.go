//go:build unix

package system

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// RedirectStdIO points fds 1 and 2 at path so runtime panics land in the file
// even while the console shows the framebuffer.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "---- %s pid %d ----\n", time.Now().Format(time.RFC3339), os.Getpid())
	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(std.Fd())); err != nil {
			return fmt.Errorf("dup2 onto fd %d: %w", std.Fd(), err)
		}
	}
	return nil
}
