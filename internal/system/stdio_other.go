//go:build !unix

package system

import (
	"fmt"
	"os"
	"time"
)

// RedirectStdIO swaps os.Stdout and os.Stderr. Runtime panics still go to
// the original stderr on these platforms.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	fmt.Fprintf(f, "---- %s pid %d ----\n", time.Now().Format(time.RFC3339), os.Getpid())
	os.Stdout = f
	os.Stderr = f
	return nil
}
