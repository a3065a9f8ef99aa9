//go:build !windows

package runner

import (
	"os"
	"syscall"
)

func sendInterrupt() {
	_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
}
