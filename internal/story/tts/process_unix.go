//go:build unix

package tts

import (
	"os/exec"
	"syscall"
)

// terminate asks a speech process to exit
func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Signal(syscall.SIGTERM)
}
