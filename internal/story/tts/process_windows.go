//go:build windows

package tts

import "os/exec"

// terminate kills a speech process outright.
func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
