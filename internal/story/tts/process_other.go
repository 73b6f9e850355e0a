//go:build !unix && !windows

package tts

import "os/exec"

func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
