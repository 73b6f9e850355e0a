package tts

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"
)

// process tracks the one external speech command an engine may have running.
type process struct {
	mu  sync.Mutex
	cmd *exec.Cmd
	log logrus.FieldLogger
}

// run starts cmd and returns without waiting for it.
func (p *process) run(cmd *exec.Cmd) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return fmt.Errorf("already speaking")
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	p.cmd = cmd

	go func() {
		err := cmd.Wait()

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.cmd != cmd {
			// cancelled, a newer command may be running
			return
		}
		p.cmd = nil
		if err != nil && p.log != nil {
			p.log.WithError(err).Debug("speech process exited")
		}
	}()

	return nil
}

func (p *process) Cancel() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return terminate(cmd)
}

func (p *process) IsSpeaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}
