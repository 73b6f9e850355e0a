// Cross-platform eSpeak implementation
package tts

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ESpeakEngine implements Synthesizer using eSpeak/eSpeak-NG
type ESpeakEngine struct {
	voiceList
	process

	path string
	log  logrus.FieldLogger
}

// newESpeakEngine checks the installation and starts enumerating voices
func newESpeakEngine() (*ESpeakEngine, error) {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}

	if err := exec.Command(espeakPath, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	log := logrus.WithField("engine", EngineTypeESpeak)
	engine := &ESpeakEngine{
		process: process{log: log},
		path:    espeakPath,
		log:     log,
	}
	engine.loadVoicesAsync(engine.enumerateVoices, func(err error) {
		engine.log.WithError(err).Warn("failed to list eSpeak voices")
	})

	return engine, nil
}

func findESpeakExecutable() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

func (e *ESpeakEngine) enumerateVoices() ([]Voice, error) {
	output, err := exec.Command(e.path, "--voices").Output()
	if err != nil {
		return nil, err
	}
	return parseESpeakVoices(string(output)), nil
}

func (e *ESpeakEngine) Speak(u Utterance) error {
	return e.run(exec.Command(e.path, espeakArgs(u)...))
}

func espeakArgs(u Utterance) []string {
	args := []string{}
	if u.Voice.ID != "" {
		args = append(args, "-v", u.Voice.ID)
	}

	// Words per minute, eSpeak default is 175
	args = append(args, "-s", strconv.Itoa(int(175*u.Rate)))
	// 0-99, default 50
	args = append(args, "-p", strconv.Itoa(int(50*u.Pitch)))
	// 0-200, default 100
	args = append(args, "-a", strconv.Itoa(int(100*u.Volume)))

	return append(args, "--", u.Text)
}

// parseESpeakVoices reads the table printed by `espeak --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  es             --/M       Spanish_(Spain)    roa/es
func parseESpeakVoices(output string) []Voice {
	lines := strings.Split(output, "\n")
	voices := make([]Voice, 0)

	for i, line := range lines {
		// Skip header line
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		lang := fields[1]
		voices = append(voices, Voice{
			Name:    strings.ReplaceAll(fields[3], "_", " "),
			ID:      lang,
			Locale:  lang,
			Default: lang == "en" || lang == "en-us",
		})
	}

	return voices
}
