package tts

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// SayEngine speaks through the macOS built-in `say` command
type SayEngine struct {
	voiceList
	process

	path string
}

func newSayEngine() (*SayEngine, error) {
	path, err := exec.LookPath("say")
	if err != nil {
		return nil, fmt.Errorf("%w: say not found: %v", ErrNotAvailable, err)
	}

	log := logrus.WithField("engine", EngineTypeSay)
	engine := &SayEngine{
		process: process{log: log},
		path:    path,
	}
	engine.loadVoicesAsync(func() ([]Voice, error) {
		output, err := exec.Command(path, "-v", "?").Output()
		if err != nil {
			return nil, err
		}
		return parseSayVoices(string(output)), nil
	}, func(err error) {
		log.WithError(err).Warn("failed to list say voices")
	})

	return engine, nil
}

func (s *SayEngine) Speak(u Utterance) error {
	return s.run(exec.Command(s.path, sayArgs(u)...))
}

func sayArgs(u Utterance) []string {
	args := []string{}
	if u.Voice.Name != "" {
		args = append(args, "-v", u.Voice.Name)
	}

	// Words per minute, ~175 is normal speech
	args = append(args, "-r", strconv.Itoa(int(175*u.Rate)))

	return append(args, "--", u.Text)
}

// parseSayVoices reads `say -v ?` output:
//
//	Alex                en_US    # Most people recognize me by my voice.
//	Eddy (Spanish (Spain)) es_ES    # ¡Hola! Me llamo Eddy.
func parseSayVoices(output string) []Voice {
	voices := make([]Voice, 0)

	for _, line := range strings.Split(output, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		locale := strings.ReplaceAll(fields[len(fields)-1], "_", "-")
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{
			Name:   name,
			ID:     name,
			Locale: locale,
		})
	}

	return voices
}
