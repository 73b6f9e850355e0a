package tts

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const sapiListScript = `Add-Type -AssemblyName System.Speech;
$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer;
$default = $synth.Voice.Name;
$synth.GetInstalledVoices() | Where-Object { $_.Enabled } | ForEach-Object {
	$v = $_.VoiceInfo;
	"{0}|{1}|{2}" -f $v.Name, $v.Culture.Name, ($v.Name -eq $default)
}`

// Text and voice arrive through the environment so they are never parsed as
// PowerShell.
const sapiSpeakScript = `Add-Type -AssemblyName System.Speech;
$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer;
if ($env:PARALLELSTORY_VOICE) { $synth.SelectVoice($env:PARALLELSTORY_VOICE) }
$synth.Rate = [int]$env:PARALLELSTORY_RATE;
$synth.Volume = [int]$env:PARALLELSTORY_VOLUME;
$synth.Speak($env:PARALLELSTORY_TEXT)`

// SAPIEngine implements Windows SAPI TTS through PowerShell's System.Speech
type SAPIEngine struct {
	voiceList
	process

	powershell string
}

func newSAPIEngine() (*SAPIEngine, error) {
	path, err := exec.LookPath("powershell")
	if err != nil {
		return nil, fmt.Errorf("%w: powershell not found: %v", ErrNotAvailable, err)
	}

	log := logrus.WithField("engine", EngineTypeSAPI)
	engine := &SAPIEngine{
		process:    process{log: log},
		powershell: path,
	}
	engine.loadVoicesAsync(func() ([]Voice, error) {
		output, err := exec.Command(path, "-NoProfile", "-Command", sapiListScript).Output()
		if err != nil {
			return nil, err
		}
		return parseSAPIVoices(string(output)), nil
	}, func(err error) {
		log.WithError(err).Warn("failed to list SAPI voices")
	})

	return engine, nil
}

func (s *SAPIEngine) Speak(u Utterance) error {
	cmd := exec.Command(s.powershell, "-NoProfile", "-Command", sapiSpeakScript)
	cmd.Env = append(os.Environ(), sapiEnv(u)...)
	return s.run(cmd)
}

func sapiEnv(u Utterance) []string {
	// SAPI rate is -10..10 with 0 as normal, volume is 0..100
	rate := int(u.Rate*10) - 10
	volume := int(u.Volume * 100)

	return []string{
		"PARALLELSTORY_TEXT=" + u.Text,
		"PARALLELSTORY_VOICE=" + u.Voice.Name,
		"PARALLELSTORY_RATE=" + strconv.Itoa(rate),
		"PARALLELSTORY_VOLUME=" + strconv.Itoa(volume),
	}
}

// parseSAPIVoices reads `Name|Culture|IsDefault` lines.
func parseSAPIVoices(output string) []Voice {
	voices := make([]Voice, 0)

	for _, line := range strings.Split(output, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "|")
		if len(parts) != 3 || parts[0] == "" {
			continue
		}
		voices = append(voices, Voice{
			Name:    parts[0],
			ID:      parts[0],
			Locale:  parts[1],
			Default: strings.EqualFold(parts[2], "true"),
		})
	}

	return voices
}
