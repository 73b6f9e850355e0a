package tts

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

type EngineType string

const (
	EngineTypeMock          EngineType = "mock"
	EngineTypeESpeak        EngineType = "espeak"
	EngineTypeSay           EngineType = "say"  // macOS only
	EngineTypeSAPI          EngineType = "sapi" // Windows only
	EngineTypeGoogleClassic EngineType = "googleclassic"
	EngineTypeAuto          EngineType = "auto" // Automatically choose best for platform
)

func (e EngineType) String() string {
	return string(e)
}

// mockVoiceDelay is how long the mock takes to report its voices.
const mockVoiceDelay = 50 * time.Millisecond

// NewSynthesizer creates the synthesizer named by cfg.Type.
func NewSynthesizer(cfg Config) (Synthesizer, error) {
	engineType := EngineType(cfg.Type)
	if engineType == "" || engineType == EngineTypeAuto {
		engineType = getBestEngineForPlatform(cfg)
	}

	switch engineType {
	case EngineTypeMock:
		return NewMockEngine(MockVoices(), mockVoiceDelay, nil), nil

	case EngineTypeGoogleClassic:
		return newGoogleClassicEngine(cfg)

	case EngineTypeESpeak:
		return newESpeakEngine()

	case EngineTypeSay:
		if runtime.GOOS != "darwin" {
			return nil, fmt.Errorf("%w: say engine only supports macOS", ErrNotAvailable)
		}
		return newSayEngine()

	case EngineTypeSAPI:
		if runtime.GOOS != "windows" {
			return nil, fmt.Errorf("%w: SAPI engine only supports Windows", ErrNotAvailable)
		}
		return newSAPIEngine()

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, cfg.Type)
	}
}

// getBestEngineForPlatform returns the recommended engine for the current platform
func getBestEngineForPlatform(cfg Config) EngineType {
	if hasGoogleCredentials(cfg) {
		return EngineTypeGoogleClassic
	}

	switch runtime.GOOS {
	case "windows":
		return EngineTypeSAPI
	case "darwin":
		return EngineTypeSay
	default:
		return EngineTypeESpeak // Cross-platform fallback
	}
}

// GetAvailableEngines returns engines available on the current platform
func GetAvailableEngines(cfg Config) []EngineType {
	engines := []EngineType{EngineTypeMock, EngineTypeESpeak}

	if hasGoogleCredentials(cfg) {
		engines = append(engines, EngineTypeGoogleClassic)
	}

	switch runtime.GOOS {
	case "windows":
		engines = append(engines, EngineTypeSAPI)
	case "darwin":
		engines = append(engines, EngineTypeSay)
	}

	return engines
}

// hasGoogleCredentials checks for a configured key file or the standard
// GOOGLE_APPLICATION_CREDENTIALS variable
func hasGoogleCredentials(cfg Config) bool {
	if cfg.CredentialsFile != "" {
		return true
	}
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
