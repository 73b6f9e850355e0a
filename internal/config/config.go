package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	TTS      TTSConfig      `mapstructure:"tts"`
	Library  LibraryConfig  `mapstructure:"library"`
	Progress ProgressConfig `mapstructure:"progress"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
	Reader   ReaderConfig   `mapstructure:"reader"`
}

type TTSConfig struct {
	Type            string              `mapstructure:"type"`
	CachePath       string              `mapstructure:"cache_path"`
	CredentialsFile string              `mapstructure:"credentials_file"`
	PreferredVoices map[string][]string `mapstructure:"preferred_voices"`
}

type LibraryConfig struct {
	URL      string        `mapstructure:"url"`
	CacheDir string        `mapstructure:"cache_dir"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

type ProgressConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ReaderConfig struct {
	Example bool `mapstructure:"example"`
}

func SetDefaults() {
	viper.SetDefault("tts.type", "auto") // Auto-select best engine
	viper.SetDefault("tts.cache_path", filepath.Join(dataDir(), "audio"))
	viper.SetDefault("tts.credentials_file", "")
	viper.SetDefault("tts.preferred_voices", map[string][]string{})

	viper.SetDefault("library.url", "")
	viper.SetDefault("library.cache_dir", filepath.Join(dataDir(), "cache"))
	viper.SetDefault("library.max_age", 24*time.Hour)

	viper.SetDefault("progress.path", filepath.Join(dataDir(), "progress.json"))
	viper.SetDefault("metrics.addr", "")

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("reader.example", false)
}

// Init points viper at parallelstory.yaml and the PARALLELSTORY_ environment.
// A missing config file is not an error.
func Init() error {
	SetDefaults()

	viper.SetConfigName("parallelstory")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.parallelstory")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("PARALLELSTORY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load decodes the current viper state.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// ConfigureLogging applies the log level and format to logger.
func ConfigureLogging(logger *logrus.Logger, cfg LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}
	return nil
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parallelstory"
	}
	return filepath.Join(home, ".parallelstory")
}
