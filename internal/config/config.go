package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

type Config struct {
	LogLevel   string `yaml:"log-level"   env:"TICTACTOE_LOG_LEVEL"  env-default:"info"`
	Difficulty string `yaml:"difficulty"  env:"TICTACTOE_DIFFICULTY" env-default:"hard"`
	HumanMark  string `yaml:"human-mark"  env:"TICTACTOE_HUMAN_MARK" env-default:"X"`
	NoColor    bool   `yaml:"no-color"    env:"TICTACTOE_NO_COLOR"`
}

// MustLoad - load all configurations from the config.yml file, or from the
// environment alone when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if _, ok := logLevels[that.LogLevel]; !ok {
		return fmt.Errorf("invalid config: %w: %q", apperror.ErrInvalidLogLevel, that.LogLevel)
	}

	if _, err := service.ParseDifficulty(that.Difficulty); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if !that.GetHumanMark().IsPlayer() {
		return fmt.Errorf("invalid config: %w: %q", apperror.ErrInvalidMark, that.HumanMark)
	}

	return nil
}

// GetLogLevel falls back to info for a level Validate would reject.
func (that *Config) GetLogLevel() slog.Level {
	if level, ok := logLevels[that.LogLevel]; ok {
		return level
	}

	return slog.LevelInfo
}

func (that *Config) GetDifficulty() service.Difficulty {
	return service.Difficulty(that.Difficulty)
}

func (that *Config) GetHumanMark() entity.Mark {
	return entity.Mark(that.HumanMark)
}
