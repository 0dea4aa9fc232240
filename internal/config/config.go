package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Game     Game    `yaml:"game"`
	Players  Players `yaml:"players"`
	Redis    Redis   `yaml:"redis"`
}

type Game struct {
	BoardSize    int    `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"3" env-description:"board is board-size x board-size"`
	WinLength    int    `yaml:"win-length" env:"GAME_WIN_LENGTH" env-default:"0" env-description:"marks in a row to win, 0 means board size"`
	AllDiagonals bool   `yaml:"all-diagonals" env:"GAME_ALL_DIAGONALS" env-default:"false" env-description:"count wins on every diagonal, not only the two principal ones"`
	Seed         uint64 `yaml:"seed" env:"GAME_SEED" env-default:"0" env-description:"seed for computer players, 0 picks one from the clock"`
}

type Players struct {
	First  Player `yaml:"first" env-prefix:"PLAYER1_"`
	Second Player `yaml:"second" env-prefix:"PLAYER2_"`
}

type Player struct {
	Kind string `yaml:"kind" env:"KIND" env-description:"human or computer"`
	Mark string `yaml:"mark" env:"MARK" env-description:"single character placed on the board"`
}

type Redis struct {
	Enabled  bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false" env-description:"publish finished rounds to redis"`
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	RoundTTL time.Duration `yaml:"round-ttl" env:"REDIS_ROUND_TTL" env-default:"24h" env-description:"how long a session's round log is kept"`
}

// Load reads the YAML file at path, or only the environment when path is empty, and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	config.applyDefaults()

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// classic game: a human as X against the computer as O
func (that *Config) applyDefaults() {
	if that.Players.First.Kind == "" {
		that.Players.First.Kind = player.KindHuman
	}

	if that.Players.First.Mark == "" {
		that.Players.First.Mark = string(entity.MarkX)
	}

	if that.Players.Second.Kind == "" {
		that.Players.Second.Kind = player.KindComputer
	}

	if that.Players.Second.Mark == "" {
		that.Players.Second.Mark = string(entity.MarkO)
	}
}

func (that *Config) Validate() error {
	if that.Game.BoardSize < 1 {
		return fmt.Errorf("%w: board size %d must be positive", apperror.ErrInvalidConfig, that.Game.BoardSize)
	}

	if that.Game.WinLength < 0 || that.Game.WinLength > that.Game.BoardSize {
		return fmt.Errorf("%w: win length %d must be between 1 and board size %d",
			apperror.ErrInvalidConfig, that.Game.WinLength, that.Game.BoardSize)
	}

	for _, p := range []Player{that.Players.First, that.Players.Second} {
		if p.Kind != player.KindHuman && p.Kind != player.KindComputer {
			return fmt.Errorf("%w: unknown player kind %q", apperror.ErrInvalidConfig, p.Kind)
		}

		if err := entity.Mark(p.Mark).Validate(); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrInvalidConfig, err)
		}
	}

	if that.Players.First.Mark == that.Players.Second.Mark {
		return fmt.Errorf("%w: both players use mark %q", apperror.ErrInvalidConfig, that.Players.First.Mark)
	}

	return nil
}

// EffectiveWinLength resolves the "0 means board size" default.
func (that *Game) EffectiveWinLength() int {
	if that.WinLength == 0 {
		return that.BoardSize
	}

	return that.WinLength
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
