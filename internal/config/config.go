package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/internal/usecase/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidBoard   = errors.New("invalid board config")
	ErrInvalidGoal    = errors.New("invalid goal config")
	ErrInvalidPlayers = errors.New("invalid players config")
	ErrInvalidLoop    = errors.New("invalid loop config")
)

const (
	playerCount = 2
	minLines    = 2
)

type BoardConfig struct {
	Columns int     `yaml:"columns" env:"XOXO_BOARD_COLUMNS"`
	Rows    int     `yaml:"rows" env:"XOXO_BOARD_ROWS"`
	Goal    int     `yaml:"goal" env:"XOXO_BOARD_GOAL"`
	Width   float64 `yaml:"width" env:"XOXO_BOARD_WIDTH"`
	Height  float64 `yaml:"height" env:"XOXO_BOARD_HEIGHT"`
}

type LoopConfig struct {
	TickRate   int `yaml:"tick_rate" env:"XOXO_TICK_RATE"`
	InputEvery int `yaml:"input_every" env:"XOXO_INPUT_EVERY"`
}

type PlayerConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"XOXO_SERVER_ADDR"`
}

type RedisConfig struct {
	Addr string `yaml:"addr" env:"XOXO_REDIS_ADDR"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"XOXO_LOG_LEVEL"`
	File  string `yaml:"file" env:"XOXO_LOG_FILE"`
}

type Config struct {
	Board   BoardConfig    `yaml:"board"`
	Loop    LoopConfig     `yaml:"loop"`
	Players []PlayerConfig `yaml:"players"`
	Server  ServerConfig   `yaml:"server"`
	Redis   RedisConfig    `yaml:"redis"`
	Log     LogConfig      `yaml:"log"`
}

func Default() Config {
	return Config{
		Board: BoardConfig{Columns: 3, Rows: 3, Goal: 3, Width: 300, Height: 300},
		Loop:  LoopConfig{TickRate: 60, InputEvery: 2},
		Players: []PlayerConfig{
			{Name: "Red", Color: "#e0457b"},
			{Name: "Blue", Color: "#3d9be9"},
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// New loads cfgPath over the defaults, applies XOXO_* environment overrides
// and validates the result. An empty path skips the file.
func New(cfgPath string) (Config, error) {
	cfg := Default()
	if cfgPath != "" {
		file, err := os.Open(cfgPath)
		if err != nil {
			return Config{}, err
		}
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, errors.WithMessage(err, "decode yaml config")
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "read env overrides")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	b := c.Board
	if b.Columns < minLines || b.Rows < minLines || b.Width <= 0 || b.Height <= 0 {
		return errors.WithMessagef(ErrInvalidBoard, "%dx%d cells over %vx%v", b.Columns, b.Rows, b.Width, b.Height)
	}
	if b.Goal < minLines || b.Goal > b.Columns || b.Goal > b.Rows {
		return errors.WithMessagef(ErrInvalidGoal, "goal %d on %dx%d", b.Goal, b.Columns, b.Rows)
	}
	if c.Loop.TickRate <= 0 || c.Loop.InputEvery < 1 {
		return errors.WithMessagef(ErrInvalidLoop, "tick rate %d, input every %d", c.Loop.TickRate, c.Loop.InputEvery)
	}
	if len(c.Players) != playerCount {
		return errors.WithMessagef(ErrInvalidPlayers, "need %d players, got %d", playerCount, len(c.Players))
	}
	for _, p := range c.Players {
		if p.Name == "" {
			return errors.WithMessage(ErrInvalidPlayers, "empty player name")
		}
		if _, err := domain.ParseColor(p.Color); err != nil {
			return errors.WithMessage(ErrInvalidPlayers, err.Error())
		}
	}
	return nil
}

// SessionOptions builds game options for a board laid over rect, usually
// BoardRect. Frontends map their on-screen board onto it.
func (c Config) SessionOptions(rect geom.Rect) (game.Options, error) {
	players := make([]domain.PlayerInfo, 0, len(c.Players))
	for i, p := range c.Players {
		color, err := domain.ParseColor(p.Color)
		if err != nil {
			return game.Options{}, errors.WithMessagef(err, "player %d", i)
		}
		players = append(players, domain.PlayerInfo{ID: i, Name: p.Name, Color: color})
	}
	return game.Options{
		Rect:       rect,
		Columns:    c.Board.Columns,
		Rows:       c.Board.Rows,
		Goal:       c.Board.Goal,
		InputEvery: c.Loop.InputEvery,
		Players:    players,
	}, nil
}

func (c Config) BoardRect() geom.Rect {
	return geom.Rect{Width: c.Board.Width, Height: c.Board.Height}
}
