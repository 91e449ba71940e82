package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
)

// DefaultFile is the config file looked for when none is given
const DefaultFile = "blackjack.hcl"

// Config represents the complete configuration
type Config struct {
	Game       GameSettings
	Log        LogSettings
	Display    DisplaySettings
	Simulation SimulationSettings
}

// GameSettings contains round settings
type GameSettings struct {
	MaxHands int   `hcl:"max_hands,optional"`
	Seed     int64 `hcl:"seed,optional"` // 0 seeds from the clock
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"` // empty logs to stderr
}

// DisplaySettings contains terminal settings
type DisplaySettings struct {
	Color string `hcl:"color,optional"`
}

// SimulationSettings contains defaults for the simulate command
type SimulationSettings struct {
	Rounds    int    `hcl:"rounds,optional"`
	Workers   int    `hcl:"workers,optional"`
	Hands     int    `hcl:"hands,optional"`
	Bet       int    `hcl:"bet,optional"`
	Player    string `hcl:"player,optional"`
	StatsFile string `hcl:"stats_file,optional"`
}

// file mirrors Config with every block optional
type file struct {
	Game       *GameSettings       `hcl:"game,block"`
	Log        *LogSettings        `hcl:"log,block"`
	Display    *DisplaySettings    `hcl:"display,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			MaxHands: game.DefaultMaxHands,
		},
		Log: LogSettings{
			Level: "info",
		},
		Display: DisplaySettings{
			Color: string(console.ColorAuto),
		},
		Simulation: SimulationSettings{
			Rounds:  10000,
			Workers: 4,
			Hands:   1,
			Bet:     10,
			Player:  string(bot.KindMimic),
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, filling anything it leaves out from Default
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()

	if g := raw.Game; g != nil {
		if g.MaxHands != 0 {
			config.Game.MaxHands = g.MaxHands
		}
		config.Game.Seed = g.Seed
	}

	if l := raw.Log; l != nil {
		if l.Level != "" {
			config.Log.Level = l.Level
		}
		config.Log.File = l.File
	}

	if d := raw.Display; d != nil && d.Color != "" {
		config.Display.Color = d.Color
	}

	if s := raw.Simulation; s != nil {
		if s.Rounds != 0 {
			config.Simulation.Rounds = s.Rounds
		}
		if s.Workers != 0 {
			config.Simulation.Workers = s.Workers
		}
		if s.Hands != 0 {
			config.Simulation.Hands = s.Hands
		}
		if s.Bet != 0 {
			config.Simulation.Bet = s.Bet
		}
		if s.Player != "" {
			config.Simulation.Player = s.Player
		}
		config.Simulation.StatsFile = s.StatsFile
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.MaxHands < 1 {
		return fmt.Errorf("max_hands must be at least 1, got %d", c.Game.MaxHands)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if _, err := console.ParseColorMode(c.Display.Color); err != nil {
		return err
	}

	s := c.Simulation
	if s.Rounds < 1 {
		return fmt.Errorf("simulation rounds must be at least 1, got %d", s.Rounds)
	}
	if s.Workers < 1 {
		return fmt.Errorf("simulation workers must be at least 1, got %d", s.Workers)
	}
	if s.Hands < 1 || s.Hands > c.Game.MaxHands {
		return fmt.Errorf("simulation hands must be from 1 to %d, got %d", c.Game.MaxHands, s.Hands)
	}
	if s.Bet < 1 {
		return fmt.Errorf("simulation bet must be positive, got %d", s.Bet)
	}
	if !slices.Contains(bot.Kinds, bot.Kind(s.Player)) {
		return fmt.Errorf("invalid simulation player: %s", s.Player)
	}

	return nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorMode returns the parsed colour mode, falling back to auto
func (c *Config) ColorMode() console.ColorMode {
	mode, err := console.ParseColorMode(c.Display.Color)
	if err != nil {
		return console.ColorAuto
	}
	return mode
}
