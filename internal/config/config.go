// Package config loads the snake's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tonobo/battlesnake-lookahead/internal/engine"
	"github.com/tonobo/battlesnake-lookahead/internal/logging"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server     Server     `yaml:"server"`
	Log        Log        `yaml:"log"`
	Appearance Appearance `yaml:"appearance"`
	Food       Food       `yaml:"food"`
	Lookahead  Lookahead  `yaml:"lookahead"`
	Feed       Feed       `yaml:"feed"`
}

type Server struct {
	Listen string `yaml:"listen"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Appearance is reported on GET /.
type Appearance struct {
	Author string `yaml:"author"`
	Color  string `yaml:"color"`
	Head   string `yaml:"head"`
	Tail   string `yaml:"tail"`
}

type Food struct {
	Buffer             int  `yaml:"buffer"`
	CriticalHealth     int  `yaml:"critical_health"`
	LegacySecondTarget bool `yaml:"legacy_second_target"`
}

type Lookahead struct {
	Mobility bool `yaml:"mobility"`
}

type Feed struct {
	Enabled bool `yaml:"enabled"`
}

func Default() *Config {
	return &Config{
		Server: Server{Listen: ":8080"},
		Log:    Log{Level: "info"},
		Appearance: Appearance{
			Color: "#93E9BE",
			Head:  "nr-rocket",
			Tail:  "coffee",
		},
		Food: Food{
			Buffer:         engine.DefaultFoodBuffer,
			CriticalHealth: engine.DefaultCriticalHealth,
		},
		Lookahead: Lookahead{Mobility: true},
		Feed:      Feed{Enabled: true},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("%w: server.listen is empty", ErrInvalidConfig)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Food.Buffer < 0 {
		return fmt.Errorf("%w: food.buffer must not be negative", ErrInvalidConfig)
	}
	if c.Food.CriticalHealth < 0 {
		return fmt.Errorf("%w: food.critical_health must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) FoodPolicy() engine.FoodPolicy {
	return engine.FoodPolicy{
		Buffer:             c.Food.Buffer,
		CriticalHealth:     c.Food.CriticalHealth,
		LegacySecondTarget: c.Food.LegacySecondTarget,
	}
}

func (c *Config) LookaheadPolicy() engine.Lookahead {
	return engine.Lookahead{Mobility: c.Lookahead.Mobility}
}
