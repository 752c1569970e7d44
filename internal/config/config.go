// Package config loads the solver configuration: the labyrinth layout, the
// store location, search limits and logging.
//
// Values come from built-in defaults, an optional YAML file and MINOTAUR_
// environment variables, in increasing order of precedence. A file without
// a layout section uses the reference labyrinth.
package config

import (
	"fmt"
	"strings"

	"github.com/gitrdm/minotaur/pkg/labyrinth"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyLayout    = "layout"
	KeyStorePath = "store.path"
	KeyMaxSteps  = "solver.max_steps"
	KeyWorkers   = "solver.workers"
	KeyLogLevel  = "log.level"
)

const (
	envPrefix        = "MINOTAUR"
	defaultStorePath = "minotaur.db"
	defaultLogLevel  = "info"
)

// Config is the full configuration.
type Config struct {
	Layout LayoutSpec   `mapstructure:"layout" yaml:"layout"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Solver SolverConfig `mapstructure:"solver" yaml:"solver"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SolverConfig bounds searches. Zero means unbounded steps and one worker
// per CPU.
type SolverConfig struct {
	MaxSteps int64 `mapstructure:"max_steps" yaml:"max_steps"`
	Workers  int   `mapstructure:"workers" yaml:"workers"`
}

// LogConfig sets the logrus level by name.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// LayoutSpec is the textual form of a layout. Rooms are written x:y and
// doors x:y -> x:y.
type LayoutSpec struct {
	Name      string   `mapstructure:"name" yaml:"name"`
	Width     int      `mapstructure:"width" yaml:"width"`
	Height    int      `mapstructure:"height" yaml:"height"`
	Doors     []string `mapstructure:"doors" yaml:"doors"`
	Entrances []string `mapstructure:"entrances" yaml:"entrances"`
	Exits     []string `mapstructure:"exits" yaml:"exits"`
	Hazards   []string `mapstructure:"hazards" yaml:"hazards"`
}

// FromLayout returns the textual form of l.
func FromLayout(l *labyrinth.Layout) LayoutSpec {
	spec := LayoutSpec{
		Name:      l.Name,
		Width:     l.Width,
		Height:    l.Height,
		Doors:     make([]string, len(l.Doors)),
		Entrances: roomStrings(l.Entrances),
		Exits:     roomStrings(l.Exits),
		Hazards:   roomStrings(l.Hazards),
	}
	for i, d := range l.Doors {
		spec.Doors[i] = d.String()
	}
	return spec
}

func roomStrings(rooms []labyrinth.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.String()
	}
	return out
}

// Layout parses and validates the spec.
func (s LayoutSpec) Layout() (*labyrinth.Layout, error) {
	l := &labyrinth.Layout{
		Name:   s.Name,
		Width:  s.Width,
		Height: s.Height,
		Doors:  make([]labyrinth.Door, len(s.Doors)),
	}
	for i, d := range s.Doors {
		door, err := labyrinth.ParseDoor(d)
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", s.Name, err)
		}
		l.Doors[i] = door
	}
	var err error
	if l.Entrances, err = labyrinth.ParseRooms(s.Entrances); err != nil {
		return nil, fmt.Errorf("layout %q entrances: %w", s.Name, err)
	}
	if l.Exits, err = labyrinth.ParseRooms(s.Exits); err != nil {
		return nil, fmt.Errorf("layout %q exits: %w", s.Name, err)
	}
	if l.Hazards, err = labyrinth.ParseRooms(s.Hazards); err != nil {
		return nil, fmt.Errorf("layout %q hazards: %w", s.Name, err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("layout %q: %w", s.Name, err)
	}
	return l, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: FromLayout(labyrinth.Reference()),
		Store:  StoreConfig{Path: defaultStorePath},
		Log:    LogConfig{Level: defaultLogLevel},
	}
}

// Load reads the configuration. An empty path skips the file, so only
// defaults and the environment apply; a named file that cannot be read is
// an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyStorePath, def.Store.Path)
	v.SetDefault(KeyMaxSteps, def.Solver.MaxSteps)
	v.SetDefault(KeyWorkers, def.Solver.Workers)
	v.SetDefault(KeyLogLevel, def.Log.Level)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !v.InConfig(KeyLayout) {
		cfg.Layout = def.Layout
	}
	return cfg, nil
}

// LogLevel parses the configured level.
func (c *Config) LogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
