// Package config loads field, motion, and networking tuning parameters
// from YAML: a Viper instance configured for YAML, unmarshaled into an
// exported struct, with a defaulting step for whatever the file omits.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// Motion holds the bang-bang / planning tuning constants.
type Motion struct {
	VMax                   float64 `mapstructure:"vMax"`
	AMax                   float64 `mapstructure:"aMax"`
	AlphaTolerancePath     float64 `mapstructure:"alphaTolerancePath"`
	AlphaToleranceSetpoint float64 `mapstructure:"alphaToleranceSetpoint"`
	Lookahead              float64 `mapstructure:"lookahead"`
	CollisionStep          float64 `mapstructure:"collisionStep"`
	RRTStepLength          float64 `mapstructure:"rrtStepLength"`
	RRTMaxIterations       int     `mapstructure:"rrtMaxIterations"`
	PosEpsilon             float64 `mapstructure:"posEpsilon"`
	AngleEpsilon           float64 `mapstructure:"angleEpsilon"`
	VelEpsilon             float64 `mapstructure:"velEpsilon"`
}

// Field holds the Division B field defaults, overridable until a vision
// geometry frame arrives and supersedes them.
type Field struct {
	Length    float64 `mapstructure:"length"`
	Width     float64 `mapstructure:"width"`
	GoalWidth float64 `mapstructure:"goalWidth"`
	GoalDepth float64 `mapstructure:"goalDepth"`
}

// Network holds the listen address for the telemetry broadcaster.
type Network struct {
	TelemetryAddr string `mapstructure:"telemetryAddr"`
}

// Config is the process-wide tuning and identity configuration, loaded
// once at startup and passed down by pointer; there is no dynamic reload.
type Config struct {
	TeamColor string  `mapstructure:"teamColor"`
	Field     Field   `mapstructure:"field"`
	Motion    Motion  `mapstructure:"motion"`
	Network   Network `mapstructure:"network"`
}

// Color parses TeamColor ("blue"/"yellow", case sensitive match against
// robot.TeamColor.String()) and defaults to Blue for any other value.
func (c *Config) Color() robot.TeamColor {
	if c.TeamColor == robot.Yellow.String() {
		return robot.Yellow
	}
	return robot.Blue
}

// WithDefaults fills any zero-valued field with its tested default,
// leaving explicit YAML values untouched.
func (c *Config) WithDefaults() *Config {
	if c.TeamColor == "" {
		c.TeamColor = robot.Blue.String()
	}
	if c.Field.Length == 0 {
		c.Field.Length = worldmodel.DefaultLength
	}
	if c.Field.Width == 0 {
		c.Field.Width = worldmodel.DefaultWidth
	}
	if c.Field.GoalWidth == 0 {
		c.Field.GoalWidth = worldmodel.DefaultGoalWidth
	}
	if c.Field.GoalDepth == 0 {
		c.Field.GoalDepth = worldmodel.DefaultGoalDepth
	}
	if c.Motion.VMax == 0 {
		c.Motion.VMax = 5.0
	}
	if c.Motion.AMax == 0 {
		c.Motion.AMax = 4.0
	}
	if c.Motion.AlphaTolerancePath == 0 {
		c.Motion.AlphaTolerancePath = 0.1
	}
	if c.Motion.AlphaToleranceSetpoint == 0 {
		c.Motion.AlphaToleranceSetpoint = 0.05
	}
	if c.Motion.Lookahead == 0 {
		c.Motion.Lookahead = 0.075
	}
	if c.Motion.CollisionStep == 0 {
		c.Motion.CollisionStep = 0.05
	}
	if c.Motion.RRTStepLength == 0 {
		c.Motion.RRTStepLength = 0.1
	}
	if c.Motion.RRTMaxIterations == 0 {
		c.Motion.RRTMaxIterations = 1000
	}
	if c.Motion.PosEpsilon == 0 {
		c.Motion.PosEpsilon = 0.05
	}
	if c.Motion.AngleEpsilon == 0 {
		c.Motion.AngleEpsilon = 0.02
	}
	if c.Motion.VelEpsilon == 0 {
		c.Motion.VelEpsilon = 0.02
	}
	if c.Network.TelemetryAddr == "" {
		c.Network.TelemetryAddr = ":8642"
	}
	return c
}

// FromYaml reads path as a YAML document into a Config, applying defaults
// for anything the file omits. An empty path returns the all-defaults
// Config directly, letting callers run with no config file at all.
func FromYaml(path string) (*Config, error) {
	if path == "" {
		return (&Config{}).WithDefaults(), nil
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg.WithDefaults(), nil
}
