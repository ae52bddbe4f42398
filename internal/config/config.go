// Package config provides YAML-based tuning for the flappy game.
// Each tuning variant ships as an embedded YAML file and can be overridden
// by user files.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all tuning for one game variant.
type FlappyConfig struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Physics     FlappyPhysics   `yaml:"physics"`
	Obstacles   FlappyObstacles `yaml:"obstacles"`
	Avatar      FlappyAvatar    `yaml:"avatar"`
	Speed       SpeedRamp       `yaml:"speed"`
}

// FlappyPhysics defines the avatar's vertical kinematics.
// Units are world units per tick; positive Y points down.
type FlappyPhysics struct {
	Gravity float64 `yaml:"gravity"` // Added to velocity every tick
	Lift    float64 `yaml:"lift"`    // Velocity set by a flap (negative = up)
}

// FlappyObstacles defines obstacle geometry and spawning.
type FlappyObstacles struct {
	Width        float64 `yaml:"width"`
	SpawnPeriod  int     `yaml:"spawn_period"`   // Ticks between spawns
	GapSize      float64 `yaml:"gap_size"`       // Absolute gap; wins over GapRatio when > 0
	GapRatio     float64 `yaml:"gap_ratio"`      // Gap as a fraction of viewport height
	MinTopOffset float64 `yaml:"min_top_offset"` // Lowest possible top segment height
}

// FlappyAvatar defines the avatar's size and horizontal placement.
type FlappyAvatar struct {
	XRatio float64 `yaml:"x_ratio"` // Horizontal spawn position as a fraction of viewport width
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpeedRamp defines the linear obstacle speed increase.
// Speed starts at Base and grows by Increment every Every points.
type SpeedRamp struct {
	Base      float64 `yaml:"base"`
	Increment float64 `yaml:"increment"`
	Every     int     `yaml:"every"`
}

// GapFor returns the gap size for a viewport of the given height.
func (o FlappyObstacles) GapFor(viewportH float64) float64 {
	if o.GapSize > 0 {
		return o.GapSize
	}
	return viewportH * o.GapRatio
}

var (
	ErrInvalidPhysics   = errors.New("config: invalid physics")
	ErrInvalidObstacles = errors.New("config: invalid obstacles")
	ErrInvalidAvatar    = errors.New("config: invalid avatar")
	ErrInvalidSpeed     = errors.New("config: invalid speed ramp")
)

// Validate checks that the tuning can drive a run.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("%w: gravity must be positive, got %v", ErrInvalidPhysics, c.Physics.Gravity))
	}
	if c.Physics.Lift >= 0 {
		errs = append(errs, fmt.Errorf("%w: lift must be negative, got %v", ErrInvalidPhysics, c.Physics.Lift))
	}

	o := c.Obstacles
	if o.Width <= 0 {
		errs = append(errs, fmt.Errorf("%w: width must be positive, got %v", ErrInvalidObstacles, o.Width))
	}
	if o.SpawnPeriod <= 0 {
		errs = append(errs, fmt.Errorf("%w: spawn_period must be positive, got %d", ErrInvalidObstacles, o.SpawnPeriod))
	}
	if o.GapSize <= 0 && (o.GapRatio <= 0 || o.GapRatio >= 1) {
		errs = append(errs, fmt.Errorf("%w: need gap_size > 0 or gap_ratio in (0, 1)", ErrInvalidObstacles))
	}
	if o.MinTopOffset < 0 {
		errs = append(errs, fmt.Errorf("%w: min_top_offset must not be negative", ErrInvalidObstacles))
	}

	a := c.Avatar
	if a.Width <= 0 || a.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size must be positive, got %vx%v", ErrInvalidAvatar, a.Width, a.Height))
	}
	if a.XRatio < 0 || a.XRatio >= 1 {
		errs = append(errs, fmt.Errorf("%w: x_ratio must be in [0, 1), got %v", ErrInvalidAvatar, a.XRatio))
	}

	s := c.Speed
	if s.Base <= 0 {
		errs = append(errs, fmt.Errorf("%w: base must be positive, got %v", ErrInvalidSpeed, s.Base))
	}
	if s.Increment < 0 {
		errs = append(errs, fmt.Errorf("%w: increment must not be negative", ErrInvalidSpeed))
	}
	if s.Every <= 0 {
		errs = append(errs, fmt.Errorf("%w: every must be positive, got %d", ErrInvalidSpeed, s.Every))
	}

	return errors.Join(errs...)
}
