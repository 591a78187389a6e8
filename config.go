package ballast

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const DEFAULT_WORKERS = 1

var ErrInvalidConfig = errors.New("ballast: invalid config")

// Config holds the tunables read by the world. A snapshot is taken at the start of each tick.
type Config struct {
	// GravityMagnitude scales every body's Gravity vector (m/s²)
	GravityMagnitude float64 `json:"gravity_magnitude"`
	// Display smoothing: moves shorter than DisplayLockDistance stay hidden for up to DisplayLockDuration seconds
	DisplayLockDistance float64 `json:"display_lock_distance"`
	DisplayLockDuration float64 `json:"display_lock_duration"`
	// TriangleMargin shifts mesh triangles outward along their normal during tests
	TriangleMargin float64 `json:"triangle_margin"`
	// CarryProbeDistance is how far along its gravity a body looks for a supporting floor
	CarryProbeDistance float64 `json:"carry_probe_distance"`
	// Workers is the goroutine count for debug data extraction
	Workers int `json:"workers"`
}

func DefaultConfig() Config {
	return Config{
		GravityMagnitude:    9.81,
		DisplayLockDistance: 0.05,
		DisplayLockDuration: 0.2,
		TriangleMargin:      0.01,
		CarryProbeDistance:  0.1,
		Workers:             DEFAULT_WORKERS,
	}
}

// ParseConfig overlays the JSON document on DefaultConfig and validates the result
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a JSON config file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.GravityMagnitude < 0:
		return fmt.Errorf("%w: gravity_magnitude %v is negative", ErrInvalidConfig, c.GravityMagnitude)
	case c.DisplayLockDistance < 0:
		return fmt.Errorf("%w: display_lock_distance %v is negative", ErrInvalidConfig, c.DisplayLockDistance)
	case c.DisplayLockDuration < 0:
		return fmt.Errorf("%w: display_lock_duration %v is negative", ErrInvalidConfig, c.DisplayLockDuration)
	case c.TriangleMargin < 0:
		return fmt.Errorf("%w: triangle_margin %v is negative", ErrInvalidConfig, c.TriangleMargin)
	case c.CarryProbeDistance <= 0:
		return fmt.Errorf("%w: carry_probe_distance %v must be positive", ErrInvalidConfig, c.CarryProbeDistance)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalidConfig, c.Workers)
	}

	return nil
}
