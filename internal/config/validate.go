package config

import (
	"errors"
	"fmt"
)

// Kinds accepted in SymbolConfig.Kind.
var symbolKinds = map[string]bool{
	"hazard":     true,
	"ground":     true,
	"pickup":     true,
	"accessory":  true,
	"decoration": true,
	"finish":     true,
}

// Validate checks the bounds the simulation relies on. The engine itself
// clamps instead of failing, so interval and range errors are caught here.
func Validate(cfg Config) error {
	w := cfg.World
	if w.Width <= 0 || w.Height <= 0 {
		return errors.New("world: width and height must be positive")
	}
	if w.BackgroundDepth >= 0 {
		return fmt.Errorf("world: background_depth must be negative, got %v", w.BackgroundDepth)
	}
	if w.PrePopulateSeconds < 0 || (w.PrePopulateSeconds > 0 && w.PrePopulateStep <= 0) {
		return errors.New("world: prepopulate_step must be positive when prepopulating")
	}
	if cfg.Speed.MinMagnitude <= 0 {
		return errors.New("speed: min_magnitude must be positive")
	}
	if cfg.Speed.Start < cfg.Speed.MinMagnitude {
		return fmt.Errorf("speed: start %v is below min_magnitude %v", cfg.Speed.Start, cfg.Speed.MinMagnitude)
	}
	if cfg.Energy.Min < 0 {
		return errors.New("energy: min must not be negative")
	}
	if cfg.Jump.GravityRatio <= 0 || cfg.Jump.HeightDistanceRatio <= 0 {
		return errors.New("jump: gravity_ratio and height_distance_ratio must be positive")
	}
	if cfg.Jump.BaseWeight < 0 {
		return errors.New("jump: base_weight must not be negative")
	}

	seen := make(map[string]bool, len(cfg.Symbols))
	for i, s := range cfg.Symbols {
		if s.Name == "" {
			return fmt.Errorf("symbols[%d]: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("symbols[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if err := validateSymbol(s); err != nil {
			return fmt.Errorf("symbols[%d] %q: %w", i, s.Name, err)
		}
	}

	for i, m := range cfg.Messages {
		if len(m.Lines) == 0 {
			return fmt.Errorf("messages[%d] %q: lines are required", i, m.Name)
		}
		if m.Cell.W <= 0 || m.Cell.H <= 0 {
			return fmt.Errorf("messages[%d] %q: cell size must be positive", i, m.Name)
		}
		if m.DepthFirstRow <= w.BackgroundDepth || m.DepthLastRow <= w.BackgroundDepth {
			return fmt.Errorf("messages[%d] %q: rows must be in front of the background", i, m.Name)
		}
	}
	return nil
}

func validateSymbol(s SymbolConfig) error {
	if !symbolKinds[s.Kind] {
		return fmt.Errorf("unknown kind %q", s.Kind)
	}
	if s.Interval != nil {
		if s.Interval.Min < 0 || s.Interval.Max < 0 {
			return errors.New("interval bounds must not be negative")
		}
		if s.Interval.Min > s.Interval.Max {
			return errors.New("interval min is greater than max")
		}
	}
	if s.Y.Min > s.Y.Max {
		return errors.New("y min is greater than max")
	}
	if s.Speed != nil && s.Speed.Min > s.Speed.Max {
		return errors.New("speed min is greater than max")
	}
	if s.Size.W <= 0 || s.Size.H <= 0 {
		return errors.New("size must be positive")
	}
	for i, p := range s.Patterns {
		if len(p) == 0 {
			return fmt.Errorf("patterns[%d] is empty", i)
		}
	}
	if s.EnergyPenalty != nil && *s.EnergyPenalty < 0 {
		return errors.New("energy_penalty must not be negative")
	}
	if s.Kind == "accessory" && s.Accessory == nil {
		return errors.New("accessory kind requires an accessory block")
	}
	if s.Accessory != nil && s.Accessory.WeightFactor < 0 {
		return errors.New("accessory weight_factor must not be negative")
	}
	return nil
}
