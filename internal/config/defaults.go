package config

import (
	_ "embed"
)

//go:embed defaults/xangaroo.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hard-coded default configuration. It mirrors the
// embedded YAML and is used when that cannot be parsed.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:              600,
			Height:             337.5,
			LeftMargin:         50,
			PlayerX:            590,
			PlayerZ:            1,
			PlayerSize:         10,
			FloorThickness:     10,
			BackgroundDepth:    -1000,
			CollisionDepth:     5,
			DisappearDelay:     1.0,
			PrePopulateSeconds: 20,
			PrePopulateStep:    5,
			LandingTolerance:   6,
			HazardWindow:       30,
		},
		Speed: SpeedConfig{
			Start:        30,
			MinMagnitude: 10,
			Unit:         10,
		},
		Energy: EnergyConfig{
			Start:         50,
			Min:           50,
			DefaultJump:   50,
			LandingGain:   20,
			LandingCap:    150,
			HazardPenalty: 30,
			PickupCap:     300,
		},
		Jump: JumpConfig{
			AcceptBeforeMs:      50,
			AcceptAfterMs:       50,
			DoubleJumpWindowMs:  250,
			JitterPercent:       5,
			HeightDistanceRatio: 0.8,
			GravityRatio:        5,
			GravityMax:          50000,
			InitialGravity:      500,
			BaseWeight:          1,
		},
		Trail: TrailConfig{
			FrameStep: 2,
			Size:      3,
		},
		Effects: EffectsConfig{
			FlashSeconds: 0.4,
		},
		ProtectionPriority: []string{"balloon", "helmet"},
		Symbols: []SymbolConfig{
			{
				Name: "rock", Kind: "hazard", Glyph: "▲",
				FirstDistance: ptr(150),
				Interval:      &Range{Min: 250, Max: 500},
				Y:             Range{Min: 327.5, Max: 327.5},
				Size:          Size{W: 10, H: 10},
				EnergyPenalty: ptr(0),
				Patterns: [][]Offset{
					{{0, 0}},
					{{0, 0}, {1, 0}},
					{{0, 0}, {0, -1}},
				},
			},
			{
				Name: "thorn", Kind: "hazard", Glyph: "✶",
				FirstDistance: ptr(400),
				Interval:      &Range{Min: 400, Max: 800},
				Y:             Range{Min: 319.5, Max: 329.5},
				Size:          Size{W: 8, H: 8},
			},
			{
				Name: "log", Kind: "ground", Glyph: "═",
				FirstDistance: ptr(300),
				Interval:      &Range{Min: 500, Max: 900},
				Y:             Range{Min: 250, Max: 290},
				Size:          Size{W: 10, H: 6},
				Patterns: [][]Offset{
					{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
					{{-1, 0}, {0, 0}, {1, 0}},
				},
			},
			{
				Name: "carrot", Kind: "pickup", Glyph: "♦",
				FirstDistance: ptr(200),
				Interval:      &Range{Min: 300, Max: 700},
				Y:             Range{Min: 220, Max: 300},
				Size:          Size{W: 8, H: 8},
				EnergyGain:    40,
			},
			{
				Name: "espresso", Kind: "pickup", Glyph: "+",
				FirstDistance: ptr(1000),
				Interval:      &Range{Min: 1500, Max: 2500},
				Y:             Range{Min: 240, Max: 310},
				Size:          Size{W: 8, H: 8},
				SpeedDelta:    1,
			},
			{
				Name: "hay", Kind: "pickup", Glyph: "-",
				FirstDistance: ptr(1800),
				Interval:      &Range{Min: 1500, Max: 2500},
				Y:             Range{Min: 240, Max: 310},
				Size:          Size{W: 8, H: 8},
				SpeedDelta:    -1,
			},
			{
				Name: "helmet", Kind: "accessory", Glyph: "Ω",
				FirstDistance: ptr(600),
				Interval:      &Range{Min: 1200, Max: 2000},
				Y:             Range{Min: 260, Max: 310},
				Size:          Size{W: 8, H: 8},
				Accessory:     &AccessoryConfig{WeightFactor: 1.2, Protects: true},
			},
			{
				Name: "balloon", Kind: "accessory", Glyph: "o",
				FirstDistance: ptr(2000),
				Interval:      &Range{Min: 2500, Max: 4000},
				Y:             Range{Min: 180, Max: 260},
				Size:          Size{W: 8, H: 8},
				Accessory: &AccessoryConfig{
					WeightFactor:     0.5,
					Protects:         true,
					OverridesControl: true,
					LifetimeSeconds:  6,
				},
			},
			{
				Name: "cloud", Kind: "decoration", Glyph: "~",
				Interval: &Range{Min: 60, Max: 200},
				Y:        Range{Min: 20, Max: 120},
				Depth:    DepthRange{AtYMin: -800, AtYMax: -500},
				Speed:    &Range{Min: -5, Max: 5},
				Size:     Size{W: 10, H: 6},
				Patterns: [][]Offset{
					{{0, 0}, {1, 0}, {2, 0}},
					{{0, 0}, {1, 0}, {1, -1}, {2, 0}},
				},
			},
			{
				Name: "grass", Kind: "decoration", Glyph: "\"",
				Interval: &Range{Min: 20, Max: 60},
				Y:        Range{Min: 331.5, Max: 335.5},
				Depth:    DepthRange{AtYMin: -100, AtYMax: -20},
				Size:     Size{W: 6, H: 6},
			},
			{
				Name: "finish", Kind: "finish", Glyph: "⚑",
				FirstDistance: ptr(30000),
				Y:             Range{Min: 297.5, Max: 297.5},
				Size:          Size{W: 10, H: 40},
			},
		},
		Messages: []MessageConfig{
			{
				Name:           "go",
				RevealDistance: 200,
				RevealX:        250,
				RevealY:        80,
				Cell:           Size{W: 6, H: 8},
				DepthFirstRow:  -200,
				DepthLastRow:   -500,
				DepthJitter:    10,
				Lines: []string{
					" ###   ###   #",
					"#     #   #  #",
					"#  ## #   #  #",
					"#   # #   #   ",
					" ###   ###   #",
				},
			},
		},
	}
}

func ptr(v float64) *float64 {
	return &v
}
