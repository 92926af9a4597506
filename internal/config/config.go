// Package config provides YAML-based configuration loading for the runner:
// world geometry, jump physics, energy economy and the table of spawn rules.
package config

// Config contains all tunables of a run.
type Config struct {
	World              WorldConfig     `yaml:"world"`
	Speed              SpeedConfig     `yaml:"speed"`
	Energy             EnergyConfig    `yaml:"energy"`
	Jump               JumpConfig      `yaml:"jump"`
	Trail              TrailConfig     `yaml:"trail"`
	Effects            EffectsConfig   `yaml:"effects"`
	ProtectionPriority []string        `yaml:"protection_priority"` // accessory names, most expendable first
	Symbols            []SymbolConfig  `yaml:"symbols"`
	Messages           []MessageConfig `yaml:"messages"`
}

// WorldConfig defines the playfield and perspective parameters.
type WorldConfig struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`      // y of the floor surface
	LeftMargin         float64 `yaml:"left_margin"` // left culling boundary
	PlayerX            float64 `yaml:"player_x"`
	PlayerZ            float64 `yaml:"player_z"`
	PlayerSize         float64 `yaml:"player_size"`
	FloorThickness     float64 `yaml:"floor_thickness"`
	BackgroundDepth    float64 `yaml:"background_depth"` // negative; visual speed is zero there
	CollisionDepth     float64 `yaml:"collision_depth"`  // |z| within which entities can touch the player
	DisappearDelay     float64 `yaml:"disappear_delay"`  // seconds of travel kept past the left boundary
	PrePopulateSeconds float64 `yaml:"prepopulate_seconds"`
	PrePopulateStep    float64 `yaml:"prepopulate_step"`  // synthetic distance increment
	LandingTolerance   float64 `yaml:"landing_tolerance"` // pixels a landing may start below a top edge
	HazardWindow       float64 `yaml:"hazard_window"`     // hits closer than this on the distance axis are one hazard
}

// Right returns the x of the right edge of the playfield.
func (w WorldConfig) Right() float64 {
	return w.LeftMargin + w.Width
}

// SpeedConfig defines scroll speed parameters, in pixels/second.
type SpeedConfig struct {
	Start        float64 `yaml:"start"`
	MinMagnitude float64 `yaml:"min_magnitude"`
	Unit         float64 `yaml:"unit"` // size of one speed-delta step
}

// EnergyConfig defines the stamina economy. Energy is measured in pixels of
// jump height at weight 1.
type EnergyConfig struct {
	Start         float64 `yaml:"start"`
	Min           float64 `yaml:"min"`          // floor, kept for a future default jump
	DefaultJump   float64 `yaml:"default_jump"` // height of a default jump
	LandingGain   float64 `yaml:"landing_gain"` // replenished by a default jump after a descent
	LandingCap    float64 `yaml:"landing_cap"`  // landing gain stops at this reserve
	HazardPenalty float64 `yaml:"hazard_penalty"`
	PickupCap     float64 `yaml:"pickup_cap"`
}

// JumpConfig defines the jump engine parameters.
type JumpConfig struct {
	AcceptBeforeMs      float64 `yaml:"accept_before_ms"`
	AcceptAfterMs       float64 `yaml:"accept_after_ms"` // also the rebounce delay
	DoubleJumpWindowMs  float64 `yaml:"double_jump_window_ms"`
	JitterPercent       float64 `yaml:"jitter_percent"`
	HeightDistanceRatio float64 `yaml:"height_distance_ratio"`
	GravityRatio        float64 `yaml:"gravity_ratio"` // fall gravity = rise gravity * ratio
	GravityMax          float64 `yaml:"gravity_max"`
	InitialGravity      float64 `yaml:"initial_gravity"`
	BaseWeight          float64 `yaml:"base_weight"`
}

// TrailConfig defines the footprint trail behind the player.
type TrailConfig struct {
	FrameStep int     `yaml:"frame_step"`
	Size      float64 `yaml:"size"`
}

// EffectsConfig defines transient visual effect markers.
type EffectsConfig struct {
	FlashSeconds float64 `yaml:"flash_seconds"`
}

// Range is a closed interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DepthRange ties depth linearly to the sampled y.
type DepthRange struct {
	AtYMin float64 `yaml:"at_y_min"`
	AtYMax float64 `yaml:"at_y_max"`
}

// Offset is a cell offset within a pattern, in cells of the symbol size.
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// AccessoryConfig describes what an accessory does while worn.
type AccessoryConfig struct {
	WeightFactor     float64 `yaml:"weight_factor"` // multiplies player weight; 0 means float
	Protects         bool    `yaml:"protects"`
	OverridesControl bool    `yaml:"overrides_control"`
	LifetimeSeconds  float64 `yaml:"lifetime_seconds"` // 0 means worn until consumed
}

// SymbolConfig is a declarative spawn rule.
type SymbolConfig struct {
	Name          string           `yaml:"name"`
	Kind          string           `yaml:"kind"` // hazard, ground, pickup, accessory, decoration, finish
	Glyph         string           `yaml:"glyph"`
	FirstDistance *float64         `yaml:"first_distance"` // nil means now
	LastDistance  *float64         `yaml:"last_distance"`  // nil means forever
	Interval      *Range           `yaml:"interval"`       // nil means one-shot
	Y             Range            `yaml:"y"`
	Depth         DepthRange       `yaml:"depth"`
	Speed         *Range           `yaml:"speed"` // own speed, nil means 0
	Size          Size             `yaml:"size"`
	Patterns      [][]Offset       `yaml:"patterns"`
	EnergyPenalty *float64         `yaml:"energy_penalty"` // hazard: nil uses energy.hazard_penalty, 0 means terminal
	EnergyGain    float64          `yaml:"energy_gain"`    // pickup
	SpeedDelta    int              `yaml:"speed_delta"`    // pickup, in speed units
	Accessory     *AccessoryConfig `yaml:"accessory"`
}

// MessageConfig is an ASCII-art banner revealed at a fixed spot on screen.
type MessageConfig struct {
	Name           string   `yaml:"name"`
	Lines          []string `yaml:"lines"`
	RevealDistance float64  `yaml:"reveal_distance"`
	RevealX        float64  `yaml:"reveal_x"`
	RevealY        float64  `yaml:"reveal_y"`
	Cell           Size     `yaml:"cell"`
	DepthFirstRow  float64  `yaml:"depth_first_row"`
	DepthLastRow   float64  `yaml:"depth_last_row"`
	DepthJitter    float64  `yaml:"depth_jitter"`
}
