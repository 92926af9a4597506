package core

// RuntimeConfig is passed to the game at (re)start by its host.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the fixed tick duration in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the read-only summary a host needs after each tick.
type GameState struct {
	Distance              float64 // Distance travelled, in world pixels
	Speed                 float64 // Current scroll speed, pixels/second
	EnergyReserve         float64
	ControlledEnergySpent float64
	EnergyForNextJump     float64 // Reserve committed to a latched jump, 0 if none
	GameOver              bool
	Won                   bool
	Paused                bool
}

// Score is the distance travelled, rounded down.
func (s GameState) Score() int {
	return int(s.Distance)
}
