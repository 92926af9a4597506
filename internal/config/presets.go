package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. Unknown or empty values mean
// "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Start = 25
		cfg.Jump.JitterPercent = 0
		cfg.Energy.HazardPenalty = 20
		cfg.Energy.Start = cfg.Energy.Min + 50
	case DifficultyNormal:
		cfg.Speed.Start = 30
		cfg.Jump.JitterPercent = 5
		cfg.Energy.HazardPenalty = 30
	case DifficultyHard:
		cfg.Speed.Start = 45
		cfg.Jump.JitterPercent = 10
		cfg.Energy.HazardPenalty = 45
		cfg.Jump.DoubleJumpWindowMs = cfg.Jump.DoubleJumpWindowMs / 2
	}
	if cfg.Speed.Start < cfg.Speed.MinMagnitude {
		cfg.Speed.Start = cfg.Speed.MinMagnitude
	}
}
