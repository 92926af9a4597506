package runner

// EventType identifies something that happened during a frame.
type EventType int

const (
	EventSpawned EventType = iota
	EventLanded
	EventRebounced
	EventPeakReached
	EventEnergyChanged
	EventSpeedChanged
	EventAccessoryAttached
	EventAccessoryConsumed
	EventGameOver
	EventWon
)

func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventLanded:
		return "landed"
	case EventRebounced:
		return "rebounced"
	case EventPeakReached:
		return "peak"
	case EventEnergyChanged:
		return "energy"
	case EventSpeedChanged:
		return "speed"
	case EventAccessoryAttached:
		return "accessory_attached"
	case EventAccessoryConsumed:
		return "accessory_consumed"
	case EventGameOver:
		return "game_over"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

// Event is emitted by the simulation for hosts, logs and tests.
// Value carries the new energy reserve, scroll speed or jump height,
// depending on Type. Name is the symbol or message involved, if any.
type Event struct {
	Type   EventType
	Name   string
	Value  float64
	Entity *Entity
}
