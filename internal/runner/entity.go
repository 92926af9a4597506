package runner

import (
	"fmt"

	"github.com/sleewja/xangaroo/internal/core"
)

// Kind tags what a world entity is. Reactions are looked up by kind.
type Kind int

const (
	KindHazard Kind = iota
	KindGround
	KindPickup
	KindAccessory
	KindDecoration
	KindFinish
	KindMessageCell
	KindPlayer
)

var kindNames = map[Kind]string{
	KindHazard:      "hazard",
	KindGround:      "ground",
	KindPickup:      "pickup",
	KindAccessory:   "accessory",
	KindDecoration:  "decoration",
	KindFinish:      "finish",
	KindMessageCell: "message",
	KindPlayer:      "player",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a config kind name to a Kind. Only spawnable kinds parse.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "hazard":
		return KindHazard, true
	case "ground":
		return KindGround, true
	case "pickup":
		return KindPickup, true
	case "accessory":
		return KindAccessory, true
	case "decoration":
		return KindDecoration, true
	case "finish":
		return KindFinish, true
	}
	return 0, false
}

// Entity is anything placed in the world: obstacles, pickups, decorations,
// message cells, the floor and the player body.
type Entity struct {
	ID    uint64
	Kind  Kind
	Pos   core.Vec // top-left, world pixels
	W, H  float64
	Depth float64 // 0 is the player's plane, negative is farther away
	VX    float64 // on-screen horizontal velocity
	Glyph rune

	Spec    *SymbolSpec  // rule that spawned it, nil for floor, player and message cells
	Message *MessageSpec // banner it belongs to, for message cells

	Static bool // never moved, rescaled or culled
	Spent  bool // hazard that already took its hit

	parent   *Entity
	offset   core.Vec
	children []*Entity
	dead     bool
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.NewBox(e.Pos.X, e.Pos.Y, e.W, e.H)
}

// Bottom returns the y of the entity's lower edge.
func (e *Entity) Bottom() float64 {
	return e.Pos.Y + e.H
}

// Parent returns the entity this one is attached to, or nil.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns the attached entities in attachment order.
func (e *Entity) Children() []*Entity {
	return e.children
}

// Dead reports whether the entity has been destroyed.
func (e *Entity) Dead() bool {
	return e.dead
}

// Name returns the name of the rule or banner that produced the entity.
func (e *Entity) Name() string {
	switch {
	case e.Spec != nil:
		return e.Spec.Name
	case e.Message != nil:
		return e.Message.Name
	}
	return e.Kind.String()
}

// Attach makes child follow e at its current relative position. A child has
// at most one parent: attaching it elsewhere detaches it first.
func (e *Entity) Attach(child *Entity) {
	if child == e || child.parent == e {
		return
	}
	if child.parent != nil {
		child.parent.Detach(child)
	}
	child.parent = e
	child.offset = child.Pos.Sub(e.Pos)
	child.VX = 0
	e.children = append(e.children, child)
}

// Detach releases child. It reports false if child was not attached to e.
func (e *Entity) Detach(child *Entity) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			child.offset = core.Vec{}
			return true
		}
	}
	return false
}

// follow moves attached entities with their parent, depth first.
func (e *Entity) follow() {
	for _, c := range e.children {
		c.Pos = e.Pos.Add(c.offset)
		c.follow()
	}
}

// World owns the live entities of a run.
type World struct {
	entities []*Entity
	nextID   uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{entities: make([]*Entity, 0, 128)}
}

// Add registers an entity and assigns its ID.
func (w *World) Add(e *Entity) *Entity {
	w.nextID++
	e.ID = w.nextID
	w.entities = append(w.entities, e)
	return e
}

// Entities returns all live entities in creation order.
func (w *World) Entities() []*Entity {
	return w.entities
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Moving returns the entities that scroll with the world: not static and
// not attached to anything.
func (w *World) Moving() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if !e.Static && e.parent == nil && !e.dead {
			out = append(out, e)
		}
	}
	return out
}

// Destroy marks e and everything attached to it as dead. Dead entities are
// removed from the world by Sweep.
func (w *World) Destroy(e *Entity) {
	if e.dead {
		return
	}
	if e.parent != nil {
		e.parent.Detach(e)
	}
	e.dead = true
	for len(e.children) > 0 {
		w.Destroy(e.children[0])
	}
}

// Sweep removes destroyed entities.
func (w *World) Sweep() {
	live := w.entities[:0]
	for _, e := range w.entities {
		if !e.dead {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = live
}

// Advance moves free entities by their velocity, then carries attached
// entities along with their parents.
func (w *World) Advance(dt float64) {
	for _, e := range w.entities {
		if e.Static || e.parent != nil || e.dead {
			continue
		}
		e.Pos.X += e.VX * dt
	}
	w.FollowParents()
}

// FollowParents snaps attached entities to their parents' positions.
func (w *World) FollowParents() {
	for _, e := range w.entities {
		if e.parent == nil && len(e.children) > 0 {
			e.follow()
		}
	}
}

// Reset removes every entity.
func (w *World) Reset() {
	for i := range w.entities {
		w.entities[i] = nil
	}
	w.entities = w.entities[:0]
	w.nextID = 0
}
