// Package collide finds overlapping bodies with a resolv spatial hash.
// The grid narrows candidates down to bodies sharing a cell; an exact
// box test then decides contact.
package collide

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/sleewja/xangaroo/internal/core"
)

const (
	tagBody  = "body"
	tagQuery = "query"
)

// Space tracks bodies by key. Bodies outside the bounds are never reported.
type Space[K comparable] struct {
	space   *resolv.Space
	objects map[K]*resolv.Object
	origin  core.Vec // world position of the space's top-left corner
	seen    map[K]bool
}

// NewSpace creates a space covering bounds, hashed into cells of the given size.
func NewSpace[K comparable](bounds core.Box, cell int) *Space[K] {
	if cell <= 0 {
		cell = 16
	}
	return &Space[K]{
		space:   resolv.NewSpace(int(math.Ceil(bounds.W)), int(math.Ceil(bounds.H)), cell, cell),
		objects: make(map[K]*resolv.Object),
		origin:  core.Vec{X: bounds.X, Y: bounds.Y},
		seen:    make(map[K]bool),
	}
}

// Len returns the number of tracked bodies.
func (s *Space[K]) Len() int {
	return len(s.objects)
}

// Sync adds key at box, or moves it there if already tracked.
func (s *Space[K]) Sync(key K, box core.Box) {
	x, y := box.X-s.origin.X, box.Y-s.origin.Y
	s.seen[key] = true
	if obj, ok := s.objects[key]; ok {
		if obj.X == x && obj.Y == y && obj.W == box.W && obj.H == box.H {
			return
		}
		obj.X, obj.Y, obj.W, obj.H = x, y, box.W, box.H
		obj.Update()
		return
	}
	obj := resolv.NewObject(x, y, box.W, box.H, tagBody)
	obj.Data = key
	s.space.Add(obj)
	s.objects[key] = obj
}

// remove stops tracking key.
func (s *Space[K]) remove(key K) {
	if obj, ok := s.objects[key]; ok {
		s.space.Remove(obj)
		delete(s.objects, key)
	}
	delete(s.seen, key)
}

// Prune removes every body not synced since the previous Prune.
func (s *Space[K]) Prune() {
	for key := range s.objects {
		if !s.seen[key] {
			s.remove(key)
		}
	}
	clear(s.seen)
}

// Query returns the keys of tracked bodies overlapping box.
func (s *Space[K]) Query(box core.Box) []K {
	// resolv maps bounds to cells on whole pixels; pad the query box so
	// sub-pixel overlaps across a cell border are not lost.
	q := resolv.NewObject(box.X-s.origin.X-1, box.Y-s.origin.Y-1, box.W+2, box.H+2, tagQuery)
	s.space.Add(q)
	defer s.space.Remove(q)

	check := q.Check(0, 0, tagBody)
	if check == nil {
		return nil
	}
	var out []K
	for _, obj := range check.Objects {
		key, ok := obj.Data.(K)
		if !ok {
			continue
		}
		b := core.NewBox(obj.X+s.origin.X, obj.Y+s.origin.Y, obj.W, obj.H)
		if b.Intersects(box) {
			out = append(out, key)
		}
	}
	return out
}
