package runner

import (
	"math"
	"slices"

	"github.com/sleewja/xangaroo/internal/collide"
	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

// Detector reports which candidates overlap the player this frame.
type Detector interface {
	Detect(player *Entity, candidates []*Entity) []*Entity
}

// spatialDetector is the default Detector, backed by a collide.Space.
type spatialDetector struct {
	space *collide.Space[*Entity]
}

// NewSpatialDetector creates a detector covering the playfield of cfg with
// a margin on every side for entities entering or leaving the view.
func NewSpatialDetector(cfg config.WorldConfig) Detector {
	margin := math.Max(cfg.Width/4, 64)
	bounds := core.NewBox(
		cfg.LeftMargin-margin,
		-margin,
		cfg.Width+2*margin,
		cfg.Height+cfg.FloorThickness+2*margin,
	)
	return &spatialDetector{space: collide.NewSpace[*Entity](bounds, 32)}
}

func (d *spatialDetector) Detect(player *Entity, candidates []*Entity) []*Entity {
	for _, e := range candidates {
		d.space.Sync(e, e.Box())
	}
	d.space.Prune()
	hits := d.space.Query(player.Box())
	slices.SortFunc(hits, func(a, b *Entity) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return hits
}

// BoxDetector tests every candidate against the player. It is meant for
// small worlds and tests.
type BoxDetector struct{}

func (BoxDetector) Detect(player *Entity, candidates []*Entity) []*Entity {
	var hits []*Entity
	pb := player.Box()
	for _, e := range candidates {
		if pb.Intersects(e.Box()) {
			hits = append(hits, e)
		}
	}
	return hits
}
