package game

import (
	"github.com/pthm-cable/reef/components"
)

// EntityView is a read-only copy of one entity for renderers.
type EntityView struct {
	X, Y   float64
	Size   float64
	DX, DY float64 // facing, zero for food and bubbles
	Health float64
}

// Snapshot is a read-only copy of the whole arena.
type Snapshot struct {
	Session  string
	State    State
	Tick     int64
	SimTime  float64
	Score    int
	Width    float64
	Height   float64
	Player   EntityView
	Small    []EntityView
	Enemy    []EntityView
	Food     []EntityView
	Bubbles  []EntityView
	GameOver bool
}

// Snapshot copies every entity out of the world. State is left zero;
// Driver fills it in.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Session:  g.Session(),
		Tick:     g.tick,
		SimTime:  g.simTime,
		Score:    g.score,
		Width:    g.bounds.Width,
		Height:   g.bounds.Height,
		GameOver: g.over,
		Player: EntityView{
			X:      g.player.Pos.X,
			Y:      g.player.Pos.Y,
			Size:   g.player.Body.Size,
			DX:     g.player.Dir.DX,
			DY:     g.player.Dir.DY,
			Health: g.player.Vitals.Health,
		},
		Small:   make([]EntityView, 0, g.numFish[components.KindSmall]),
		Enemy:   make([]EntityView, 0, g.numFish[components.KindEnemy]),
		Food:    make([]EntityView, 0, g.numFood),
		Bubbles: make([]EntityView, 0, g.numBubbles),
	}

	fq := g.fishFilter.Query()
	for fq.Next() {
		pos, dir, body, vit, fish := fq.Get()
		v := EntityView{X: pos.X, Y: pos.Y, Size: body.Size, DX: dir.DX, DY: dir.DY, Health: vit.Health}
		if fish.Kind == components.KindEnemy {
			s.Enemy = append(s.Enemy, v)
		} else {
			s.Small = append(s.Small, v)
		}
	}

	dq := g.foodFilter.Query()
	for dq.Next() {
		pos, body, _ := dq.Get()
		s.Food = append(s.Food, EntityView{X: pos.X, Y: pos.Y, Size: body.Size})
	}

	bq := g.bubbleFilter.Query()
	for bq.Next() {
		pos, body, _ := bq.Get()
		s.Bubbles = append(s.Bubbles, EntityView{X: pos.X, Y: pos.Y, Size: body.Size})
	}

	return s
}
