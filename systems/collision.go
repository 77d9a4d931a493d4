package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// Collides reports whether two circles of the given diameters overlap.
// The threshold is half the summed sizes; touching exactly is not a hit.
func Collides(a components.Position, sizeA float64, b components.Position, sizeB float64) bool {
	return length(a.X-b.X, a.Y-b.Y) < (sizeA+sizeB)/2
}

// FishRef is one fish taking part in a resolution pass.
// Pointers alias ECS storage and stay valid until the world is modified,
// so callers must not add or remove entities while a pass is in flight.
type FishRef struct {
	Entity ecs.Entity
	Pos    *components.Position
	Body   *components.Body
	Vitals *components.Vitals
	Fish   *components.Fish
	Eaten  bool
}

// FoodRef is one food pellet taking part in a resolution pass.
type FoodRef struct {
	Entity ecs.Entity
	Pos    *components.Position
	Body   *components.Body
	Eaten  bool
}

// Rules holds the growth, score and speed parameters used when resolving meals.
type Rules struct {
	Growth      config.GrowthConfig
	Score       config.ScoreConfig
	PlayerCurve config.SpeedCurve
	FishCurves  [components.NumKinds]config.SpeedCurve
}

// RulesFromConfig builds resolution rules from a loaded config.
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		Growth:      cfg.Growth,
		Score:       cfg.Score,
		PlayerCurve: cfg.Player.Curve,
		FishCurves: [components.NumKinds]config.SpeedCurve{
			components.KindSmall: cfg.Small.Curve,
			components.KindEnemy: cfg.Enemy.Curve,
		},
	}
}

// Outcome summarises one resolution pass.
type Outcome struct {
	ScoreGained   int
	PlayerAteFish [components.NumKinds]int
	PlayerAteFood int
	FishLost      [components.NumKinds]int // fish eaten by other fish, by victim pool
	FishAteFood   int

	GameOver   bool
	Killer     components.Kind
	KillerSize float64
}

// Eaten returns the number of entities marked for removal.
func (o Outcome) Eaten() int {
	n := o.PlayerAteFood + o.FishAteFood
	for k := 0; k < components.NumKinds; k++ {
		n += o.PlayerAteFish[k] + o.FishLost[k]
	}
	return n
}

// Resolve applies the eat/grow/die rules for one tick.
//
// Nothing is removed from the slices; losers are marked Eaten and skipped by
// every later check, and the caller compacts storage afterwards. The order is
// player vs fish, player vs food, fish vs fish within a pool, small vs enemy,
// then fish vs food. A fish the player cannot eat ends the pass at once.
func Resolve(player *components.Player, pools [components.NumKinds][]*FishRef, food []*FoodRef, r Rules) Outcome {
	var out Outcome

	for k := 0; k < components.NumKinds; k++ {
		for _, f := range pools[k] {
			if f.Eaten || !Collides(player.Pos, player.Body.Size, *f.Pos, f.Body.Size) {
				continue
			}
			if player.Body.Size > f.Body.Size {
				Grow(&player.Body, &player.Vitals, r.Growth.PlayerEatsFish, r.PlayerCurve)
				out.ScoreGained += r.Score.Fish
				out.PlayerAteFish[k]++
				f.Eaten = true
				continue
			}
			out.GameOver = true
			out.Killer = components.Kind(k)
			out.KillerSize = f.Body.Size
			return out
		}
	}

	for _, fd := range food {
		if fd.Eaten || !Collides(player.Pos, player.Body.Size, *fd.Pos, fd.Body.Size) {
			continue
		}
		Grow(&player.Body, &player.Vitals, r.Growth.PlayerEatsFood, r.PlayerCurve)
		out.ScoreGained += r.Score.Food
		out.PlayerAteFood++
		fd.Eaten = true
	}

	for k := 0; k < components.NumKinds; k++ {
		pool := pools[k]
		for i, a := range pool {
			if a.Eaten {
				continue
			}
			for j, b := range pool {
				if i == j || b.Eaten {
					continue
				}
				if a.Body.Size > b.Body.Size && Collides(*a.Pos, a.Body.Size, *b.Pos, b.Body.Size) {
					r.eat(a, b, &out)
				}
			}
		}
	}

	for _, s := range pools[components.KindSmall] {
		if s.Eaten {
			continue
		}
		for _, e := range pools[components.KindEnemy] {
			if e.Eaten || !Collides(*s.Pos, s.Body.Size, *e.Pos, e.Body.Size) {
				continue
			}
			if s.Body.Size > e.Body.Size {
				r.eat(s, e, &out)
			} else if e.Body.Size > s.Body.Size {
				r.eat(e, s, &out)
				break // s is gone
			}
		}
	}

	for k := 0; k < components.NumKinds; k++ {
		for _, f := range pools[k] {
			if f.Eaten {
				continue
			}
			for _, fd := range food {
				if fd.Eaten || !Collides(*f.Pos, f.Body.Size, *fd.Pos, fd.Body.Size) {
					continue
				}
				Grow(f.Body, f.Vitals, r.Growth.FishEatsFood, r.FishCurves[f.Fish.Kind])
				out.FishAteFood++
				fd.Eaten = true
			}
		}
	}

	return out
}

// eat grows the winner and marks the loser.
func (r Rules) eat(winner, loser *FishRef, out *Outcome) {
	Grow(winner.Body, winner.Vitals, r.Growth.FishEatsFish, r.FishCurves[winner.Fish.Kind])
	loser.Eaten = true
	out.FishLost[loser.Fish.Kind]++
}
