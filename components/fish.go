// Package components defines ECS components for the arena.
package components

// Kind identifies which roaming pool a fish belongs to.
type Kind uint8

const (
	KindSmall Kind = iota
	KindEnemy

	NumKinds = 2
)

// String returns the pool name.
func (k Kind) String() string {
	switch k {
	case KindSmall:
		return "small"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Fish marks a roaming entity and carries its wander state.
type Fish struct {
	Kind        Kind
	WanderTimer float64 // seconds since the last heading change
}

// Food marks a consumable pellet.
type Food struct{}

// Bubble marks a decorative rising bubble.
type Bubble struct {
	Rise float64 // upward speed per frame unit
}

// Player bundles the controllable entity's state.
// The player lives outside the ECS world as a singleton.
type Player struct {
	Pos    Position
	Dir    Heading
	Body   Body
	Vitals Vitals
}
