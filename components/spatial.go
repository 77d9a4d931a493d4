package components

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Heading is a unit facing vector. The zero value means no facing.
type Heading struct {
	DX, DY float64
}
