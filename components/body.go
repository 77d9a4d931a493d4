package components

// Body holds the collision diameter of an entity.
type Body struct {
	Size float64
}

// Vitals holds movement speed and health.
// Health is carried for display; nothing in the arena damages it.
type Vitals struct {
	Speed  float64
	Health float64
}
