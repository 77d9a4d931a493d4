// Package telemetry provides arena health tracking, bookmarking, and run output.
package telemetry

import "github.com/pthm-cable/reef/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPlayerAteFish EventType = iota
	EventPlayerAteFood
	EventFishAteFish
	EventFishAteFood
	EventFishSpawn
	EventFoodSpawn
	EventInvalidRemoved
	EventGameOver
)

// Event represents a single telemetry event.
type Event struct {
	Type  EventType
	Tick  int64
	Kind  components.Kind // victim pool for meals, spawned pool for spawns
	Count int
	Size  float64 // player size at the time, or killer size on game over
}

// NewPlayerMealEvent records the player eating count fish of the given pool.
func NewPlayerMealEvent(tick int64, victim components.Kind, count int, playerSize float64) Event {
	return Event{
		Type:  EventPlayerAteFish,
		Tick:  tick,
		Kind:  victim,
		Count: count,
		Size:  playerSize,
	}
}

// NewPlayerFoodEvent records the player eating count food items.
func NewPlayerFoodEvent(tick int64, count int, playerSize float64) Event {
	return Event{
		Type:  EventPlayerAteFood,
		Tick:  tick,
		Count: count,
		Size:  playerSize,
	}
}

// NewFishMealEvent records count fish of the victim pool eaten by other fish.
func NewFishMealEvent(tick int64, victim components.Kind, count int) Event {
	return Event{
		Type:  EventFishAteFish,
		Tick:  tick,
		Kind:  victim,
		Count: count,
	}
}

// NewFishFoodEvent records count food items eaten by fish.
func NewFishFoodEvent(tick int64, count int) Event {
	return Event{
		Type:  EventFishAteFood,
		Tick:  tick,
		Count: count,
	}
}

// NewSpawnEvent records a fish joining a pool.
func NewSpawnEvent(tick int64, kind components.Kind) Event {
	return Event{
		Type:  EventFishSpawn,
		Tick:  tick,
		Kind:  kind,
		Count: 1,
	}
}

// NewFoodSpawnEvent records count food items appearing.
func NewFoodSpawnEvent(tick int64, count int) Event {
	return Event{
		Type:  EventFoodSpawn,
		Tick:  tick,
		Count: count,
	}
}

// NewInvalidRemovedEvent records entities dropped for non-finite state.
func NewInvalidRemovedEvent(tick int64, count int) Event {
	return Event{
		Type:  EventInvalidRemoved,
		Tick:  tick,
		Count: count,
	}
}

// NewGameOverEvent records the player being eaten.
func NewGameOverEvent(tick int64, killer components.Kind, killerSize float64) Event {
	return Event{
		Type:  EventGameOver,
		Tick:  tick,
		Kind:  killer,
		Count: 1,
		Size:  killerSize,
	}
}
