package game

// Observer receives tick and game-over reports. Calls happen on the
// goroutine that drove the frame, outside the driver lock, so observers
// may call back into the driver.
type Observer interface {
	OnTick(TickResult)
	OnGameOver(GameOverEvent)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Tick     func(TickResult)
	GameOver func(GameOverEvent)
}

// OnTick implements Observer.
func (o ObserverFuncs) OnTick(r TickResult) {
	if o.Tick != nil {
		o.Tick(r)
	}
}

// OnGameOver implements Observer.
func (o ObserverFuncs) OnGameOver(e GameOverEvent) {
	if o.GameOver != nil {
		o.GameOver(e)
	}
}
