// Package engine drives the economy in real time. A single goroutine owns
// the game: the heartbeat tick and every player action run on the same
// loop, so no two mutations can ever interleave and the economy needs no
// locks.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/pizza-forge/internal/economy"
)

// DefaultInterval is the heartbeat period. The accrual math is
// frame-rate-independent; the interval only sets granularity.
const DefaultInterval = 50 * time.Millisecond

// Engine runs the tick loop and serializes all access to the game.
type Engine struct {
	Game     *economy.Game
	Interval time.Duration
	Speed    float64 // simulated seconds per wall second; 0 pauses accrual

	// Now is the clock; tests swap it for a synthetic one.
	Now func() time.Time

	actions  chan func()
	stop     chan struct{}
	stopOnce sync.Once

	lastTick time.Time
}

// New creates an engine around a game with default settings.
func New(g *economy.Game) *Engine {
	return &Engine{
		Game:     g,
		Interval: DefaultInterval,
		Speed:    1,
		Now:      time.Now,
		actions:  make(chan func()),
		stop:     make(chan struct{}),
	}
}

// Run starts the loop and blocks until Stop. The dt reference starts at
// "now", so time before Run (or while paused) is never credited.
func (e *Engine) Run() {
	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	e.lastTick = e.Now()
	slog.Info("engine started", "interval", e.Interval)

	for {
		select {
		case <-e.stop:
			slog.Info("engine stopped")
			return
		case fn := <-e.actions:
			fn()
		case <-ticker.C:
			now := e.Now()
			if e.Speed <= 0 {
				// Paused: drop the elapsed interval instead of banking it.
				e.lastTick = now
				continue
			}
			dt := now.Sub(e.lastTick).Seconds() * e.Speed
			e.lastTick = now
			e.Game.Tick(now, dt)
		}
	}
}

// Stop halts the loop. Safe to call more than once; after Stop no further
// mutation happens and pending Do calls return false.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Do runs fn on the engine goroutine and waits for it to finish. This is
// the only door through which other goroutines (HTTP handlers, the save
// timer) may touch the game. Returns false if the engine has stopped.
func (e *Engine) Do(fn func(g *economy.Game)) bool {
	done := make(chan struct{})
	select {
	case e.actions <- func() {
		fn(e.Game)
		close(done)
	}:
		<-done
		return true
	case <-e.stop:
		return false
	}
}

// SetSpeed adjusts the heartbeat multiplier from the admin surface.
// Anything <= 0 pauses passive accrual.
func (e *Engine) SetSpeed(speed float64) {
	e.Do(func(*economy.Game) { e.Speed = speed })
}
