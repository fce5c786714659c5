package economy

import (
	"time"

	"github.com/google/uuid"
)

// Event-system timing constants, all in simulated seconds.
const (
	SpawnCheckInterval = 15.0 // how often a golden spawn is attempted
	SpawnCooldown      = 30.0 // quiet period after a frenzy ends
	BonusLifetime      = 8.0  // how long an unclaimed bonus lingers
)

// trySpawnGolden attempts one golden bonus spawn. Gates: no frenzy active,
// cooldown elapsed since the last frenzy ended, nothing already pending.
// A zero LastFrenzyEnd means no frenzy has ever run, which passes the gate.
func (g *Game) trySpawnGolden(now time.Time) {
	s := g.State
	if s.ActiveBonusRemaining > 0 || s.PendingBonus != nil {
		return
	}
	if !s.LastFrenzyEnd.IsZero() && now.Sub(s.LastFrenzyEnd).Seconds() < SpawnCooldown {
		return
	}
	if g.Rand.Float() >= g.Rates().GoldenSpawnChance {
		return
	}

	x, y := g.nextSpawnPosition()
	s.PendingBonus = &GoldenBonus{
		Token:     uuid.New(),
		X:         x,
		Y:         y,
		SpawnedAt: now,
		ExpiresAt: now.Add(time.Duration(BonusLifetime * float64(time.Second))),
	}
}

// expireBonus removes a pending bonus that outlived its claim window.
func (g *Game) expireBonus(now time.Time) {
	s := g.State
	if s.PendingBonus != nil && now.After(s.PendingBonus.ExpiresAt) {
		s.PendingBonus = nil
	}
}

// ClaimGoldenBonus consumes the pending bonus and starts a frenzy for the
// perk-scaled duration. The token must match; a claim racing against
// expiry or a duplicate claim is a no-op.
func (g *Game) ClaimGoldenBonus(token uuid.UUID) bool {
	s := g.State
	if s.PendingBonus == nil || s.PendingBonus.Token != token {
		return false
	}
	s.PendingBonus = nil
	s.ActiveBonusRemaining = g.Rates().FrenzyDuration
	return true
}

// nextSpawnPosition samples a smooth noise field so consecutive spawns
// drift across the play area instead of teleporting. Coordinates are
// normalized [0,1) hints for the presentation layer.
func (g *Game) nextSpawnPosition() (x, y float64) {
	g.spawnT += 1.7
	x = g.spawnNoise.Eval2(g.spawnT, 0.5)
	y = g.spawnNoise.Eval2(0.5, g.spawnT)
	return x, y
}
