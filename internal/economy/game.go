package economy

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/pizza-forge/internal/catalog"
	"github.com/talgya/pizza-forge/internal/entropy"
)

// Game binds the catalog, the ledger, and the randomness source. It has a
// single-writer discipline: every method that mutates State must be called
// from the engine goroutine (directly in the tick, or via dispatch).
type Game struct {
	Cat   *catalog.Catalog
	State *State
	Rand  entropy.Source

	// Smooth drift for golden bonus spawn coordinates. Cosmetic only.
	spawnNoise opensimplex.Noise
	spawnT     float64

	// Seconds accumulated toward the next golden spawn check.
	spawnAccum float64
}

// NewGame wires a game around an existing state (fresh or restored).
func NewGame(cat *catalog.Catalog, st *State, src entropy.Source) *Game {
	return &Game{
		Cat:        cat,
		State:      st,
		Rand:       src,
		spawnNoise: opensimplex.NewNormalized(time.Now().UnixNano()),
	}
}

// Rates recomputes all derived values from the current state.
func (g *Game) Rates() Rates {
	return ComputeRates(g.Cat, g.State)
}

// Tick advances the simulation by dt seconds of wall time. Steps run in a
// fixed order: passive accrual, frenzy decay, bonus expiry, spawn check,
// achievement scan. Negative dt (clock went backwards) is treated as 0;
// large dt is credited in full — an idle game pays out for absence.
func (g *Game) Tick(now time.Time, dt float64) {
	if dt < 0 {
		dt = 0
	}
	s := g.State
	r := g.Rates()

	if r.EffectivePPS > 0 && dt > 0 {
		gain := r.EffectivePPS * dt
		s.Balance += gain
		s.LifetimeEarned += gain
	}

	if s.ActiveBonusRemaining > 0 {
		s.ActiveBonusRemaining -= dt
		if s.ActiveBonusRemaining <= 0 {
			s.ActiveBonusRemaining = 0
			s.LastFrenzyEnd = now
		}
	}

	g.expireBonus(now)

	g.spawnAccum += dt
	for g.spawnAccum >= SpawnCheckInterval {
		g.spawnAccum -= SpawnCheckInterval
		g.trySpawnGolden(now)
	}

	g.scanAchievements()
}

// scanAchievements unlocks every achievement whose predicate now holds.
// Unlocking never auto-claims; the reward waits for ClaimAchievement.
func (g *Game) scanAchievements() {
	s := g.State
	for i := range g.Cat.Achievements {
		a := &g.Cat.Achievements[i]
		if s.UnlockedAchievements[a.ID] {
			continue
		}
		if g.achieved(a) {
			s.UnlockedAchievements[a.ID] = true
		}
	}
}

// achieved is the single exhaustive dispatch over achievement kinds.
func (g *Game) achieved(a *catalog.Achievement) bool {
	s := g.State
	switch a.Kind {
	case catalog.KindLifetimeEarned:
		return s.LifetimeEarned >= a.Threshold
	case catalog.KindTotalClicks:
		return float64(s.TotalClicks) >= a.Threshold
	case catalog.KindBuildingOwned:
		return float64(s.BuildingsOwned[a.TargetID]) >= a.Threshold
	case catalog.KindRebirthCount:
		return float64(s.RebirthCount) >= a.Threshold
	case catalog.KindAnyPerk:
		for _, level := range s.PerksOwned {
			if level > 0 {
				return true
			}
		}
		return false
	case catalog.KindAnyTierUpgrade:
		for _, owned := range s.TierUpgradesOwned {
			if owned > 0 {
				return true
			}
		}
		return false
	}
	return false
}
