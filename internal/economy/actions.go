package economy

import "time"

// Player-initiated mutations. Every handler follows the same guard shape:
// compute cost and eligibility, bail out (no-op) if the guard fails, then
// deduct and apply in one step. Failure is a boolean, never an error —
// an unaffordable purchase is normal gameplay, not a fault.

// ClickResult reports what a single click earned.
type ClickResult struct {
	Gain float64 `json:"gain"`
	Crit bool    `json:"crit"`
}

// Click performs one manual pizza press. Draws exactly one uniform sample
// for the crit roll; crit composes multiplicatively on top of frenzy.
func (g *Game) Click() ClickResult {
	s := g.State
	r := g.Rates()

	gain := r.EffectivePPC // base × rebirth × frenzy
	crit := false
	if g.Rand.Float() < r.CritChance {
		gain *= CritMultiplier
		crit = true
	}

	s.TotalClicks++
	s.Balance += gain
	s.LifetimeEarned += gain
	return ClickResult{Gain: gain, Crit: crit}
}

// BuyBuilding purchases one unit of the given building at the current
// scaled price. Returns false without mutating anything if unknown or
// unaffordable.
func (g *Game) BuyBuilding(id string) bool {
	b := g.Cat.Building(id)
	if b == nil {
		return false
	}
	s := g.State
	cost := Price(b.BasePrice, s.BuildingsOwned[id])
	if s.Balance < cost {
		return false
	}
	s.Balance -= cost
	s.BuildingsOwned[id]++
	return true
}

// BuyTierUpgrade purchases a one-time efficiency upgrade at its flat
// price. Requires at least one target building owned and blocks a second
// purchase outright.
func (g *Game) BuyTierUpgrade(id string) bool {
	tu := g.Cat.TierUpgrade(id)
	if tu == nil {
		return false
	}
	s := g.State
	if s.TierUpgradesOwned[id] > 0 {
		return false
	}
	if s.BuildingsOwned[tu.TargetID] < 1 {
		return false
	}
	if s.Balance < tu.BasePrice {
		return false
	}
	s.Balance -= tu.BasePrice
	s.TierUpgradesOwned[id] = 1
	return true
}

// BuyPerk raises a secret perk one level at the current scaled price.
// Levels are unbounded.
func (g *Game) BuyPerk(id string) bool {
	p := g.Cat.Perk(id)
	if p == nil {
		return false
	}
	s := g.State
	cost := Price(p.BasePrice, s.PerksOwned[id])
	if s.Balance < cost {
		return false
	}
	s.Balance -= cost
	s.PerksOwned[id]++
	return true
}

// ClaimAchievement pays out an unlocked, unclaimed achievement. Claiming
// twice is a no-op; the reward is granted exactly once.
func (g *Game) ClaimAchievement(id string) bool {
	a := g.Cat.Achievement(id)
	if a == nil {
		return false
	}
	s := g.State
	if !s.UnlockedAchievements[id] || s.ClaimedAchievements[id] {
		return false
	}
	s.Balance += a.Reward
	s.LifetimeEarned += a.Reward
	s.ClaimedAchievements[id] = true
	return true
}

// Rebirth trades the whole spendable economy for a permanent +0.5x
// multiplier step. Gated on lifetime earnings. Perks, achievements,
// clicks, and lifetime earnings are meta-progression and survive.
func (g *Game) Rebirth() bool {
	s := g.State
	if s.LifetimeEarned < RebirthGoal(s.RebirthCount) {
		return false
	}
	s.RebirthCount++
	s.Balance = 0
	s.BuildingsOwned = make(map[string]int)
	s.TierUpgradesOwned = make(map[string]int)
	s.ActiveBonusRemaining = 0
	s.LastFrenzyEnd = time.Time{}
	s.PendingBonus = nil
	return true
}
