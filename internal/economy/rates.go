package economy

import (
	"math"

	"github.com/talgya/pizza-forge/internal/catalog"
)

// CritMultiplier is the fixed critical click multiplier. Not perk-scaled.
const CritMultiplier = 5.0

// GoldenSpawnChanceCap bounds the golden bonus probability per check.
const GoldenSpawnChanceCap = 0.5

// Rates holds every derived value computed from catalog + state. It is
// recomputed fresh on demand — cheap at catalog sizes in the tens, and
// recomputing avoids any stale-cache class of bug.
type Rates struct {
	BaseClickYield  float64 // 1 + Σ ppc contributions, before multipliers
	BaseSecondYield float64 // Σ pps contributions, before multipliers

	RebirthMultiplier float64

	FrenzyDuration    float64 // seconds, perk-scaled
	FrenzyPower       float64 // yield multiplier while frenzy is active
	GoldenSpawnChance float64 // per spawn check, capped
	CritChance        float64

	EffectivePPS float64 // passive rate with all multipliers applied
	EffectivePPC float64 // click gain before any crit roll
}

// ComputeRates derives all yield rates and event parameters from the
// current state. Pure: no side effects, no caching.
func ComputeRates(cat *catalog.Catalog, s *State) Rates {
	r := Rates{
		RebirthMultiplier: 1 + 0.5*float64(s.RebirthCount),
		FrenzyDuration:    30,
		FrenzyPower:       7,
		GoldenSpawnChance: 0.05,
	}

	for _, p := range cat.Perks {
		level := s.PerksOwned[p.ID]
		if level == 0 {
			continue
		}
		switch p.Effect {
		case catalog.EffectFrenzyDuration:
			r.FrenzyDuration *= math.Pow(p.Power, float64(level))
		case catalog.EffectFrenzyPower:
			r.FrenzyPower += p.Power * float64(level)
		case catalog.EffectGoldenFrequency:
			r.GoldenSpawnChance += p.Power * float64(level)
		case catalog.EffectCriticalClick:
			r.CritChance += p.Power * float64(level)
		}
	}
	if r.GoldenSpawnChance > GoldenSpawnChanceCap {
		r.GoldenSpawnChance = GoldenSpawnChanceCap
	}

	r.BaseClickYield = 1
	for _, b := range cat.Buildings {
		owned := s.BuildingsOwned[b.ID]
		if owned == 0 {
			continue
		}
		eff := buildingEfficiency(cat, s, b.ID)
		r.BaseClickYield += b.PPCBonus * float64(owned) * eff
		r.BaseSecondYield += b.PPSBonus * float64(owned) * eff
	}

	frenzyFactor := 1.0
	if s.ActiveBonusRemaining > 0 {
		frenzyFactor = r.FrenzyPower
	}
	r.EffectivePPS = r.BaseSecondYield * r.RebirthMultiplier * frenzyFactor
	r.EffectivePPC = r.BaseClickYield * r.RebirthMultiplier * frenzyFactor
	return r
}

// buildingEfficiency is the product of owned tier-upgrade multipliers
// targeting the building. Unowned upgrades contribute factor 1.
func buildingEfficiency(cat *catalog.Catalog, s *State, buildingID string) float64 {
	eff := 1.0
	for _, tu := range cat.TierUpgrades {
		if tu.TargetID != buildingID {
			continue
		}
		if s.TierUpgradesOwned[tu.ID] > 0 {
			eff *= tu.Multiplier
		}
	}
	return eff
}
