// Package economy implements the pizza economy core: the mutable ledger,
// derived yield rates, guarded purchase handlers, the random event system,
// and the achievement evaluator. All mutation goes through Game methods;
// the engine drives Tick and the host dispatches player actions.
package economy

import "math"

// PriceGrowth is the geometric scaling factor applied per unit owned.
const PriceGrowth = 1.15

// Price returns the current cost of the next unit given its base price and
// how many are already owned: floor(base * 1.15^owned). Applies to
// buildings and secret perks. Tier upgrades charge their flat base price.
func Price(basePrice float64, owned int) float64 {
	return math.Floor(basePrice * math.Pow(PriceGrowth, float64(owned)))
}

// RebirthGoalBase is the lifetime-earned requirement for the first rebirth.
const RebirthGoalBase = 100_000_000

// RebirthGoal returns the lifetime-earned threshold for rebirth number
// n+1, given n rebirths already performed. Scales x100 per rebirth.
func RebirthGoal(rebirthCount int) float64 {
	return RebirthGoalBase * math.Pow(100, float64(rebirthCount))
}
