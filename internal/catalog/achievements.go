package catalog

// AchievementKind enumerates the predicate shapes an achievement can have.
// Predicates are data, not code: a kind plus a numeric threshold (and a
// target building id where relevant), evaluated by a single dispatch in
// the economy package.
type AchievementKind uint8

const (
	KindLifetimeEarned AchievementKind = iota // lifetimeEarned >= Threshold
	KindTotalClicks                           // totalClicks >= Threshold
	KindBuildingOwned                         // owned(TargetID) >= Threshold
	KindRebirthCount                          // rebirthCount >= Threshold
	KindAnyPerk                               // any perk level > 0
	KindAnyTierUpgrade                        // any tier upgrade owned
)

// Achievement is unlocked automatically when its predicate holds and pays
// Reward once when claimed by the player.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Kind        AchievementKind
	Threshold   float64
	TargetID    string // building id, KindBuildingOwned only
	Reward      float64
}

var defaultAchievements = []Achievement{
	{ID: "slice-1", Name: "First Slice", Description: "10 total pizzas.", Icon: "🍕", Kind: KindLifetimeEarned, Threshold: 10, Reward: 50},
	{ID: "slice-2", Name: "Baking Rookie", Description: "1,000 total pizzas.", Icon: "🧑‍🍳", Kind: KindLifetimeEarned, Threshold: 1000, Reward: 500},
	{ID: "slice-3", Name: "Dough Professional", Description: "10,000 total pizzas.", Icon: "👨‍🍳", Kind: KindLifetimeEarned, Threshold: 10000, Reward: 4000},
	{ID: "secret-access", Name: "Secret Hunter", Description: "100,000 total pizzas.", Icon: "🗝️", Kind: KindLifetimeEarned, Threshold: 100000, Reward: 25000},
	{ID: "slice-4", Name: "Pizza Baron", Description: "1,000,000 total pizzas.", Icon: "💰", Kind: KindLifetimeEarned, Threshold: 1e6, Reward: 200000},
	{ID: "slice-5", Name: "Crust King", Description: "1 Billion total pizzas.", Icon: "👑", Kind: KindLifetimeEarned, Threshold: 1e9, Reward: 50e6},
	{ID: "slice-6", Name: "Universal Baker", Description: "1 Quadrillion total pizzas.", Icon: "✨", Kind: KindLifetimeEarned, Threshold: 1e15, Reward: 1e14},
	{ID: "click-1", Name: "Finger Workout", Description: "100 clicks.", Icon: "👆", Kind: KindTotalClicks, Threshold: 100, Reward: 200},
	{ID: "click-2", Name: "Rapid Tapper", Description: "1,000 clicks.", Icon: "⚡", Kind: KindTotalClicks, Threshold: 1000, Reward: 5000},
	{ID: "click-3", Name: "The Clicker God", Description: "10,000 clicks.", Icon: "💥", Kind: KindTotalClicks, Threshold: 10000, Reward: 1e6},
	{ID: "own-pin-10", Name: "Pin Collector", Description: "10 Rolling Pins.", Icon: "🥖", Kind: KindBuildingOwned, TargetID: "rolling-pin", Threshold: 10, Reward: 500},
	{ID: "own-oven-10", Name: "Master Mason", Description: "10 Brick Ovens.", Icon: "🧱", Kind: KindBuildingOwned, TargetID: "brick-oven", Threshold: 10, Reward: 10000},
	{ID: "rebirth-1", Name: "New Beginning", Description: "Perform your first rebirth.", Icon: "🔄", Kind: KindRebirthCount, Threshold: 1, Reward: 1e6},
	{ID: "rebirth-2", Name: "Persistent Chef", Description: "Perform 5 rebirths.", Icon: "🔁", Kind: KindRebirthCount, Threshold: 5, Reward: 1e9},
	{ID: "perk-buy", Name: "Special Recipe", Description: "Buy your first Secret Perk.", Icon: "🧉", Kind: KindAnyPerk, Reward: 50000},
	{ID: "tier-upgrade", Name: "Research Genius", Description: "Buy your first Research Upgrade.", Icon: "🔬", Kind: KindAnyTierUpgrade, Reward: 100000},
}
