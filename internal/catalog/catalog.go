// Package catalog holds the static definitions of everything purchasable:
// buildings, tier upgrades, secret perks, and achievements. The catalog is
// immutable after construction; the economy reads it, never writes it.
package catalog

// Building produces pizzas passively (PPS) or amplifies clicks (PPC).
// Owned counts are unbounded and the price scales geometrically.
type Building struct {
	ID          string
	Name        string
	Description string
	Icon        string
	BasePrice   float64
	PPSBonus    float64 // flat pizzas-per-second per unit owned
	PPCBonus    float64 // flat pizzas-per-click per unit owned
}

// TierUpgrade is a one-time purchase that multiplies the yield of a single
// target building. The price is flat — it never scales.
type TierUpgrade struct {
	ID          string
	TargetID    string // building this upgrade applies to
	Name        string
	Description string
	Icon        string
	BasePrice   float64
	Multiplier  float64
}

// PerkEffect identifies which event-system parameter a secret perk tunes.
type PerkEffect uint8

const (
	EffectGoldenFrequency PerkEffect = iota // golden bonus spawn chance
	EffectFrenzyDuration                    // frenzy window length
	EffectFrenzyPower                       // frenzy yield multiplier
	EffectCriticalClick                     // critical click chance
)

// SecretPerk is an unbounded-level purchase with geometric price scaling.
// Power is the per-level magnitude; how it composes depends on the effect
// (multiplicative for duration, additive for the rest).
type SecretPerk struct {
	ID          string
	Name        string
	Description string
	Icon        string
	BasePrice   float64
	Effect      PerkEffect
	Power       float64
}

// Catalog bundles all static game data with id lookup indexes.
type Catalog struct {
	Buildings    []Building
	TierUpgrades []TierUpgrade
	Perks        []SecretPerk
	Achievements []Achievement

	buildingByID map[string]*Building
	tierByID     map[string]*TierUpgrade
	perkByID     map[string]*SecretPerk
	achByID      map[string]*Achievement
}

// Building returns the building with the given id, or nil.
func (c *Catalog) Building(id string) *Building { return c.buildingByID[id] }

// TierUpgrade returns the tier upgrade with the given id, or nil.
func (c *Catalog) TierUpgrade(id string) *TierUpgrade { return c.tierByID[id] }

// Perk returns the secret perk with the given id, or nil.
func (c *Catalog) Perk(id string) *SecretPerk { return c.perkByID[id] }

// Achievement returns the achievement with the given id, or nil.
func (c *Catalog) Achievement(id string) *Achievement { return c.achByID[id] }

// TiersFor returns all tier upgrades targeting the given building.
func (c *Catalog) TiersFor(buildingID string) []TierUpgrade {
	var out []TierUpgrade
	for _, tu := range c.TierUpgrades {
		if tu.TargetID == buildingID {
			out = append(out, tu)
		}
	}
	return out
}

func (c *Catalog) index() *Catalog {
	c.buildingByID = make(map[string]*Building, len(c.Buildings))
	for i := range c.Buildings {
		c.buildingByID[c.Buildings[i].ID] = &c.Buildings[i]
	}
	c.tierByID = make(map[string]*TierUpgrade, len(c.TierUpgrades))
	for i := range c.TierUpgrades {
		c.tierByID[c.TierUpgrades[i].ID] = &c.TierUpgrades[i]
	}
	c.perkByID = make(map[string]*SecretPerk, len(c.Perks))
	for i := range c.Perks {
		c.perkByID[c.Perks[i].ID] = &c.Perks[i]
	}
	c.achByID = make(map[string]*Achievement, len(c.Achievements))
	for i := range c.Achievements {
		c.achByID[c.Achievements[i].ID] = &c.Achievements[i]
	}
	return c
}

// Default returns the standard pizza catalog.
func Default() *Catalog {
	c := &Catalog{
		Buildings:    defaultBuildings,
		TierUpgrades: defaultTierUpgrades,
		Perks:        defaultPerks,
		Achievements: defaultAchievements,
	}
	return c.index()
}

var defaultBuildings = []Building{
	{ID: "rolling-pin", Name: "Standard Rolling Pin", Description: "Each click yields +1 more pizza.", Icon: "🥖", BasePrice: 15, PPSBonus: 0, PPCBonus: 1},
	{ID: "pizza-stone", Name: "Artisan Pizza Stone", Description: "Bakes 1 pizza every second.", Icon: "🪨", BasePrice: 100, PPSBonus: 1},
	{ID: "brick-oven", Name: "Old World Brick Oven", Description: "Significant heat boost. +5 PPS.", Icon: "🧱", BasePrice: 500, PPSBonus: 5},
	{ID: "delivery-bike", Name: "Turbo Delivery Bike", Description: "Get those pizzas out faster! +20 PPS.", Icon: "🚲", BasePrice: 2000, PPSBonus: 20},
	{ID: "pizzeria", Name: "Downtown Pizzeria", Description: "A dedicated storefront. +80 PPS.", Icon: "🏪", BasePrice: 10000, PPSBonus: 80},
	{ID: "pizza-factory", Name: "Industrial Pizza Plant", Description: "Mass dough production. +400 PPS.", Icon: "🏭", BasePrice: 60000, PPSBonus: 400},
	{ID: "pizza-bank", Name: "The Crust Vault", Description: "Invested dough grows fast. +2,500 PPS.", Icon: "🏦", BasePrice: 350000, PPSBonus: 2500},
	{ID: "pizza-temple", Name: "Ancient Dough Temple", Description: "Divine mozzarella intervention. +15,000 PPS.", Icon: "⛩️", BasePrice: 2e6, PPSBonus: 15000},
	{ID: "pizza-satellite", Name: "Orbiting Topping Beam", Description: "Toppings from above! +100,000 PPS.", Icon: "🛰️", BasePrice: 15e6, PPSBonus: 100000},
	{ID: "pizza-planet", Name: "The Pepperoni Planet", Description: "A world made of meat. +600,000 PPS.", Icon: "🪐", BasePrice: 120e6, PPSBonus: 600000},
	{ID: "dough-hole", Name: "Interstellar Dough Hole", Description: "Pull dough from the void. +4M PPS.", Icon: "🕳️", BasePrice: 1e9, PPSBonus: 4e6},
	{ID: "pizza-nebula", Name: "Mozzarella Nebula", Description: "Celestial cheese clouds. +25M PPS.", Icon: "☁️", BasePrice: 8e9, PPSBonus: 25e6},
	{ID: "crust-core", Name: "Galactic Crust Core", Description: "Heat from the galaxy center. +200M PPS.", Icon: "🌀", BasePrice: 70e9, PPSBonus: 200e6},
	{ID: "quantum-cheese", Name: "Quantum Cheese Strands", Description: "Exists in all states. +1.5B PPS.", Icon: "🧪", BasePrice: 600e9, PPSBonus: 1.5e9},
	{ID: "universal-slicer", Name: "The Universal Slicer", Description: "Slices time itself. +10B PPS.", Icon: "⚔️", BasePrice: 5e12, PPSBonus: 10e9},
	{ID: "dough-dimension", Name: "The Dough Dimension", Description: "Unlimited dough source. +75B PPS.", Icon: "🌌", BasePrice: 45e12, PPSBonus: 75e9},
	{ID: "pizza-god", Name: "The Pepperoni Pantheon", Description: "Gods of the crust bless you. +500B PPS.", Icon: "🔱", BasePrice: 300e12, PPSBonus: 500e9},
	{ID: "time-oven", Name: "Chronos Blast Oven", Description: "Bake pizzas yesterday. +3.5T PPS.", Icon: "⏳", BasePrice: 2e15, PPSBonus: 3.5e12},
	{ID: "cheese-singularity", Name: "Cheesy Singularity", Description: "Density of a trillion pizzas. +25T PPS.", Icon: "🕳️🧀", BasePrice: 15e15, PPSBonus: 25e12},
	{ID: "pizzageddon", Name: "The Pizzageddon Device", Description: "Total culinary collapse. +200T PPS.", Icon: "☢️", BasePrice: 100e15, PPSBonus: 200e12},
	{ID: "dough-black-hole", Name: "Dough Black Hole", Description: "Even light cannot escape this crust. +1.2Qa PPS.", Icon: "🌀🕳️", BasePrice: 800e15, PPSBonus: 1.2e15},
	{ID: "infinite-buffet", Name: "The Infinite Buffet", Description: "Endless rows of golden crust. +8Qa PPS.", Icon: "🍽️✨", BasePrice: 5e18, PPSBonus: 8e15},
	{ID: "dimension-slicer", Name: "Dimension Slicer", Description: "Cut through space-time for toppings. +50Qa PPS.", Icon: "🗡️🌌", BasePrice: 40e18, PPSBonus: 50e15},
	{ID: "pizza-consciousness", Name: "The Pizza Mind", Description: "The universe is just one big pizza. +400Qa PPS.", Icon: "🧠🍕", BasePrice: 300e18, PPSBonus: 400e15},
}

var defaultTierUpgrades = []TierUpgrade{
	{ID: "t1-pin", TargetID: "rolling-pin", Name: "Obsidian Pin", Description: "Rolling Pins are 2x as efficient.", Icon: "🖤", BasePrice: 250, Multiplier: 2},
	{ID: "t1-stone", TargetID: "pizza-stone", Name: "Magma Stone", Description: "Pizza Stones are 2x as efficient.", Icon: "🔥", BasePrice: 1500, Multiplier: 2},
	{ID: "t1-brick", TargetID: "brick-oven", Name: "Blast Furnace", Description: "Brick Ovens are 2x as efficient.", Icon: "🧨", BasePrice: 8000, Multiplier: 2},
	{ID: "t1-bike", TargetID: "delivery-bike", Name: "Nitro Boosters", Description: "Delivery Bikes are 2x as efficient.", Icon: "🧪", BasePrice: 40000, Multiplier: 2},
	{ID: "t1-pizzeria", TargetID: "pizzeria", Name: "Drive-Thru Lane", Description: "Pizzerias are 2x as efficient.", Icon: "🚗", BasePrice: 200000, Multiplier: 2},
}

var defaultPerks = []SecretPerk{
	{ID: "oven-fortune", Name: "Oven Mitts of Fortune", Description: "Golden pizzas appear 2% more often per level.", Icon: "🧤", BasePrice: 50000, Effect: EffectGoldenFrequency, Power: 0.02},
	{ID: "rocket-fuel", Name: "Pepperoni Rocket Fuel", Description: "Frenzy mode lasts 1.1x longer per level.", Icon: "🚀", BasePrice: 125000, Effect: EffectFrenzyDuration, Power: 1.1},
	{ID: "zesty-sauce", Name: "Ultra-Zesty Sauce", Description: "Frenzy multiplier increased by +2.", Icon: "🌶️", BasePrice: 300000, Effect: EffectFrenzyPower, Power: 2},
	{ID: "precision-slice", Name: "Perfect Slice Precision", Description: "Grants a 3% chance for a 5x Critical Click.", Icon: "🎯", BasePrice: 800000, Effect: EffectCriticalClick, Power: 0.03},
}
