package catalog

import "testing"

func TestDefaultCounts(t *testing.T) {
	c := Default()
	if got := len(c.Buildings); got != 24 {
		t.Errorf("buildings = %d, want 24", got)
	}
	if got := len(c.TierUpgrades); got != 5 {
		t.Errorf("tier upgrades = %d, want 5", got)
	}
	if got := len(c.Perks); got != 4 {
		t.Errorf("perks = %d, want 4", got)
	}
	if got := len(c.Achievements); got != 16 {
		t.Errorf("achievements = %d, want 16", got)
	}
}

func TestIDsUniqueAcrossCatalog(t *testing.T) {
	c := Default()
	seen := map[string]string{}
	record := func(id, kind string) {
		if prev, ok := seen[id]; ok {
			t.Errorf("id %q used by both %s and %s", id, prev, kind)
		}
		seen[id] = kind
	}
	for _, b := range c.Buildings {
		record(b.ID, "building")
	}
	for _, tu := range c.TierUpgrades {
		record(tu.ID, "tier")
	}
	for _, p := range c.Perks {
		record(p.ID, "perk")
	}
	for _, a := range c.Achievements {
		record(a.ID, "achievement")
	}
}

func TestLookupsResolve(t *testing.T) {
	c := Default()
	for _, b := range c.Buildings {
		if c.Building(b.ID) == nil {
			t.Errorf("Building(%q) = nil", b.ID)
		}
	}
	if c.Building("nope") != nil {
		t.Error("Building of unknown id should be nil")
	}
	if c.Perk("zesty-sauce") == nil || c.TierUpgrade("t1-pin") == nil || c.Achievement("slice-1") == nil {
		t.Error("known ids failed to resolve")
	}
}

func TestTierTargetsExist(t *testing.T) {
	c := Default()
	for _, tu := range c.TierUpgrades {
		if c.Building(tu.TargetID) == nil {
			t.Errorf("tier %q targets unknown building %q", tu.ID, tu.TargetID)
		}
		if tu.Multiplier <= 1 {
			t.Errorf("tier %q multiplier %v does not improve the building", tu.ID, tu.Multiplier)
		}
	}
}

func TestAchievementTargetsExist(t *testing.T) {
	c := Default()
	for _, a := range c.Achievements {
		if a.Kind == KindBuildingOwned && c.Building(a.TargetID) == nil {
			t.Errorf("achievement %q targets unknown building %q", a.ID, a.TargetID)
		}
		if a.Reward <= 0 {
			t.Errorf("achievement %q has no reward", a.ID)
		}
	}
}

func TestTiersFor(t *testing.T) {
	c := Default()
	tiers := c.TiersFor("rolling-pin")
	if len(tiers) != 1 || tiers[0].ID != "t1-pin" {
		t.Errorf("TiersFor(rolling-pin) = %v", tiers)
	}
	if got := c.TiersFor("pizza-consciousness"); got != nil {
		t.Errorf("TiersFor on untargeted building = %v, want nil", got)
	}
}

func TestBuildingPricesAscend(t *testing.T) {
	c := Default()
	prev := 0.0
	for _, b := range c.Buildings {
		if b.BasePrice <= prev {
			t.Errorf("building %q base price %v not above previous %v", b.ID, b.BasePrice, prev)
		}
		prev = b.BasePrice
	}
}
