package persistence

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/pizza-forge/internal/economy"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "save.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	_, found, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if found {
		t.Fatal("found a save in a fresh database")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	snap := economy.Snapshot{
		Version:              economy.SnapshotVersion,
		Balance:              1234.5,
		LifetimeEarned:       9e9,
		TotalClicks:          4242,
		BuildingsOwned:       map[string]int{"rolling-pin": 12, "brick-oven": 3},
		TierUpgradesOwned:    map[string]int{"t1-pin": 1},
		PerksOwned:           map[string]int{"zesty-sauce": 4},
		UnlockedAchievements: []string{"click-1", "slice-1"},
		ClaimedAchievements:  []string{"slice-1"},
		RebirthCount:         2,
		ActiveBonusRemaining: 17.5,
		LastFrenzyEndMs:      1740000000000,
		PendingBonus: &economy.BonusSnapshot{
			Token:       uuid.NewString(),
			X:           0.25,
			Y:           0.75,
			SpawnedAtMs: 1740000001000,
			ExpiresAtMs: 1740000009000,
		},
		SavedAtMs: 1740000002000,
	}
	if err := db.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, found, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !found {
		t.Fatal("save not found after write")
	}

	if loaded.Balance != snap.Balance || loaded.LifetimeEarned != snap.LifetimeEarned ||
		loaded.TotalClicks != snap.TotalClicks || loaded.RebirthCount != snap.RebirthCount ||
		loaded.ActiveBonusRemaining != snap.ActiveBonusRemaining ||
		loaded.LastFrenzyEndMs != snap.LastFrenzyEndMs || loaded.SavedAtMs != snap.SavedAtMs {
		t.Errorf("scalar mismatch: %+v", loaded)
	}
	if loaded.BuildingsOwned["rolling-pin"] != 12 || loaded.BuildingsOwned["brick-oven"] != 3 {
		t.Errorf("buildings = %v", loaded.BuildingsOwned)
	}
	if loaded.PerksOwned["zesty-sauce"] != 4 || loaded.TierUpgradesOwned["t1-pin"] != 1 {
		t.Error("perks/tiers lost")
	}
	if len(loaded.UnlockedAchievements) != 2 || len(loaded.ClaimedAchievements) != 1 {
		t.Errorf("achievements = %v / %v", loaded.UnlockedAchievements, loaded.ClaimedAchievements)
	}
	if loaded.PendingBonus == nil {
		t.Fatal("pending bonus lost")
	}
	if loaded.PendingBonus.Token != snap.PendingBonus.Token ||
		loaded.PendingBonus.ExpiresAtMs != snap.PendingBonus.ExpiresAtMs {
		t.Errorf("pending bonus = %+v", loaded.PendingBonus)
	}
}

func TestSaveWithoutPendingBonus(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveSnapshot(economy.NewState().Snapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, found, err := db.LoadSnapshot()
	if err != nil || !found {
		t.Fatalf("LoadSnapshot: found=%v err=%v", found, err)
	}
	if loaded.PendingBonus != nil {
		t.Error("phantom pending bonus after load")
	}
}

func TestSaveOverwritesSingleSlot(t *testing.T) {
	db := openTestDB(t)

	first := economy.NewState().Snapshot()
	first.Balance = 100
	second := economy.NewState().Snapshot()
	second.Balance = 999

	if err := db.SaveSnapshot(first); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveSnapshot(second); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := db.LoadSnapshot()
	if err != nil || !found {
		t.Fatalf("LoadSnapshot: found=%v err=%v", found, err)
	}
	if loaded.Balance != 999 {
		t.Errorf("balance = %v, want the later save", loaded.Balance)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("flavor", "margherita"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMeta("flavor", "diavola"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMeta("flavor")
	if err != nil {
		t.Fatal(err)
	}
	if v != "diavola" {
		t.Errorf("meta = %q, want last write", v)
	}
}

func TestSaveIDStable(t *testing.T) {
	db := openTestDB(t)

	first, err := db.SaveID()
	if err != nil {
		t.Fatalf("SaveID: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("save id %q is not a UUID", first)
	}

	second, err := db.SaveID()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("save id changed: %q then %q", first, second)
	}
}
