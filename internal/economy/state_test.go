package economy

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewState()
	s.Balance = 1234.5
	s.LifetimeEarned = 9e9
	s.TotalClicks = 4242
	s.BuildingsOwned["rolling-pin"] = 12
	s.BuildingsOwned["brick-oven"] = 3
	s.TierUpgradesOwned["t1-pin"] = 1
	s.PerksOwned["zesty-sauce"] = 4
	s.UnlockedAchievements["slice-1"] = true
	s.UnlockedAchievements["click-1"] = true
	s.ClaimedAchievements["slice-1"] = true
	s.RebirthCount = 2
	s.ActiveBonusRemaining = 17.5
	s.LastFrenzyEnd = time.UnixMilli(1740000000000)
	s.PendingBonus = &GoldenBonus{
		Token:     uuid.New(),
		X:         0.25,
		Y:         0.75,
		SpawnedAt: time.UnixMilli(1740000001000),
		ExpiresAt: time.UnixMilli(1740000009000),
	}

	restored := Restore(s.Snapshot())

	// Compare via a second snapshot; SavedAtMs is a write timestamp, not
	// state, so normalize it out.
	a, b := s.Snapshot(), restored.Snapshot()
	a.SavedAtMs, b.SavedAtMs = 0, 0
	if !reflect.DeepEqual(a, b) {
		t.Errorf("round trip mismatch:\n before: %+v\n after:  %+v", a, b)
	}
}

func TestRestorePartialSnapshot(t *testing.T) {
	// A v1-era save: only balance and clicks, everything else absent.
	restored := Restore(Snapshot{
		Version:     1,
		Balance:     500,
		TotalClicks: 20,
	})

	if restored.Balance != 500 || restored.TotalClicks != 20 {
		t.Error("present fields not restored")
	}
	if restored.BuildingsOwned == nil || restored.PerksOwned == nil ||
		restored.UnlockedAchievements == nil || restored.ClaimedAchievements == nil {
		t.Fatal("missing maps not defaulted")
	}
	if restored.RebirthCount != 0 || restored.PendingBonus != nil {
		t.Error("absent fields should default to zero")
	}
	if !restored.LastFrenzyEnd.IsZero() {
		t.Error("LastFrenzyEnd should stay zero when unset")
	}
}

func TestRestoreClampsCorruptValues(t *testing.T) {
	restored := Restore(Snapshot{
		Balance:              -100,
		LifetimeEarned:       -1,
		RebirthCount:         -3,
		ActiveBonusRemaining: -5,
		BuildingsOwned:       map[string]int{"rolling-pin": -2, "brick-oven": 1},
	})

	if restored.Balance != 0 || restored.LifetimeEarned != 0 {
		t.Error("negative currency not clamped to zero")
	}
	if restored.RebirthCount != 0 || restored.ActiveBonusRemaining != 0 {
		t.Error("negative progression not clamped")
	}
	if _, ok := restored.BuildingsOwned["rolling-pin"]; ok {
		t.Error("negative building count restored")
	}
	if restored.BuildingsOwned["brick-oven"] != 1 {
		t.Error("valid building count lost")
	}
}

func TestRestoreClaimedImpliesUnlocked(t *testing.T) {
	// A tampered save claims an achievement it never unlocked.
	restored := Restore(Snapshot{
		ClaimedAchievements: []string{"slice-2"},
	})

	if !restored.ClaimedAchievements["slice-2"] {
		t.Fatal("claim lost")
	}
	if !restored.UnlockedAchievements["slice-2"] {
		t.Error("claimed achievement must also be unlocked")
	}
}

func TestRestoreDropsMalformedBonusToken(t *testing.T) {
	restored := Restore(Snapshot{
		PendingBonus: &BonusSnapshot{Token: "not-a-uuid", X: 0.5, Y: 0.5},
	})
	if restored.PendingBonus != nil {
		t.Error("bonus with unparseable token should be dropped")
	}
}

func TestSnapshotIsolatedFromState(t *testing.T) {
	s := NewState()
	s.BuildingsOwned["rolling-pin"] = 1

	snap := s.Snapshot()
	s.BuildingsOwned["rolling-pin"] = 99

	if snap.BuildingsOwned["rolling-pin"] != 1 {
		t.Error("snapshot shares map storage with live state")
	}
}
