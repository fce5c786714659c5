package economy

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGoldenSpawnOnCheckBoundary(t *testing.T) {
	g := newTestGame(0) // 0.0 < 0.05 base chance, every check spawns

	g.Tick(t0, 14.9)
	if g.State.PendingBonus != nil {
		t.Fatal("bonus spawned before the check interval elapsed")
	}

	g.Tick(t0, 0.1)
	b := g.State.PendingBonus
	if b == nil {
		t.Fatal("no bonus after 15 simulated seconds")
	}
	if b.Token == (uuid.UUID{}) {
		t.Error("bonus token not minted")
	}
	if !b.ExpiresAt.Equal(t0.Add(8 * time.Second)) {
		t.Errorf("ExpiresAt = %v, want spawn+8s", b.ExpiresAt)
	}
}

func TestGoldenSpawnBlockedByRoll(t *testing.T) {
	g := newTestGame(0.9) // 0.9 >= 0.05, roll never passes

	g.Tick(t0, 60)
	if g.State.PendingBonus != nil {
		t.Fatal("bonus spawned against a failing roll")
	}
}

func TestGoldenSpawnBlockedDuringFrenzy(t *testing.T) {
	g := newTestGame(0)
	g.State.ActiveBonusRemaining = 100

	g.Tick(t0, 15)
	if g.State.PendingBonus != nil {
		t.Fatal("bonus spawned while a frenzy was active")
	}
}

func TestGoldenSpawnCooldown(t *testing.T) {
	g := newTestGame(0)
	g.State.LastFrenzyEnd = t0.Add(-10 * time.Second)

	g.Tick(t0, 15)
	if g.State.PendingBonus != nil {
		t.Fatal("bonus spawned inside the 30s cooldown")
	}

	// Well past the cooldown the same check succeeds.
	g2 := newTestGame(0)
	g2.State.LastFrenzyEnd = t0.Add(-40 * time.Second)
	g2.Tick(t0, 15)
	if g2.State.PendingBonus == nil {
		t.Fatal("bonus did not spawn after the cooldown elapsed")
	}
}

func TestGoldenSpawnBlockedByPending(t *testing.T) {
	g := newTestGame(0)
	g.Tick(t0, 15)
	first := g.State.PendingBonus
	if first == nil {
		t.Fatal("no initial spawn")
	}

	// Another full interval within the claim window must not replace it.
	g.Tick(t0.Add(5*time.Second), 3)
	if g.State.PendingBonus != first {
		t.Fatal("pending bonus replaced while still live")
	}
}

func TestGoldenBonusExpires(t *testing.T) {
	g := newTestGame(0)
	g.Tick(t0, 15)
	if g.State.PendingBonus == nil {
		t.Fatal("no spawn")
	}

	g.Tick(t0.Add(9*time.Second), 0)
	if g.State.PendingBonus != nil {
		t.Fatal("bonus survived past its 8s window")
	}
}

func TestClaimGoldenBonusStartsFrenzy(t *testing.T) {
	g := newTestGame(0)
	g.State.PerksOwned["rocket-fuel"] = 1 // duration 30 × 1.1

	g.Tick(t0, 15)
	b := g.State.PendingBonus
	if b == nil {
		t.Fatal("no spawn")
	}

	if !g.ClaimGoldenBonus(b.Token) {
		t.Fatal("claim failed")
	}
	if g.State.PendingBonus != nil {
		t.Error("pending bonus not consumed")
	}
	approx(t, g.State.ActiveBonusRemaining, 33, "frenzy duration")

	// Duplicate claim is a no-op.
	if g.ClaimGoldenBonus(b.Token) {
		t.Fatal("double claim succeeded")
	}
}

func TestClaimWithWrongToken(t *testing.T) {
	g := newTestGame(0)
	g.Tick(t0, 15)
	if g.State.PendingBonus == nil {
		t.Fatal("no spawn")
	}

	if g.ClaimGoldenBonus(uuid.New()) {
		t.Fatal("claim with a foreign token succeeded")
	}
	if g.State.PendingBonus == nil {
		t.Error("bonus consumed by a rejected claim")
	}
	approx(t, g.State.ActiveBonusRemaining, 0, "frenzy after rejected claim")
}

func TestSpawnPositionsInRange(t *testing.T) {
	g := newTestGame(0)
	for i := 0; i < 20; i++ {
		x, y := g.nextSpawnPosition()
		if x < 0 || x > 1 || y < 0 || y > 1 {
			t.Fatalf("spawn position (%v, %v) outside unit square", x, y)
		}
	}
}
