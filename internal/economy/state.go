package economy

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SnapshotVersion is the save schema version. v1/v2 predate the rebirth
// and tier-upgrade layers; anything older than v3 restores field by field
// with defaults for whatever is missing.
const SnapshotVersion = 3

// State is the single source of truth for the economy. It is owned by the
// engine goroutine and mutated only through Game methods.
type State struct {
	Balance        float64 // spendable pizzas, never negative
	LifetimeEarned float64 // monotonic, survives rebirth
	TotalClicks    uint64  // monotonic, survives rebirth

	BuildingsOwned    map[string]int // building id → count
	TierUpgradesOwned map[string]int // tier id → 0/1
	PerksOwned        map[string]int // perk id → level, survives rebirth

	UnlockedAchievements map[string]bool // survives rebirth
	ClaimedAchievements  map[string]bool // subset of unlocked, survives rebirth

	RebirthCount int

	// Transient event-system fields, all reset on rebirth.
	ActiveBonusRemaining float64   // seconds of frenzy left
	LastFrenzyEnd        time.Time // zero value = never frenzied
	PendingBonus         *GoldenBonus
}

// GoldenBonus describes a spawned, claimable golden pizza. The token must
// accompany a claim so stale claims for an expired bonus are no-ops. X/Y
// are cosmetic coordinates in [0,1) for the presentation layer.
type GoldenBonus struct {
	Token     uuid.UUID
	X, Y      float64
	SpawnedAt time.Time
	ExpiresAt time.Time
}

// NewState returns a fresh economy with all defaults.
func NewState() *State {
	return &State{
		BuildingsOwned:       make(map[string]int),
		TierUpgradesOwned:    make(map[string]int),
		PerksOwned:           make(map[string]int),
		UnlockedAchievements: make(map[string]bool),
		ClaimedAchievements:  make(map[string]bool),
	}
}

// Snapshot is the serializable form of State. Field names match the save
// schema; absent fields default on restore.
type Snapshot struct {
	Version              int             `json:"version"`
	Balance              float64         `json:"balance"`
	LifetimeEarned       float64         `json:"lifetime_earned"`
	TotalClicks          uint64          `json:"total_clicks"`
	BuildingsOwned       map[string]int  `json:"buildings_owned"`
	TierUpgradesOwned    map[string]int  `json:"tier_upgrades_owned"`
	PerksOwned           map[string]int  `json:"perks_owned"`
	UnlockedAchievements []string        `json:"achievements_unlocked"`
	ClaimedAchievements  []string        `json:"achievements_claimed"`
	RebirthCount         int             `json:"rebirth_count"`
	ActiveBonusRemaining float64         `json:"active_bonus_remaining"`
	LastFrenzyEndMs      int64           `json:"last_frenzy_end_ms"`
	PendingBonus         *BonusSnapshot  `json:"pending_bonus,omitempty"`
	SavedAtMs            int64           `json:"saved_at_ms"`
}

// BonusSnapshot is the serializable form of a pending golden bonus.
type BonusSnapshot struct {
	Token       string  `json:"token"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	SpawnedAtMs int64   `json:"spawned_at_ms"`
	ExpiresAtMs int64   `json:"expires_at_ms"`
}

// Snapshot returns a read-only copy of the state for persistence.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Version:              SnapshotVersion,
		Balance:              s.Balance,
		LifetimeEarned:       s.LifetimeEarned,
		TotalClicks:          s.TotalClicks,
		BuildingsOwned:       copyCounts(s.BuildingsOwned),
		TierUpgradesOwned:    copyCounts(s.TierUpgradesOwned),
		PerksOwned:           copyCounts(s.PerksOwned),
		UnlockedAchievements: sortedKeys(s.UnlockedAchievements),
		ClaimedAchievements:  sortedKeys(s.ClaimedAchievements),
		RebirthCount:         s.RebirthCount,
		ActiveBonusRemaining: s.ActiveBonusRemaining,
		SavedAtMs:            time.Now().UnixMilli(),
	}
	if !s.LastFrenzyEnd.IsZero() {
		snap.LastFrenzyEndMs = s.LastFrenzyEnd.UnixMilli()
	}
	if b := s.PendingBonus; b != nil {
		snap.PendingBonus = &BonusSnapshot{
			Token:       b.Token.String(),
			X:           b.X,
			Y:           b.Y,
			SpawnedAtMs: b.SpawnedAt.UnixMilli(),
			ExpiresAtMs: b.ExpiresAt.UnixMilli(),
		}
	}
	return snap
}

// Restore builds a State from a possibly partial snapshot. Every missing
// field defaults independently; corrupt values clamp rather than fail.
// The claimed set is forced to stay a subset of unlocked.
func Restore(snap Snapshot) *State {
	s := NewState()
	s.Balance = clampNonNegative(snap.Balance)
	s.LifetimeEarned = clampNonNegative(snap.LifetimeEarned)
	s.TotalClicks = snap.TotalClicks
	if snap.RebirthCount > 0 {
		s.RebirthCount = snap.RebirthCount
	}
	s.ActiveBonusRemaining = clampNonNegative(snap.ActiveBonusRemaining)
	if snap.LastFrenzyEndMs > 0 {
		s.LastFrenzyEnd = time.UnixMilli(snap.LastFrenzyEndMs)
	}

	for id, n := range snap.BuildingsOwned {
		if n > 0 {
			s.BuildingsOwned[id] = n
		}
	}
	for id, n := range snap.TierUpgradesOwned {
		if n > 0 {
			s.TierUpgradesOwned[id] = 1
		}
	}
	for id, n := range snap.PerksOwned {
		if n > 0 {
			s.PerksOwned[id] = n
		}
	}
	for _, id := range snap.UnlockedAchievements {
		s.UnlockedAchievements[id] = true
	}
	for _, id := range snap.ClaimedAchievements {
		// Claimed implies unlocked.
		s.UnlockedAchievements[id] = true
		s.ClaimedAchievements[id] = true
	}

	if b := snap.PendingBonus; b != nil {
		if token, err := uuid.Parse(b.Token); err == nil {
			s.PendingBonus = &GoldenBonus{
				Token:     token,
				X:         b.X,
				Y:         b.Y,
				SpawnedAt: time.UnixMilli(b.SpawnedAtMs),
				ExpiresAt: time.UnixMilli(b.ExpiresAtMs),
			}
		}
	}
	return s
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
