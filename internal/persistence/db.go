// Package persistence stores economy snapshots in SQLite. Writes are
// fire-and-forget from the caller's point of view: a failed save is
// logged and the game plays on.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/pizza-forge/internal/economy"
)

// DB wraps a SQLite connection holding the single save slot.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the save database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save (
		slot INTEGER PRIMARY KEY CHECK (slot = 1),
		version INTEGER NOT NULL,
		balance REAL NOT NULL,
		lifetime_earned REAL NOT NULL,
		total_clicks INTEGER NOT NULL,
		rebirth_count INTEGER NOT NULL,
		active_bonus_remaining REAL NOT NULL,
		last_frenzy_end_ms INTEGER NOT NULL,
		buildings_json TEXT NOT NULL,
		tier_upgrades_json TEXT NOT NULL,
		perks_json TEXT NOT NULL,
		unlocked_json TEXT NOT NULL,
		claimed_json TEXT NOT NULL,
		pending_bonus_json TEXT,
		saved_at_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot writes the snapshot into the single save slot (full
// replace, one transaction).
func (db *DB) SaveSnapshot(snap economy.Snapshot) error {
	buildingsJSON, _ := json.Marshal(snap.BuildingsOwned)
	tiersJSON, _ := json.Marshal(snap.TierUpgradesOwned)
	perksJSON, _ := json.Marshal(snap.PerksOwned)
	unlockedJSON, _ := json.Marshal(snap.UnlockedAchievements)
	claimedJSON, _ := json.Marshal(snap.ClaimedAchievements)

	var pendingJSON any
	if snap.PendingBonus != nil {
		b, _ := json.Marshal(snap.PendingBonus)
		pendingJSON = string(b)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM save"); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO save
		(slot, version, balance, lifetime_earned, total_clicks, rebirth_count,
		 active_bonus_remaining, last_frenzy_end_ms,
		 buildings_json, tier_upgrades_json, perks_json,
		 unlocked_json, claimed_json, pending_bonus_json, saved_at_ms)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.Version, snap.Balance, snap.LifetimeEarned, snap.TotalClicks,
		snap.RebirthCount, snap.ActiveBonusRemaining, snap.LastFrenzyEndMs,
		string(buildingsJSON), string(tiersJSON), string(perksJSON),
		string(unlockedJSON), string(claimedJSON), pendingJSON, snap.SavedAtMs,
	)
	if err != nil {
		return fmt.Errorf("insert save: %w", err)
	}
	return tx.Commit()
}

type saveRow struct {
	Version              int            `db:"version"`
	Balance              float64        `db:"balance"`
	LifetimeEarned       float64        `db:"lifetime_earned"`
	TotalClicks          uint64         `db:"total_clicks"`
	RebirthCount         int            `db:"rebirth_count"`
	ActiveBonusRemaining float64        `db:"active_bonus_remaining"`
	LastFrenzyEndMs      int64          `db:"last_frenzy_end_ms"`
	BuildingsJSON        string         `db:"buildings_json"`
	TierUpgradesJSON     string         `db:"tier_upgrades_json"`
	PerksJSON            string         `db:"perks_json"`
	UnlockedJSON         string         `db:"unlocked_json"`
	ClaimedJSON          string         `db:"claimed_json"`
	PendingBonusJSON     sql.NullString `db:"pending_bonus_json"`
	SavedAtMs            int64          `db:"saved_at_ms"`
}

// LoadSnapshot reads the save slot. The second return is false when no
// save exists yet. Corrupt JSON in any column degrades to that field's
// default rather than failing the load.
func (db *DB) LoadSnapshot() (economy.Snapshot, bool, error) {
	var row saveRow
	err := db.conn.Get(&row, `SELECT version, balance, lifetime_earned, total_clicks,
		rebirth_count, active_bonus_remaining, last_frenzy_end_ms,
		buildings_json, tier_upgrades_json, perks_json,
		unlocked_json, claimed_json, pending_bonus_json, saved_at_ms
		FROM save WHERE slot = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return economy.Snapshot{}, false, nil
	}
	if err != nil {
		return economy.Snapshot{}, false, fmt.Errorf("load save: %w", err)
	}

	snap := economy.Snapshot{
		Version:              row.Version,
		Balance:              row.Balance,
		LifetimeEarned:       row.LifetimeEarned,
		TotalClicks:          row.TotalClicks,
		RebirthCount:         row.RebirthCount,
		ActiveBonusRemaining: row.ActiveBonusRemaining,
		LastFrenzyEndMs:      row.LastFrenzyEndMs,
		SavedAtMs:            row.SavedAtMs,
	}
	if err := json.Unmarshal([]byte(row.BuildingsJSON), &snap.BuildingsOwned); err != nil {
		slog.Warn("corrupt buildings column, defaulting", "error", err)
	}
	if err := json.Unmarshal([]byte(row.TierUpgradesJSON), &snap.TierUpgradesOwned); err != nil {
		slog.Warn("corrupt tier upgrades column, defaulting", "error", err)
	}
	if err := json.Unmarshal([]byte(row.PerksJSON), &snap.PerksOwned); err != nil {
		slog.Warn("corrupt perks column, defaulting", "error", err)
	}
	if err := json.Unmarshal([]byte(row.UnlockedJSON), &snap.UnlockedAchievements); err != nil {
		slog.Warn("corrupt unlocked column, defaulting", "error", err)
	}
	if err := json.Unmarshal([]byte(row.ClaimedJSON), &snap.ClaimedAchievements); err != nil {
		slog.Warn("corrupt claimed column, defaulting", "error", err)
	}
	if row.PendingBonusJSON.Valid {
		var bonus economy.BonusSnapshot
		if err := json.Unmarshal([]byte(row.PendingBonusJSON.String), &bonus); err == nil {
			snap.PendingBonus = &bonus
		}
	}
	return snap, true, nil
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}

// SaveID returns this save file's stable identity, minting one on first
// use. Tags log lines and the status endpoint.
func (db *DB) SaveID() (string, error) {
	if id, err := db.GetMeta("save_id"); err == nil {
		return id, nil
	}
	id := uuid.NewString()
	if err := db.SaveMeta("save_id", id); err != nil {
		return "", fmt.Errorf("mint save id: %w", err)
	}
	return id, nil
}
