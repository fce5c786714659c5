// Command pizzad runs the Pizza Forge economy engine and its HTTP API.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/pizza-forge/internal/api"
	"github.com/talgya/pizza-forge/internal/catalog"
	"github.com/talgya/pizza-forge/internal/economy"
	"github.com/talgya/pizza-forge/internal/engine"
	"github.com/talgya/pizza-forge/internal/entropy"
	"github.com/talgya/pizza-forge/internal/llm"
	"github.com/talgya/pizza-forge/internal/persistence"
)

const saveInterval = 5 * time.Second

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Pizza Forge — incremental pizza economy")

	dbPath := envOr("PIZZA_DB_PATH", "data/pizza.db")
	port := envInt("PIZZA_PORT", 8080)
	playerName := envOr("PIZZA_PLAYER_NAME", "Chef")

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	saveID, err := db.SaveID()
	if err != nil {
		slog.Error("failed to establish save identity", "error", err)
		os.Exit(1)
	}
	slog.Info("database opened", "path", dbPath, "save_id", saveID)

	// ── Load or start fresh ──────────────────────────────────────────
	cat := catalog.Default()

	var state *economy.State
	snap, found, err := db.LoadSnapshot()
	if err != nil {
		slog.Warn("save load failed, starting fresh", "error", err)
		state = economy.NewState()
	} else if found {
		state = economy.Restore(snap)
		slog.Info("save restored",
			"balance", economy.FormatPizzas(state.Balance),
			"lifetime", economy.FormatPizzas(state.LifetimeEarned),
			"clicks", humanize.Comma(int64(state.TotalClicks)),
			"rebirths", state.RebirthCount,
		)
	} else {
		slog.Info("no save found, heating fresh ovens")
		state = economy.NewState()
	}

	// ── Randomness ───────────────────────────────────────────────────
	entropyClient := entropy.NewClient(os.Getenv("RANDOM_ORG_KEY"))
	if entropyClient.Enabled() {
		slog.Info("random.org entropy enabled")
	}

	game := economy.NewGame(cat, state, entropy.Best(entropyClient))
	eng := engine.New(game)

	// ── LLM leaderboard ──────────────────────────────────────────────
	llmClient := llm.NewClient(os.Getenv("ANTHROPIC_API_KEY"))
	if llmClient.Enabled() {
		slog.Info("LLM leaderboard enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — leaderboard will use fallback data")
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("PIZZA_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("PIZZA_ADMIN_KEY not set — admin endpoints disabled")
	}

	apiServer := &api.Server{
		Eng:        eng,
		DB:         db,
		LLM:        llmClient,
		Port:       port,
		AdminKey:   adminKey,
		PlayerName: playerName,
		SaveID:     saveID,
	}
	apiServer.Start()

	// ── Autosave ─────────────────────────────────────────────────────
	saveDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(saveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-saveDone:
				return
			case <-ticker.C:
				var snap economy.Snapshot
				if !eng.Do(func(g *economy.Game) { snap = g.State.Snapshot() }) {
					return
				}
				// Write failures must not disturb gameplay.
				if err := db.SaveSnapshot(snap); err != nil {
					slog.Error("autosave failed", "error", err)
				}
			}
		}
	}()

	// ── Run ───────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	slog.Info("ovens hot", "api", "http://localhost:"+strconv.Itoa(port)+"/api/v1/status")
	eng.Run()
	close(saveDone)

	// Final save after the engine stops; no further mutation can race it.
	slog.Info("final save...")
	if err := db.SaveSnapshot(game.State.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	slog.Info("shutdown complete",
		"lifetime", economy.FormatPizzas(game.State.LifetimeEarned),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
