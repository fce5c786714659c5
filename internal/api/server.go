// Package api exposes the game over HTTP: read-only derived state for the
// presentation layer, POST actions for the player, and a bearer-gated
// admin surface. Every handler funnels through the engine's dispatch
// queue, so the HTTP goroutines never touch economy state directly.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/pizza-forge/internal/economy"
	"github.com/talgya/pizza-forge/internal/engine"
	"github.com/talgya/pizza-forge/internal/llm"
	"github.com/talgya/pizza-forge/internal/persistence"
)

// SecretShopThreshold gates the perk shop in the UI. Purchases themselves
// are only gated by price; this flag is display advice.
const SecretShopThreshold = 100_000

// Server serves the pizza economy over HTTP.
type Server struct {
	Eng        *engine.Engine
	DB         *persistence.DB
	LLM        *llm.Client
	Port       int
	AdminKey   string // bearer token for admin POSTs; empty disables them
	PlayerName string
	SaveID     string
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	leaderboardLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()

	// Read-only presentation surface.
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/v1/achievements", s.handleAchievements)
	mux.HandleFunc("GET /api/v1/leaderboard", RateLimitMiddleware(leaderboardLimiter, s.handleLeaderboard))

	// Player actions.
	mux.HandleFunc("POST /api/v1/click", s.handleClick)
	mux.HandleFunc("POST /api/v1/buy/building", s.handleBuyBuilding)
	mux.HandleFunc("POST /api/v1/buy/tier", s.handleBuyTier)
	mux.HandleFunc("POST /api/v1/buy/perk", s.handleBuyPerk)
	mux.HandleFunc("POST /api/v1/claim/achievement", s.handleClaimAchievement)
	mux.HandleFunc("POST /api/v1/claim/golden", s.handleClaimGolden)
	mux.HandleFunc("POST /api/v1/rebirth", s.handleRebirth)

	// Admin control plane.
	mux.HandleFunc("POST /api/v1/admin/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("POST /api/v1/admin/save", s.adminOnly(s.handleSaveNow))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware allows configured frontend origins. Localhost dev
// servers are always allowed; add more via CORS_ORIGINS.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

// ── Read-only surface ────────────────────────────────────────────────

type pendingBonusView struct {
	Token     string  `json:"token"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ExpiresIn float64 `json:"expires_in_seconds"`
}

type statusView struct {
	SaveID          string  `json:"save_id"`
	Balance         float64 `json:"balance"`
	BalanceDisplay  string  `json:"balance_display"`
	LifetimeEarned  float64 `json:"lifetime_earned"`
	LifetimeDisplay string  `json:"lifetime_display"`
	TotalClicks     string  `json:"total_clicks"`

	PPS        float64 `json:"pps"`
	PPSDisplay string  `json:"pps_display"`
	PPC        float64 `json:"ppc"`
	PPCDisplay string  `json:"ppc_display"`

	FrenzyActive    bool    `json:"frenzy_active"`
	FrenzyRemaining float64 `json:"frenzy_remaining_seconds"`
	FrenzyPower     float64 `json:"frenzy_power"`

	RebirthCount    int     `json:"rebirth_count"`
	RebirthGoal     float64 `json:"rebirth_goal"`
	RebirthProgress float64 `json:"rebirth_progress_percent"`
	RebirthReady    bool    `json:"rebirth_ready"`

	SecretShopUnlocked bool              `json:"secret_shop_unlocked"`
	PendingBonus       *pendingBonusView `json:"pending_bonus,omitempty"`

	UnclaimedAchievements int `json:"unclaimed_achievements"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var view statusView
	ok := s.Eng.Do(func(g *economy.Game) {
		st := g.State
		rates := g.Rates()
		goal := economy.RebirthGoal(st.RebirthCount)
		progress := 100 * st.LifetimeEarned / goal
		if progress > 100 {
			progress = 100
		}

		unclaimed := 0
		for id := range st.UnlockedAchievements {
			if !st.ClaimedAchievements[id] {
				unclaimed++
			}
		}

		view = statusView{
			SaveID:          s.SaveID,
			Balance:         st.Balance,
			BalanceDisplay:  economy.FormatPizzas(st.Balance),
			LifetimeEarned:  st.LifetimeEarned,
			LifetimeDisplay: economy.FormatPizzas(st.LifetimeEarned),
			TotalClicks:     economy.FormatCount(st.TotalClicks),

			PPS:        rates.EffectivePPS,
			PPSDisplay: economy.FormatPizzas(rates.EffectivePPS),
			PPC:        rates.EffectivePPC,
			PPCDisplay: economy.FormatPizzas(rates.EffectivePPC),

			FrenzyActive:    st.ActiveBonusRemaining > 0,
			FrenzyRemaining: st.ActiveBonusRemaining,
			FrenzyPower:     rates.FrenzyPower,

			RebirthCount:    st.RebirthCount,
			RebirthGoal:     goal,
			RebirthProgress: progress,
			RebirthReady:    st.LifetimeEarned >= goal,

			SecretShopUnlocked:    st.LifetimeEarned >= SecretShopThreshold,
			UnclaimedAchievements: unclaimed,
		}
		if b := st.PendingBonus; b != nil {
			view.PendingBonus = &pendingBonusView{
				Token:     b.Token.String(),
				X:         b.X,
				Y:         b.Y,
				ExpiresIn: time.Until(b.ExpiresAt).Seconds(),
			}
		}
	})
	if !ok {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type buildingView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	Owned        int     `json:"owned"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Affordable   bool    `json:"affordable"`
	PPSBonus     float64 `json:"pps_bonus"`
	PPCBonus     float64 `json:"ppc_bonus"`
	Efficiency   float64 `json:"efficiency"`
}

type tierView struct {
	ID         string  `json:"id"`
	TargetID   string  `json:"target_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Price      float64 `json:"price"`
	Multiplier float64 `json:"multiplier"`
	Owned      bool    `json:"owned"`
	Available  bool    `json:"available"` // target building owned, not yet bought
	Affordable bool    `json:"affordable"`
}

type perkView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Level      int     `json:"level"`
	Price      float64 `json:"price"`
	Affordable bool    `json:"affordable"`
}

type catalogView struct {
	Buildings    []buildingView `json:"buildings"`
	TierUpgrades []tierView     `json:"tier_upgrades"`
	Perks        []perkView     `json:"perks"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var view catalogView
	ok := s.Eng.Do(func(g *economy.Game) {
		st := g.State
		for _, b := range g.Cat.Buildings {
			owned := st.BuildingsOwned[b.ID]
			price := economy.Price(b.BasePrice, owned)
			eff := 1.0
			for _, tu := range g.Cat.TiersFor(b.ID) {
				if st.TierUpgradesOwned[tu.ID] > 0 {
					eff *= tu.Multiplier
				}
			}
			view.Buildings = append(view.Buildings, buildingView{
				ID:           b.ID,
				Name:         b.Name,
				Description:  b.Description,
				Icon:         b.Icon,
				Owned:        owned,
				Price:        price,
				PriceDisplay: economy.FormatPizzas(price),
				Affordable:   st.Balance >= price,
				PPSBonus:     b.PPSBonus,
				PPCBonus:     b.PPCBonus,
				Efficiency:   eff,
			})
		}
		for _, tu := range g.Cat.TierUpgrades {
			owned := st.TierUpgradesOwned[tu.ID] > 0
			view.TierUpgrades = append(view.TierUpgrades, tierView{
				ID:         tu.ID,
				TargetID:   tu.TargetID,
				Name:       tu.Name,
				Icon:       tu.Icon,
				Price:      tu.BasePrice,
				Multiplier: tu.Multiplier,
				Owned:      owned,
				Available:  !owned && st.BuildingsOwned[tu.TargetID] >= 1,
				Affordable: st.Balance >= tu.BasePrice,
			})
		}
		for _, p := range g.Cat.Perks {
			level := st.PerksOwned[p.ID]
			price := economy.Price(p.BasePrice, level)
			view.Perks = append(view.Perks, perkView{
				ID:         p.ID,
				Name:       p.Name,
				Icon:       p.Icon,
				Level:      level,
				Price:      price,
				Affordable: st.Balance >= price,
			})
		}
	})
	if !ok {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type achievementView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Reward      float64 `json:"reward"`
	Unlocked    bool    `json:"unlocked"`
	Claimed     bool    `json:"claimed"`
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	var views []achievementView
	ok := s.Eng.Do(func(g *economy.Game) {
		st := g.State
		for _, a := range g.Cat.Achievements {
			views = append(views, achievementView{
				ID:          a.ID,
				Name:        a.Name,
				Description: a.Description,
				Icon:        a.Icon,
				Reward:      a.Reward,
				Unlocked:    st.UnlockedAchievements[a.ID],
				Claimed:     st.ClaimedAchievements[a.ID],
			})
		}
	})
	if !ok {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	var score float64
	if !s.Eng.Do(func(g *economy.Game) { score = g.State.LifetimeEarned }) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	name := s.PlayerName
	if name == "" {
		name = "Chef"
	}
	// The LLM call happens off the engine queue; only the score read
	// touched game state.
	board := llm.FetchLeaderboard(s.LLM, name, score)
	writeJSON(w, http.StatusOK, board)
}

// ── Player actions ───────────────────────────────────────────────────

type idRequest struct {
	ID string `json:"id"`
}

func decodeID(r *http.Request) (string, error) {
	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", err
	}
	return req.ID, nil
}

type actionResult struct {
	OK bool `json:"ok"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var result economy.ClickResult
	if !s.Eng.Do(func(g *economy.Game) { result = g.Click() }) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBuyBuilding(w http.ResponseWriter, r *http.Request) {
	s.handleBuy(w, r, func(g *economy.Game, id string) bool { return g.BuyBuilding(id) })
}

func (s *Server) handleBuyTier(w http.ResponseWriter, r *http.Request) {
	s.handleBuy(w, r, func(g *economy.Game, id string) bool { return g.BuyTierUpgrade(id) })
}

func (s *Server) handleBuyPerk(w http.ResponseWriter, r *http.Request) {
	s.handleBuy(w, r, func(g *economy.Game, id string) bool { return g.BuyPerk(id) })
}

func (s *Server) handleClaimAchievement(w http.ResponseWriter, r *http.Request) {
	s.handleBuy(w, r, func(g *economy.Game, id string) bool { return g.ClaimAchievement(id) })
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request, action func(*economy.Game, string) bool) {
	id, err := decodeID(r)
	if err != nil || id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	var ok bool
	if !s.Eng.Do(func(g *economy.Game) { ok = action(g, id) }) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, actionResult{OK: ok})
}

func (s *Server) handleClaimGolden(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	token, err := uuid.Parse(req.Token)
	if err != nil {
		http.Error(w, "bad token", http.StatusBadRequest)
		return
	}
	var ok bool
	if !s.Eng.Do(func(g *economy.Game) { ok = g.ClaimGoldenBonus(token) }) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, actionResult{OK: ok})
}

func (s *Server) handleRebirth(w http.ResponseWriter, r *http.Request) {
	var ok bool
	if !s.Eng.Do(func(g *economy.Game) { ok = g.Rebirth() }) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, actionResult{OK: ok})
}

// ── Admin ────────────────────────────────────────────────────────────

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Speed < 0 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.Eng.SetSpeed(req.Speed)
	slog.Info("engine speed changed", "speed", req.Speed)
	writeJSON(w, http.StatusOK, actionResult{OK: true})
}

func (s *Server) handleSaveNow(w http.ResponseWriter, r *http.Request) {
	var snap economy.Snapshot
	if !s.Eng.Do(func(g *economy.Game) { snap = g.State.Snapshot() }) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if err := s.DB.SaveSnapshot(snap); err != nil {
		slog.Error("manual save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, actionResult{OK: true})
}
