package llm

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"
)

// LeaderboardEntry is one fabricated rival chef.
type LeaderboardEntry struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Region string  `json:"region"`
}

// Leaderboard is a generated leaderboard issue.
type Leaderboard struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Entries     []LeaderboardEntry `json:"entries"`
	Fallback    bool               `json:"fallback"` // true when the static list was used
}

const leaderboardSystem = `You generate flavor data for a pizza clicker game. Respond with a raw JSON array only — no prose, no code fences.`

// FetchLeaderboard fabricates five rival chefs around the player's score:
// three far above, two close by. Any failure — no client, API error,
// unparseable output — yields the static fallback list.
func FetchLeaderboard(client *Client, playerName string, playerScore float64) *Leaderboard {
	if !client.Enabled() {
		return fallbackLeaderboard(playerScore)
	}

	prompt := buildLeaderboardPrompt(playerName, playerScore)
	text, err := client.Complete(leaderboardSystem, prompt, 600)
	if err != nil {
		slog.Debug("leaderboard generation failed, using fallback", "error", err)
		return fallbackLeaderboard(playerScore)
	}

	entries, err := parseLeaderboard(text)
	if err != nil || len(entries) == 0 {
		slog.Debug("leaderboard parse failed, using fallback", "error", err)
		return fallbackLeaderboard(playerScore)
	}

	return &Leaderboard{GeneratedAt: time.Now(), Entries: entries}
}

func buildLeaderboardPrompt(playerName string, playerScore float64) string {
	var b strings.Builder
	b.WriteString("Generate a list of 5 diverse, realistic-sounding top pizza chefs for a global clicker game leaderboard.\n")
	b.WriteString("The current player is \"")
	b.WriteString(playerName)
	b.WriteString("\" with ")
	b.WriteString(strings.TrimRight(strings.TrimRight(jsonNumber(playerScore), "0"), "."))
	b.WriteString(" pizzas.\n")
	b.WriteString("Make 3 players have significantly higher scores (quadrillions or quintillions) and 2 players score slightly above or below the current player.\n")
	b.WriteString("Include a regional emoji and city name for each.\n")
	b.WriteString(`Respond as a JSON array of objects with "name", "score" and "region".`)
	return b.String()
}

func jsonNumber(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// parseLeaderboard tolerates the model wrapping its answer in code fences.
func parseLeaderboard(text string) ([]LeaderboardEntry, error) {
	trimmed := strings.TrimSpace(text)
	if start := strings.Index(trimmed, "["); start >= 0 {
		if end := strings.LastIndex(trimmed, "]"); end > start {
			trimmed = trimmed[start : end+1]
		}
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func fallbackLeaderboard(playerScore float64) *Leaderboard {
	return &Leaderboard{
		GeneratedAt: time.Now(),
		Fallback:    true,
		Entries: []LeaderboardEntry{
			{Name: "Napoli_Master_99", Score: 5.2e18, Region: "🇮🇹 Naples"},
			{Name: "DeepDish_Dan", Score: 1.1e15, Region: "🇺🇸 Chicago"},
			{Name: "xX_CrustLord_Xx", Score: playerScore * 1.5, Region: "🇬🇧 London"},
			{Name: "PizzaPrincess", Score: playerScore * 0.8, Region: "🇯🇵 Tokyo"},
			{Name: "The_Calzone_Zone", Score: 9.9e21, Region: "🇮🇹 Rome"},
		},
	}
}
