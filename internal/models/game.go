package models

import "time"

type GameKind string

const (
	GameBlackjack GameKind = "blackjack"
	GamePoker     GameKind = "poker"
	GameRoulette  GameKind = "roulette"
)

// Valid reports whether the kind is one of the supported games.
func (k GameKind) Valid() bool {
	switch k {
	case GameBlackjack, GamePoker, GameRoulette:
		return true
	}
	return false
}

// GameRecord is the settled form of a game, kept for history. Live
// session state never leaves process memory; only outcomes are stored.
type GameRecord struct {
	ID        string    `json:"id" redis:"id"`
	UserID    int64     `json:"user_id" redis:"user_id"`
	GameKind  GameKind  `json:"game_kind" redis:"game_kind"`
	BetAmount int64     `json:"bet_amount" redis:"bet_amount"`
	Outcome   string    `json:"outcome" redis:"outcome"`
	Payout    int64     `json:"payout" redis:"payout"`
	Detail    string    `json:"detail,omitempty" redis:"detail"`
	CreatedAt time.Time `json:"created_at" redis:"created_at"`
	EndedAt   time.Time `json:"ended_at" redis:"ended_at"`
}
