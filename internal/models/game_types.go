package models

// StartGameRequest opens a blackjack or poker session.
type StartGameRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// HoldRequest toggles a hold flag in video poker. Index is a pointer
// so that 0 survives the required binding.
type HoldRequest struct {
	Index *int `json:"index" binding:"required"`
}

// SpinRequest places a single roulette bet.
type SpinRequest struct {
	Amount  int64  `json:"amount" binding:"required,min=1"`
	BetType string `json:"bet_type" binding:"required"`
}

// BlackjackState is the player-visible snapshot of a blackjack hand.
// The dealer's hole card stays masked until the round is terminal.
type BlackjackState struct {
	PlayerHand  string `json:"player_hand"`
	PlayerValue int    `json:"player_value"`
	DealerHand  string `json:"dealer_hand"`
	DealerValue int    `json:"dealer_value,omitempty"`
}

// PokerState is the player-visible snapshot of a video poker hand.
type PokerState struct {
	Hand []string `json:"hand"`
	Held []bool   `json:"held"`
}

// ActionResult is returned by every session-mutating call. Payout and
// Balance are set only once the session is terminal.
type ActionResult struct {
	GameKind  GameKind        `json:"game_kind"`
	Blackjack *BlackjackState `json:"blackjack,omitempty"`
	Poker     *PokerState     `json:"poker,omitempty"`
	Terminal  bool            `json:"terminal"`
	Outcome   string          `json:"outcome,omitempty"`
	Payout    *int64          `json:"payout,omitempty"`
	Balance   *int64          `json:"balance,omitempty"`
}

// SpinResult is the settled outcome of one roulette spin.
type SpinResult struct {
	WinningNumber int    `json:"winning_number"`
	Color         string `json:"color"`
	BetType       string `json:"bet_type"`
	BetAmount     int64  `json:"bet_amount"`
	Payout        int64  `json:"payout"`
	Balance       int64  `json:"balance"`
}
