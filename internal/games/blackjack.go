package games

// Outcome labels a settled blackjack round.
type Outcome string

const (
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomePush      Outcome = "push"
	OutcomeBust      Outcome = "bust"
)

// BlackjackGame holds the state of a single blackjack round for one
// player against the dealer.
type BlackjackGame struct {
	Deck       *Deck `json:"-"`
	PlayerHand *Hand `json:"player_hand"`
	DealerHand *Hand `json:"dealer_hand"`
	BetAmount  int64 `json:"bet_amount"`
	GameOver   bool  `json:"game_over"`
}

// NewBlackjackGame creates a round with a fresh shuffled deck.
func NewBlackjackGame(betAmount int64) *BlackjackGame {
	return &BlackjackGame{
		Deck:       NewDeck(),
		PlayerHand: &Hand{},
		DealerHand: &Hand{},
		BetAmount:  betAmount,
	}
}

// Start deals the opening two cards each, interleaved
// player/dealer/player/dealer.
func (g *BlackjackGame) Start() {
	g.PlayerHand.AddCard(g.Deck.Deal())
	g.DealerHand.AddCard(g.Deck.Deal())
	g.PlayerHand.AddCard(g.Deck.Deal())
	g.DealerHand.AddCard(g.Deck.Deal())
}

// PlayerHits deals one card to the player and reports whether the
// hand busted. A bust ends the round.
func (g *BlackjackGame) PlayerHits() bool {
	g.PlayerHand.AddCard(g.Deck.Deal())
	if g.PlayerHand.IsBust() {
		g.GameOver = true
		return true
	}
	return false
}

// DealerPlays runs the dealer's turn: hit below 17, stand on 17 or
// higher, soft or hard. Ends the round.
func (g *BlackjackGame) DealerPlays() {
	for g.DealerHand.Value < 17 {
		g.DealerHand.AddCard(g.Deck.Deal())
	}
	g.GameOver = true
}

// DetermineWinner resolves the final hands into an outcome and a
// payout multiplier for the bet: 1.5 blackjack, 1 win, 0 push,
// -1 loss or bust.
func (g *BlackjackGame) DetermineWinner() (Outcome, float64) {
	playerScore := g.PlayerHand.Value
	dealerScore := g.DealerHand.Value

	if g.PlayerHand.IsBlackjack() {
		if g.DealerHand.IsBlackjack() {
			return OutcomePush, 0
		}
		return OutcomeBlackjack, 1.5
	}

	switch {
	case playerScore > 21:
		return OutcomeBust, -1
	case dealerScore > 21:
		return OutcomeWin, 1
	case playerScore > dealerScore:
		return OutcomeWin, 1
	case playerScore < dealerScore:
		return OutcomeLoss, -1
	default:
		return OutcomePush, 0
	}
}
