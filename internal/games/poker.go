package games

import (
	"errors"
	"sort"
)

// ErrInvalidAction is returned for actions that are not legal in the
// session's current state, such as drawing twice or holding an index
// outside the hand.
var ErrInvalidAction = errors.New("action not valid for current game state")

// Jacks-or-Better payout multipliers per hand class. Nothing loses
// the wager.
var pokerPayouts = map[string]int64{
	"Royal Flush":     800,
	"Straight Flush":  50,
	"Four of a Kind":  25,
	"Full House":      9,
	"Flush":           6,
	"Straight":        4,
	"Three of a Kind": 3,
	"Two Pair":        2,
	"Jacks or Better": 1,
	"Nothing":         -1,
}

// VideoPokerGame holds the state of a single Jacks-or-Better round:
// five cards, their hold flags, and the one allowed draw.
type VideoPokerGame struct {
	Deck      *Deck   `json:"-"`
	Hand      [5]Card `json:"hand"`
	Held      [5]bool `json:"held"`
	BetAmount int64   `json:"bet_amount"`
	GameOver  bool    `json:"game_over"`
}

// NewVideoPokerGame creates a round with a fresh shuffled deck.
func NewVideoPokerGame(betAmount int64) *VideoPokerGame {
	return &VideoPokerGame{
		Deck:      NewDeck(),
		BetAmount: betAmount,
	}
}

// Start deals the initial five cards, all unheld.
func (g *VideoPokerGame) Start() {
	for i := range g.Hand {
		g.Hand[i] = g.Deck.Deal()
	}
}

// ToggleHold flips the hold flag of the card at index 0-4.
func (g *VideoPokerGame) ToggleHold(index int) error {
	if g.GameOver {
		return ErrInvalidAction
	}
	if index < 0 || index >= len(g.Hand) {
		return ErrInvalidAction
	}
	g.Held[index] = !g.Held[index]
	return nil
}

// Draw replaces every unheld card and ends the round. A round allows
// exactly one draw; a second call is rejected.
func (g *VideoPokerGame) Draw() error {
	if g.GameOver {
		return ErrInvalidAction
	}
	for i := range g.Hand {
		if !g.Held[i] {
			g.Hand[i] = g.Deck.Deal()
		}
	}
	g.GameOver = true
	return nil
}

// EvaluateHand classifies the final five cards and returns the hand
// name with the signed payout (bet times the class multiplier).
func (g *VideoPokerGame) EvaluateHand() (string, int64) {
	name := ClassifyPokerHand(g.Hand)
	return name, g.BetAmount * pokerPayouts[name]
}

// ClassifyPokerHand names the best Jacks-or-Better class the five
// cards form, from "Royal Flush" down to "Nothing".
func ClassifyPokerHand(hand [5]Card) string {
	idx := make([]int, 5)
	for i, c := range hand {
		idx[i] = c.RankIndex()
	}
	sort.Ints(idx)

	isFlush := true
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			isFlush = false
			break
		}
	}

	distinct := true
	for i := 1; i < 5; i++ {
		if idx[i] == idx[i-1] {
			distinct = false
			break
		}
	}

	twoIdx := Card{Rank: Two}.RankIndex()
	fiveIdx := Card{Rank: Five}.RankIndex()
	tenIdx := Card{Rank: Ten}.RankIndex()
	jackIdx := Card{Rank: Jack}.RankIndex()
	aceIdx := Card{Rank: Ace}.RankIndex()

	isStraight := distinct && idx[4]-idx[0] == 4
	// wheel straight: A-2-3-4-5
	isWheel := distinct && idx[0] == twoIdx && idx[3] == fiveIdx && idx[4] == aceIdx
	if isWheel {
		isStraight = true
	}

	if isStraight && isFlush {
		if idx[0] == tenIdx && idx[4] == aceIdx {
			return "Royal Flush"
		}
		return "Straight Flush"
	}
	if isFlush {
		return "Flush"
	}
	if isStraight {
		return "Straight"
	}

	rankCounts := make(map[Rank]int)
	for _, c := range hand {
		rankCounts[c.Rank]++
	}

	counts := make([]int, 0, len(rankCounts))
	for _, n := range rankCounts {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	switch {
	case counts[0] == 4:
		return "Four of a Kind"
	case counts[0] == 3 && counts[1] == 2:
		return "Full House"
	case counts[0] == 3:
		return "Three of a Kind"
	case counts[0] == 2 && counts[1] == 2:
		return "Two Pair"
	case counts[0] == 2:
		for rank, n := range rankCounts {
			if n == 2 && (Card{Rank: rank}).RankIndex() >= jackIdx {
				return "Jacks or Better"
			}
		}
	}

	return "Nothing"
}
