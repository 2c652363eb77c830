package games

import "strings"

// Hand is a blackjack hand with its running total. Value is kept
// adjusted: each ace counts as 11 until that would bust the hand,
// then is reduced to 1 one at a time.
type Hand struct {
	Cards []Card `json:"cards"`
	Value int    `json:"value"`
	Aces  int    `json:"-"`
}

// AddCard appends a card and updates the adjusted total.
func (h *Hand) AddCard(card Card) {
	h.Cards = append(h.Cards, card)
	h.Value += card.BlackjackValue()
	if card.Rank == Ace {
		h.Aces++
	}

	for h.Value > 21 && h.Aces > 0 {
		h.Value -= 10
		h.Aces--
	}
}

// IsBlackjack reports a natural: exactly two cards totaling 21.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value == 21
}

// IsBust reports a total over 21.
func (h *Hand) IsBust() bool {
	return h.Value > 21
}

// String renders the hand as space-joined cards, e.g. "A♠ 10♥".
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// HiddenString shows only the first card, the dealer's up card,
// masking the rest. Used while the player still acts.
func (h *Hand) HiddenString() string {
	if len(h.Cards) == 0 {
		return ""
	}
	parts := []string{h.Cards[0].String()}
	for range h.Cards[1:] {
		parts = append(parts, "??")
	}
	return strings.Join(parts, " ")
}
