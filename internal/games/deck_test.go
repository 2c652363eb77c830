package games

import "testing"

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck()

	if deck.Remaining() != 52 {
		t.Fatalf("Expected 52 cards, got %d", deck.Remaining())
	}

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		card := deck.Deal()
		if seen[card] {
			t.Errorf("Duplicate card dealt: %s", card)
		}
		seen[card] = true
	}

	if len(seen) != 52 {
		t.Errorf("Expected 52 distinct cards, got %d", len(seen))
	}
}

func TestDealReshufflesWhenExhausted(t *testing.T) {
	deck := NewDeck()

	for i := 0; i < 52; i++ {
		deck.Deal()
	}

	if deck.Remaining() != 0 {
		t.Fatalf("Expected empty deck, got %d cards", deck.Remaining())
	}

	// the 53rd deal must transparently rebuild a full deck
	card := deck.Deal()
	if card.Rank == "" || card.Suit == "" {
		t.Errorf("Reshuffled deal returned invalid card: %+v", card)
	}

	if deck.Remaining() != 51 {
		t.Errorf("Expected 51 cards after reshuffle deal, got %d", deck.Remaining())
	}
}

func TestCardValues(t *testing.T) {
	cases := []struct {
		card  Card
		value int
	}{
		{Card{Rank: Two, Suit: Spades}, 2},
		{Card{Rank: Nine, Suit: Hearts}, 9},
		{Card{Rank: Ten, Suit: Clubs}, 10},
		{Card{Rank: Jack, Suit: Diamonds}, 10},
		{Card{Rank: Queen, Suit: Spades}, 10},
		{Card{Rank: King, Suit: Hearts}, 10},
		{Card{Rank: Ace, Suit: Clubs}, 11},
	}

	for _, tc := range cases {
		if got := tc.card.BlackjackValue(); got != tc.value {
			t.Errorf("%s: expected value %d, got %d", tc.card, tc.value, got)
		}
	}
}
