package games

import (
	"math/rand"
	"time"
)

// Deck is an ordered sequence of the 52 unique cards, shuffled at
// construction. A deck is owned by exactly one game session and is
// never shared.
type Deck struct {
	Cards []Card `json:"-"`

	rng *rand.Rand
}

// NewDeck creates a freshly shuffled 52-card deck.
func NewDeck() *Deck {
	d := &Deck{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	d.reset()
	return d
}

func (d *Deck) reset() {
	cards := make([]Card, 0, 52)
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	// Fisher-Yates
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	d.Cards = cards
}

// Deal removes and returns the top card. An exhausted deck is
// transparently rebuilt and reshuffled first, so Deal never fails.
func (d *Deck) Deal() Card {
	if len(d.Cards) == 0 {
		d.reset()
	}

	card := d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	return card
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
