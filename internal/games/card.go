package games

type Suit string
type Rank string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// ranks in ascending order; the index doubles as the sort value
// used by the poker evaluator.
var ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String returns a compact representation like "A♠" or "10♥".
func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// BlackjackValue returns the base blackjack value of the card.
// Aces count as 11 here; the soft-ace adjustment lives in Hand.
func (c Card) BlackjackValue() int {
	switch c.Rank {
	case Ace:
		return 11
	case Ten, Jack, Queen, King:
		return 10
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	default:
		return 0
	}
}

// RankIndex returns the position of the card's rank in ascending
// order, 0 for Two through 12 for Ace.
func (c Card) RankIndex() int {
	for i, r := range ranks {
		if r == c.Rank {
			return i
		}
	}
	return -1
}
