package games

import (
	"errors"
	"math/rand"
	"strconv"
)

// ErrInvalidBetType is returned when a roulette bet type is not in
// the recognized set.
var ErrInvalidBetType = errors.New("unrecognized roulette bet type")

type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// redNumbers is the fixed European wheel coloring; 0 is green and
// every other number is black.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ColorOf returns the wheel color of a number 0-36.
func ColorOf(number int) Color {
	switch {
	case number == 0:
		return ColorGreen
	case redNumbers[number]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// SpinWheel draws one number uniformly from the 37 pockets of a
// single-zero wheel.
func SpinWheel() int {
	return rand.Intn(37)
}

// RouletteBet is one recognized bet category: a label, the payout
// multiplier on a win, and the predicate deciding whether a winning
// number matches.
type RouletteBet struct {
	Label      string
	Multiplier int64
	Matches    func(number int) bool
}

var namedBets = []RouletteBet{
	{"red", 1, func(n int) bool { return ColorOf(n) == ColorRed }},
	{"black", 1, func(n int) bool { return ColorOf(n) == ColorBlack }},
	{"odd", 1, func(n int) bool { return n != 0 && n%2 == 1 }},
	{"even", 1, func(n int) bool { return n != 0 && n%2 == 0 }},
	{"high", 1, func(n int) bool { return n >= 19 && n <= 36 }},
	{"low", 1, func(n int) bool { return n >= 1 && n <= 18 }},
	{"1st12", 2, func(n int) bool { return n >= 1 && n <= 12 }},
	{"2nd12", 2, func(n int) bool { return n >= 13 && n <= 24 }},
	{"3rd12", 2, func(n int) bool { return n >= 25 && n <= 36 }},
	{"col1", 2, func(n int) bool { return n != 0 && n%3 == 1 }},
	{"col2", 2, func(n int) bool { return n != 0 && n%3 == 2 }},
	{"col3", 2, func(n int) bool { return n != 0 && n%3 == 0 }},
}

// ParseRouletteBet resolves a bet type string into its category.
// "0".."36" is a straight-up bet paying 35:1.
func ParseRouletteBet(betType string) (RouletteBet, error) {
	for _, bet := range namedBets {
		if bet.Label == betType {
			return bet, nil
		}
	}

	if number, err := strconv.Atoi(betType); err == nil && number >= 0 && number <= 36 {
		return RouletteBet{
			Label:      betType,
			Multiplier: 35,
			Matches:    func(n int) bool { return n == number },
		}, nil
	}

	return RouletteBet{}, ErrInvalidBetType
}

// DetermineRouletteOutcome computes the signed payout for a spin:
// +bet*multiplier on a match, the whole wager lost otherwise.
func DetermineRouletteOutcome(winningNumber int, betAmount int64, bet RouletteBet) int64 {
	if bet.Matches(winningNumber) {
		return betAmount * bet.Multiplier
	}
	return -betAmount
}
