package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxBetAmount caps a single wager at 10000 credits ($100).
const MaxBetAmount = 10000

func GenerateGameID() string {
	return fmt.Sprintf("game_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// GenerateUserID derives a fresh numeric user id for guest accounts.
func GenerateUserID() int64 {
	return int64(uuid.New().ID())
}

// ValidateBet rejects non-positive and oversized wagers.
func ValidateBet(amount int64) error {
	if amount < 1 {
		return fmt.Errorf("bet amount must be at least 1 credit")
	}
	if amount > MaxBetAmount {
		return fmt.Errorf("maximum bet amount is %d credits", MaxBetAmount)
	}
	return nil
}

func FormatCredits(credits int64) string {
	return fmt.Sprintf("$%.2f", float64(credits)/100)
}
