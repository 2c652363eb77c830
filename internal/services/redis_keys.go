package services

import "time"

const (
	KeyUserInfo         = "user:%d:info"
	KeyWallet           = "wallet:%d"
	KeyGameRecord       = "game:record:%s"
	KeyUserGameHistory  = "user:%d:game_history"
	KeyTransaction      = "transaction:%s"
	KeyUserTransactions = "user:%d:transactions"
	KeyRateLimit        = "ratelimit:%d:%s"

	TTLUserInfo    = 30 * 24 * time.Hour // 30 days
	TTLGameRecord  = 7 * 24 * time.Hour  // 7 days
	TTLTransaction = 30 * 24 * time.Hour // 30 days

	DefaultRateLimitBets    = 30 // Max 30 bets per minute
	DefaultRateLimitActions = 120
)
