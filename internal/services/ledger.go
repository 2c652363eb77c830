package services

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletNotFound      = errors.New("wallet not found")
)

// Ledger is the shared balance store. Every credit and debit is a
// single atomic read-modify-write keyed by user id; a delta that
// would push the balance below zero is rejected whole.
type Ledger interface {
	DebitCredit(ctx context.Context, userID int64, delta int64) (int64, error)
	Get(ctx context.Context, userID int64) (int64, bool, error)
	SetIfAbsent(ctx context.Context, userID int64, initial int64) (int64, error)
}

// MemoryLedger is a process-local Ledger behind a mutex. It backs the
// engine tests and any deployment that runs without redis.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[int64]int64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[int64]int64)}
}

func (l *MemoryLedger) DebitCredit(ctx context.Context, userID int64, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[userID]
	if !ok {
		return 0, ErrWalletNotFound
	}

	if balance+delta < 0 {
		return balance, ErrInsufficientBalance
	}

	balance += delta
	l.balances[userID] = balance
	return balance, nil
}

func (l *MemoryLedger) Get(ctx context.Context, userID int64) (int64, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[userID]
	return balance, ok, nil
}

func (l *MemoryLedger) SetIfAbsent(ctx context.Context, userID int64, initial int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if balance, ok := l.balances[userID]; ok {
		return balance, nil
	}

	l.balances[userID] = initial
	return initial, nil
}
