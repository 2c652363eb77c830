package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"casino-tables-backend/internal/services"
)

func TestMemoryLedger(t *testing.T) {
	ledger := services.NewMemoryLedger()
	ctx := context.Background()
	userID := int64(1)

	if _, _, err := ledger.Get(ctx, userID); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if _, err := ledger.DebitCredit(ctx, userID, -10); !errors.Is(err, services.ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound, got %v", err)
	}

	balance, err := ledger.SetIfAbsent(ctx, userID, 1000)
	if err != nil || balance != 1000 {
		t.Fatalf("SetIfAbsent: expected 1000, got %d (%v)", balance, err)
	}

	// a second SetIfAbsent must not reset the balance
	if balance, _ = ledger.SetIfAbsent(ctx, userID, 5000); balance != 1000 {
		t.Errorf("SetIfAbsent overwrote existing balance: %d", balance)
	}

	balance, err = ledger.DebitCredit(ctx, userID, -400)
	if err != nil || balance != 600 {
		t.Errorf("Debit: expected 600, got %d (%v)", balance, err)
	}

	balance, err = ledger.DebitCredit(ctx, userID, 200)
	if err != nil || balance != 800 {
		t.Errorf("Credit: expected 800, got %d (%v)", balance, err)
	}

	if _, err = ledger.DebitCredit(ctx, userID, -801); !errors.Is(err, services.ErrInsufficientBalance) {
		t.Errorf("Expected ErrInsufficientBalance, got %v", err)
	}

	balance, ok, err := ledger.Get(ctx, userID)
	if err != nil || !ok || balance != 800 {
		t.Errorf("Rejected debit must not change balance: %d ok=%v (%v)", balance, ok, err)
	}
}

func TestMemoryLedgerConcurrentDebits(t *testing.T) {
	ledger := services.NewMemoryLedger()
	ctx := context.Background()
	userID := int64(2)

	if _, err := ledger.SetIfAbsent(ctx, userID, 1000); err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger.DebitCredit(ctx, userID, -10)
		}()
	}
	wg.Wait()

	balance, _, err := ledger.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("Expected 0 after 100 debits of 10, got %d", balance)
	}
}
