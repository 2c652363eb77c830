package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"casino-tables-backend/internal/games"
	"casino-tables-backend/internal/models"
	"casino-tables-backend/internal/services"
)

const startingBalance = int64(10000)

func newTestEngine() (*services.GameEngine, *services.MemoryLedger) {
	ledger := services.NewMemoryLedger()
	return services.NewGameEngine(ledger, startingBalance), ledger
}

func TestGetBalanceCreatesWallet(t *testing.T) {
	engine, _ := newTestEngine()

	balance, err := engine.GetBalance(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != startingBalance {
		t.Errorf("Expected starting balance %d, got %d", startingBalance, balance)
	}
}

func TestBlackjackStandSettlesOnce(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(42)
	bet := int64(1000)

	result, err := engine.CreateSession(ctx, userID, models.GameBlackjack, bet)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if !result.Terminal {
		result, err = engine.ApplyAction(ctx, userID, models.GameBlackjack, services.Action{Type: services.ActionStand})
		if err != nil {
			t.Fatalf("Stand failed: %v", err)
		}
	}

	if !result.Terminal {
		t.Fatal("Stand should settle the round")
	}
	if result.Payout == nil || result.Balance == nil {
		t.Fatal("Terminal result must carry payout and balance")
	}

	// single-deduction accounting: final balance is the starting
	// balance plus the signed net payout, never less than start-bet
	if got := *result.Balance; got != startingBalance+*result.Payout {
		t.Errorf("Balance %d does not match start %d + payout %d", got, startingBalance, *result.Payout)
	}
	if *result.Payout < -bet {
		t.Errorf("Loss %d exceeds the wager %d", *result.Payout, bet)
	}

	balance, err := engine.GetBalance(ctx, userID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != *result.Balance {
		t.Errorf("Ledger balance %d disagrees with result balance %d", balance, *result.Balance)
	}

	// the slot is free again
	if _, err := engine.CreateSession(ctx, userID, models.GameBlackjack, bet); err != nil {
		t.Errorf("Slot should be free after settlement: %v", err)
	}
}

func TestBlackjackHitUntilDone(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(7)

	result, err := engine.CreateSession(ctx, userID, models.GameBlackjack, 500)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for !result.Terminal {
		result, err = engine.ApplyAction(ctx, userID, models.GameBlackjack, services.Action{Type: services.ActionHit})
		if err != nil {
			t.Fatalf("Hit failed: %v", err)
		}
	}

	if result.Outcome == "" {
		t.Error("Terminal result should carry an outcome")
	}

	// the consumed session must be gone
	_, err = engine.ApplyAction(ctx, userID, models.GameBlackjack, services.Action{Type: services.ActionHit})
	if !errors.Is(err, services.ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession after settlement, got %v", err)
	}
}

func TestPokerHoldDrawFlow(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(9)
	bet := int64(100)

	result, err := engine.CreateSession(ctx, userID, models.GamePoker, bet)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if result.Terminal {
		t.Fatal("Poker session should not be terminal after the deal")
	}
	if len(result.Poker.Hand) != 5 {
		t.Fatalf("Expected 5 cards, got %d", len(result.Poker.Hand))
	}

	result, err = engine.ApplyAction(ctx, userID, models.GamePoker, services.Action{Type: services.ActionHold, HoldIndex: 2})
	if err != nil {
		t.Fatalf("Hold failed: %v", err)
	}
	if !result.Poker.Held[2] {
		t.Error("Hold flag for index 2 not set")
	}

	result, err = engine.ApplyAction(ctx, userID, models.GamePoker, services.Action{Type: services.ActionDraw})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if !result.Terminal {
		t.Fatal("Draw should settle the round")
	}
	if result.Outcome == "" {
		t.Error("Settled poker round should name the hand class")
	}
	if *result.Balance != startingBalance+*result.Payout {
		t.Errorf("Balance %d does not match start %d + payout %d", *result.Balance, startingBalance, *result.Payout)
	}

	// only one draw per session
	_, err = engine.ApplyAction(ctx, userID, models.GamePoker, services.Action{Type: services.ActionDraw})
	if !errors.Is(err, services.ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession after settlement, got %v", err)
	}
}

func TestHoldIndexOutOfRangeLeavesBalanceUntouched(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(11)

	if _, err := engine.CreateSession(ctx, userID, models.GamePoker, 100); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	before, _ := engine.GetBalance(ctx, userID)

	_, err := engine.ApplyAction(ctx, userID, models.GamePoker, services.Action{Type: services.ActionHold, HoldIndex: 7})
	if !errors.Is(err, games.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction, got %v", err)
	}

	after, _ := engine.GetBalance(ctx, userID)
	if before != after {
		t.Errorf("Rejected action changed balance: %d -> %d", before, after)
	}
}

func TestWrongActionForGameKind(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(13)

	if _, err := engine.CreateSession(ctx, userID, models.GamePoker, 100); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	_, err := engine.ApplyAction(ctx, userID, models.GamePoker, services.Action{Type: services.ActionHit})
	if !errors.Is(err, games.ErrInvalidAction) {
		t.Errorf("Hit against a poker session should be invalid, got %v", err)
	}
}

func TestSessionExclusivity(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(21)

	if _, err := engine.CreateSession(ctx, userID, models.GamePoker, 100); err != nil {
		t.Fatalf("First CreateSession failed: %v", err)
	}

	before, _ := engine.GetBalance(ctx, userID)

	_, err := engine.CreateSession(ctx, userID, models.GamePoker, 100)
	if !errors.Is(err, services.ErrSessionAlreadyActive) {
		t.Errorf("Expected ErrSessionAlreadyActive, got %v", err)
	}

	after, _ := engine.GetBalance(ctx, userID)
	if before != after {
		t.Errorf("Rejected create changed balance: %d -> %d", before, after)
	}

	// a different game kind is its own slot
	if _, err := engine.CreateSession(ctx, userID, models.GameBlackjack, 100); err != nil {
		t.Errorf("Blackjack slot should be independent of poker: %v", err)
	}
}

func TestConcurrentCreateExactlyOneSucceeds(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(33)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.CreateSession(ctx, userID, models.GamePoker, 100)
		}(i)
	}
	wg.Wait()

	successes, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, services.ErrSessionAlreadyActive):
			duplicates++
		default:
			t.Errorf("Unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("Expected exactly one successful create, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("Expected %d duplicate rejections, got %d", attempts-1, duplicates)
	}

	balance, _ := engine.GetBalance(ctx, userID)
	if balance != startingBalance-100 {
		t.Errorf("Exactly one bet should be debited, balance %d", balance)
	}
}

func TestInsufficientBalanceRejectedBeforeSessionExists(t *testing.T) {
	engine := services.NewGameEngine(services.NewMemoryLedger(), 50)
	ctx := context.Background()
	userID := int64(55)

	_, err := engine.CreateSession(ctx, userID, models.GameBlackjack, 100)
	if !errors.Is(err, services.ErrInsufficientBalance) {
		t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
	}

	balance, err := engine.GetBalance(ctx, userID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 50 {
		t.Errorf("Rejected bet changed balance: expected 50, got %d", balance)
	}

	// no phantom session was created
	if _, err := engine.ApplyAction(ctx, userID, models.GameBlackjack, services.Action{Type: services.ActionStand}); !errors.Is(err, services.ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}
}

func TestInvalidBetAmounts(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	for _, amount := range []int64{0, -5, models.MaxBetAmount + 1} {
		if _, err := engine.CreateSession(ctx, 66, models.GameBlackjack, amount); !errors.Is(err, services.ErrInvalidBet) {
			t.Errorf("Bet %d: expected ErrInvalidBet, got %v", amount, err)
		}
		if _, err := engine.SpinRoulette(ctx, 66, amount, "red"); !errors.Is(err, services.ErrInvalidBet) {
			t.Errorf("Spin %d: expected ErrInvalidBet, got %v", amount, err)
		}
	}
}

func TestSpinRoulette(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()
	userID := int64(77)

	result, err := engine.SpinRoulette(ctx, userID, 10, "red")
	if err != nil {
		t.Fatalf("SpinRoulette failed: %v", err)
	}

	if result.WinningNumber < 0 || result.WinningNumber > 36 {
		t.Errorf("Winning number out of range: %d", result.WinningNumber)
	}
	if result.Payout != 10 && result.Payout != -10 {
		t.Errorf("Even-money bet of 10 must pay +10 or -10, got %d", result.Payout)
	}
	if result.Balance != startingBalance+result.Payout {
		t.Errorf("Balance %d does not match start %d + payout %d", result.Balance, startingBalance, result.Payout)
	}

	before, _ := engine.GetBalance(ctx, userID)

	if _, err := engine.SpinRoulette(ctx, userID, 10, "corner"); !errors.Is(err, games.ErrInvalidBetType) {
		t.Errorf("Expected ErrInvalidBetType, got %v", err)
	}

	after, _ := engine.GetBalance(ctx, userID)
	if before != after {
		t.Errorf("Rejected spin changed balance: %d -> %d", before, after)
	}

	poor := services.NewGameEngine(services.NewMemoryLedger(), 50)
	if _, err := poor.SpinRoulette(ctx, userID, 100, "red"); !errors.Is(err, services.ErrInsufficientBalance) {
		t.Errorf("Expected ErrInsufficientBalance, got %v", err)
	}
	if balance, _ := poor.GetBalance(ctx, userID); balance != 50 {
		t.Errorf("Rejected spin changed balance: expected 50, got %d", balance)
	}
}

func TestActionWithoutSession(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := engine.ApplyAction(context.Background(), 88, models.GameBlackjack, services.Action{Type: services.ActionHit})
	if !errors.Is(err, services.ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	if _, err := engine.CreateSession(ctx, 100, models.GamePoker, 100); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := engine.CreateSession(ctx, 200, models.GamePoker, 100); err != nil {
		t.Errorf("Second user should get their own slot: %v", err)
	}
}
