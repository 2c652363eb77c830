package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"casino-tables-backend/internal/games"
	"casino-tables-backend/internal/models"
)

var ErrInvalidBet = errors.New("invalid bet amount")

type ActionType string

const (
	ActionHit   ActionType = "hit"
	ActionStand ActionType = "stand"
	ActionHold  ActionType = "hold"
	ActionDraw  ActionType = "draw"
)

// Action is one already-validated player intent against a session.
type Action struct {
	Type      ActionType
	HoldIndex int
}

// RecordStore persists settled games and ledger transactions for
// history. The engine works without one; nil disables recording.
type RecordStore interface {
	SaveGameRecord(record *models.GameRecord) error
	SaveTransaction(tx *models.Transaction) error
}

// Broadcaster pushes balance changes to connected clients.
type Broadcaster interface {
	BroadcastBalance(userID int64, balance int64)
}

// GameEngine drives the three table games against the shared ledger.
// The bet is debited exactly once when a session is created (or a
// spin is placed); settlement credits bet*(1+multiplier) back, so a
// loss never exceeds the wager and a push returns it whole.
type GameEngine struct {
	ledger          Ledger
	registry        *SessionRegistry
	store           RecordStore
	broadcaster     Broadcaster
	startingBalance int64
}

func NewGameEngine(ledger Ledger, startingBalance int64) *GameEngine {
	return &GameEngine{
		ledger:          ledger,
		registry:        NewSessionRegistry(),
		startingBalance: startingBalance,
	}
}

func (ge *GameEngine) AttachStore(store RecordStore) {
	ge.store = store
}

func (ge *GameEngine) AttachBroadcaster(b Broadcaster) {
	ge.broadcaster = b
}

// CreateSession starts a blackjack or video poker round. Validation
// happens strictly before any balance mutation; the wager is debited
// atomically once the session is admitted. A blackjack natural on the
// opening deal resolves the dealer and settles immediately.
func (ge *GameEngine) CreateSession(ctx context.Context, userID int64, kind models.GameKind, betAmount int64) (*models.ActionResult, error) {
	if kind != models.GameBlackjack && kind != models.GamePoker {
		return nil, fmt.Errorf("game kind %q has no sessions: %w", kind, games.ErrInvalidAction)
	}
	if err := models.ValidateBet(betAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}

	slot := ge.registry.Acquire(userID)
	defer slot.Release()

	if _, err := ge.ledger.SetIfAbsent(ctx, userID, ge.startingBalance); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet: %w", err)
	}

	if _, active := slot.Get(kind); active {
		return nil, ErrSessionAlreadyActive
	}

	balance, err := ge.ledger.DebitCredit(ctx, userID, -betAmount)
	if err != nil {
		return nil, err
	}

	ge.recordTransaction(userID, models.TransactionTypeBet, -betAmount, balance, "",
		fmt.Sprintf("Placed %s bet of %s", kind, models.FormatCredits(betAmount)))

	switch kind {
	case models.GameBlackjack:
		game := games.NewBlackjackGame(betAmount)
		game.Start()

		if game.PlayerHand.IsBlackjack() {
			game.DealerPlays()
			return ge.settleBlackjack(ctx, userID, game)
		}

		if err := slot.Put(kind, game); err != nil {
			return nil, err
		}
		return blackjackResult(game, nil, nil), nil

	default:
		game := games.NewVideoPokerGame(betAmount)
		game.Start()

		if err := slot.Put(kind, game); err != nil {
			return nil, err
		}
		return pokerResult(game, "", nil, nil), nil
	}
}

// ApplyAction advances the user's session of the given kind. Terminal
// actions settle the ledger, record the outcome, and free the slot.
func (ge *GameEngine) ApplyAction(ctx context.Context, userID int64, kind models.GameKind, action Action) (*models.ActionResult, error) {
	slot := ge.registry.Acquire(userID)
	defer slot.Release()

	session, ok := slot.Get(kind)
	if !ok {
		return nil, ErrNoActiveSession
	}

	switch game := session.(type) {
	case *games.BlackjackGame:
		switch action.Type {
		case ActionHit:
			if game.PlayerHits() {
				slot.Remove(kind)
				return ge.settleBlackjack(ctx, userID, game)
			}
			return blackjackResult(game, nil, nil), nil

		case ActionStand:
			game.DealerPlays()
			slot.Remove(kind)
			return ge.settleBlackjack(ctx, userID, game)

		default:
			return nil, games.ErrInvalidAction
		}

	case *games.VideoPokerGame:
		switch action.Type {
		case ActionHold:
			if err := game.ToggleHold(action.HoldIndex); err != nil {
				return nil, err
			}
			return pokerResult(game, "", nil, nil), nil

		case ActionDraw:
			if err := game.Draw(); err != nil {
				return nil, err
			}
			slot.Remove(kind)
			return ge.settlePoker(ctx, userID, game)

		default:
			return nil, games.ErrInvalidAction
		}
	}

	return nil, ErrNoActiveSession
}

// SpinRoulette settles one stateless roulette bet: a single atomic
// debit/credit of the signed payout against the ledger.
func (ge *GameEngine) SpinRoulette(ctx context.Context, userID int64, betAmount int64, betType string) (*models.SpinResult, error) {
	if err := models.ValidateBet(betAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}

	bet, err := games.ParseRouletteBet(betType)
	if err != nil {
		return nil, err
	}

	slot := ge.registry.Acquire(userID)
	defer slot.Release()

	if _, err := ge.ledger.SetIfAbsent(ctx, userID, ge.startingBalance); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet: %w", err)
	}

	balance, _, err := ge.ledger.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < betAmount {
		return nil, ErrInsufficientBalance
	}

	winningNumber := games.SpinWheel()
	payout := games.DetermineRouletteOutcome(winningNumber, betAmount, bet)

	newBalance, err := ge.ledger.DebitCredit(ctx, userID, payout)
	if err != nil {
		return nil, fmt.Errorf("failed to settle spin: %w", err)
	}

	outcome := "loss"
	txType := models.TransactionTypeBet
	if payout > 0 {
		outcome = "win"
		txType = models.TransactionTypeWin
	}

	ge.recordTransaction(userID, txType, payout, newBalance, "",
		fmt.Sprintf("Roulette %s on %s: rolled %d", outcome, bet.Label, winningNumber))
	ge.recordGame(userID, models.GameRoulette, betAmount, outcome, payout,
		fmt.Sprintf("number=%d color=%s bet=%s", winningNumber, games.ColorOf(winningNumber), bet.Label))
	ge.pushBalance(userID, newBalance)

	return &models.SpinResult{
		WinningNumber: winningNumber,
		Color:         string(games.ColorOf(winningNumber)),
		BetType:       bet.Label,
		BetAmount:     betAmount,
		Payout:        payout,
		Balance:       newBalance,
	}, nil
}

// GetBalance returns the user's balance, creating the wallet with the
// starting amount on first contact.
func (ge *GameEngine) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return ge.ledger.SetIfAbsent(ctx, userID, ge.startingBalance)
}

func (ge *GameEngine) settleBlackjack(ctx context.Context, userID int64, game *games.BlackjackGame) (*models.ActionResult, error) {
	outcome, multiplier := game.DetermineWinner()

	// net payout relative to the wager; the wager itself was debited
	// at session creation, so the credit is bet + net, floored at 0.
	net := int64(math.Floor(float64(game.BetAmount) * multiplier))
	credit := game.BetAmount + net
	if credit < 0 {
		credit = 0
	}

	balance, err := ge.creditSettlement(ctx, userID, credit)
	if err != nil {
		return nil, err
	}

	txType := models.TransactionTypePush
	if net > 0 {
		txType = models.TransactionTypeWin
	}
	if credit > 0 {
		ge.recordTransaction(userID, txType, credit, balance, "",
			fmt.Sprintf("Blackjack %s: player %d vs dealer %d", outcome, game.PlayerHand.Value, game.DealerHand.Value))
	}
	ge.recordGame(userID, models.GameBlackjack, game.BetAmount, string(outcome), net,
		fmt.Sprintf("player=[%s] dealer=[%s]", game.PlayerHand, game.DealerHand))
	ge.pushBalance(userID, balance)

	return blackjackResult(game, &net, &balance), nil
}

func (ge *GameEngine) settlePoker(ctx context.Context, userID int64, game *games.VideoPokerGame) (*models.ActionResult, error) {
	handName, net := game.EvaluateHand()

	credit := game.BetAmount + net
	if credit < 0 {
		credit = 0
	}

	balance, err := ge.creditSettlement(ctx, userID, credit)
	if err != nil {
		return nil, err
	}

	if credit > 0 {
		ge.recordTransaction(userID, models.TransactionTypeWin, credit, balance, "",
			fmt.Sprintf("Video poker %s pays %s", handName, models.FormatCredits(net)))
	}
	ge.recordGame(userID, models.GamePoker, game.BetAmount, handName, net, pokerHandString(game))
	ge.pushBalance(userID, balance)

	return pokerResult(game, handName, &net, &balance), nil
}

func (ge *GameEngine) creditSettlement(ctx context.Context, userID int64, credit int64) (int64, error) {
	if credit == 0 {
		balance, _, err := ge.ledger.Get(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to read balance: %w", err)
		}
		return balance, nil
	}

	balance, err := ge.ledger.DebitCredit(ctx, userID, credit)
	if err != nil {
		return 0, fmt.Errorf("failed to settle game: %w", err)
	}
	return balance, nil
}

func (ge *GameEngine) recordTransaction(userID int64, txType models.TransactionType, amount, balanceAfter int64, gameID, description string) {
	if ge.store == nil {
		return
	}

	tx := &models.Transaction{
		ID:            models.GenerateTransactionID(),
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balanceAfter - amount,
		BalanceAfter:  balanceAfter,
		GameID:        gameID,
		Description:   description,
		CreatedAt:     time.Now(),
	}

	if err := ge.store.SaveTransaction(tx); err != nil {
		log.Printf("Failed to save transaction for user %d: %v", userID, err)
	}
}

func (ge *GameEngine) recordGame(userID int64, kind models.GameKind, betAmount int64, outcome string, payout int64, detail string) {
	if ge.store == nil {
		return
	}

	record := &models.GameRecord{
		ID:        models.GenerateGameID(),
		UserID:    userID,
		GameKind:  kind,
		BetAmount: betAmount,
		Outcome:   outcome,
		Payout:    payout,
		Detail:    detail,
		CreatedAt: time.Now(),
		EndedAt:   time.Now(),
	}

	if err := ge.store.SaveGameRecord(record); err != nil {
		log.Printf("Failed to save game record for user %d: %v", userID, err)
	}
}

func (ge *GameEngine) pushBalance(userID int64, balance int64) {
	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastBalance(userID, balance)
	}
}

func blackjackResult(game *games.BlackjackGame, payout, balance *int64) *models.ActionResult {
	state := &models.BlackjackState{
		PlayerHand:  game.PlayerHand.String(),
		PlayerValue: game.PlayerHand.Value,
	}

	if game.GameOver {
		state.DealerHand = game.DealerHand.String()
		state.DealerValue = game.DealerHand.Value
	} else {
		state.DealerHand = game.DealerHand.HiddenString()
	}

	result := &models.ActionResult{
		GameKind:  models.GameBlackjack,
		Blackjack: state,
		Terminal:  game.GameOver,
		Payout:    payout,
		Balance:   balance,
	}

	if game.GameOver {
		outcome, _ := game.DetermineWinner()
		result.Outcome = string(outcome)
	}

	return result
}

func pokerResult(game *games.VideoPokerGame, handName string, payout, balance *int64) *models.ActionResult {
	hand := make([]string, len(game.Hand))
	for i, c := range game.Hand {
		hand[i] = c.String()
	}

	held := make([]bool, len(game.Held))
	copy(held, game.Held[:])

	return &models.ActionResult{
		GameKind: models.GamePoker,
		Poker:    &models.PokerState{Hand: hand, Held: held},
		Terminal: game.GameOver,
		Outcome:  handName,
		Payout:   payout,
		Balance:  balance,
	}
}

func pokerHandString(game *games.VideoPokerGame) string {
	parts := make([]string, len(game.Hand))
	for i, c := range game.Hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
