package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"casino-tables-backend/internal/config"
	"casino-tables-backend/internal/models"
)

// RedisService is the redis-backed Ledger and RecordStore: wallets,
// settled-game history, transactions, and per-user rate limits.
type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{client: client, ctx: ctx}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// debitCreditScript applies a signed delta to a wallet as one atomic
// step, rejecting any delta that would leave the balance negative.
var debitCreditScript = redis.NewScript(`
	local key = KEYS[1]
	local delta = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	if wallet.balance + delta < 0 then
		return redis.error_reply("insufficient balance")
	end

	wallet.balance = wallet.balance + delta
	if delta < 0 then
		wallet.total_wagered = wallet.total_wagered - delta
	else
		wallet.total_won = wallet.total_won + delta
	end

	redis.call("SET", key, cjson.encode(wallet))

	return wallet.balance
`)

// DebitCredit implements Ledger.
func (s *RedisService) DebitCredit(ctx context.Context, userID int64, delta int64) (int64, error) {
	key := fmt.Sprintf(KeyWallet, userID)

	balance, err := debitCreditScript.Run(ctx, s.client, []string{key}, delta).Int64()
	if err != nil {
		if strings.Contains(err.Error(), "insufficient balance") {
			return 0, ErrInsufficientBalance
		}
		if strings.Contains(err.Error(), "wallet not found") {
			return 0, ErrWalletNotFound
		}
		return 0, fmt.Errorf("failed to update wallet: %v", err)
	}

	return balance, nil
}

// Get implements Ledger.
func (s *RedisService) Get(ctx context.Context, userID int64) (int64, bool, error) {
	wallet, err := s.getWallet(ctx, userID)
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return wallet.Balance, true, nil
}

// SetIfAbsent implements Ledger: creates the wallet with the initial
// balance unless one exists, and returns the current balance.
func (s *RedisService) SetIfAbsent(ctx context.Context, userID int64, initial int64) (int64, error) {
	key := fmt.Sprintf(KeyWallet, userID)

	wallet := &models.Wallet{UserID: userID, Balance: initial}
	data, err := json.Marshal(wallet)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal wallet: %v", err)
	}

	created, err := s.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to create wallet: %v", err)
	}
	if created {
		return initial, nil
	}

	existing, err := s.getWallet(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read wallet: %v", err)
	}
	return existing.Balance, nil
}

func (s *RedisService) getWallet(ctx context.Context, userID int64) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, userID)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}
	return &wallet, nil
}

// GetWallet returns the full wallet for balance responses.
func (s *RedisService) GetWallet(userID int64) (*models.Wallet, error) {
	wallet, err := s.getWallet(s.ctx, userID)
	if err == redis.Nil {
		return nil, ErrWalletNotFound
	}
	return wallet, err
}

func (s *RedisService) DeleteWallet(userID int64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) StoreUser(user *models.User) error {
	key := fmt.Sprintf(KeyUserInfo, user.ID)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return s.client.Set(s.ctx, key, data, TTLUserInfo).Err()
}

func (s *RedisService) GetUser(userID int64) (*models.User, error) {
	key := fmt.Sprintf(KeyUserInfo, userID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = json.Unmarshal([]byte(data), &user)
	return &user, err
}

// SaveGameRecord implements RecordStore: stores the settled game and
// appends it to the user's capped history.
func (s *RedisService) SaveGameRecord(record *models.GameRecord) error {
	recordKey := fmt.Sprintf(KeyGameRecord, record.ID)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %v", err)
	}

	if err := s.client.Set(s.ctx, recordKey, data, TTLGameRecord).Err(); err != nil {
		return fmt.Errorf("failed to save game record: %v", err)
	}

	historyKey := fmt.Sprintf(KeyUserGameHistory, record.UserID)
	if err := s.client.ZAdd(s.ctx, historyKey, redis.Z{
		Score:  float64(record.EndedAt.Unix()),
		Member: record.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to game history: %v", err)
	}

	// Keep only last 100 games
	s.client.ZRemRangeByRank(s.ctx, historyKey, 0, -101)
	s.client.Expire(s.ctx, historyKey, TTLGameRecord)

	return nil
}

func (s *RedisService) GetGameRecord(recordID string) (*models.GameRecord, error) {
	key := fmt.Sprintf(KeyGameRecord, recordID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("game record not found: %s", recordID)
		}
		return nil, fmt.Errorf("failed to get game record: %v", err)
	}

	var record models.GameRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %v", err)
	}

	return &record, nil
}

func (s *RedisService) GetGameHistory(userID int64, limit int64) ([]*models.GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	historyKey := fmt.Sprintf(KeyUserGameHistory, userID)

	recordIDs, err := s.client.ZRevRange(s.ctx, historyKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game history: %v", err)
	}

	var records []*models.GameRecord
	for _, recordID := range recordIDs {
		record, err := s.GetGameRecord(recordID)
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *RedisService) DeleteGameRecord(recordID string) error {
	key := fmt.Sprintf(KeyGameRecord, recordID)
	return s.client.Del(s.ctx, key).Err()
}

// SaveTransaction implements RecordStore.
func (s *RedisService) SaveTransaction(tx *models.Transaction) error {
	txKey := fmt.Sprintf(KeyTransaction, tx.ID)

	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}

	if err := s.client.Set(s.ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, tx.UserID)
	if err := s.client.ZAdd(s.ctx, userTxKey, redis.Z{
		Score:  float64(tx.CreatedAt.Unix()),
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to user transactions: %v", err)
	}

	// Keep only last 100 transactions
	s.client.ZRemRangeByRank(s.ctx, userTxKey, 0, -101)

	return nil
}

func (s *RedisService) GetUserTransactions(userID int64, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, userID)

	txIDs, err := s.client.ZRevRange(s.ctx, userTxKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs: %v", err)
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		txKey := fmt.Sprintf(KeyTransaction, txID)

		data, err := s.client.Get(s.ctx, txKey).Result()
		if err != nil {
			continue
		}

		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}

		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

func (s *RedisService) CheckRateLimit(userID int64, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, userID, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *RedisService) ClearRateLimit(userID int64, action string) error {
	key := fmt.Sprintf(KeyRateLimit, userID, action)
	return s.client.Del(s.ctx, key).Err()
}
