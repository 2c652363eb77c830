package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"casino-tables-backend/internal/games"
	"casino-tables-backend/internal/models"
	"casino-tables-backend/internal/services"
)

type GameHandler struct {
	gameEngine   *services.GameEngine
	redisService *services.RedisService
}

func NewGameHandler(gameEngine *services.GameEngine, redisService *services.RedisService) *GameHandler {
	return &GameHandler{
		gameEngine:   gameEngine,
		redisService: redisService,
	}
}

// replyGameError maps engine errors to HTTP statuses. Every game
// error is a typed, recoverable result; 500 is reserved for real
// infrastructure failures.
func replyGameError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidBet),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, games.ErrInvalidBetType):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrSessionAlreadyActive),
		errors.Is(err, games.ErrInvalidAction):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoActiveSession):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *GameHandler) checkBetRate(c *gin.Context, userID int64) bool {
	// Rate Limit: 30 bets per minute
	allowed, err := h.redisService.CheckRateLimit(userID, "bet", services.DefaultRateLimitBets, time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return false
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many bets. Please wait."})
		return false
	}
	return true
}

func (h *GameHandler) checkActionRate(c *gin.Context, userID int64) bool {
	// Rate Limit: 120 in-game actions per minute
	allowed, err := h.redisService.CheckRateLimit(userID, "action", services.DefaultRateLimitActions, time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return false
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many actions. Please wait."})
		return false
	}
	return true
}

func (h *GameHandler) startGame(c *gin.Context, kind models.GameKind) {
	userID := c.GetInt64("user_id")

	var req models.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if !h.checkBetRate(c, userID) {
		return
	}

	result, err := h.gameEngine.CreateSession(c.Request.Context(), userID, kind, req.Amount)
	if err != nil {
		replyGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) applyAction(c *gin.Context, kind models.GameKind, action services.Action) {
	userID := c.GetInt64("user_id")

	if !h.checkActionRate(c, userID) {
		return
	}

	result, err := h.gameEngine.ApplyAction(c.Request.Context(), userID, kind, action)
	if err != nil {
		replyGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) StartBlackjack(c *gin.Context) {
	h.startGame(c, models.GameBlackjack)
}

func (h *GameHandler) Hit(c *gin.Context) {
	h.applyAction(c, models.GameBlackjack, services.Action{Type: services.ActionHit})
}

func (h *GameHandler) Stand(c *gin.Context) {
	h.applyAction(c, models.GameBlackjack, services.Action{Type: services.ActionStand})
}

func (h *GameHandler) StartPoker(c *gin.Context) {
	h.startGame(c, models.GamePoker)
}

func (h *GameHandler) Hold(c *gin.Context) {
	var req models.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	h.applyAction(c, models.GamePoker, services.Action{Type: services.ActionHold, HoldIndex: *req.Index})
}

func (h *GameHandler) Draw(c *gin.Context) {
	h.applyAction(c, models.GamePoker, services.Action{Type: services.ActionDraw})
}

func (h *GameHandler) Spin(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if !h.checkBetRate(c, userID) {
		return
	}

	result, err := h.gameEngine.SpinRoulette(c.Request.Context(), userID, req.Amount, req.BetType)
	if err != nil {
		replyGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")

	balance, err := h.gameEngine.GetBalance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get balance",
			"details": err.Error(),
		})
		return
	}

	wallet, err := h.redisService.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"balance": gin.H{"balance": balance},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": gin.H{
			"balance":       wallet.Balance,
			"total_wagered": wallet.TotalWagered,
			"total_won":     wallet.TotalWon,
		},
	})
}

func (h *GameHandler) GetGameHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	records, err := h.redisService.GetGameHistory(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get game history",
			"details": err.Error(),
		})
		return
	}

	var response []gin.H
	for _, record := range records {
		response = append(response, gin.H{
			"id":         record.ID,
			"game_kind":  record.GameKind,
			"bet_amount": record.BetAmount,
			"outcome":    record.Outcome,
			"payout":     record.Payout,
			"detail":     record.Detail,
			"created_at": record.CreatedAt,
			"ended_at":   record.EndedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"games":   response,
		"count":   len(response),
	})
}

func (h *GameHandler) GetTransactions(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := h.redisService.GetUserTransactions(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get transactions",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
		"count":        len(transactions),
	})
}
