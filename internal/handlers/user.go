package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"casino-tables-backend/internal/models"
	"casino-tables-backend/internal/services"
)

type UserHandler struct {
	redisService *services.RedisService
	jwtService   *services.JWTService
	gameEngine   *services.GameEngine
}

func NewUserHandler(redisService *services.RedisService, jwtService *services.JWTService, gameEngine *services.GameEngine) *UserHandler {
	return &UserHandler{
		redisService: redisService,
		jwtService:   jwtService,
		gameEngine:   gameEngine,
	}
}

// Guest creates a throwaway account with the starting balance and
// returns a token for the protected API group.
func (h *UserHandler) Guest(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	// body is optional for guests
	c.ShouldBindJSON(&req)

	user := &models.User{
		ID:        models.GenerateUserID(),
		Username:  req.Username,
		CreatedAt: time.Now(),
	}
	if user.Username == "" {
		user.Username = "guest"
	}

	if err := h.redisService.StoreUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	balance, err := h.gameEngine.GetBalance(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"balance":  balance,
		},
	})
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.redisService.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	wallet, err := h.redisService.GetWallet(userID)
	if err != nil {
		wallet = &models.Wallet{UserID: userID}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"wallet": gin.H{
			"balance":       wallet.Balance,
			"total_wagered": wallet.TotalWagered,
			"total_won":     wallet.TotalWon,
		},
	})
}
