package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"casino-tables-backend/internal/config"
	"casino-tables-backend/internal/handlers"
	"casino-tables-backend/internal/middleware"
	"casino-tables-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	gameEngine := services.NewGameEngine(redisService, cfg.StartingBalance)
	gameEngine.AttachStore(redisService)

	wsHandler := handlers.NewWebSocketHandler(redisService)
	gameEngine.AttachBroadcaster(wsHandler)

	userHandler := handlers.NewUserHandler(redisService, jwtService, gameEngine)
	gameHandler := handlers.NewGameHandler(gameEngine, redisService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/guest", userHandler.Guest)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		games := protected.Group("/games")
		{
			games.GET("/balance", gameHandler.GetBalance)
			games.GET("/history", gameHandler.GetGameHistory)
			games.GET("/transactions", gameHandler.GetTransactions)

			blackjack := games.Group("/blackjack")
			{
				blackjack.POST("/start", gameHandler.StartBlackjack)
				blackjack.POST("/hit", gameHandler.Hit)
				blackjack.POST("/stand", gameHandler.Stand)
			}

			poker := games.Group("/poker")
			{
				poker.POST("/start", gameHandler.StartPoker)
				poker.POST("/hold", gameHandler.Hold)
				poker.POST("/draw", gameHandler.Draw)
			}

			roulette := games.Group("/roulette")
			{
				roulette.POST("/spin", gameHandler.Spin)
			}
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
