//go:build !lambda
// +build !lambda

package main

import (
	"log"
	"os"

	"github.com/cyphera/cyphera-tax/apps/api/server"
	"github.com/cyphera/cyphera-tax/libs/go/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load("../../.env")
	if err != nil {
		// It's often okay if the .env file is missing, especially in production
		// where variables might be set directly in the environment.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	r := gin.Default()
	server.InitializeHandlers()
	server.InitializeRoutes(r)
	defer server.Shutdown()
	defer func() {
		_ = logger.Sync()
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
