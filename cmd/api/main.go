package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dmw24/IndiaElecGen/internal/api/handlers"
	"github.com/dmw24/IndiaElecGen/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	outputDir := os.Getenv("POWER_RESULTS_DIR")
	if outputDir == "" {
		outputDir = "outputs"
	}
	log.Printf("Serving optimization results from %s", outputDir)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	scenarioHandler := handlers.NewScenarioHandler(outputDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.GET("/scenarios/:id/summary", scenarioHandler.GetSummary)
		api.GET("/scenarios/:id/hourly", scenarioHandler.GetHourly)
		api.GET("/scenarios/:id/costs", scenarioHandler.GetCosts)
		api.GET("/scenarios/:id/assumptions", scenarioHandler.GetAssumptions)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
