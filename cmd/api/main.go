package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Jlford67/landlord-sub001/internal/config"
	"github.com/Jlford67/landlord-sub001/internal/database"
	"github.com/Jlford67/landlord-sub001/internal/handlers"
	"github.com/Jlford67/landlord-sub001/internal/ledger"
	"github.com/Jlford67/landlord-sub001/internal/logger"
	"github.com/Jlford67/landlord-sub001/internal/middleware"
	"github.com/Jlford67/landlord-sub001/internal/services"
	"github.com/Jlford67/landlord-sub001/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators with the Gin binding engine
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	policy := ledger.NewSignPolicy(log)
	categoryService := services.NewCategoryService(db)
	propertyService := services.NewPropertyService(db)
	transactionService := services.NewTransactionService(db, categoryService, propertyService)
	annualAmountService := services.NewAnnualAmountService(db, categoryService, propertyService)
	recurringService := services.NewRecurringService(db, categoryService, propertyService)
	postingService := services.NewPostingService(db, recurringService, propertyService, policy, log)
	reportService := services.NewReportService(db, policy)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	annualAmountHandler := handlers.NewAnnualAmountHandler(annualAmountService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, postingService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Category routes (read-only; CRUD lives in the admin surface)
	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)

	// Property routes (read-only)
	properties := v1.Group("/properties")
	properties.GET("", propertyHandler.GetProperties)
	properties.GET("/:id", propertyHandler.GetPropertyByID)

	// Ledger entry routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Annual lump-sum routes
	annual := v1.Group("/annual-amounts")
	annual.PUT("", annualAmountHandler.UpsertAnnualAmount)
	annual.GET("", annualAmountHandler.GetAnnualAmounts)
	annual.DELETE("/:id", annualAmountHandler.DeleteAnnualAmount)

	// Recurring definition and posting routes
	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.CreateDefinition)
	recurring.GET("", recurringHandler.GetDefinitions)
	recurring.GET("/schedule", recurringHandler.GetSchedule)
	recurring.POST("/post", recurringHandler.PostForMonth)
	recurring.POST("/catch-up", recurringHandler.PostCatchUp)
	recurring.GET("/:id", recurringHandler.GetDefinitionByID)
	recurring.PUT("/:id", recurringHandler.UpdateDefinition)
	recurring.DELETE("/:id", recurringHandler.DeleteDefinition)

	// Report routes
	reports := v1.Group("/reports")
	reports.GET("/month", reportHandler.GetMonthReport)
	reports.GET("/range", reportHandler.GetRangeReport)
	reports.GET("/properties", reportHandler.GetPropertyReport)
	reports.GET("/annual", reportHandler.GetAnnualSummary)
	reports.GET("/leaderboard", reportHandler.GetLeaderboard)
	reports.GET("/cash-vs-accrual", reportHandler.GetCashVsAccrual)

	log.Infof("Starting property-ledger server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
