package main

import (
	"log"

	"github.com/ToTheRepublic/assessor-tools/config"
	"github.com/ToTheRepublic/assessor-tools/handler"
	"github.com/ToTheRepublic/assessor-tools/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	accountPattern, err := service.CompileAccountPattern(cfg.AccountKeyPattern)
	if err != nil {
		log.Fatalf("Invalid ACCOUNT_KEY_PATTERN: %v", err)
	}

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	compareService := service.NewCompareService()
	addressService := service.NewAddressMatchService()
	blacklistStore := service.NewBlacklistStore(cfg.DocsDir)
	indexService := service.NewIndexService(cfg.DocsDir, pdfProcessor)

	// Initialize handler layer
	compareHandler := handler.NewCompareHandler(compareService, addressService, blacklistStore, cfg.MasterDir, accountPattern)
	blacklistHandler := handler.NewBlacklistHandler(blacklistStore)
	docsHandler := handler.NewDocsHandler(indexService, pdfProcessor)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "County Records Reconciliation",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		counties := api.Group("/counties/:county")
		{
			counties.POST("/master", compareHandler.UploadMaster)
			counties.GET("/master", compareHandler.MasterStatus)
			counties.POST("/compare", compareHandler.Compare)
			counties.POST("/address-matches", compareHandler.AddressMatches)

			counties.GET("/blacklist", blacklistHandler.List)
			counties.POST("/blacklist", blacklistHandler.Add)
			counties.DELETE("/blacklist", blacklistHandler.Remove)

			counties.GET("/docs/status", docsHandler.Status)
			docs := counties.Group("/docs/:doctype")
			{
				docs.POST("/files", docsHandler.UploadFiles)
				docs.POST("/index", docsHandler.Index)
				docs.GET("/search", docsHandler.Search)
				docs.POST("/extract", docsHandler.Extract)
			}
		}
	}

	// Start server
	log.Printf("Starting County Records Reconciliation Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
