package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Config struct {
	Addr        string
	CORSOrigins []string
}

// NewRouter builds the gin engine with CORS for the browser editor and all API routes.
func NewRouter(cfg Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	h := NewHandler()
	router.GET("/", h.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/ddl/parse", h.ParseDDL)
		api.POST("/layout", h.Layout)
		api.POST("/tables/classify", h.ClassifyTable)
		api.POST("/documents/merge", h.MergeDocument)
		api.POST("/export/sql", h.ExportSQL)
		api.POST("/export/mermaid", h.ExportMermaid)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg Config) *http.Server {
	log.Printf("CORS origins: %v", cfg.CORSOrigins)
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(cfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
