package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/veec/commgen/internal/api"
	"github.com/veec/commgen/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Warning: failed to load .env:", err)
	}

	path := os.Getenv("COMMGEN_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	// season labels are optional; the configured categories are used without them
	seasons, err := config.LoadSeasons(cfg.Paths.Seasons)
	if err != nil {
		log.Println("Warning: failed to load seasons:", err)
	}

	srv, err := api.New(cfg, seasons)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	api.RegisterRoutes(r, srv)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
