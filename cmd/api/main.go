package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"
	"gopkg.in/natefinch/lumberjack.v2"

	"smart-task-backend/internal/auth"
	"smart-task-backend/internal/classifier"
	"smart-task-backend/internal/config"
	"smart-task-backend/internal/db"
	"smart-task-backend/internal/tasks"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Invalid config:", err)
	}

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DBDriver, cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	log.Printf("✅ Connected to %s!", database.Dialect.Name())

	if err := database.Migrate(ctx); err != nil {
		log.Fatal("❌ Failed to migrate DB:", err)
	}

	c := classifier.New()
	store := tasks.NewStore(database, c)
	mw := auth.New([]byte(cfg.JWTSecret))
	if !mw.Enabled() {
		log.Println("[WARN] JWT_SECRET is not set, write endpoints are open")
	}

	mux := http.NewServeMux()
	tasks.Routes(mux, store, c, mw)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := tasks.LogRequests(corsHandler.Handler(mux))

	log.Printf("🚀 API server is running on %s (%s)", cfg.Addr(), cfg.Environment)
	log.Fatal(http.ListenAndServe(cfg.Addr(), handler))
}
