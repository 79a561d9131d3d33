package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tttsystem/kaigishitu-a/internal/app"
	"github.com/tttsystem/kaigishitu-a/internal/server"
)

func main() {
	cfg, err := app.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger("kaigishitu-a")

	store := app.NewNotionClient(cfg.Notion, cfg.Room.Location)
	rec := app.NewReconciler(store, cfg.Room, logger)
	a := &app.App{Cfg: cfg, Rec: rec, Logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), app.RequestID(), app.AccessLog(logger))

	// OAuth callback stays outside the auth guard
	router.GET("/oauth2callback", a.NotionOAuth2CallbackHandler)

	api := router.Group("/api")
	if len(cfg.StaticTokens) > 0 || cfg.JWTSecret != "" {
		api.Use(app.AuthMiddleware(cfg.StaticTokens, cfg.JWTSecret))
	}
	{
		api.GET("/config", a.ConfigHandler)
		api.GET("/window", a.WindowHandler)
		api.GET("/slots", a.SlotsHandler)
		api.GET("/state", a.StateHandler)
		api.POST("/bookings", a.CreateBookingHandler)

		notion := api.Group("/notion")
		{
			notion.GET("/auth", a.NotionAuthHandler)
		}
	}

	logger.Info("starting", "port", cfg.Port, "room", cfg.Room.Title)
	if err := server.Run(router, cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
