package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/gin-gonic/gin"
)

func main() {
	_ = godotenv.Load()

	app, err := newApp()
	if err != nil {
		logFatal("Failed to initialise application: %v", err)
	}
	defer app.Store.Close()

	logInfo("Starting WordSurf in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	router := app.setupRouter()

	stop := make(chan struct{})
	go app.runTicker(stop)
	defer close(stop)

	startServer(router)
}

// setupRouter wires middleware and routes onto a Gin engine.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(requestIDMiddleware())

	// API responses are session- and date-dependent; never cache them.
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteWordOfDay, app.wordOfDayHandler)
	router.DELETE(RouteWordOfDay, app.clearWordOfDayHandler)
	router.GET(RouteWordTest, app.wordTestHandler)

	router.GET(RouteLeaderboard, app.getLeaderboardHandler)
	router.POST(RouteLeaderboard, app.rateLimitMiddleware(), app.saveScoreHandler)

	router.POST(RouteGameStart, app.rateLimitMiddleware(), app.startGameHandler)
	router.POST(RouteGameWord, app.rateLimitMiddleware(), app.submitWordHandler)
	router.GET(RouteGameState, app.gameStateHandler)

	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

// startServer runs the HTTP server with graceful shutdown on SIGINT/SIGTERM.
func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
