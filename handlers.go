package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pro-power/wordsurf/internal/chain"
	"github.com/pro-power/wordsurf/internal/session"
	"github.com/pro-power/wordsurf/internal/storage"
	"github.com/pro-power/wordsurf/internal/wordofday"
)

// wordOfDayHandler serves today's word, bonus word and definition, plus a
// live countdown to the next rollover.
func (app *App) wordOfDayHandler(c *gin.Context) {
	rec, err := app.Provider.Today(c.Request.Context())
	if err != nil {
		logWarn("Failed to resolve word of the day: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get word of the day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"word":       rec.Word,
		"bonusWord":  rec.BonusWord,
		"definition": rec.Definition,
		"date":       rec.Date,
		"nextWordIn": wordofday.FormatCountdown(wordofday.NextRollover(app.Clock.Now())),
	})
}

// clearWordOfDayHandler removes today's record so the next read re-acquires.
// Exists for testing, like the original service's DELETE endpoint.
func (app *App) clearWordOfDayHandler(c *gin.Context) {
	if err := app.Provider.Clear(c.Request.Context()); err != nil {
		logWarn("Failed to clear word of the day: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear word of the day"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Word of the day cleared successfully"})
}

// wordTestHandler confirms the word API routes are mounted.
func (app *App) wordTestHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Word API is working!"})
}

// getLeaderboardHandler returns the top scores, highest first.
func (app *App) getLeaderboardHandler(c *gin.Context) {
	entries, err := app.Store.TopScores(c.Request.Context(), 0)
	if err != nil {
		logWarn("Failed to fetch leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": ErrorLeaderboard})
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// scoreSubmission is the POST /api/leaderboard payload.
type scoreSubmission struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Score int    `json:"score"`
}

// saveScoreHandler appends a leaderboard entry. Failures never touch game
// state; the client surfaces them as a dismissible notification.
func (app *App) saveScoreHandler(c *gin.Context) {
	var sub scoreSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid score payload"})
		return
	}
	if strings.TrimSpace(sub.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": ErrorNameRequired})
		return
	}
	if sub.Email == "" {
		sub.Email = DefaultPlayerEmail
	}

	id, err := app.Store.SaveScore(c.Request.Context(), sub.Name, sub.Email, sub.Score)
	if err != nil {
		logWarn("Failed to save score for %s: %v", sub.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": ErrorSaveScore})
		return
	}

	logInfo("Saved leaderboard entry %d: %s scored %d", id, sub.Name, sub.Score)
	c.JSON(http.StatusCreated, gin.H{"message": "Score saved successfully"})
}

// startGameHandler moves the caller's session into the playing state with a
// fresh or cached word of the day. Also serves "play again".
func (app *App) startGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSessionID(c)
	s := app.getOrCreateGameSession(sessionID)

	rec, err := app.Provider.Today(ctx)
	if err != nil || rec.Word == "" {
		logWarn("No word of the day for session %s: %v", sessionID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No word of the day available. Please try again."})
		return
	}

	seed := session.Seed{
		Word:       rec.Word,
		Definition: rec.Definition,
		BonusWord:  rec.BonusWord,
	}
	// Best effort; the definition hint simply stays empty on failure.
	if res, err := app.Words.Lookup(ctx, rec.BonusWord); err == nil && res.Valid {
		seed.BonusDefinition = res.Definition
	}

	if err := s.Start(seed); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	logInfo("Session %s started a game with word: %s", sessionID, rec.Word)
	c.JSON(http.StatusOK, s.Snapshot())
}

// wordSubmission is the POST /api/game/word payload.
type wordSubmission struct {
	Word string `json:"word"`
}

// submitWordHandler runs one chain-engine validation for the session. An
// accepted word returns its score and bonuses with the updated state; a
// rejection returns 422 with the reason and message and changes nothing.
func (app *App) submitWordHandler(c *gin.Context) {
	sessionID := app.getOrCreateSessionID(c)
	s := app.getGameSession(sessionID)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrorNoActiveGame})
		return
	}

	var sub wordSubmission
	if err := c.ShouldBindJSON(&sub); err != nil || strings.TrimSpace(sub.Word) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submit a word to play"})
		return
	}

	res, err := s.Submit(c.Request.Context(), sub.Word, app.dictionaryLookup)
	if err != nil {
		var rej *chain.Rejection
		switch {
		case errors.As(err, &rej):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"reason":  rej.Reason,
				"message": rej.Message,
			})
		case errors.Is(err, session.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": session.ErrNotPlaying.Error()})
		}
		return
	}

	logInfo("Session %s played %q for %d points", sessionID, chain.Normalize(sub.Word), res.Score)
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"game":   s.Snapshot(),
	})
}

// gameStateHandler returns the caller's current session snapshot.
func (app *App) gameStateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSessionID(c)
	s := app.getGameSession(sessionID)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrorNoActiveGame})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	app.SessionMutex.RLock()
	sessions := len(app.GameSessions)
	app.SessionMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"sessions":  sessions,
		"uptime":    formatUptime(uptime),
		"timestamp": app.Clock.Now().UTC().Format(time.RFC3339),
	})
}
