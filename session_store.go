package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pro-power/wordsurf/internal/session"
)

// getOrCreateSessionID retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getGameSession returns the game session for an ID, or nil if none exists.
func (app *App) getGameSession(sessionID string) *session.Session {
	app.SessionMutex.RLock()
	s, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if !exists {
		return nil
	}
	s.Touch(app.Clock)
	return s
}

// getOrCreateGameSession returns the session for an ID, creating a ready one
// if needed.
func (app *App) getOrCreateGameSession(sessionID string) *session.Session {
	if s := app.getGameSession(sessionID); s != nil {
		return s
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if s, exists := app.GameSessions[sessionID]; exists {
		return s
	}
	s := session.New(app.SessionCfg, app.Rules, app.Clock)
	app.GameSessions[sessionID] = s
	logInfo("Created new game session for: %s", sessionID)
	return s
}
