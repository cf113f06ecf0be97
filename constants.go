package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteWordOfDay   = "/api/words/word-of-day"
	RouteWordTest    = "/api/words/test"
	RouteLeaderboard = "/api/leaderboard"
	RouteGameStart   = "/api/game/start"
	RouteGameWord    = "/api/game/word"
	RouteGameState   = "/api/game/state"
	RouteHealthz     = "/healthz"
)

// Error message constants
const (
	ErrorNoActiveGame = "No active game. Start one first."
	ErrorNameRequired = "Please enter your name to submit your score."
	ErrorLeaderboard  = "Error fetching leaderboard"
	ErrorSaveScore    = "Error saving score"
)

// DefaultPlayerEmail is recorded when a player submits a score without one.
const DefaultPlayerEmail = "anonymous@example.com"

type contextKey string

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
