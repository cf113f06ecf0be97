package main

import (
	"context"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pro-power/wordsurf/internal/chain"
	"github.com/pro-power/wordsurf/internal/session"
	"github.com/pro-power/wordsurf/internal/storage"
	"github.com/pro-power/wordsurf/internal/wordapi"
	"github.com/pro-power/wordsurf/internal/wordofday"
)

// App carries the server configuration and shared state.
type App struct {
	IsProduction   bool
	CookieMaxAge   time.Duration
	SessionTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int

	Rules       chain.Rules
	SessionCfg  session.Config
	Clock       session.Clock
	WordTimeout time.Duration

	Provider *wordofday.Provider
	Store    *storage.Store
	Words    *wordapi.Client

	GameSessions map[string]*session.Session
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	StartTime time.Time
}

// newApp builds the application from environment configuration.
func newApp() (*App, error) {
	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"

	rules := chain.DefaultRules()
	rules.MinWordLength = getEnvInt("MIN_WORD_LENGTH", rules.MinWordLength)
	rules.LongWordMinLen = getEnvInt("LONG_WORD_MIN_LENGTH", rules.LongWordMinLen)

	sessionCfg := session.DefaultConfig()
	sessionCfg.Duration = getEnvInt("SESSION_DURATION", sessionCfg.Duration)
	sessionCfg.BonusHintAfter = getEnvInt("BONUS_HINT_AFTER", sessionCfg.BonusHintAfter)

	wordTimeout := getEnvDuration("WORD_API_TIMEOUT", 3*time.Second)
	words := wordapi.New(wordTimeout)

	store, err := storage.Open(getEnv("DB_PATH", "data/wordsurf.db"))
	if err != nil {
		return nil, err
	}

	providerCfg := wordofday.DefaultConfig()
	providerCfg.MaxAttempts = getEnvInt("WORD_MAX_ATTEMPTS", providerCfg.MaxAttempts)
	cache := wordofday.NewFileCache(getEnv("WORD_CACHE_FILE", "data/wordofday.json"))
	provider := wordofday.New(providerCfg, store, cache, words)

	return &App{
		IsProduction:   isProduction,
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		Rules:          rules,
		SessionCfg:     sessionCfg,
		Clock:          session.SystemClock{},
		WordTimeout:    wordTimeout,
		Provider:       provider,
		Store:          store,
		Words:          words,
		GameSessions:   make(map[string]*session.Session),
		LimiterMap:     make(map[string]*rate.Limiter),
		StartTime:      time.Now(),
	}, nil
}

// dictionaryLookup adapts the word API client to the chain engine's lookup
// contract, bounded by the configured timeout.
func (app *App) dictionaryLookup(ctx context.Context, word string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, app.WordTimeout)
	defer cancel()
	res, err := app.Words.Lookup(ctx, word)
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

// runTicker drives all playing sessions once per second and evicts sessions
// idle past the timeout. It returns when stop is closed.
func (app *App) runTicker(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			app.tickSessions()
		}
	}
}

// tickSessions advances every session by one second and removes idle ones.
func (app *App) tickSessions() {
	now := app.Clock.Now()
	cutoff := now.Add(-app.SessionTimeout)

	app.SessionMutex.RLock()
	sessions := make(map[string]*session.Session, len(app.GameSessions))
	for id, s := range app.GameSessions {
		sessions[id] = s
	}
	app.SessionMutex.RUnlock()

	var expired []string
	for id, s := range sessions {
		for _, ev := range s.Tick() {
			if ev == session.EventFinished {
				logInfo("Session %s finished with score %d", id, s.Score())
			}
		}
		if s.LastAccess().Before(cutoff) {
			expired = append(expired, id)
		}
	}

	if len(expired) > 0 {
		app.SessionMutex.Lock()
		for _, id := range expired {
			delete(app.GameSessions, id)
		}
		app.SessionMutex.Unlock()
		logInfo("Removed %d idle game sessions", len(expired))
	}
}
