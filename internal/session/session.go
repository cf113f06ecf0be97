// Package session holds the per-player game state machine: ready, playing,
// finished. Time advances through explicit ticks so tests can drive a
// virtual clock instead of waiting on wall time.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/pro-power/wordsurf/internal/chain"
)

// State is the coarse lifecycle phase of a session.
type State string

const (
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

var (
	// ErrNoWordOfDay is returned by Start when no seed word is available.
	ErrNoWordOfDay = errors.New("no word of the day available")
	// ErrNotPlaying is returned for submissions outside the playing state.
	ErrNotPlaying = errors.New("game is not in progress")
	// ErrSubmissionInFlight guards against double submission while a
	// dictionary lookup is pending.
	ErrSubmissionInFlight = errors.New("a submission is already being checked")
)

// Clock supplies the current time. Injected so tests control it.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Config holds the session timing and hint knobs.
type Config struct {
	Duration            int // session length in seconds
	BonusHintAfter      int // elapsed seconds before the first-letter hint
	DefinitionHintScore int // score that unlocks the definition hint...
	DefinitionHintLeft  int // ...when this much time or less remains
}

// DefaultConfig returns the standard 60-second session with the hint
// thresholds the game shipped with.
func DefaultConfig() Config {
	return Config{
		Duration:            60,
		BonusHintAfter:      25,
		DefinitionHintScore: 1500,
		DefinitionHintLeft:  30,
	}
}

// Seed is the daily material a session starts from.
type Seed struct {
	Word            string
	Definition      string
	BonusWord       string
	BonusDefinition string
}

// WordEntry records one accepted submission. Immutable once appended.
type WordEntry struct {
	Word        string `json:"word"`
	Score       int    `json:"score"`
	IsBonusWord bool   `json:"isBonusWord"`
}

// Event signals a one-shot occurrence produced by a tick.
type Event string

const (
	EventBonusHint      Event = "bonus_hint"
	EventDefinitionHint Event = "definition_hint"
	EventFinished       Event = "finished"
)

// Session is a single player's game. All exported methods are safe for
// concurrent use; the dictionary lookup in Submit runs outside the lock so
// a tick can finish the game while a validation is still pending.
type Session struct {
	mu sync.Mutex

	cfg   Config
	rules chain.Rules

	state      State
	seed       Seed
	words      []string
	history    []WordEntry
	score      int
	timeLeft   int
	foundBonus bool

	bonusHintShown      bool
	definitionHintShown bool
	inFlight            bool
	generation          uint64

	lastAccess time.Time
}

// New creates a session in the ready state.
func New(cfg Config, rules chain.Rules, clock Clock) *Session {
	return &Session{
		cfg:        cfg,
		rules:      rules,
		state:      StateReady,
		timeLeft:   cfg.Duration,
		lastAccess: clock.Now(),
	}
}

// Start moves the session into the playing state, resetting the chain,
// score, history and hint flags. It also serves as "play again" from the
// finished state. Fails if the seed carries no word of the day.
func (s *Session) Start(seed Seed) error {
	if strings.TrimSpace(seed.Word) == "" {
		return ErrNoWordOfDay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StatePlaying
	s.seed = seed
	s.words = []string{chain.Normalize(seed.Word)}
	s.history = nil
	s.score = 0
	s.timeLeft = s.cfg.Duration
	s.foundBonus = false
	s.bonusHintShown = false
	s.definitionHintShown = false
	s.inFlight = false
	// Invalidates any submission whose lookup is still pending: its result
	// was computed against the previous game's chain.
	s.generation++
	return nil
}

// Submit validates a candidate word and, on success, appends it to the chain
// and history and adds its score. The lookup runs with the lock released;
// if the timer finishes the game or Start replaces it in the meantime the
// outcome is discarded and the chain and score stay untouched.
func (s *Session) Submit(ctx context.Context, raw string, lookup chain.Lookup) (chain.Result, error) {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return chain.Result{}, ErrNotPlaying
	}
	if s.inFlight {
		s.mu.Unlock()
		return chain.Result{}, ErrSubmissionInFlight
	}
	s.inFlight = true
	words := make([]string, len(s.words))
	copy(words, s.words)
	bonusWord := s.seed.BonusWord
	foundBonus := s.foundBonus
	rules := s.rules
	gen := s.generation
	s.mu.Unlock()

	res, err := rules.Validate(ctx, words, raw, bonusWord, foundBonus, lookup)

	s.mu.Lock()
	defer s.mu.Unlock()
	// After a restart the in-flight flag belongs to the new game; only the
	// submission's own generation may clear it.
	if s.generation == gen {
		s.inFlight = false
	}
	if err != nil {
		return chain.Result{}, err
	}
	if s.state != StatePlaying || s.generation != gen {
		return chain.Result{}, ErrNotPlaying
	}

	word := chain.Normalize(raw)
	s.words = append(s.words, word)
	s.history = append(s.history, WordEntry{Word: word, Score: res.Score, IsBonusWord: res.IsBonusWord})
	s.score += res.Score
	if res.IsBonusWord {
		s.foundBonus = true
	}
	return res, nil
}

// Tick advances the countdown by one second and returns any events fired:
// hint reveals and the transition to finished. Ticks outside the playing
// state do nothing.
func (s *Session) Tick() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return nil
	}

	var events []Event
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.state = StateFinished
		return append(events, EventFinished)
	}

	elapsed := s.cfg.Duration - s.timeLeft
	if !s.bonusHintShown && elapsed >= s.cfg.BonusHintAfter {
		s.bonusHintShown = true
		events = append(events, EventBonusHint)
	}
	if !s.definitionHintShown && s.score > s.cfg.DefinitionHintScore && s.timeLeft <= s.cfg.DefinitionHintLeft {
		s.definitionHintShown = true
		events = append(events, EventDefinitionHint)
	}
	return events
}

// Touch updates the last-access time for idle cleanup.
func (s *Session) Touch(clock Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = clock.Now()
}

// LastAccess reports when the session was last used.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Snapshot is a JSON-ready view of the session.
type Snapshot struct {
	State           State       `json:"state"`
	Word            string      `json:"wordOfTheDay"`
	Definition      string      `json:"definition"`
	Chain           []string    `json:"chain"`
	Score           int         `json:"score"`
	TimeLeft        int         `json:"timeLeft"`
	FoundBonusWord  bool        `json:"foundBonusWord"`
	History         []WordEntry `json:"history"`
	BonusHint       string      `json:"bonusHint,omitempty"`
	BonusDefinition string      `json:"bonusDefinition,omitempty"`
	BonusWord       string      `json:"bonusWord,omitempty"`
}

// Snapshot returns the current visible state. The bonus word itself is only
// revealed once the game is finished; hints appear as their one-shot flags
// fire.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:          s.state,
		Word:           s.seed.Word,
		Definition:     s.seed.Definition,
		Chain:          append([]string(nil), s.words...),
		Score:          s.score,
		TimeLeft:       s.timeLeft,
		FoundBonusWord: s.foundBonus,
		History:        append([]WordEntry(nil), s.history...),
	}
	if s.bonusHintShown && s.seed.BonusWord != "" {
		snap.BonusHint = strings.ToUpper(s.seed.BonusWord[:1])
	}
	if s.definitionHintShown {
		snap.BonusDefinition = s.seed.BonusDefinition
	}
	if s.state == StateFinished {
		snap.BonusWord = s.seed.BonusWord
	}
	return snap
}

// State reports the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score reports the current total score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}
