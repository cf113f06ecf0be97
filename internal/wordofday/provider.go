// Package wordofday resolves the daily seed word and its hidden bonus word.
// Resolution is layered: local cache, then the persistent store, then the
// network sources, then a deterministic offline fallback keyed by the date,
// so every client converges on the same word even with no connectivity.
package wordofday

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pro-power/wordsurf/internal/wordapi"
)

// FallbackDefinition is the canned definition used when no dictionary
// definition could be fetched.
const FallbackDefinition = "A word to start your chain with!"

// Record is the word-of-day entry for one calendar date. Never mutated once
// persisted.
type Record struct {
	Word       string `json:"word"`
	BonusWord  string `json:"bonusWord"`
	Definition string `json:"definition"`
	Date       string `json:"date"`
}

// Store is the persistent per-date record store. WordOfDay returns
// (nil, nil) for a missing date; PutWordOfDay must be first-writer-wins for
// a given date.
type Store interface {
	WordOfDay(ctx context.Context, date string) (*Record, error)
	PutWordOfDay(ctx context.Context, rec Record) error
	DeleteWordOfDay(ctx context.Context, date string) error
}

// Sources are the network word services the provider draws from.
type Sources interface {
	RandomWord(ctx context.Context, minLen, maxLen int) (string, error)
	Related(ctx context.Context, word string, max int) ([]string, error)
	Lookup(ctx context.Context, word string) (wordapi.LookupResult, error)
}

// Config holds the acquisition knobs.
type Config struct {
	MaxAttempts int // random-word attempts before the fallback pool
	MinLen      int // random and bonus word length bounds
	MaxLen      int
	RelatedMax  int // how many Datamuse candidates to request
}

// DefaultConfig matches the original acquisition behaviour.
func DefaultConfig() Config {
	return Config{MaxAttempts: 10, MinLen: 4, MaxLen: 8, RelatedMax: 15}
}

// Provider is the daily-word lifecycle state machine.
type Provider struct {
	cfg   Config
	store Store
	cache Cache
	src   Sources
	clock func() time.Time
}

// New wires a provider. A nil cache disables local caching; clock defaults
// to UTC wall time.
func New(cfg Config, store Store, cache Cache, src Sources) *Provider {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Provider{cfg: cfg, store: store, cache: cache, src: src, clock: time.Now}
}

// WithClock overrides the time source, for tests.
func (p *Provider) WithClock(clock func() time.Time) *Provider {
	p.clock = clock
	return p
}

// DateKey returns the UTC YYYY-MM-DD key for a point in time.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NextRollover returns the time remaining until the next UTC midnight, when
// the date key changes and the cache re-enters the miss path.
func NextRollover(now time.Time) time.Duration {
	utc := now.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return midnight.Sub(utc)
}

// Today returns the record for the current date, resolving through cache,
// store, network acquisition and the deterministic fallback in that order.
// It never fails outright: the worst case is the offline fallback record.
func (p *Provider) Today(ctx context.Context) (Record, error) {
	date := DateKey(p.clock())

	if rec, ok := p.cache.Get(date); ok {
		return *rec, nil
	}

	if p.store != nil {
		rec, err := p.store.WordOfDay(ctx, date)
		if err != nil {
			log.Printf("[WARN] word-of-day store read failed: %v", err)
		} else if rec != nil {
			p.cache.Set(*rec)
			return *rec, nil
		}
	}

	rec := p.acquire(ctx, date)

	if p.store != nil {
		if err := p.store.PutWordOfDay(ctx, rec); err != nil {
			log.Printf("[WARN] word-of-day store write failed: %v", err)
		} else if stored, err := p.store.WordOfDay(ctx, date); err == nil && stored != nil {
			// First writer wins: a concurrent writer may have beaten us,
			// so re-read and serve the single persisted record.
			rec = *stored
		}
	}

	p.cache.Set(rec)
	return rec, nil
}

// Clear removes today's record and cache entry. Test-support operation.
func (p *Provider) Clear(ctx context.Context) error {
	p.cache.Invalidate()
	if p.store == nil {
		return nil
	}
	return p.store.DeleteWordOfDay(ctx, DateKey(p.clock()))
}

// acquire finds a new valid word and bonus word for a date lacking a record.
func (p *Provider) acquire(ctx context.Context, date string) Record {
	word, definition := p.validRandomWord(ctx)
	if word == "" {
		word = FallbackWord(date)
		definition = FallbackDefinition
		log.Printf("[WARN] using deterministic fallback word for %s: %s", date, word)
	}
	return Record{
		Word:       word,
		BonusWord:  p.bonusWord(ctx, word),
		Definition: definition,
		Date:       date,
	}
}

// validRandomWord tries up to MaxAttempts random words, keeping the first
// one the dictionary recognises. Empty return means every attempt failed.
func (p *Provider) validRandomWord(ctx context.Context) (word, definition string) {
	if p.src == nil {
		return "", ""
	}
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		candidate, err := p.src.RandomWord(ctx, p.cfg.MinLen, p.cfg.MaxLen)
		if err != nil {
			log.Printf("[WARN] random word attempt %d failed: %v", attempt, err)
			continue
		}
		res, err := p.src.Lookup(ctx, candidate)
		if err != nil {
			log.Printf("[WARN] dictionary check for %q failed: %v", candidate, err)
			continue
		}
		if res.Valid {
			def := res.Definition
			if def == "" {
				def = FallbackDefinition
			}
			return candidate, def
		}
	}
	return "", ""
}

// bonusWord derives a hidden bonus word related to the day's word: Datamuse
// candidates filtered and dictionary-validated, then the static related
// table, then a distinct pool word. The result always differs from word.
func (p *Provider) bonusWord(ctx context.Context, word string) string {
	if p.src != nil {
		if candidates, err := p.src.Related(ctx, word, p.cfg.RelatedMax); err == nil {
			usable := lo.Filter(candidates, func(c string, _ int) bool {
				return len(c) >= p.cfg.MinLen && len(c) <= p.cfg.MaxLen &&
					!strings.Contains(c, " ") && !strings.EqualFold(c, word)
			})
			for _, candidate := range usable {
				res, err := p.src.Lookup(ctx, candidate)
				if err != nil {
					log.Printf("[WARN] dictionary check for bonus candidate %q failed: %v", candidate, err)
					continue
				}
				if res.Valid {
					return strings.ToLower(candidate)
				}
			}
		} else {
			log.Printf("[WARN] related words for %q failed: %v", word, err)
		}
	}

	if related, ok := relatedWords[word]; ok && len(related) > 0 {
		return related[randomIndex(len(related))]
	}

	return fallbackBonus(word)
}

// randomIndex picks a uniform index below n, falling back to 0 if the
// entropy source fails.
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// FormatCountdown renders a duration as HH:MM:SS for the next-word timer.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
