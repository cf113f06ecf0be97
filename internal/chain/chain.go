// Package chain implements the word-chain validation and scoring engine.
// Validation and scoring are pure over (chain, candidate, bonusWord,
// foundBonus); callers append to the chain only after a successful result.
package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Rejection reasons, in the order the checks run.
const (
	ReasonTooShort    = "too_short"
	ReasonDuplicate   = "duplicate"
	ReasonWrongLetter = "wrong_letter"
	ReasonNotAWord    = "not_a_word"
)

// Bonus tags attached to a scored word.
const (
	BonusTagLongWord  = "Long Word"
	BonusTagVowel     = "Vowel Start"
	BonusTagDistinct  = "No Repeating Letters"
	BonusTagBonusWord = "Bonus Word"
)

// Rules holds the configurable scoring and validation knobs.
type Rules struct {
	MinWordLength  int // minimum candidate length in letters
	LongWordMinLen int // minimum length for the long-word bonus
	BasePerLetter  int
	LongWordBonus  int
	VowelBonus     int
	DistinctBonus  int
	BonusWordBonus int
}

// DefaultRules returns the standard game rules: 3-letter minimum, long-word
// bonus for words strictly longer than 8 letters.
func DefaultRules() Rules {
	return Rules{
		MinWordLength:  3,
		LongWordMinLen: 9,
		BasePerLetter:  10,
		LongWordBonus:  50,
		VowelBonus:     20,
		DistinctBonus:  30,
		BonusWordBonus: 100,
	}
}

// Rejection describes why a candidate word was refused. It carries a
// user-facing message alongside the categorical reason.
type Rejection struct {
	Reason  string
	Message string
}

func (r *Rejection) Error() string { return r.Message }

// Result is the verdict for an accepted word.
type Result struct {
	Score       int      `json:"score"`
	Bonuses     []string `json:"bonuses"`
	IsBonusWord bool     `json:"isBonusWord"`
}

// Lookup checks a word against an external dictionary. A false result means
// the word is not recognised; a non-nil error means the dictionary was
// unreachable and the engine falls back to a permissive alphabetic check.
type Lookup func(ctx context.Context, word string) (bool, error)

// Normalize trims and lowercases a raw submission for comparison.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate checks a candidate word against the chain and scores it.
// The checks run in order and short-circuit on the first failure: minimum
// length, duplicate, starting letter, then the dictionary lookup. A nil
// lookup skips the dictionary step entirely.
func (r Rules) Validate(ctx context.Context, words []string, candidate, bonusWord string, foundBonus bool, lookup Lookup) (Result, error) {
	word := Normalize(candidate)

	if len(word) < r.MinWordLength {
		return Result{}, &Rejection{
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("Word must be at least %d letters long", r.MinWordLength),
		}
	}

	if lo.SomeBy(words, func(prev string) bool { return strings.EqualFold(prev, word) }) {
		return Result{}, &Rejection{
			Reason:  ReasonDuplicate,
			Message: "Word already used in this chain",
		}
	}

	if len(words) > 0 {
		required := lastLetter(words[len(words)-1])
		if !strings.HasPrefix(word, required) {
			return Result{}, &Rejection{
				Reason:  ReasonWrongLetter,
				Message: fmt.Sprintf("Word must start with the letter '%s'", strings.ToUpper(required)),
			}
		}
	}

	if rej := r.checkDictionary(ctx, word, lookup); rej != nil {
		return Result{}, rej
	}

	return r.score(word, bonusWord, foundBonus), nil
}

// checkDictionary runs the external validity check, degrading to an
// alphabetic-only check when the validator is unreachable.
func (r Rules) checkDictionary(ctx context.Context, word string, lookup Lookup) *Rejection {
	rej := &Rejection{
		Reason:  ReasonNotAWord,
		Message: fmt.Sprintf("'%s' is not a recognised English word", word),
	}

	if lookup == nil {
		if !isAlpha(word) {
			return rej
		}
		return nil
	}

	valid, err := lookup(ctx, word)
	if err != nil {
		if !isAlpha(word) {
			return rej
		}
		return nil
	}
	if !valid {
		return rej
	}
	return nil
}

// score computes the base score plus every applicable bonus. The bonus-word
// bonus applies at most once per session, gated by foundBonus.
func (r Rules) score(word, bonusWord string, foundBonus bool) Result {
	res := Result{Score: r.BasePerLetter * len(word)}

	if len(word) >= r.LongWordMinLen {
		res.Score += r.LongWordBonus
		res.Bonuses = append(res.Bonuses, BonusTagLongWord)
	}
	if strings.ContainsRune("aeiou", rune(word[0])) {
		res.Score += r.VowelBonus
		res.Bonuses = append(res.Bonuses, BonusTagVowel)
	}
	if len(lo.Uniq([]rune(word))) == len([]rune(word)) {
		res.Score += r.DistinctBonus
		res.Bonuses = append(res.Bonuses, BonusTagDistinct)
	}
	if bonusWord != "" && strings.EqualFold(word, bonusWord) {
		res.IsBonusWord = true
		if !foundBonus {
			res.Score += r.BonusWordBonus
			res.Bonuses = append(res.Bonuses, BonusTagBonusWord)
		}
	}
	return res
}

// lastLetter returns the final letter of a word as a lowercase string.
func lastLetter(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}

// isAlpha checks that a string consists only of ASCII letters a-z.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// VerifyChain reports whether an ordered word list satisfies the chain
// invariants: adjacent words link last-letter to first-letter and no word
// repeats case-insensitively.
func VerifyChain(words []string) bool {
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		lw := strings.ToLower(w)
		if _, dup := seen[lw]; dup {
			return false
		}
		seen[lw] = struct{}{}
		if i > 0 && !strings.HasPrefix(lw, lastLetter(words[i-1])) {
			return false
		}
	}
	return true
}
