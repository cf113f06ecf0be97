package wordofday

import (
	"strings"
	"testing"
)

// TestFallbackPoolIntegrity checks every pool word is playable: lowercase
// ASCII letters, at least three long, no duplicates.
func TestFallbackPoolIntegrity(t *testing.T) {
	if len(FallbackPool) == 0 {
		t.Fatal("fallback pool is empty")
	}

	seen := make(map[string]struct{}, len(FallbackPool))
	for _, w := range FallbackPool {
		if len(w) < 3 {
			t.Errorf("pool word %q is shorter than 3 letters", w)
		}
		if w != strings.ToLower(w) {
			t.Errorf("pool word %q is not lowercase", w)
		}
		for _, r := range w {
			if r < 'a' || r > 'z' {
				t.Errorf("pool word %q contains non-letter %q", w, r)
			}
		}
		if _, dup := seen[w]; dup {
			t.Errorf("pool word %q appears twice", w)
		}
		seen[w] = struct{}{}
	}
}

// TestRelatedWordsIntegrity checks the static bonus table: keys come from
// the pool and every candidate is a plain lowercase word.
func TestRelatedWordsIntegrity(t *testing.T) {
	pool := make(map[string]struct{}, len(FallbackPool))
	for _, w := range FallbackPool {
		pool[w] = struct{}{}
	}

	for key, related := range relatedWords {
		if _, ok := pool[key]; !ok {
			t.Errorf("related-words key %q is not a pool word", key)
		}
		if len(related) == 0 {
			t.Errorf("related-words entry %q is empty", key)
		}
		for _, w := range related {
			if w == "" || w != strings.ToLower(w) || strings.Contains(w, " ") {
				t.Errorf("related word %q for %q is not a plain lowercase word", w, key)
			}
			if w == key {
				t.Errorf("related word for %q equals the key itself", key)
			}
		}
	}
}

// TestStringHash checks the 32-bit wrapping hash against known values.
func TestStringHash(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
	}
	for _, tt := range tests {
		if got := stringHash(tt.in); got != tt.want {
			t.Errorf("stringHash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestFallbackWordDeterministic checks identical dates map to identical pool
// words and the index stays in range even for negative hashes.
func TestFallbackWordDeterministic(t *testing.T) {
	dates := []string{"2026-03-01", "2026-03-02", "2026-12-31", "1970-01-01"}
	pool := make(map[string]struct{}, len(FallbackPool))
	for _, w := range FallbackPool {
		pool[w] = struct{}{}
	}

	for _, date := range dates {
		first := FallbackWord(date)
		second := FallbackWord(date)
		if first != second {
			t.Errorf("FallbackWord(%q) not deterministic: %q vs %q", date, first, second)
		}
		if _, ok := pool[first]; !ok {
			t.Errorf("FallbackWord(%q) = %q is not a pool word", date, first)
		}
	}
}

// TestFallbackBonusDiffersFromWord checks the bonus never collides with the
// day's word, for every pool word.
func TestFallbackBonusDiffersFromWord(t *testing.T) {
	for _, w := range FallbackPool {
		if bonus := fallbackBonus(w); bonus == w || bonus == "" {
			t.Errorf("fallbackBonus(%q) = %q", w, bonus)
		}
	}
}
