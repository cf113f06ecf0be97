package wordofday

// FallbackPool is the fixed pool the provider selects from when every
// network source is unavailable. Common English words only, so the
// deterministic fallback is always playable.
var FallbackPool = []string{
	"chain", "start", "plant", "table", "house", "light", "music",
	"brain", "dance", "world", "smile", "green", "bread", "phone",
	"water", "earth", "paper", "glass", "dream", "color", "ocean",
}

// relatedWords is the static bonus-word table used when Datamuse is
// unavailable or returns nothing usable.
var relatedWords = map[string][]string{
	"chain": {"link", "connect", "metal", "bind"},
	"start": {"begin", "launch", "initiate", "commence"},
	"plant": {"grow", "flower", "garden", "seed"},
	"table": {"chair", "desk", "furniture", "dining"},
	"house": {"home", "building", "residence", "dwelling"},
	"light": {"bright", "lamp", "shine", "glow"},
	"music": {"song", "melody", "rhythm", "sound"},
	"water": {"liquid", "ocean", "river", "hydrate"},
	"earth": {"planet", "soil", "ground", "nature"},
	"paper": {"document", "sheet", "write", "notebook"},
	"glass": {"window", "mirror", "transparent", "crystal"},
	"dream": {"sleep", "goal", "aspiration", "vision"},
	"color": {"paint", "hue", "shade", "pigment"},
	"ocean": {"sea", "wave", "marine", "water"},
}

// stringHash is the 31-based rolling hash every client computes identically.
// Arithmetic wraps at 32 bits on purpose: the web clients coerce to int32
// the same way, which keeps offline fallback words in sync across clients.
func stringHash(s string) int32 {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// poolIndex maps a hash to a pool index.
func poolIndex(h int32, poolLen int) int {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(poolLen))
}

// FallbackWord deterministically selects the day's word from the pool for a
// YYYY-MM-DD date string. Same date, same word, on every client.
func FallbackWord(date string) string {
	return FallbackPool[poolIndex(stringHash(date), len(FallbackPool))]
}

// fallbackBonus deterministically selects a bonus word distinct from the
// primary word.
func fallbackBonus(word string) string {
	i := poolIndex(stringHash(word), len(FallbackPool))
	if FallbackPool[i] != word {
		return FallbackPool[i]
	}
	return FallbackPool[(i+1)%len(FallbackPool)]
}
