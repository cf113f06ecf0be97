// Package wordapi wraps the external word services the game depends on:
// the free dictionary API for validity and definitions, a random-word API
// for daily seeds, and Datamuse for related words. Every call carries a
// short timeout and fails soft; callers are expected to degrade.
package wordapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default endpoint bases, overridable for tests.
const (
	DefaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultRandomWordURL = "https://random-word.ryanrk.com/api/en/word/random"
	DefaultDatamuseURL   = "https://api.datamuse.com/words"
)

// LookupResult is the dictionary verdict for a single word.
type LookupResult struct {
	Valid      bool
	Definition string
}

// Client calls the external word services over a shared tuned HTTP client.
type Client struct {
	http          *http.Client
	DictionaryURL string
	RandomWordURL string
	DatamuseURL   string
}

// New returns a client whose calls time out after the given duration.
func New(timeout time.Duration) *Client {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         dialer.DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: timeout,
			},
		},
		DictionaryURL: DefaultDictionaryURL,
		RandomWordURL: DefaultRandomWordURL,
		DatamuseURL:   DefaultDatamuseURL,
	}
}

// dictionaryEntry mirrors the slice of entries the dictionary API returns.
type dictionaryEntry struct {
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup checks whether a word is a recognised English word and extracts a
// "partOfSpeech: definition" string from its first meaning. A non-2xx
// response means the word is unknown, not an error; transport failures are
// returned so callers can fall back.
func (c *Client) Lookup(ctx context.Context, word string) (LookupResult, error) {
	var entries []dictionaryEntry
	ok, err := c.getJSON(ctx, c.DictionaryURL+"/"+url.PathEscape(word), &entries)
	if err != nil {
		return LookupResult{}, err
	}
	if !ok {
		return LookupResult{Valid: false}, nil
	}

	res := LookupResult{Valid: true, Definition: "A word to start your chain with!"}
	if len(entries) > 0 && len(entries[0].Meanings) > 0 {
		m := entries[0].Meanings[0]
		if len(m.Definitions) > 0 {
			res.Definition = fmt.Sprintf("%s: %s", m.PartOfSpeech, m.Definitions[0].Definition)
		}
	}
	return res, nil
}

// RandomWord fetches one random lowercase word within the length bounds.
func (c *Client) RandomWord(ctx context.Context, minLen, maxLen int) (string, error) {
	endpoint := fmt.Sprintf("%s/?minlength=%d&maxlength=%d", c.RandomWordURL, minLen, maxLen)
	var words []string
	ok, err := c.getJSON(ctx, endpoint, &words)
	if err != nil {
		return "", err
	}
	if !ok || len(words) == 0 || words[0] == "" {
		return "", fmt.Errorf("random word API returned no word")
	}
	return strings.ToLower(words[0]), nil
}

// datamuseWord is one Datamuse result row.
type datamuseWord struct {
	Word string `json:"word"`
}

// Related fetches up to max words Datamuse considers similar in meaning.
func (c *Client) Related(ctx context.Context, word string, max int) ([]string, error) {
	endpoint := fmt.Sprintf("%s?ml=%s&max=%d", c.DatamuseURL, url.QueryEscape(word), max)
	var rows []datamuseWord
	ok, err := c.getJSON(ctx, endpoint, &rows)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("datamuse responded with an error status")
	}
	words := make([]string, 0, len(rows))
	for _, r := range rows {
		words = append(words, r.Word)
	}
	return words, nil
}

// getJSON performs a GET and decodes the body. The boolean reports whether
// the response was a 2xx; transport and decode errors come back as errors.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}
