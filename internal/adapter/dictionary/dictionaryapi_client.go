package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vocab-quiz/internal/domain"
)

// maxBodyBytes caps how much of a response is read; real entries are a few KB.
const maxBodyBytes = 1 << 20

var (
	// ErrEmptyWord is returned before any request is made.
	ErrEmptyWord = errors.New("dictionary: empty word")
	// ErrUnexpectedShape means the body was JSON but not an array of entries.
	ErrUnexpectedShape = errors.New("dictionary: unexpected response shape")
)

// StatusError reports a non-200 answer from the dictionary service. The
// service answers 404 with a JSON object for unknown words.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dictionary: HTTP %d: %s", e.StatusCode, e.Body)
}

// DictionaryAPIClient talks to a dictionaryapi.dev compatible endpoint:
// GET {baseURL}/{word} returning a JSON array of entries.
type DictionaryAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDictionaryAPIClient builds a client with the given request timeout.
// A nil httpClient gets a fresh one.
func NewDictionaryAPIClient(baseURL string, timeout time.Duration, httpClient *http.Client) *DictionaryAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &DictionaryAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

var _ domain.DictionaryClient = (*DictionaryAPIClient)(nil)

// Lookup fetches and decodes the entries for word.
func (c *DictionaryAPIClient) Lookup(ctx context.Context, word string) ([]domain.DictionaryEntry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	endpoint := c.baseURL + "/" + url.PathEscape(strings.ToLower(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary: request %q: %w", word, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("dictionary: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	return DecodeEntries(body)
}

// DecodeEntries parses a lookup response. Only the outer array is required;
// entries that are not objects, a phonetics field that is not an array, and
// audio values that are not strings are treated as absent.
func DecodeEntries(body []byte) ([]domain.DictionaryEntry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, ErrUnexpectedShape
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal(body, &rawEntries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}

	entries := make([]domain.DictionaryEntry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		entries = append(entries, decodeEntry(raw))
	}
	return entries, nil
}

func decodeEntry(raw json.RawMessage) domain.DictionaryEntry {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.DictionaryEntry{}
	}

	entry := domain.DictionaryEntry{Word: optionalString(fields["word"])}

	var rawPhonetics []json.RawMessage
	if err := json.Unmarshal(fields["phonetics"], &rawPhonetics); err != nil {
		return entry
	}
	for _, rp := range rawPhonetics {
		var pf map[string]json.RawMessage
		if err := json.Unmarshal(rp, &pf); err != nil {
			continue
		}
		entry.Phonetics = append(entry.Phonetics, domain.Phonetic{
			Text:  optionalString(pf["text"]),
			Audio: optionalString(pf["audio"]),
		})
	}
	return entry
}

func optionalString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
