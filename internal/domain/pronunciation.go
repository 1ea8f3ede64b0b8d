package domain

import (
	"context"
	"strings"
)

// DictionaryEntry is the part of a dictionary lookup result the quiz uses.
// Every field is optional in the upstream payload.
type DictionaryEntry struct {
	Word      string
	Phonetics []Phonetic
}

// Phonetic is one pronunciation record. Audio is empty when the record has
// no recording.
type Phonetic struct {
	Text  string
	Audio string
}

// DictionaryClient fetches dictionary entries for a word.
type DictionaryClient interface {
	Lookup(ctx context.Context, word string) ([]DictionaryEntry, error)
}

// FirstAudioURL returns the first non-empty audio URL among the phonetics of
// the first entry. Protocol-relative URLs are upgraded to https.
func FirstAudioURL(entries []DictionaryEntry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	for _, p := range entries[0].Phonetics {
		audio := strings.TrimSpace(p.Audio)
		if audio == "" {
			continue
		}
		if strings.HasPrefix(audio, "//") {
			audio = "https:" + audio
		}
		return audio, true
	}
	return "", false
}
