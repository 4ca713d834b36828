// Package models defines the data shapes shared between the Linguo client and
// server: catalog entries, deck payloads, and per-deck review metadata.
package models

// Sentence is one time-aligned bilingual caption within a deck.
type Sentence struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	English string  `json:"english"`
	Russian string  `json:"russian"`
}

// CatalogEntry is the summary form of a deck as listed in the catalog.
type CatalogEntry struct {
	ID             string  `json:"id"`
	DeckName       string  `json:"deck_name"`
	Group          string  `json:"group,omitempty"`
	TotalSentences int     `json:"total_sentences,omitempty"`
	TotalDuration  float64 `json:"total_duration,omitempty"`
	DeckURL        string  `json:"deck_url,omitempty"`
	AudioURL       string  `json:"audio_url,omitempty"`
}

// Valid reports whether the entry carries the minimum required fields.
func (e CatalogEntry) Valid() bool {
	return e.ID != "" && e.DeckName != ""
}

// DeckPayload is the full deck document. A payload built from a summary entry
// has an empty sentence list; playback with it is an accepted degradation.
type DeckPayload struct {
	ID        string     `json:"id"`
	DeckName  string     `json:"deck_name"`
	Group     string     `json:"group,omitempty"`
	Sentences []Sentence `json:"sentences,omitempty"`
	AudioURL  string     `json:"audio_url,omitempty"`
}

// PayloadFromEntry converts a catalog summary into a (possibly partial)
// deck payload.
func PayloadFromEntry(e CatalogEntry) DeckPayload {
	return DeckPayload{
		ID:       e.ID,
		DeckName: e.DeckName,
		Group:    e.Group,
		AudioURL: e.AudioURL,
	}
}

// Deck is the persisted unit of offline content: the full payload plus the
// downloaded audio bytes.
type Deck struct {
	ID       string
	Metadata DeckPayload
	Audio    []byte
}
