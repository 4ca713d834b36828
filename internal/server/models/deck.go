package models

import "time"

// DeckRecord is a published deck as stored server-side. Payload holds the
// full deck document (JSON: name, group, sentences); AudioKey locates the
// narration file in the object store, from which a presigned GET URL is
// minted on demand.
type DeckRecord struct {
	ID             string
	DeckName       string
	DeckGroup      string
	TotalSentences int64
	TotalDuration  float64
	Payload        []byte
	AudioKey       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
