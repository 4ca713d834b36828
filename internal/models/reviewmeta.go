package models

import "time"

// ReviewMeta holds per-deck review scheduling facts. Every mutable field is
// paired with an update timestamp so two replicas can be reconciled per field.
// Timestamps are UTC and serialized as RFC 3339, which keeps string order and
// temporal order in agreement.
type ReviewMeta struct {
	DeckID                string     `json:"deck_id"`
	ViewCount             int64      `json:"view_count"`
	ViewCountUpdated      *time.Time `json:"view_count_updated,omitempty"`
	PostponedUntil        *time.Time `json:"postponed_until,omitempty"`
	PostponedUntilUpdated *time.Time `json:"postponed_until_updated,omitempty"`
	LastViewed            *time.Time `json:"last_viewed,omitempty"`
}

// NewReviewMeta returns the zero-value record for a deck: no views, nothing
// scheduled. It is synthesized on read and never persisted as-is.
func NewReviewMeta(deckID string) *ReviewMeta {
	return &ReviewMeta{DeckID: deckID}
}

// Clone returns a deep copy of the record.
func (m *ReviewMeta) Clone() *ReviewMeta {
	c := *m
	c.ViewCountUpdated = copyTime(m.ViewCountUpdated)
	c.PostponedUntil = copyTime(m.PostponedUntil)
	c.PostponedUntilUpdated = copyTime(m.PostponedUntilUpdated)
	c.LastViewed = copyTime(m.LastViewed)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// TimeAfter reports whether a is strictly later than b, treating nil as the
// beginning of time.
func TimeAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

// LaterTime returns whichever of the two timestamps is later; nil only when
// both are nil.
func LaterTime(a, b *time.Time) *time.Time {
	if TimeAfter(a, b) {
		return copyTime(a)
	}
	return copyTime(b)
}
