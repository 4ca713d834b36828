package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes. Registration, login, the catalog, and deck
// documents are public; the review-metadata replica and publishing endpoints
// require a Bearer token.
func NewRouter(h *Handlers, secretKey []byte) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/catalog", h.Catalog)
		r.Get("/decks/{deckID}", h.Deck)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(secretKey))

			r.Get("/meta", h.ListMeta)
			r.Put("/meta/{deckID}", h.UpsertMeta)

			r.Get("/decks/upload-url", h.UploadURL)
			r.Post("/decks", h.PublishDeck)
		})
	})

	return r
}
