package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/linguoapp/linguo/internal/client/services"
)

// List prints the deck catalog, one line per deck, marking decks that are
// stored locally and decks whose review date has passed.
func (a *App) List(ctx context.Context) error {
	entries, err := a.catalogService.Load(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	downloaded := a.deckService.DownloadedIDs(ctx)
	now := time.Now().UTC()

	for _, e := range entries {
		marker := " "
		if _, ok := downloaded[e.ID]; ok {
			marker = "*"
		}

		due := ""
		meta, err := a.reviewService.Get(ctx, e.ID)
		if err == nil && services.IsDue(meta, now) {
			due = " [due]"
		}

		fmt.Printf("%s %s  %s (%s, %d sentences)%s\n", marker, e.ID, e.DeckName, e.Group, e.TotalSentences, due)
	}
	return nil
}

// Sync reconciles local review progress with the server. Requires a session.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}

	merged, err := a.syncService.Sync(ctx, a.session)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Synced %d decks\n", len(merged))
	return nil
}
