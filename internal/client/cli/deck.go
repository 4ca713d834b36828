package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/linguoapp/linguo/internal/models"
)

// Download prompts for a deck id, resolves it against the catalog, and stores
// the deck for offline playback.
func (a *App) Download(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter deck id", os.Stdout)
	if err != nil {
		return err
	}

	entries, err := a.catalogService.Load(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	var entry *models.CatalogEntry
	for i := range entries {
		if entries[i].ID == id {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		fmt.Printf("Deck %s is not in the catalog\n", id)
		return nil
	}

	deck, err := a.deckService.Download(ctx, *entry)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Downloaded %s (%d sentences, %d audio bytes)\n",
		deck.Metadata.DeckName, len(deck.Metadata.Sentences), len(deck.Audio))
	return nil
}

// Delete prompts for a deck id and removes the stored deck. Review history
// stays; a deleted deck can be downloaded again later.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter deck id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.deckService.Delete(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Deleted %s\n", id)
	return nil
}
