package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/linguoapp/linguo/internal/models"
)

const postponeHint = "When to review next? (none, 14d, 2m, 3m, or YYYY-MM-DD)"

// Done prompts for a deck id and a postponement choice and records one fully
// completed listening session.
func (a *App) Done(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter deck id", os.Stdout)
	if err != nil {
		return err
	}

	choice, err := a.askPostponeChoice()
	if err != nil {
		return err
	}

	meta, err := a.reviewService.RecordCompletion(ctx, id, choice, time.Now())
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Recorded completion #%d for %s\n", meta.ViewCount, id)
	return nil
}

// Postpone prompts for a deck id and a new review date, changing the schedule
// without counting a completion.
func (a *App) Postpone(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter deck id", os.Stdout)
	if err != nil {
		return err
	}

	choice, err := a.askPostponeChoice()
	if err != nil {
		return err
	}

	meta, err := a.reviewService.Reschedule(ctx, id, choice, time.Now())
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if meta.PostponedUntil != nil {
		fmt.Printf("Next review of %s: %s\n", id, meta.PostponedUntil.Format("2006-01-02"))
	} else {
		fmt.Printf("Deck %s is unscheduled\n", id)
	}
	return nil
}

// Show prompts for a deck id and prints its review record.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter deck id", os.Stdout)
	if err != nil {
		return err
	}

	meta, err := a.reviewService.Get(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Deck %s: %d completions\n", id, meta.ViewCount)
	if meta.LastViewed != nil {
		fmt.Printf("  last viewed:  %s\n", meta.LastViewed.Format(time.RFC3339))
	}
	if meta.PostponedUntil != nil {
		fmt.Printf("  next review:  %s\n", meta.PostponedUntil.Format("2006-01-02"))
	}
	return nil
}

func (a *App) askPostponeChoice() (models.PostponeChoice, error) {
	text, err := getSimpleText(a.reader, postponeHint, os.Stdout)
	if err != nil {
		return models.PostponeChoice{}, err
	}

	choice, err := models.ParsePostponeChoice(text)
	if err != nil {
		fmt.Println(err.Error())
		return models.PostponeChoice{}, err
	}
	return choice, nil
}
