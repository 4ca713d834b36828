package models

import (
	"fmt"
	"time"
)

type postponeKind int

const (
	postponeNone postponeKind = iota
	postponeDays
	postponeMonths
	postponeExact
)

// PostponeChoice is a closed set of ways to schedule a deck's next review:
// nothing, a number of days, a number of calendar months, or an exact date.
type PostponeChoice struct {
	kind   postponeKind
	days   int
	months int
	date   time.Time
}

func PostponeNone() PostponeChoice {
	return PostponeChoice{kind: postponeNone}
}

func PostponeDays(n int) PostponeChoice {
	return PostponeChoice{kind: postponeDays, days: n}
}

func PostponeMonths(n int) PostponeChoice {
	return PostponeChoice{kind: postponeMonths, months: n}
}

func PostponeExact(date time.Time) PostponeChoice {
	return PostponeChoice{kind: postponeExact, date: date}
}

// Until computes the resulting postponed-until timestamp for the choice.
// Month arithmetic is calendar-based (time.AddDate). PostponeNone yields nil,
// meaning "available now".
func (c PostponeChoice) Until(now time.Time) *time.Time {
	switch c.kind {
	case postponeDays:
		t := now.AddDate(0, 0, c.days)
		return &t
	case postponeMonths:
		t := now.AddDate(0, c.months, 0)
		return &t
	case postponeExact:
		t := c.date
		return &t
	default:
		return nil
	}
}

// ParsePostponeChoice maps the user-facing option strings to a choice:
// "none", "14d", "2m", "3m", or an exact date in YYYY-MM-DD form.
func ParsePostponeChoice(s string) (PostponeChoice, error) {
	switch s {
	case "none", "":
		return PostponeNone(), nil
	case "14d":
		return PostponeDays(14), nil
	case "2m":
		return PostponeMonths(2), nil
	case "3m":
		return PostponeMonths(3), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return PostponeChoice{}, fmt.Errorf("unknown postpone option %q", s)
	}
	return PostponeExact(date.UTC()), nil
}
