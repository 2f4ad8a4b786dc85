package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the window over which a spending limit is evaluated.
type PeriodType string

const (
	// PeriodDaily evaluates spend since the start of the current day.
	PeriodDaily PeriodType = "DAILY"
	// PeriodWeekly evaluates spend since the start of the current week.
	PeriodWeekly PeriodType = "WEEKLY"
	// PeriodMonthly evaluates spend since the first of the current month.
	PeriodMonthly PeriodType = "MONTHLY"
)

// Valid reports whether the period type is one of the known values.
func (p PeriodType) Valid() bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodMonthly
}

// PeriodStart returns the start of the period containing now, in now's
// location. Weeks start on Monday.
func (p PeriodType) PeriodStart(now time.Time) time.Time {
	day := DateOnly(now)
	switch p {
	case PeriodDaily:
		return day
	case PeriodWeekly:
		offset := int(day.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

// CategoryLimit is a spending limit for one (user, category) pair. At most
// one active limit exists per pair; writes go through an upsert keyed on
// (user_id, category_id).
type CategoryLimit struct {
	StartDate   time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	CategoryID  string
	PeriodType  PeriodType
	LimitAmount decimal.Decimal
}
