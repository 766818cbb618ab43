package shared

import (
	"time"

	"table-booking/internal/domain/reservation"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// RangeFilter selects reservations whose start lies in [Start, End].
type RangeFilter struct {
	Start    time.Time
	End      time.Time
	Table    *reservation.TableNumber
	Page     int
	PageSize int
}

func (f RangeFilter) Limit() uint64 {
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return uint64(size)
}

func (f RangeFilter) Offset() uint64 {
	page := f.Page
	if page < 1 {
		page = DefaultPage
	}
	return uint64(page-1) * f.Limit()
}

// DecisionRecorder observes the outcome of each admissibility decision.
type DecisionRecorder interface {
	RecordDecision(outcome string)
}

type NopDecisionRecorder struct{}

func (NopDecisionRecorder) RecordDecision(string) {}
