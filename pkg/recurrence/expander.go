package recurrence

import (
	"time"

	"github.com/kalendo/kalendo/internal/utils"
	log "github.com/sirupsen/logrus"
)

const (
	// MinInterval and MaxInterval bound the recurrence step. Out-of-range
	// intervals are clamped, never rejected.
	MinInterval = 1
	MaxInterval = 365

	// DefaultStepLimit caps the expansion loop regardless of the
	// horizon/interval combination. It is a safety valve against pathological
	// inputs and stays unreachable under the default one-year horizon with
	// interval >= 1.
	DefaultStepLimit = 1000
)

// Expander turns an anchor date plus a recurrence pattern into the ordered set
// of calendar days the event occupies. It holds no state beyond the step
// limit; expansion is pure and deterministic.
type Expander struct {
	// StepLimit overrides DefaultStepLimit when positive.
	StepLimit int
}

func NewExpander(stepLimit int) *Expander {
	return &Expander{StepLimit: stepLimit}
}

// Expand returns every occurrence date from the anchor up to the default
// horizon of one year past the anchor.
func (e *Expander) Expand(anchorDate string, pattern Pattern, interval int) []time.Time {
	return e.ExpandUntil(anchorDate, pattern, interval, time.Time{})
}

// ExpandUntil returns every occurrence date from the anchor up to and
// including the horizon. A zero horizon means one year past the anchor.
//
// The result is strictly ascending, duplicate-free, date-only (midnight), and
// always starts with the anchor itself. An unparseable anchor yields an empty
// slice; an unrecognized pattern yields just the anchor. This function never
// fails: recurrence is additive and broken input must not take down the
// rendering path.
func (e *Expander) ExpandUntil(anchorDate string, pattern Pattern, interval int, horizon time.Time) []time.Time {
	anchor, err := utils.ParseDate(anchorDate)
	if err != nil {
		log.Debugf("recurrence: skipping expansion: %v", err)
		return nil
	}

	occurrences := []time.Time{anchor}
	if !pattern.Repeats() {
		return occurrences
	}

	interval = ClampInterval(interval)
	if horizon.IsZero() {
		horizon = anchor.AddDate(1, 0, 0)
	} else {
		horizon = utils.Midnight(horizon)
	}

	limit := e.StepLimit
	if limit <= 0 {
		limit = DefaultStepLimit
	}

	cursor := anchor
	for steps := 0; steps < limit; steps++ {
		cursor = advance(cursor, pattern, interval)
		if cursor.After(horizon) {
			break
		}
		occurrences = append(occurrences, cursor)
	}

	return occurrences
}

// ClampInterval forces the recurrence step into [MinInterval, MaxInterval].
func ClampInterval(interval int) int {
	if interval < MinInterval {
		return MinInterval
	}
	if interval > MaxInterval {
		return MaxInterval
	}
	return interval
}

func advance(cursor time.Time, pattern Pattern, interval int) time.Time {
	switch pattern {
	case PatternDaily:
		return cursor.AddDate(0, 0, interval)
	case PatternWeekly:
		return cursor.AddDate(0, 0, 7*interval)
	case PatternMonthly:
		return cursor.AddDate(0, interval, 0)
	default:
		return cursor
	}
}
