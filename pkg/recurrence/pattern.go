package recurrence

// Pattern identifies how often a recurring event repeats.
type Pattern string

const (
	PatternNone    Pattern = "none"
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
)

// ParsePattern maps a stored pattern value onto a known Pattern. Unrecognized
// values map to PatternNone: a bad pattern degrades to a single occurrence
// instead of breaking rendering.
func ParsePattern(s string) Pattern {
	switch Pattern(s) {
	case PatternDaily, PatternWeekly, PatternMonthly:
		return Pattern(s)
	default:
		return PatternNone
	}
}

// Repeats reports whether the pattern produces occurrences beyond the anchor date.
func (p Pattern) Repeats() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly:
		return true
	default:
		return false
	}
}
