package weighting

import "fmt"

// Mode selects whether purchase weights influence sampling.
type Mode string

const (
	// ModeNone samples customers and order dates uniformly. Weights are
	// still computed per order but have no effect on any outcome, and the
	// random draw sequence is the same as if they did not exist.
	ModeNone Mode = "none"

	// ModeApplied samples customers by segment order probability and
	// order dates by seasonal multiplier.
	ModeApplied Mode = "applied"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeApplied:
		return Mode(s), nil
	case "":
		return ModeNone, nil
	default:
		return "", fmt.Errorf("unknown weighting mode: %s", s)
	}
}

// Customer segments.
const (
	SegmentPremium = "premium"
	SegmentRegular = "regular"
	SegmentBudget  = "budget"
)

// SegmentOrderProbability returns the relative order frequency of a
// customer segment. Unknown segments get the budget rate.
func SegmentOrderProbability(segment string) float64 {
	switch segment {
	case SegmentPremium:
		return 0.15
	case SegmentRegular:
		return 0.08
	default:
		return 0.05
	}
}
