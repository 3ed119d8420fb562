package check

import "errors"

// ErrNoResults indicates a check was attempted against an empty result set
// (e.g. a DicePool that was never rolled).
var ErrNoResults = errors.New("check: at least one die result is required")

// MeetsDifficulty returns true if total >= difficulty.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure.
func Margin(total, difficulty int) int {
	return total - difficulty
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Success bool
	Margin  int
	// Critical is true when every die in the pool landed on its highest
	// face — a unanimous max roll, independent of whether the total met
	// difficulty.
	Critical bool
}

// Check performs a difficulty check against a single already-summed total
// and returns the result, with Critical always false since a bare total
// carries no per-die information.
func Check(total, difficulty int) Result {
	return Result{
		Success: MeetsDifficulty(total, difficulty),
		Margin:  Margin(total, difficulty),
	}
}

// CheckResults sums results and checks the total against difficulty,
// additionally flagging a critical when every die came up at sides (a
// unanimous max roll). sides is the face count shared by every die in
// results, matching how element.DicePool rolls a pool as one uniform spec.
func CheckResults(results []int, sides, difficulty int) (Result, error) {
	if len(results) == 0 {
		return Result{}, ErrNoResults
	}

	total := 0
	critical := sides > 0
	for _, v := range results {
		total += v
		if v != sides {
			critical = false
		}
	}

	return Result{
		Success:  MeetsDifficulty(total, difficulty),
		Margin:   Margin(total, difficulty),
		Critical: critical,
	}, nil
}
