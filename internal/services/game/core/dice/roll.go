package dice

import "math/rand"

// RollDice rolls dice based on the provided request. It is the primitive
// underneath element.DicePool.Roll: a pool rolls one Spec at a time, but the
// slice form exists so an Execute function can resolve several named pools
// (e.g. "attack" and "damage") from a single seed in one deterministic pass.
//
// # Determinism
//
// RollDice is deterministic with respect to the Seed field on Request.
// Given the same Seed and the same Dice slice (including order and values),
// RollDice will always produce the same Result. The seed itself is resolved
// by the caller, normally via rng.Resolve, before it ever reaches this
// package — dice has no opinion on where a seed comes from.
//
// # Ordering
//
// Dice specs in Request.Dice are processed in slice order. The resulting
// Roll entries in Result.Rolls appear in the same order as the
// corresponding Spec entries in Request.Dice.
//
// # Totals
//
// For each Roll in Result.Rolls, the Total field is the sum of all
// values in Results for that dice specification. The Result.Total field
// is the sum of Total for all Roll entries (i.e., the sum of every die
// rolled across the entire request).
//
// # Errors
//
//   - At least one Spec must be provided in Request.Dice, otherwise
//     ErrMissingDice is returned.
//   - Each Spec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
//
// Example:
//
//	req := Request{
//	    Dice: []Spec{
//	        {Sides: 6, Count: 2}, // a DicePool rolling 2d6 for an attack
//	        {Sides: 8, Count: 1}, // a second pool rolling 1d8 for damage
//	    },
//	    Seed: 1,
//	}
//	result, err := RollDice(req)
func RollDice(request Request) (Result, error) {
	if len(request.Dice) == 0 {
		return Result{}, ErrMissingDice
	}

	rng := rand.New(rand.NewSource(request.Seed))
	rolls := make([]Roll, 0, len(request.Dice))
	total := 0

	for _, spec := range request.Dice {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
