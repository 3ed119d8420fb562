// Package check resolves a DicePool's rolled results against a target
// difficulty, the common "roll and beat a number" pattern condition
// predicates and Execute functions use to decide success or failure. It
// provides:
//
//   - Basic difficulty comparison (total vs target)
//   - Margin of success/failure calculations
//   - Unanimous-max ("critical") detection for a pool rolled with
//     CheckResults
//
// Game-specific flavoring of a Result (what a critical means for a given
// title, whether a partial success exists) is the Execute function's job,
// not this package's.
package check
