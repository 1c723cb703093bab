/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import "fmt"

// Termination is the category of reason a game ended. The numeric value is
// the category code used as the index into a player's termination counters
// and in the "terminations" JSON array.
type Termination int

const (
	Checkmate Termination = iota
	Stalemate
	Resignation
	Timeout
	DrawByAgreement
	ThreefoldRepetition
	FiftyMoveRule
	InsufficientMaterial
	AdjudicatedWin
	AdjudicatedDraw
	TablebaseWin
	TablebaseDraw
	MoveLimitDraw
	IllegalMove
	Disconnection
	StalledConnection
	FalseClaim
	VariantWin
	VariantLoss
	VariantDraw
	StartupFailure
	UserAbort
	NoResult
	ResultError

	// TerminationCount is the number of termination categories.
	TerminationCount int = iota
)

var terminationNames = [TerminationCount]string{
	Checkmate:            "checkmate",
	Stalemate:            "stalemate",
	Resignation:          "resignation",
	Timeout:              "timeout",
	DrawByAgreement:      "draw by agreement",
	ThreefoldRepetition:  "threefold repetition",
	FiftyMoveRule:        "fifty move rule",
	InsufficientMaterial: "insufficient material",
	AdjudicatedWin:       "adjudicated win",
	AdjudicatedDraw:      "adjudicated draw",
	TablebaseWin:         "tablebase win",
	TablebaseDraw:        "tablebase draw",
	MoveLimitDraw:        "move limit",
	IllegalMove:          "illegal move",
	Disconnection:        "disconnection",
	StalledConnection:    "stalled connection",
	FalseClaim:           "false claim",
	VariantWin:           "variant win",
	VariantLoss:          "variant loss",
	VariantDraw:          "variant draw",
	StartupFailure:       "startup failure",
	UserAbort:            "user abort",
	NoResult:             "no result",
	ResultError:          "result error",
}

// Valid reports whether t is one of the known categories.
func (t Termination) Valid() bool {
	return t >= 0 && int(t) < TerminationCount
}

func (t Termination) String() string {
	if !t.Valid() {
		return fmt.Sprintf("termination(%d)", int(t))
	}

	return terminationNames[t]
}

// mustBeValid panics on category codes outside the enumeration; these come
// from the game runner and an unknown code means counters would be corrupted.
func (t Termination) mustBeValid() {
	if !t.Valid() {
		panic(fmt.Sprintf("tournament: termination category %d out of range [0,%d)",
			int(t), TerminationCount))
	}
}

// ParseTermination maps a category name as returned by String back to its
// category.
func ParseTermination(name string) (Termination, error) {
	for idx, n := range terminationNames {
		if n == name {
			return Termination(idx), nil
		}
	}

	return 0, fmt.Errorf("unknown termination category %q", name)
}
