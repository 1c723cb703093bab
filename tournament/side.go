/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import "fmt"

// Side is the color a player had in a finished game.
type Side int

const (
	White Side = iota
	Black
	NoSide
)

func (s Side) String() string {
	if s == White {
		return "white"
	} else if s == Black {
		return "black"
	} else {
		return "none"
	}
}

// Outcome is a game result from the perspective of one player. The numeric
// value is the number of points the result is worth.
type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	case Win:
		return "win"
	}

	return "?"
}

// ParseResult converts a PGN style game result into the outcome for white.
func ParseResult(result string) (Outcome, error) {
	switch result {
	case "1-0":
		return Win, nil
	case "0-1":
		return Loss, nil
	case "1/2-1/2", "½-½":
		return Draw, nil
	}

	return 0, fmt.Errorf("unrecognized game result %q", result)
}
