/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Player is a tournament participant together with its accumulated results.
//
// Results are only ever added: AddScore and AddOutcome are called once per
// finished game by the scheduler. Black results are not stored; they are
// the difference between the totals and the white results.
type Player struct {
	builder     Builder
	timeControl TimeControl
	book        OpeningBook
	bookDepth   int

	wins        int
	draws       int
	losses      int
	whiteWins   int
	whiteDraws  int
	whiteLosses int

	// terminations and outcomes are fed by the same AddOutcome calls but are
	// independent views: one by category code, one by free text description.
	// Nothing requires their totals to agree.
	terminations [TerminationCount]int
	outcomes     map[string]int
}

// NewPlayer returns a Player which owns builder. book is shared and stays
// owned by the caller.
func NewPlayer(builder Builder, timeControl TimeControl, book OpeningBook,
	bookDepth int) *Player {

	if builder == nil {
		panic("tournament: NewPlayer called with nil builder")
	}

	return &Player{
		builder:     builder,
		timeControl: timeControl,
		book:        book,
		bookDepth:   bookDepth,
		outcomes:    make(map[string]int),
	}
}

// NewDefaultPlayer returns a Player without a builder, typically as the
// target of UnmarshalJSON.
func NewDefaultPlayer() *Player {
	return &Player{
		outcomes: make(map[string]int),
	}
}

func (p *Player) Builder() Builder {
	return p.builder
}

// Name returns the builder's name or "" when there is no builder.
func (p *Player) Name() string {
	if p.builder == nil {
		return ""
	}

	return p.builder.Name()
}

func (p *Player) SetName(name string) {
	if p.builder != nil {
		p.builder.SetName(name)
	}
}

func (p *Player) TimeControl() TimeControl {
	return p.timeControl
}

func (p *Player) Book() OpeningBook {
	return p.book
}

func (p *Player) SetBook(book OpeningBook) {
	p.book = book
}

func (p *Player) BookDepth() int {
	return p.bookDepth
}

func (p *Player) Wins() int        { return p.wins }
func (p *Player) Draws() int       { return p.draws }
func (p *Player) Losses() int      { return p.losses }
func (p *Player) WhiteWins() int   { return p.whiteWins }
func (p *Player) WhiteDraws() int  { return p.whiteDraws }
func (p *Player) WhiteLosses() int { return p.whiteLosses }

func (p *Player) BlackWins() int   { return p.wins - p.whiteWins }
func (p *Player) BlackDraws() int  { return p.draws - p.whiteDraws }
func (p *Player) BlackLosses() int { return p.losses - p.whiteLosses }

// Score is the number of points with a win worth 2 and a draw worth 1.
func (p *Player) Score() int {
	return p.wins*2 + p.draws
}

func (p *Player) GamesFinished() int {
	return p.wins + p.draws + p.losses
}

// AddScore records one finished game played as side with the given outcome.
// side must be White or Black and outcome must be Loss, Draw or Win; any
// other value is a programming error and panics.
func (p *Player) AddScore(side Side, outcome Outcome) {
	if side != White && side != Black {
		panic(fmt.Sprintf("tournament: AddScore called with side %v", side))
	}
	white := side == White

	switch outcome {
	case Loss:
		p.losses++
		if white {
			p.whiteLosses++
		}
	case Draw:
		p.draws++
		if white {
			p.whiteDraws++
		}
	case Win:
		p.wins++
		if white {
			p.whiteWins++
		}
	default:
		panic(fmt.Sprintf("tournament: AddScore called with outcome %d", int(outcome)))
	}
}

// AddOutcome records how a finished game ended, both by category and by
// description. An invalid category panics.
func (p *Player) AddOutcome(category Termination, description string) {
	category.mustBeValid()

	if p.outcomes == nil {
		p.outcomes = make(map[string]int)
	}
	p.outcomes[description]++
	p.terminations[category]++
}

// Outcomes returns the number of games that ended with category. An invalid
// category panics.
func (p *Player) Outcomes(category Termination) int {
	category.mustBeValid()

	return p.terminations[category]
}

// OutcomeMap returns a copy of the per-description outcome counts.
func (p *Player) OutcomeMap() map[string]int {
	if p.outcomes == nil {
		return map[string]int{}
	}

	return maps.Clone(p.outcomes)
}

type playerJSON struct {
	Builder      json.RawMessage `json:"builder,omitempty"`
	TimeControl  TimeControl     `json:"timeControl"`
	Book         json.RawMessage `json:"book,omitempty"`
	BookDepth    int             `json:"bookDepth"`
	Wins         int             `json:"wins"`
	Draws        int             `json:"draws"`
	Losses       int             `json:"losses"`
	WhiteWins    int             `json:"whiteWins"`
	WhiteDraws   int             `json:"whiteDraws"`
	WhiteLosses  int             `json:"whiteLosses"`
	Terminations []int           `json:"terminations"`
	OutcomeMap   map[string]int  `json:"outcomeMap"`
}

func (p *Player) MarshalJSON() ([]byte, error) {
	out := playerJSON{
		TimeControl:  p.timeControl,
		BookDepth:    p.bookDepth,
		Wins:         p.wins,
		Draws:        p.draws,
		Losses:       p.losses,
		WhiteWins:    p.whiteWins,
		WhiteDraws:   p.whiteDraws,
		WhiteLosses:  p.whiteLosses,
		Terminations: p.terminations[:],
		OutcomeMap:   p.OutcomeMap(),
	}

	var err error
	if p.builder != nil {
		out.Builder, err = p.builder.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("unable to serialize builder: %w", err)
		}
	}
	if p.book != nil {
		out.Book, err = p.book.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("unable to serialize book: %w", err)
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON loads a player from data on top of the current state.
//
// builder, timeControl and book are only touched when their keys are
// present; a builder is allocated when needed, and a book is only reloaded
// if the player already references one. The result counters and bookDepth
// are always overwritten, reading 0 when absent. terminations and
// outcomeMap replace the current collections when present and are left
// alone otherwise. An empty object is rejected without changing anything.
func (p *Player) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("unable to parse player: %w", err)
	}
	if len(fields) == 0 {
		return ErrEmptyObject
	}

	// decode and validate everything that does not touch collaborators
	// first so that bad input leaves the counters alone
	var counters [7]int
	for i, key := range []string{"bookDepth", "wins", "draws", "losses",
		"whiteWins", "whiteDraws", "whiteLosses"} {

		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &counters[i]); err != nil {
			return fmt.Errorf("unable to parse player %v: %w", key, err)
		}
	}
	bookDepth, wins, draws, losses := counters[0], counters[1], counters[2], counters[3]
	whiteWins, whiteDraws, whiteLosses := counters[4], counters[5], counters[6]
	if err := checkCounters(wins, whiteWins); err != nil {
		return fmt.Errorf("wins: %w", err)
	}
	if err := checkCounters(draws, whiteDraws); err != nil {
		return fmt.Errorf("draws: %w", err)
	}
	if err := checkCounters(losses, whiteLosses); err != nil {
		return fmt.Errorf("losses: %w", err)
	}

	var terminations []int
	rawTerms, haveTerms := fields["terminations"]
	if haveTerms {
		if err := json.Unmarshal(rawTerms, &terminations); err != nil {
			return fmt.Errorf("unable to parse player terminations: %w", err)
		}
		if len(terminations) > TerminationCount {
			return fmt.Errorf("%w: got %d, max %d", ErrTooManyTerminations,
				len(terminations), TerminationCount)
		}
		for i, v := range terminations {
			if v < 0 {
				return fmt.Errorf("%w: negative count %d for %v",
					ErrInconsistentScore, v, Termination(i))
			}
		}
	}

	var outcomes map[string]int
	rawOutcomes, haveOutcomes := fields["outcomeMap"]
	if haveOutcomes {
		if err := json.Unmarshal(rawOutcomes, &outcomes); err != nil {
			return fmt.Errorf("unable to parse player outcomeMap: %w", err)
		}
	}

	if raw, ok := fields["builder"]; ok {
		if p.builder == nil {
			p.builder = NewEngineBuilder(EngineConfig{})
		}
		if err := p.builder.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if raw, ok := fields["timeControl"]; ok {
		if err := p.timeControl.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if raw, ok := fields["book"]; ok && p.book != nil {
		if err := p.book.UnmarshalJSON(raw); err != nil {
			return err
		}
	}

	p.bookDepth = bookDepth
	p.wins, p.draws, p.losses = wins, draws, losses
	p.whiteWins, p.whiteDraws, p.whiteLosses = whiteWins, whiteDraws, whiteLosses

	if haveTerms {
		p.terminations = [TerminationCount]int{}
		copy(p.terminations[:], terminations)
	}
	if haveOutcomes {
		p.outcomes = make(map[string]int, len(outcomes))
		maps.Copy(p.outcomes, outcomes)
	}

	return nil
}

func checkCounters(total int, white int) error {
	if total < 0 || white < 0 || white > total {
		return fmt.Errorf("%w: total %d white %d", ErrInconsistentScore, total,
			white)
	}

	return nil
}
