/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mikeb26/enginetourney/internal"
)

// Tournament is a set of players competing under one scheduling variant.
// The scheduling itself is done elsewhere; a Tournament owns its players and
// their results and knows how to serialize itself.
type Tournament interface {
	Type() Type
	ID() string
	Name() string
	SetName(name string)
	Manager() GameManager
	Players() []*Player
	AddPlayer(p *Player)
	FinishedGames() int
	// RecordResult applies the result of a finished game between white and
	// black; outcome is from white's point of view. Nil or identical players,
	// or an invalid outcome or category, panic before either record changes.
	RecordResult(white *Player, black *Player, outcome Outcome,
		category Termination, description string)

	json.Marshaler
	json.Unmarshaler
}

const (
	DefaultVariant         = "standard"
	dateLayout             = "2006-01-02"
	defaultGamesPerEncount = 1
)

// base holds the state shared by every tournament variant
type base struct {
	kind    Type
	manager GameManager

	id                 string
	name               string
	site               string
	eventDate          time.Time
	variant            string
	gamesPerEncounter  int
	roundMultiplier    int
	openingRepetitions int
	currentRound       int
	finishedGames      int

	players []*Player
}

func newBase(kind Type, manager GameManager) base {
	return base{
		kind:              kind,
		manager:           manager,
		id:                uuid.NewString(),
		variant:           DefaultVariant,
		gamesPerEncounter: defaultGamesPerEncount,
		roundMultiplier:   1,
	}
}

func (b *base) Type() Type           { return b.kind }
func (b *base) ID() string           { return b.id }
func (b *base) Name() string         { return b.name }
func (b *base) SetName(name string)  { b.name = name }
func (b *base) Site() string         { return b.site }
func (b *base) SetSite(site string)  { b.site = site }
func (b *base) Manager() GameManager { return b.manager }
func (b *base) Variant() string      { return b.variant }
func (b *base) CurrentRound() int    { return b.currentRound }
func (b *base) FinishedGames() int   { return b.finishedGames }

func (b *base) EventDate() time.Time { return b.eventDate }

func (b *base) SetEventDate(date time.Time) {
	b.eventDate = date
}

func (b *base) GamesPerEncounter() int { return b.gamesPerEncounter }

func (b *base) SetGamesPerEncounter(n int) {
	if n < 1 {
		n = 1
	}
	b.gamesPerEncounter = n
}

func (b *base) RoundMultiplier() int { return b.roundMultiplier }

func (b *base) SetRoundMultiplier(n int) {
	if n < 1 {
		n = 1
	}
	b.roundMultiplier = n
}

func (b *base) Players() []*Player {
	return b.players
}

func (b *base) AddPlayer(p *Player) {
	b.players = append(b.players, p)
}

func (b *base) RecordResult(white *Player, black *Player, outcome Outcome,
	category Termination, description string) {

	category.mustBeValid()
	if white == nil || black == nil {
		panic("tournament: RecordResult called with a nil player")
	}
	if white == black {
		panic(fmt.Sprintf("tournament: RecordResult called with %q on both sides",
			white.Name()))
	}
	if outcome < Loss || outcome > Win {
		panic(fmt.Sprintf("tournament: RecordResult called with outcome %d",
			int(outcome)))
	}
	white.AddScore(White, outcome)
	black.AddScore(Black, Win-outcome)
	white.AddOutcome(category, description)
	black.AddOutcome(category, description)
	b.finishedGames++
}

// baseJSON is the wire form of base. Players are kept raw so that loading
// can attach shared books before each player is decoded.
type baseJSON struct {
	Type               Type            `json:"type"`
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Site               string          `json:"site,omitempty"`
	EventDate          string          `json:"eventDate,omitempty"`
	Variant            string          `json:"variant"`
	GamesPerEncounter  int             `json:"gamesPerEncounter"`
	RoundMultiplier    int             `json:"roundMultiplier"`
	OpeningRepetitions int             `json:"openingRepetitions"`
	CurrentRound       int             `json:"currentRound"`
	FinishedGames      int             `json:"finishedGames"`
	Players            json.RawMessage `json:"players,omitempty"`
}

// wire returns the current state in wire form without players
func (b *base) wire() baseJSON {
	out := baseJSON{
		Type:               b.kind,
		ID:                 b.id,
		Name:               b.name,
		Site:               b.site,
		Variant:            b.variant,
		GamesPerEncounter:  b.gamesPerEncounter,
		RoundMultiplier:    b.roundMultiplier,
		OpeningRepetitions: b.openingRepetitions,
		CurrentRound:       b.currentRound,
		FinishedGames:      b.finishedGames,
	}
	if !b.eventDate.IsZero() {
		out.EventDate = b.eventDate.Format(dateLayout)
	}

	return out
}

func (b *base) marshalWire() (baseJSON, error) {
	out := b.wire()
	players := b.players
	if players == nil {
		players = []*Player{}
	}
	raw, err := json.Marshal(players)
	if err != nil {
		return out, fmt.Errorf("unable to serialize players: %w", err)
	}
	out.Players = raw

	return out, nil
}

// apply validates in and, only if everything is valid, copies it into b.
// in is expected to have been pre-populated from b.wire() before decoding
// so that absent keys keep their current values.
func (b *base) apply(in baseJSON) error {
	if in.Type != b.kind {
		return fmt.Errorf("%w: document is %q, tournament is %q",
			ErrTypeMismatch, in.Type, b.kind)
	}
	eventDate, err := internal.ParseDateOrZero(in.EventDate)
	if err != nil {
		return fmt.Errorf("unable to parse eventDate %q: %w", in.EventDate, err)
	}
	if in.GamesPerEncounter < 1 || in.RoundMultiplier < 1 {
		return fmt.Errorf("gamesPerEncounter and roundMultiplier must be positive (got %d, %d)",
			in.GamesPerEncounter, in.RoundMultiplier)
	}
	if in.OpeningRepetitions < 0 || in.CurrentRound < 0 || in.FinishedGames < 0 {
		return fmt.Errorf("negative tournament progress counters")
	}

	players := b.players
	if in.Players != nil {
		players, err = loadPlayers(in.Players)
		if err != nil {
			return err
		}
	}

	if in.ID != "" {
		b.id = in.ID
	}
	b.name = in.Name
	b.site = in.Site
	b.eventDate = eventDate
	b.variant = in.Variant
	if b.variant == "" {
		b.variant = DefaultVariant
	}
	b.gamesPerEncounter = in.GamesPerEncounter
	b.roundMultiplier = in.RoundMultiplier
	b.openingRepetitions = in.OpeningRepetitions
	b.currentRound = in.CurrentRound
	b.finishedGames = in.FinishedGames
	b.players = players

	return nil
}

// loadPlayers decodes a players array. Players whose book documents are
// identical share a single FileBook, the same way one book object is shared
// by many players when a tournament is set up.
func loadPlayers(raw json.RawMessage) ([]*Player, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("unable to parse players: %w", err)
	}

	books := make(map[string]*FileBook)
	players := make([]*Player, 0, len(raws))
	for idx, rawPlayer := range raws {
		var peek struct {
			Book json.RawMessage `json:"book"`
		}
		if err := json.Unmarshal(rawPlayer, &peek); err != nil {
			return nil, fmt.Errorf("unable to parse player %d: %w", idx, err)
		}

		p := NewDefaultPlayer()
		if len(peek.Book) > 0 && string(peek.Book) != "null" {
			key, err := bookKey(peek.Book)
			if err != nil {
				return nil, fmt.Errorf("unable to parse player %d book: %w", idx, err)
			}
			book, ok := books[key]
			if !ok {
				book = &FileBook{}
				books[key] = book
			}
			p.SetBook(book)
		}

		if err := p.UnmarshalJSON(rawPlayer); err != nil {
			return nil, fmt.Errorf("unable to load player %d: %w", idx, err)
		}
		players = append(players, p)
	}

	return players, nil
}

// bookKey returns a canonical form of a book document so that documents
// differing only in key order or whitespace map to the same book.
func bookKey(raw json.RawMessage) (string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", err
	}
	canon, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	return string(canon), nil
}
