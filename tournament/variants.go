/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
)

// RoundRobin pairs every player with every other player.
type RoundRobin struct {
	base
}

var _ Tournament = (*RoundRobin)(nil)

func NewRoundRobin(manager GameManager) *RoundRobin {
	return &RoundRobin{base: newBase(RoundRobinType, manager)}
}

func (rr *RoundRobin) MarshalJSON() ([]byte, error) {
	out, err := rr.marshalWire()
	if err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

func (rr *RoundRobin) UnmarshalJSON(data []byte) error {
	in := rr.wire()
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unable to parse %v tournament: %w", rr.kind, err)
	}

	return rr.apply(in)
}

// Pyramid is a round robin in which each player only meets the players
// ranked directly above it.
type Pyramid struct {
	base
}

var _ Tournament = (*Pyramid)(nil)

func NewPyramid(manager GameManager) *Pyramid {
	return &Pyramid{base: newBase(PyramidType, manager)}
}

func (py *Pyramid) MarshalJSON() ([]byte, error) {
	out, err := py.marshalWire()
	if err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

func (py *Pyramid) UnmarshalJSON(data []byte) error {
	in := py.wire()
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unable to parse %v tournament: %w", py.kind, err)
	}

	return py.apply(in)
}

// seeded is the shared part of variants that place their first players
// specially.
type seeded struct {
	base
	seeds int
}

type seededJSON struct {
	baseJSON
	Seeds int `json:"seeds"`
}

func (s *seeded) Seeds() int {
	return s.seeds
}

func (s *seeded) SetSeeds(seeds int) {
	if seeds < 0 {
		seeds = 0
	}
	s.seeds = seeds
}

func (s *seeded) MarshalJSON() ([]byte, error) {
	out, err := s.marshalWire()
	if err != nil {
		return nil, err
	}

	return json.Marshal(seededJSON{baseJSON: out, Seeds: s.seeds})
}

func (s *seeded) UnmarshalJSON(data []byte) error {
	in := seededJSON{baseJSON: s.wire(), Seeds: s.seeds}
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unable to parse %v tournament: %w", s.kind, err)
	}
	if in.Seeds < 0 {
		return fmt.Errorf("invalid %v seeds %d", s.kind, in.Seeds)
	}
	if err := s.apply(in.baseJSON); err != nil {
		return err
	}
	s.seeds = in.Seeds

	return nil
}

// Gauntlet plays its seeded players against every other player; the
// unseeded players do not meet each other.
type Gauntlet struct {
	seeded
}

var _ Tournament = (*Gauntlet)(nil)

func NewGauntlet(manager GameManager) *Gauntlet {
	return &Gauntlet{seeded: seeded{base: newBase(GauntletType, manager), seeds: 1}}
}

// Knockout eliminates the loser of each encounter; seeded players are kept
// apart in the first rounds.
type Knockout struct {
	seeded
}

var _ Tournament = (*Knockout)(nil)

func NewKnockout(manager GameManager) *Knockout {
	return &Knockout{seeded: seeded{base: newBase(KnockoutType, manager)}}
}
