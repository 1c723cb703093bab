/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestPlayer(name string) *Player {
	return NewPlayer(NewEngineBuilder(EngineConfig{Name: name, Command: "./" + name,
		Protocol: "uci"}), TimeControl{MovesPerTc: 40, TimePerTc: time.Minute}, nil, 0)
}

func TestAddScore(t *testing.T) {
	t.Run("white win then black loss", func(t *testing.T) {
		p := newTestPlayer("alpha")
		p.AddScore(White, Win)
		p.AddScore(Black, Loss)

		assert.Equal(t, 1, p.Wins())
		assert.Equal(t, 1, p.Losses())
		assert.Equal(t, 0, p.Draws())
		assert.Equal(t, 1, p.WhiteWins())
		assert.Equal(t, 0, p.WhiteLosses())
		assert.Equal(t, 1, p.BlackLosses())
		assert.Equal(t, 2, p.Score())
		assert.Equal(t, 2, p.GamesFinished())
	})

	t.Run("black results only touch totals", func(t *testing.T) {
		p := newTestPlayer("beta")
		p.AddScore(Black, Win)
		p.AddScore(Black, Draw)

		assert.Equal(t, 1, p.Wins())
		assert.Equal(t, 1, p.Draws())
		assert.Equal(t, 0, p.WhiteWins())
		assert.Equal(t, 0, p.WhiteDraws())
		assert.Equal(t, 1, p.BlackWins())
		assert.Equal(t, 1, p.BlackDraws())
		assert.Equal(t, 3, p.Score())
	})

	t.Run("contract violations panic", func(t *testing.T) {
		p := newTestPlayer("gamma")
		assert.Panics(t, func() { p.AddScore(NoSide, Win) })
		assert.Panics(t, func() { p.AddScore(White, Outcome(3)) })
		assert.Panics(t, func() { p.AddScore(Black, Outcome(-1)) })
		assert.Equal(t, 0, p.GamesFinished())
	})
}

func TestAddOutcome(t *testing.T) {
	p := newTestPlayer("alpha")
	p.AddOutcome(Termination(5), "checkmate")
	p.AddOutcome(Termination(5), "checkmate")
	p.AddOutcome(Resignation, "White resigns")

	assert.Equal(t, 2, p.Outcomes(Termination(5)))
	assert.Equal(t, 1, p.Outcomes(Resignation))
	assert.Equal(t, 0, p.Outcomes(Checkmate))
	assert.Equal(t, map[string]int{"checkmate": 2, "White resigns": 1},
		p.OutcomeMap())

	// the returned map is a copy
	p.OutcomeMap()["checkmate"] = 100
	assert.Equal(t, 2, p.OutcomeMap()["checkmate"])

	assert.Panics(t, func() { p.AddOutcome(Termination(TerminationCount), "x") })
	assert.Panics(t, func() { p.AddOutcome(Termination(-1), "x") })
	assert.Panics(t, func() { p.Outcomes(Termination(24)) })
	_, ok := p.OutcomeMap()["x"]
	assert.False(t, ok)
}

func TestNewPlayerNilBuilder(t *testing.T) {
	assert.Panics(t, func() { NewPlayer(nil, TimeControl{}, nil, 0) })

	p := NewDefaultPlayer()
	assert.Nil(t, p.Builder())
	assert.Equal(t, "", p.Name())
	p.SetName("ignored")
	assert.Equal(t, "", p.Name())
}

func TestPlayerMarshalJSON(t *testing.T) {
	book := NewFileBook("books/8moves.pgn", BookFormatPGN, BookModeRandom)
	p := NewPlayer(NewEngineBuilder(EngineConfig{Name: "stockfish",
		Command: "stockfish", Protocol: "uci"}), TimeControl{TimePerTc: 10 * time.Second,
		Increment: 100 * time.Millisecond}, book, 8)
	p.AddScore(White, Win)
	p.AddOutcome(Checkmate, "White mates")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"builder", "timeControl", "book", "bookDepth",
		"wins", "draws", "losses", "whiteWins", "whiteDraws", "whiteLosses",
		"terminations", "outcomeMap"} {

		assert.Contains(t, doc, key)
	}

	var terms []int
	require.NoError(t, json.Unmarshal(doc["terminations"], &terms))
	assert.Len(t, terms, TerminationCount)
	assert.Equal(t, 1, terms[Checkmate])

	t.Run("builder and book omitted when nil", func(t *testing.T) {
		data, err := json.Marshal(NewDefaultPlayer())
		require.NoError(t, err)
		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.NotContains(t, doc, "builder")
		assert.NotContains(t, doc, "book")
		assert.Contains(t, doc, "timeControl")
		assert.JSONEq(t, "{}", string(doc["outcomeMap"]))
	})
}

func TestPlayerUnmarshalJSON(t *testing.T) {
	t.Run("empty object leaves player untouched", func(t *testing.T) {
		p := newTestPlayer("alpha")
		p.AddScore(White, Draw)
		err := p.UnmarshalJSON([]byte(`{}`))
		assert.ErrorIs(t, err, ErrEmptyObject)
		assert.Equal(t, 1, p.Draws())
		assert.Equal(t, "alpha", p.Name())
	})

	t.Run("absent counters are zeroed", func(t *testing.T) {
		p := newTestPlayer("alpha")
		p.AddScore(White, Win)
		p.AddScore(Black, Loss)
		require.NoError(t, p.UnmarshalJSON([]byte(`{"draws": 3, "whiteDraws": 1}`)))

		assert.Equal(t, 0, p.Wins())
		assert.Equal(t, 0, p.Losses())
		assert.Equal(t, 0, p.WhiteWins())
		assert.Equal(t, 3, p.Draws())
		assert.Equal(t, 1, p.WhiteDraws())
		assert.Equal(t, 2, p.BlackDraws())
		assert.Equal(t, 0, p.BookDepth())
	})

	t.Run("absent collaborators are kept", func(t *testing.T) {
		p := newTestPlayer("alpha")
		require.NoError(t, p.UnmarshalJSON([]byte(`{"wins": 1}`)))
		assert.Equal(t, "alpha", p.Name())
		assert.Equal(t, 40, p.TimeControl().MovesPerTc)
		assert.Equal(t, time.Minute, p.TimeControl().TimePerTc)
	})

	t.Run("absent collections are kept", func(t *testing.T) {
		p := newTestPlayer("alpha")
		p.AddOutcome(Timeout, "Black loses on time")
		require.NoError(t, p.UnmarshalJSON([]byte(`{"losses": 1}`)))
		assert.Equal(t, 1, p.Outcomes(Timeout))
		assert.Equal(t, 1, p.OutcomeMap()["Black loses on time"])
	})

	t.Run("present collections replace", func(t *testing.T) {
		p := newTestPlayer("alpha")
		p.AddOutcome(Timeout, "Black loses on time")
		require.NoError(t, p.UnmarshalJSON([]byte(
			`{"terminations": [2, 0, 1], "outcomeMap": {"White mates": 2}}`)))
		assert.Equal(t, 2, p.Outcomes(Checkmate))
		assert.Equal(t, 1, p.Outcomes(Resignation))
		assert.Equal(t, 0, p.Outcomes(Timeout))
		assert.Equal(t, map[string]int{"White mates": 2}, p.OutcomeMap())
	})

	t.Run("builder is allocated when needed", func(t *testing.T) {
		p := NewDefaultPlayer()
		require.NoError(t, p.UnmarshalJSON([]byte(
			`{"builder": {"name": "lc0", "command": "lc0", "protocol": "uci"}}`)))
		require.NotNil(t, p.Builder())
		assert.Equal(t, "lc0", p.Name())
	})

	t.Run("book is only loaded into an existing book", func(t *testing.T) {
		doc := []byte(`{"book": {"file": "new.bin", "format": "polyglot"}}`)

		p := NewDefaultPlayer()
		require.NoError(t, p.UnmarshalJSON(doc))
		assert.Nil(t, p.Book())

		book := NewFileBook("old.pgn", BookFormatPGN, BookModeBest)
		p.SetBook(book)
		require.NoError(t, p.UnmarshalJSON(doc))
		assert.Equal(t, "new.bin", book.Path())
		assert.Equal(t, BookFormatPolyglot, book.Format())
		assert.Equal(t, BookModeBest, book.Mode())
	})

	t.Run("invalid documents are rejected", func(t *testing.T) {
		cases := []struct {
			name string
			doc  string
			err  error
		}{
			{name: "too many terminations", doc: `{"terminations": [` +
				`0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]}`,
				err: ErrTooManyTerminations},
			{name: "negative termination", doc: `{"terminations": [-1]}`,
				err: ErrInconsistentScore},
			{name: "white exceeds total", doc: `{"wins": 1, "whiteWins": 2}`,
				err: ErrInconsistentScore},
			{name: "negative total", doc: `{"losses": -1}`,
				err: ErrInconsistentScore},
			{name: "not an object", doc: `[1, 2]`},
			{name: "wrong counter type", doc: `{"wins": "many"}`},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				p := newTestPlayer("alpha")
				p.AddScore(White, Win)
				err := p.UnmarshalJSON([]byte(c.doc))
				require.Error(t, err)
				if c.err != nil {
					assert.ErrorIs(t, err, c.err)
				}
				assert.Equal(t, 1, p.Wins())
				assert.Equal(t, 1, p.WhiteWins())
			})
		}
	})
}

func TestPlayerRoundTrip(t *testing.T) {
	p := newTestPlayer("alpha")
	p.SetBook(NewFileBook("book.bin", BookFormatPolyglot, BookModeRandom))
	p.AddScore(White, Win)
	p.AddScore(Black, Draw)
	p.AddScore(Black, Loss)
	p.AddOutcome(Checkmate, "White mates")
	p.AddOutcome(FiftyMoveRule, "Draw by fifty moves rule")
	p.AddOutcome(Timeout, "White loses on time")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	loaded := NewDefaultPlayer()
	loaded.SetBook(&FileBook{})
	require.NoError(t, json.Unmarshal(data, loaded))

	assert.Equal(t, "alpha", loaded.Name())
	assert.Equal(t, p.TimeControl(), loaded.TimeControl())
	assert.Equal(t, "book.bin", loaded.Book().(*FileBook).Path())
	assert.Equal(t, p.terminations, loaded.terminations)
	assert.Equal(t, p.OutcomeMap(), loaded.OutcomeMap())
	assert.Equal(t, p.Wins(), loaded.Wins())
	assert.Equal(t, p.Draws(), loaded.Draws())
	assert.Equal(t, p.Losses(), loaded.Losses())
	assert.Equal(t, p.WhiteWins(), loaded.WhiteWins())
	assert.Equal(t, p.WhiteDraws(), loaded.WhiteDraws())
	assert.Equal(t, p.WhiteLosses(), loaded.WhiteLosses())
}

type scoreEvent struct {
	side    Side
	outcome Outcome
}

func genScoreEvents(t *rapid.T) []scoreEvent {
	return rapid.SliceOf(rapid.Custom(func(t *rapid.T) scoreEvent {
		return scoreEvent{
			side:    Side(rapid.IntRange(int(White), int(Black)).Draw(t, "side")),
			outcome: Outcome(rapid.IntRange(int(Loss), int(Win)).Draw(t, "outcome")),
		}
	})).Draw(t, "events")
}

func checkPlayerInvariants(t *rapid.T, p *Player) {
	if p.Wins()+p.Draws()+p.Losses() != p.GamesFinished() {
		t.Fatalf("games finished %d != %d+%d+%d", p.GamesFinished(), p.Wins(),
			p.Draws(), p.Losses())
	}
	if p.Score() != 2*p.Wins()+p.Draws() {
		t.Fatalf("score %d != 2*%d+%d", p.Score(), p.Wins(), p.Draws())
	}
	if p.WhiteWins() > p.Wins() || p.WhiteDraws() > p.Draws() ||
		p.WhiteLosses() > p.Losses() {

		t.Fatalf("white split exceeds totals")
	}
	if p.BlackWins() != p.Wins()-p.WhiteWins() ||
		p.BlackDraws() != p.Draws()-p.WhiteDraws() ||
		p.BlackLosses() != p.Losses()-p.WhiteLosses() {

		t.Fatalf("black split is not the difference of totals and white")
	}
}

func TestPlayerScoreInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := newTestPlayer("prop")
		for _, ev := range genScoreEvents(t) {
			p.AddScore(ev.side, ev.outcome)
			checkPlayerInvariants(t, p)
		}
	})
}

func TestPlayerRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := newTestPlayer("prop")
		for _, ev := range genScoreEvents(t) {
			p.AddScore(ev.side, ev.outcome)
		}
		descs := []string{"White mates", "Black mates", "Draw by repetition", ""}
		n := rapid.IntRange(0, 20).Draw(t, "outcomes")
		for i := 0; i < n; i++ {
			cat := Termination(rapid.IntRange(0, TerminationCount-1).Draw(t, "category"))
			desc := rapid.SampledFrom(descs).Draw(t, "description")
			p.AddOutcome(cat, desc)
		}

		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		loaded := NewDefaultPlayer()
		if err := loaded.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		checkPlayerInvariants(t, loaded)
		if loaded.terminations != p.terminations {
			t.Fatalf("terminations %v != %v", loaded.terminations, p.terminations)
		}
		if loaded.GamesFinished() != p.GamesFinished() ||
			loaded.WhiteWins() != p.WhiteWins() ||
			loaded.WhiteDraws() != p.WhiteDraws() ||
			loaded.WhiteLosses() != p.WhiteLosses() {

			t.Fatalf("counters differ after round trip")
		}
		got, want := loaded.OutcomeMap(), p.OutcomeMap()
		if len(got) != len(want) {
			t.Fatalf("outcome map %v != %v", got, want)
		}
		for k, v := range want {
			if got[k] != v {
				t.Fatalf("outcome map %v != %v", got, want)
			}
		}
	})
}
