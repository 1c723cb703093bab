/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeControl describes the time allotment of a player for one game.
type TimeControl struct {
	MovesPerTc   int
	TimePerTc    time.Duration
	Increment    time.Duration
	TimePerMove  time.Duration
	PlyLimit     int
	NodeLimit    int
	ExpiryMargin time.Duration
	Infinite     bool
}

// wire form; durations are integer milliseconds
type timeControlJSON struct {
	MovesPerTc   *int   `json:"movesPerTc,omitempty"`
	TimePerTc    *int64 `json:"timePerTc,omitempty"`
	Increment    *int64 `json:"increment,omitempty"`
	TimePerMove  *int64 `json:"timePerMove,omitempty"`
	PlyLimit     *int   `json:"plyLimit,omitempty"`
	NodeLimit    *int   `json:"nodeLimit,omitempty"`
	ExpiryMargin *int64 `json:"expiryMargin,omitempty"`
	Infinite     *bool  `json:"infinite,omitempty"`
}

func (tc TimeControl) MarshalJSON() ([]byte, error) {
	ms := func(d time.Duration) *int64 {
		v := d.Milliseconds()
		return &v
	}
	out := timeControlJSON{
		MovesPerTc:   &tc.MovesPerTc,
		TimePerTc:    ms(tc.TimePerTc),
		Increment:    ms(tc.Increment),
		TimePerMove:  ms(tc.TimePerMove),
		PlyLimit:     &tc.PlyLimit,
		NodeLimit:    &tc.NodeLimit,
		ExpiryMargin: ms(tc.ExpiryMargin),
		Infinite:     &tc.Infinite,
	}

	return json.Marshal(out)
}

// maximum millisecond count representable as a time.Duration
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

func millis(name string, v *int64) (time.Duration, error) {
	if *v < 0 || *v > maxMillis {
		return 0, fmt.Errorf("time control %v out of range: %d ms", name, *v)
	}

	return time.Duration(*v) * time.Millisecond, nil
}

// UnmarshalJSON overwrites only the fields present in data. Nothing is
// changed when a duration is out of range.
func (tc *TimeControl) UnmarshalJSON(data []byte) error {
	var in timeControlJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unable to parse time control: %w", err)
	}

	out := *tc
	durations := []struct {
		name string
		src  *int64
		dst  *time.Duration
	}{
		{"timePerTc", in.TimePerTc, &out.TimePerTc},
		{"increment", in.Increment, &out.Increment},
		{"timePerMove", in.TimePerMove, &out.TimePerMove},
		{"expiryMargin", in.ExpiryMargin, &out.ExpiryMargin},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := millis(d.name, d.src)
		if err != nil {
			return err
		}
		*d.dst = v
	}

	if in.MovesPerTc != nil {
		out.MovesPerTc = *in.MovesPerTc
	}
	if in.PlyLimit != nil {
		out.PlyLimit = *in.PlyLimit
	}
	if in.NodeLimit != nil {
		out.NodeLimit = *in.NodeLimit
	}
	if in.Infinite != nil {
		out.Infinite = *in.Infinite
	}
	*tc = out

	return nil
}

// ParseTimeControl parses the usual command line notation:
//
//	inf           infinite time
//	st=2.5        fixed 2.5 seconds per move
//	40/60+0.5     40 moves in 60 seconds, 0.5 second increment
//	2:30+1        2 minutes 30 seconds for the game, 1 second increment
func ParseTimeControl(s string) (TimeControl, error) {
	var tc TimeControl
	s = strings.TrimSpace(s)
	if s == "" {
		return tc, fmt.Errorf("empty time control")
	}
	if strings.EqualFold(s, "inf") {
		tc.Infinite = true
		return tc, nil
	}
	if rest, ok := strings.CutPrefix(s, "st="); ok {
		d, err := parseSeconds(rest)
		if err != nil {
			return tc, fmt.Errorf("invalid time per move %q: %w", rest, err)
		}
		tc.TimePerMove = d
		return tc, nil
	}

	if movesStr, rest, ok := strings.Cut(s, "/"); ok {
		moves, err := strconv.Atoi(movesStr)
		if err != nil || moves < 0 {
			return tc, fmt.Errorf("invalid moves per time control %q", movesStr)
		}
		tc.MovesPerTc = moves
		s = rest
	}

	timeStr, incStr, hasInc := strings.Cut(s, "+")
	d, err := parseClock(timeStr)
	if err != nil {
		return tc, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	tc.TimePerTc = d
	if hasInc {
		inc, err := parseSeconds(incStr)
		if err != nil {
			return tc, fmt.Errorf("invalid increment %q: %w", incStr, err)
		}
		tc.Increment = inc
	}

	return tc, nil
}

// parseClock accepts seconds ("60", "0.5") or minutes:seconds ("2:30")
func parseClock(s string) (time.Duration, error) {
	if minStr, secStr, ok := strings.Cut(s, ":"); ok {
		mins, err := strconv.Atoi(minStr)
		if err != nil || mins < 0 {
			return 0, fmt.Errorf("bad minutes %q", minStr)
		}
		secs, err := parseSeconds(secStr)
		if err != nil {
			return 0, err
		}
		return time.Duration(mins)*time.Minute + secs, nil
	}

	return parseSeconds(s)
}

func parseSeconds(s string) (time.Duration, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("duration %v is not finite", v)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative duration %v", v)
	}
	if v > float64(maxMillis/1000) {
		return 0, fmt.Errorf("duration %v seconds out of range", v)
	}

	return time.Duration(v * float64(time.Second)).Round(time.Millisecond), nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// String formats tc in the notation accepted by ParseTimeControl.
func (tc TimeControl) String() string {
	if tc.Infinite {
		return "inf"
	}
	if tc.TimePerMove > 0 {
		return "st=" + formatSeconds(tc.TimePerMove)
	}

	var sb strings.Builder
	if tc.MovesPerTc > 0 {
		sb.WriteString(fmt.Sprintf("%d/", tc.MovesPerTc))
	}
	sb.WriteString(formatSeconds(tc.TimePerTc))
	if tc.Increment > 0 {
		sb.WriteString("+" + formatSeconds(tc.Increment))
	}

	return sb.String()
}
