/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"math"
)

// quantile of the standard normal distribution for a 95% interval
const z95 = 1.959963984540054

// Elo estimates the rating difference between a player and its opponents
// from a win/draw/loss record, assuming the usual logistic model where
// expected score = 1/(10^(-diff/400)+1).
type Elo struct {
	wins   int
	draws  int
	losses int

	mu    float64
	stdev float64
}

func NewElo(wins int, draws int, losses int) Elo {
	e := Elo{wins: wins, draws: draws, losses: losses}
	n := float64(wins + draws + losses)
	if n == 0 {
		return e
	}

	e.mu = (float64(wins) + float64(draws)/2.0) / n
	devW := float64(wins) * math.Pow(1.0-e.mu, 2)
	devL := float64(losses) * math.Pow(0.0-e.mu, 2)
	devD := float64(draws) * math.Pow(0.5-e.mu, 2)
	e.stdev = math.Sqrt(devW+devL+devD) / math.Sqrt(n)

	return e
}

// Elo returns the rating estimate for p's results.
func (p *Player) Elo() Elo {
	return NewElo(p.wins, p.draws, p.losses)
}

func (e Elo) games() int {
	return e.wins + e.draws + e.losses
}

// eloDiff converts an expected score into a rating difference
func eloDiff(score float64) float64 {
	return -400.0 * math.Log10(1.0/score-1.0)
}

// Diff is the rating difference implied by the score ratio. A perfect or
// zero score yields +Inf or -Inf.
func (e Elo) Diff() float64 {
	if e.games() == 0 {
		return 0
	}

	return eloDiff(e.mu)
}

// ErrorMargin is the half-width of the 95% confidence interval of Diff. It
// is +Inf when the interval reaches a perfect or zero score.
func (e Elo) ErrorMargin() float64 {
	n := e.games()
	if n == 0 || e.stdev == 0 {
		return 0
	}

	delta := z95 * e.stdev / math.Sqrt(float64(n))
	muMin := e.mu - delta
	muMax := e.mu + delta
	if muMin <= 0 || muMax >= 1 {
		return math.Inf(1)
	}

	return (eloDiff(muMax) - eloDiff(muMin)) / 2.0
}

// LOS is the likelihood of superiority, the probability that the player is
// stronger than its opponents. Draws carry no information.
func (e Elo) LOS() float64 {
	decisive := e.wins + e.losses
	if decisive == 0 {
		return 0.5
	}

	return 0.5 + 0.5*math.Erf(float64(e.wins-e.losses)/
		math.Sqrt(2.0*float64(decisive)))
}

func (e Elo) DrawRatio() float64 {
	n := e.games()
	if n == 0 {
		return 0
	}

	return float64(e.draws) / float64(n)
}

func (e Elo) String() string {
	return fmt.Sprintf("%.1f +/- %.1f, LOS: %.1f %%, DrawRatio: %.1f %%",
		e.Diff(), e.ErrorMargin(), e.LOS()*100.0, e.DrawRatio()*100.0)
}
