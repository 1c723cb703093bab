/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"html/template"
	"math"
	"sort"
	"strings"
)

type standingsRow struct {
	Rank   string
	Name   string
	Score  string
	Games  string
	Record string
	White  string
	Elo    string
}

// standingsRows orders players by score and then by name. Players with the
// same score share a rank; only the first of them shows it.
func standingsRows(t Tournament) []standingsRow {
	players := make([]*Player, len(t.Players()))
	copy(players, t.Players())
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score() != players[j].Score() {
			return players[i].Score() > players[j].Score()
		}
		return players[i].Name() < players[j].Name()
	})

	var rows []standingsRow
	priorScore := -1
	for idx, p := range players {
		var rank string
		if idx != 0 && p.Score() == priorScore {
			rank = ""
		} else {
			rank = fmt.Sprintf("%v.", idx+1)
			priorScore = p.Score()
		}
		rows = append(rows, standingsRow{
			Rank:  rank,
			Name:  p.Name(),
			Score: fmt.Sprintf("%.1f", float64(p.Score())/2.0),
			Games: fmt.Sprintf("%v", p.GamesFinished()),
			Record: fmt.Sprintf("%v-%v-%v", p.Wins(), p.Draws(),
				p.Losses()),
			White: fmt.Sprintf("%v-%v-%v", p.WhiteWins(), p.WhiteDraws(),
				p.WhiteLosses()),
			Elo: formatEloDiff(p),
		})
	}

	return rows
}

func formatEloDiff(p *Player) string {
	if p.GamesFinished() == 0 {
		return "-"
	}
	diff := p.Elo().Diff()
	if math.IsInf(diff, 1) {
		return "+inf"
	} else if math.IsInf(diff, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%+.0f", diff)
}

// BuildStandingsOutput formats the tournament's standings into an aligned
// text table.
func BuildStandingsOutput(t Tournament) string {
	if len(t.Players()) == 0 {
		return "No players registered\n"
	}
	rows := standingsRows(t)

	header := standingsRow{Rank: "Place", Name: "Name", Score: "Score",
		Games: "Games", Record: "W-D-L", White: "White W-D-L", Elo: "Elo"}
	widths := make([]int, 7)
	for _, r := range append([]standingsRow{header}, rows...) {
		for i, col := range r.columns() {
			if l := len(col); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var sb strings.Builder
	if t.Name() != "" {
		sb.WriteString(fmt.Sprintf("%v (%v)\n\n", t.Name(), t.Type()))
	}
	writeRow := func(r standingsRow) {
		cols := r.columns()
		for i, col := range cols {
			if i == len(cols)-1 {
				sb.WriteString(col)
			} else {
				sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}

	return sb.String()
}

func (r standingsRow) columns() []string {
	return []string{r.Rank, r.Name, r.Score, r.Games, r.Record, r.White, r.Elo}
}

var standingsTmpl = template.Must(template.New("standings").Parse(`<table class="standings">
<caption>{{.Name}}</caption>
<thead><tr><th>Place</th><th>Name</th><th>Score</th><th>Games</th><th>W-D-L</th><th>White W-D-L</th><th>Elo</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Rank}}</td><td class="name">{{.Name}}</td><td class="score">{{.Score}}</td><td>{{.Games}}</td><td>{{.Record}}</td><td>{{.White}}</td><td>{{.Elo}}</td></tr>
{{- end}}
</tbody>
</table>
`))

// BuildStandingsHTML renders the same standings as BuildStandingsOutput as
// an HTML table.
func BuildStandingsHTML(t Tournament) (string, error) {
	var sb strings.Builder
	err := standingsTmpl.Execute(&sb, struct {
		Name string
		Rows []standingsRow
	}{
		Name: t.Name(),
		Rows: standingsRows(t),
	})
	if err != nil {
		return "", fmt.Errorf("unable to render standings: %w", err)
	}

	return sb.String(), nil
}

// BuildOutcomeOutput lists how p's games ended, first by category and then
// by description. Only non-zero counts are listed.
func BuildOutcomeOutput(p *Player) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v: %v games, %v\n", p.Name(),
		p.GamesFinished(), p.Elo()))

	for idx := 0; idx < TerminationCount; idx++ {
		count := p.Outcomes(Termination(idx))
		if count == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-22s %v\n", Termination(idx), count))
	}

	outcomes := p.OutcomeMap()
	descs := make([]string, 0, len(outcomes))
	for desc, count := range outcomes {
		if count != 0 {
			descs = append(descs, desc)
		}
	}
	sort.Strings(descs)
	for _, desc := range descs {
		sb.WriteString(fmt.Sprintf("  %q: %v\n", desc, outcomes[desc]))
	}

	return sb.String()
}
