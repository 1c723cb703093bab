/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mikeb26/enginetourney/internal"
	"github.com/mikeb26/enginetourney/tournament"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported tournament types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range tournament.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

// seedable is implemented by the variants which place seeded players
type seedable interface {
	SetSeeds(seeds int)
}

type settable interface {
	SetSite(site string)
	SetEventDate(date time.Time)
	SetGamesPerEncounter(n int)
	SetRoundMultiplier(n int)
}

func newNewCmd(a *app) *cobra.Command {
	var (
		tType     string
		name      string
		site      string
		date      string
		players   []string
		tc        string
		book      string
		bookDepth int
		games     int
		rounds    int
		seeds     int
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a new tournament file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%v already exists; use --force to overwrite", path)
				}
			}

			t := tournament.Create(tournament.Type(tType), a.gameManager())
			if t == nil {
				return fmt.Errorf("%w: %q (see '%v types')", tournament.ErrUnknownType,
					tType, cmd.Root().Name())
			}
			t.SetName(name)

			s := t.(settable)
			s.SetSite(site)
			s.SetGamesPerEncounter(games)
			s.SetRoundMultiplier(rounds)
			if date != "" {
				eventDate, err := internal.ParseDateOrZero(date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				s.SetEventDate(eventDate)
			}
			if cmd.Flags().Changed("seeds") {
				seeded, ok := t.(seedable)
				if !ok {
					return fmt.Errorf("%v tournaments are not seeded", t.Type())
				}
				seeded.SetSeeds(seeds)
			}

			timeControl, err := tournament.ParseTimeControl(tc)
			if err != nil {
				return err
			}
			var openingBook tournament.OpeningBook
			if book != "" {
				openingBook = tournament.NewFileBook(book, bookFormat(book),
					tournament.BookModeRandom)
			}
			for _, engine := range players {
				engine = strings.TrimSpace(engine)
				if engine == "" {
					continue
				}
				t.AddPlayer(tournament.NewPlayer(tournament.NewEngineBuilder(
					tournament.EngineConfig{Name: engine, Command: engine,
						Protocol: "uci"}), timeControl, openingBook, bookDepth))
			}

			if err := tournament.StoreToFile(path, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %v tournament %q (%v players) in %v\n",
				t.Type(), t.Name(), len(t.Players()), path)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&tType, "type", string(tournament.RoundRobinType), "tournament type")
	flags.StringVar(&name, "name", "", "tournament name")
	flags.StringVar(&site, "site", "", "tournament site")
	flags.StringVar(&date, "date", "", "event date")
	flags.StringSliceVar(&players, "players", nil, "comma separated engine names")
	flags.StringVar(&tc, "tc", "40/60", "time control, e.g. 40/60+0.5, 2:30+1, st=1 or inf")
	flags.StringVar(&book, "book", "", "opening book file shared by all players")
	flags.IntVar(&bookDepth, "book-depth", 8, "maximum book depth in plies")
	flags.IntVar(&games, "games", 1, "games per encounter")
	flags.IntVar(&rounds, "rounds", 1, "round multiplier")
	flags.IntVar(&seeds, "seeds", 0, "number of seeded players (gauntlet, knockout)")
	flags.BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func bookFormat(path string) tournament.BookFormat {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".pgn"):
		return tournament.BookFormatPGN
	case strings.HasSuffix(lower, ".epd"):
		return tournament.BookFormatEPD
	}

	return tournament.BookFormatPolyglot
}

func newShowCmd(a *app) *cobra.Command {
	var html, outcomes bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Show the standings of a tournament file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tournament.LoadFromFile(args[0], a.gameManager())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if html {
				page, err := tournament.BuildStandingsHTML(t)
				if err != nil {
					return err
				}
				fmt.Fprint(out, page)
				return nil
			}

			fmt.Fprint(out, tournament.BuildStandingsOutput(t))
			if outcomes {
				for _, p := range t.Players() {
					fmt.Fprintln(out)
					fmt.Fprint(out, tournament.BuildOutcomeOutput(p))
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "render the standings as an html table")
	cmd.Flags().BoolVar(&outcomes, "outcomes", false,
		"also list how each player's games ended")

	return cmd
}

func newRecordCmd(a *app) *cobra.Command {
	var white, black, result, termination, description string

	cmd := &cobra.Command{
		Use:   "record FILE",
		Short: "Record the result of a finished game in a tournament file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			outcome, err := tournament.ParseResult(result)
			if err != nil {
				return err
			}
			category, err := tournament.ParseTermination(termination)
			if err != nil {
				return fmt.Errorf("%w (valid: %v)", err, terminationNames())
			}

			t, err := tournament.LoadFromFile(path, a.gameManager())
			if err != nil {
				return err
			}
			whitePlayer, err := findPlayer(t, white)
			if err != nil {
				return err
			}
			blackPlayer, err := findPlayer(t, black)
			if err != nil {
				return err
			}
			if whitePlayer == blackPlayer {
				return fmt.Errorf("%v cannot play itself", white)
			}
			if description == "" {
				description = category.String()
			}

			t.RecordResult(whitePlayer, blackPlayer, outcome, category, description)
			if err := tournament.StoreToFile(path, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v - %v %v {%v}\n", white, black,
				result, description)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&white, "white", "", "name of the player with the white pieces")
	flags.StringVar(&black, "black", "", "name of the player with the black pieces")
	flags.StringVar(&result, "result", "", "game result: 1-0, 0-1 or 1/2-1/2")
	flags.StringVar(&termination, "termination", "", "termination category, e.g. checkmate")
	flags.StringVar(&description, "desc", "", "free text description of how the game ended")
	for _, required := range []string{"white", "black", "result", "termination"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func terminationNames() string {
	names := make([]string, 0, tournament.TerminationCount)
	for idx := 0; idx < tournament.TerminationCount; idx++ {
		names = append(names, fmt.Sprintf("%q", tournament.Termination(idx)))
	}

	return strings.Join(names, ", ")
}

func findPlayer(t tournament.Tournament, name string) (*tournament.Player, error) {
	for _, p := range t.Players() {
		if p.Name() == name {
			return p, nil
		}
	}

	return nil, fmt.Errorf("no player named %q in %q", name, t.Name())
}

func summaryLine(t tournament.Tournament) string {
	leader := "-"
	best := -1
	for _, p := range t.Players() {
		if p.Score() > best {
			best = p.Score()
			leader = p.Name()
		}
	}

	return fmt.Sprintf("%v (%v): %v players, %v games, leader %v", t.Name(),
		t.Type(), len(t.Players()), t.FinishedGames(), leader)
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE...",
		Short: "Print a one line summary of each tournament file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := make([]string, len(args))

			// one failing file must not stop the others from being reported,
			// so the group does not cancel on error
			ctx := cmd.Context()
			var g errgroup.Group
			g.SetLimit(runtime.NumCPU())
			for idx, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						lines[idx] = fmt.Sprintf("%v: skipped: %v", path, err)
						return err
					}
					t, err := tournament.LoadFromFile(path, a.gameManager())
					if err != nil {
						lines[idx] = fmt.Sprintf("%v: error: %v", path, err)
						return err
					}
					lines[idx] = fmt.Sprintf("%v: %v", path, summaryLine(t))
					return nil
				})
			}
			err := g.Wait()

			for _, line := range lines {
				if line != "" {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}

			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tournaments in the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := a.writableArchive(dir)
			if err != nil {
				return err
			}
			names, err := arch.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "use a local directory instead of the S3 archive")

	return cmd
}

func newPushCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "push FILE NAME",
		Short: "Store a tournament file in the archive under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tournament.LoadFromFile(args[0], a.gameManager())
			if err != nil {
				return err
			}
			arch, err := a.writableArchive(dir)
			if err != nil {
				return err
			}
			if err := arch.Put(cmd.Context(), args[1], t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %v as %v\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "use a local directory instead of the S3 archive")

	return cmd
}

func newPullCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "pull NAME FILE",
		Short: "Copy a tournament from the archive into FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := a.writableArchive(dir)
			if err != nil {
				return err
			}
			return pullTo(cmd, arch.Get, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "use a local directory instead of the S3 archive")

	return cmd
}

func newFetchCmd(a *app) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "fetch NAME FILE",
		Short: "Download a published tournament into FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := a.httpArchive(baseURL)
			if err != nil {
				return err
			}
			return pullTo(cmd, arch.Get, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "archive base url, overrides TOURNEY_HTTP_BASE_URL")

	return cmd
}

type getFunc = func(ctx context.Context, name string) (tournament.Tournament, error)

func pullTo(cmd *cobra.Command, get getFunc, name string, path string) error {
	t, err := get(cmd.Context(), name)
	if err != nil {
		return err
	}
	if err := tournament.StoreToFile(path, t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %v (%v) to %v\n", name, t.Type(), path)

	return nil
}
