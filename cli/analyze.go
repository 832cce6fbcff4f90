package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/domino14/aoe4analyze/aoe4world"
	"github.com/domino14/aoe4analyze/buildorder"
	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/matchup"
	"github.com/domino14/aoe4analyze/resources"
	"github.com/domino14/aoe4analyze/staticdata"
)

var errNoGame = errors.New("give a summary file or both --profile and --game")

type analyzeFlags struct {
	profile string
	game    int64
	sig     string
}

func (a *app) analyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [summary.json]",
		Short: "Analyze a game's resource spending and army matchup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				s   *gamesummary.Summary
				err error
			)
			switch {
			case len(args) == 1:
				s, err = gamesummary.LoadFile(args[0])
			case f.profile != "" && f.game != 0:
				fetcher := &gamesummary.Fetcher{
					Client:      aoe4world.NewClient(a.cfg.HTTPTimeout, a.cfg.FetchAttempts),
					URLTemplate: a.cfg.SummaryURLTemplate,
				}
				s, err = fetcher.Fetch(cmd.Context(), f.profile, f.game, f.sig)
			default:
				err = errNoGame
			}
			if err != nil {
				return fail("load game summary", err)
			}

			data, err := a.store().Load(cmd.Context())
			if err != nil {
				return fail("load static data", err)
			}
			return a.report(cmd, s, data)
		},
	}
	cmd.Flags().StringVar(&f.profile, "profile", "", "aoe4world profile id or slug")
	cmd.Flags().Int64Var(&f.game, "game", 0, "game id")
	cmd.Flags().StringVar(&f.sig, "sig", "", "signature for games that are not public")
	return cmd
}

func (a *app) report(cmd *cobra.Command, s *gamesummary.Summary, data *staticdata.Cache) error {
	out := cmd.OutOrStdout()
	st := newStyles(out)
	resolver := buildorder.NewResolver(data)

	armies := make([][]matchup.UnitWithValue, 0, len(s.Players))
	for _, p := range s.Players {
		res := resolver.ResolveAll(p)
		if err := res.Validate(); err != nil {
			return fail("resolve build order for "+p.Name, err)
		}
		exp := resources.Calculate(p, res.Items)
		fmt.Fprintln(out, resources.Format(exp, p.Name, p.Civilization, a.verbose))
		fmt.Fprintln(out)
		armies = append(armies, matchup.ArmyFromBuild(append(res.StartingAssets, res.Items...)))
	}
	if len(s.Players) < 2 {
		fmt.Fprintln(out, st.hint.Render("Only one player, no army comparison"))
		return nil
	}

	p1, p2 := s.Players[0].Name, s.Players[1].Name
	fmt.Fprintln(out, st.title.Render("Value-adjusted matchup:"))
	fmt.Fprintln(out, matchup.FormatValueAdjusted(matchup.CompareValueAdjusted(armies[0], armies[1]), p1, p2))
	fmt.Fprintln(out)

	lookup := staticdata.UnitsByID(data.Units)
	for _, army := range armies[:2] {
		for _, u := range army {
			if _, ok := lookup[u.UnitID]; !ok {
				lookup[u.UnitID] = u.Descriptor()
			}
		}
	}
	fmt.Fprintln(out, st.title.Render("Count-based matchup:"))
	analysis := matchup.AnalyzeArmyMatchup(matchup.Counts(armies[0]), matchup.Counts(armies[1]), lookup)
	fmt.Fprintln(out, matchup.FormatMatchupAnalysis(analysis, p1, p2))
	return nil
}
