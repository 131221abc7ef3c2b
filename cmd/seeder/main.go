package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/soccer-analysis/internal/config"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/rawdata"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	teamsPerLeague int
	squadSize      int
	seed           uint64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Write a synthetic event dataset for every league",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	cfg := config.Load()
	rootCmd.Flags().StringVar(&dataDir, "dir", cfg.DataDir, "Directory the parquet datasets are written to")
	rootCmd.Flags().IntVar(&teamsPerLeague, "teams", 20, "Number of teams per league")
	rootCmd.Flags().IntVar(&squadSize, "squad", 16, "Number of players per team")
	rootCmd.Flags().Uint64Var(&seed, "seed", 42, "Random seed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seeder failed: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	log.Info("Starting dataset seeder...", "dir", dataDir, "teams", teamsPerLeague, "squad", squadSize)
	startTime := time.Now()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var roster []rawdata.PlayerRow
	nextPlayerID := int64(1)
	for i, l := range league.All() {
		firstTeamID := int64((i + 1) * 1000)
		ds := generateLeague(rng, l, firstTeamID, nextPlayerID, teamsPerLeague, squadSize)
		nextPlayerID += int64(len(ds.players))
		roster = append(roster, ds.players...)

		if err := rawdata.WriteTeams(dataDir, l, ds.teams); err != nil {
			return err
		}
		if err := rawdata.WriteEvents(dataDir, l, ds.events); err != nil {
			return err
		}
		log.Info("Wrote league dataset", "league", l, "teams", len(ds.teams), "events", len(ds.events))
	}
	if err := rawdata.WritePlayers(dataDir, roster); err != nil {
		return err
	}

	log.Info("Successfully wrote all datasets.", "players", len(roster), "duration", time.Since(startTime))
	return nil
}

type dataset struct {
	teams   []rawdata.TeamRow
	events  []rawdata.EventRow
	players []rawdata.PlayerRow
}

type record struct {
	id                     int64
	goalsFor, goalsAgainst int64
	points                 int64
}

var (
	positions  = []string{"Goalkeeper", "Defender", "Defender", "Defender", "Defender", "Midfielder", "Midfielder", "Midfielder", "Forward", "Forward"}
	strongFeet = []string{"right", "right", "right", "left", "both"}
	cityPrefix = []string{"Real", "Sporting", "Athletic", "Racing", "United", "Dynamo", "Olympic", "Union"}
	citySuffix = []string{"North", "Harbour", "Valley", "Hill", "Bridge", "Park", "Forest", "Bay", "Port", "Field"}
)

// generateLeague plays a double round robin and logs every pass and shot.
// Player ids start at firstPlayerID and are unique across calls when advanced by len(players).
func generateLeague(rng *rand.Rand, l league.League, firstTeamID, firstPlayerID int64, nTeams, squad int) dataset {
	var ds dataset
	records := make([]*record, nTeams)
	squads := make([][]rawdata.PlayerRow, nTeams)
	names := make([]string, nTeams)
	for t := 0; t < nTeams; t++ {
		teamID := firstTeamID + int64(t)
		records[t] = &record{id: teamID}
		names[t] = fmt.Sprintf("%s %s %s", cityPrefix[t%len(cityPrefix)], l, citySuffix[(t/len(cityPrefix))%len(citySuffix)])
		for p := 0; p < squad; p++ {
			player := rawdata.PlayerRow{
				PlayerID:       firstPlayerID + int64(t*squad+p),
				StrongFoot:     strongFeet[rng.IntN(len(strongFeet))],
				PlayerName:     fmt.Sprintf("Player %d", firstPlayerID+int64(t*squad+p)),
				PlayerPosition: positions[p%len(positions)],
			}
			squads[t] = append(squads[t], player)
			ds.players = append(ds.players, player)
		}
	}

	eventID := firstTeamID * 1_000_000
	matchID := firstTeamID * 1_000
	for home := 0; home < nTeams; home++ {
		for away := 0; away < nTeams; away++ {
			if home == away {
				continue
			}
			matchID++
			goals := [2]int64{}
			for side, t := range [2]int{home, away} {
				passes := 300 + rng.IntN(250)
				shots := 6 + rng.IntN(12)
				for i := 0; i < passes+shots; i++ {
					eventID++
					actor := squads[t][rng.IntN(squad)]
					pid := actor.PlayerID
					ev := rawdata.EventRow{
						ID:         eventID,
						MatchID:    matchID,
						EventSec:   rng.Float64() * 5400,
						TeamID:     records[t].id,
						PlayerID:   &pid,
						PlayerName: actor.PlayerName,
					}
					if i < passes {
						ev.EventName = "Pass"
						ev.Accurate = rng.Float64() < 0.82
						ev.KeyPass = ev.Accurate && rng.Float64() < 0.01
						ev.Assist = ev.KeyPass && rng.Float64() < 0.3
					} else {
						ev.EventName = "Shot"
						ev.Accurate = rng.Float64() < 0.35
						ev.Goal = ev.Accurate && rng.Float64() < 0.3
						if ev.Goal {
							goals[side]++
						}
					}
					ds.events = append(ds.events, ev)
				}
			}
			// Some actions have no attributed player, like the source feeds.
			eventID++
			ds.events = append(ds.events, rawdata.EventRow{
				ID: eventID, MatchID: matchID, EventSec: 2700, EventName: "Interruption", TeamID: records[home].id,
			})
			settle(records[home], records[away], goals[0], goals[1])
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].points != records[j].points {
			return records[i].points > records[j].points
		}
		return records[i].goalsFor-records[i].goalsAgainst > records[j].goalsFor-records[j].goalsAgainst
	})
	for pos, r := range records {
		ds.teams = append(ds.teams, rawdata.TeamRow{
			TeamID:    r.id,
			TeamName:  names[int(r.id-firstTeamID)],
			Position:  int64(pos + 1),
			Goals:     r.goalsFor,
			Points:    r.points,
			GoalsDiff: r.goalsFor - r.goalsAgainst,
		})
	}
	return ds
}

func settle(home, away *record, homeGoals, awayGoals int64) {
	home.goalsFor += homeGoals
	home.goalsAgainst += awayGoals
	away.goalsFor += awayGoals
	away.goalsAgainst += homeGoals
	switch {
	case homeGoals > awayGoals:
		home.points += 3
	case homeGoals < awayGoals:
		away.points += 3
	default:
		home.points++
		away.points++
	}
}
