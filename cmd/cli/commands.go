package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/spf13/cobra"
	mp "github.com/vmihailenco/msgpack/v5"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(leaguesCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(runsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics")
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List the supported leagues and whether they are loaded",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leagues")
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <league>",
	Short: "Ingest a league's raw datasets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league.Parse(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/leagues/"+l.String()+"/load")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <league>",
	Short: "Show team ranking, accuracy tables and player leaders for a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league.Parse(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/leagues/"+l.String()+"/statistics")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players <league>",
	Short: "Show top scorers and assistants with their team names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league.Parse(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/leagues/"+l.String()+"/players")
	},
}

var teamCmd = &cobra.Command{
	Use:   "team <league> <id>",
	Short: "Look up a team name by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league.Parse(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q: %w", args[1], err)
		}
		return performRequest(http.MethodGet, fmt.Sprintf("/leagues/%s/teams/%d", l, id))
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs <league>",
	Short: "List recorded ingestions of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league.Parse(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/leagues/"+l.String()+"/runs")
	},
}

func performRequest(method, endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if msgpack {
		req.Header.Set("Accept", "application/msgpack")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	if resp.Header.Get("Content-Type") == "application/msgpack" {
		return printMsgpack(body)
	}
	fmt.Println(string(body))

	return nil
}

// printMsgpack decodes a MessagePack body generically and prints it as indented JSON.
func printMsgpack(body []byte) error {
	var v any
	if err := mp.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("failed to decode msgpack body: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render msgpack body: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
