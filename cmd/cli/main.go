package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	msgpack bool
)

var rootCmd = &cobra.Command{
	Use:   "soccer-cli",
	Short: "A CLI to interact with the soccer-analysis server",
	Long: `A command-line interface for loading league datasets and reading
the statistics computed by the soccer-analysis server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&msgpack, "msgpack", false, "Ask the server for MessagePack and print it decoded")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
