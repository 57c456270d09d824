// Package main is the entry point for the mock world adapter server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "npc-world-api",
	Short: "Mock game-world adapter",
	Long:  `npc-world-api simulates a game server's NPC, player, and world APIs so agent-control layers can be developed and tested without a live game server.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(demoCmd)
}
