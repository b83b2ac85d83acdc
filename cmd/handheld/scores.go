package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld/internal/platform/tui"
	"github.com/vovakirdan/handheld/internal/registry"
	"github.com/vovakirdan/handheld/internal/storage"
)

var (
	flagBrowse bool
	flagClear  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for a game. Without a game, show a
summary of every game played so far.

Examples:
  handheld scores
  handheld scores tetris
  handheld scores --browse
  handheld scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse scores interactively")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if gameID != "" && !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'handheld list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagBrowse:
		return tui.RunScoreboard(store, registry.List(), gameID)

	case flagClear:
		if gameID == "" {
			return errors.New("--clear needs a game")
		}
		if err := store.ClearScores(cmd.Context(), gameID); err != nil {
			return err
		}
		fmt.Printf("Scores for %s cleared.\n", gameID)
		return nil

	case gameID == "":
		return printStats(cmd, store)
	}
	return printTopScores(cmd, store, gameID)
}

func printTopScores(cmd *cobra.Command, store *storage.Store, gameID string) error {
	scores, err := store.TopScores(cmd.Context(), gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", gameTitle(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'handheld play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-10d  %s\n", i+1, player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(cmd.Context(), gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printStats(cmd *cobra.Command, store *storage.Store) error {
	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-6s  %-6s  %-8s  %s\n", "Game", "Played", "Best", "Average", "Last played")
	fmt.Printf("  %-10s  %-6s  %-6s  %-8s  %s\n", "----", "------", "----", "-------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-10s  %-6d  %-6d  %-8.1f  %s\n",
			gameTitle(s.GameID), s.Played, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func gameTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}
