package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld/internal/platform/desktop"
	"github.com/vovakirdan/handheld/internal/registry"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop [game]",
	Short: "Play in a desktop window",
	Long: `Power on the handheld in a desktop window.

Controls:
  Arrows     - D-pad
  Z / X      - A / B
  Enter      - Start
  Shift      - Select
  O          - Power switch
  Tab, 1-3   - Change game
  Esc        - Quit

Examples:
  handheld desktop
  handheld desktop tetris`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDesktop,
}

func runDesktop(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	h := newHost(cfg, gameArg(args), store, logger)
	if err := desktop.Run(h, cfg, registry.List()); err != nil {
		return fmt.Errorf("error running handheld: %w", err)
	}
	return nil
}
