package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/platform/tui"
	"github.com/vovakirdan/handheld/internal/registry"
)

// Terminal cells needed to show the screen plus the status and help lines.
const (
	minTermWidth  = core.ScreenWidth
	minTermHeight = core.ScreenHeight/2 + 2
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Power on the handheld in the terminal with the given game, or with
the configured default game. Unknown games fall back to Pong.

Each screen cell shows two pixels, so the terminal needs at least
160x74 cells; shrink the font if the screen is clipped.

Controls:
  Arrows/WASD  - D-pad
  Z / X        - A / B
  Enter        - Start
  Space        - Select
  O            - Power switch
  Tab, 1-3     - Change game
  Q/Ctrl+C     - Quit

Examples:
  handheld play
  handheld play tetris
  handheld play snake --seed 42 --log-file handheld.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to --log-file only
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < minTermWidth || h < minTermHeight) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the screen needs %dx%d cells\n",
			w, h, minTermWidth, minTermHeight)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	h := newHost(cfg, gameArg(args), store, logger)
	if err := tui.Run(cmd.Context(), h, cfg, registry.List()); err != nil {
		return fmt.Errorf("error running handheld: %w", err)
	}
	return nil
}
