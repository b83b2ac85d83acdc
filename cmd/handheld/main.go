// handheld is a virtual handheld console that plays Pong, Snake and Tetris
// in the terminal, in a desktop window or over SSH.
//
// Usage:
//
//	handheld [game]          - Play in the terminal (same as play)
//	handheld play [game]     - Play in the terminal
//	handheld desktop [game]  - Play in a desktop window
//	handheld serve           - Start SSH server for remote play
//	handheld scores [game]   - Show high scores
//	handheld list            - List available games
//
// Global flags:
//
//	--config <path>    - Config file (default: ~/.handheld/config.yaml)
//	--db <path>        - Set database path (default: ~/.handheld/scores.db)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/host"
	"github.com/vovakirdan/handheld/internal/loader"
	"github.com/vovakirdan/handheld/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/handheld/internal/games/pong"
	_ "github.com/vovakirdan/handheld/internal/games/snake"
	_ "github.com/vovakirdan/handheld/internal/games/tetris"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagSeed    int64
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "handheld [game]",
	Short: "Handheld - a pocket console for your terminal",
	Long: `Handheld is a virtual handheld console with a 160x144 screen and
eight buttons. It plays Pong, Snake and Tetris in the terminal, in a
desktop window, or over SSH.

Available commands:
  play     - Play in the terminal (default)
  desktop  - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  list     - Show all available games

Examples:
  handheld
  handheld tetris
  handheld desktop snake
  handheld serve --ssh :2222
  handheld scores tetris`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runPlay,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
}

// newLogger creates the process logger. Without --log-file it writes to
// fallback, which is io.Discard for full-screen terminal play.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "handheld",
	})
	return logger, closeFn, nil
}

// loadConfig loads the config file chain, honoring --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the scores database. Failure is not fatal; the handheld
// simply does not record scores.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// newHost builds a host for one local player on a fresh loader.
func newHost(cfg config.Config, game string, store *storage.Store, logger *log.Logger) *host.Host {
	if game == "" {
		game = cfg.DefaultGame
	}

	ld := loader.New(cfg, loader.WithLogger(logger))
	opts := []host.Option{
		host.WithLogger(logger),
		host.WithGame(game),
		host.WithGameOverHook(storage.Recorder(store, localPlayer(), logger)),
	}
	if flagSeed != 0 {
		opts = append(opts, host.WithSeed(flagSeed))
	}
	return host.New(ld, opts...)
}

// localPlayer names the player of a local session.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
