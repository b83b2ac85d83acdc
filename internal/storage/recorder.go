package storage

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// saveTimeout bounds a single score write made from a game loop.
const saveTimeout = 2 * time.Second

// Recorder returns a game-over callback that saves final scores for player.
// Zero scores are not recorded. Failures are logged and otherwise ignored so
// a broken database never interrupts play. A nil store yields a callback
// that does nothing.
func Recorder(s *Store, player string, logger *log.Logger) func(game string, score int) {
	if logger == nil {
		logger = log.Default()
	}
	return func(game string, score int) {
		if s == nil || score <= 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if _, err := s.SaveScore(ctx, game, player, score); err != nil {
			logger.Warn("could not save score", "game", game, "score", score, "error", err)
			return
		}
		logger.Debug("score saved", "game", game, "player", player, "score", score)
	}
}
