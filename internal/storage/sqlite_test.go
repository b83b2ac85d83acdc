package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ctx, "snake", "ann", 12); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore(ctx, "snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("HighScore() = %d, expected 12", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, s := range []struct {
		game   string
		player string
		score  int
	}{
		{"tetris", "ann", 1200},
		{"tetris", "bob", 300},
		{"tetris", "ann", 4800},
		{"snake", "bob", 9},
	} {
		if _, err := store.SaveScore(ctx, s.game, s.player, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ctx, "tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{4800, 1200, 300}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "ann" || scores[0].GameID != "tetris" {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	limited, err := store.TopScores(ctx, "tetris", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(context.Background(), "pong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0 with no scores", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, score := range []int{2, 4} {
		if _, err := store.SaveScore(ctx, "snake", "", score); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveScore(ctx, "pong", "", 5); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(stats))
	}
	if stats[0].GameID != "pong" || stats[1].GameID != "snake" {
		t.Errorf("stats order = %s, %s", stats[0].GameID, stats[1].GameID)
	}
	snake := stats[1]
	if snake.Played != 2 || snake.HighScore != 4 || snake.AvgScore != 3 {
		t.Errorf("snake stats = %+v", snake)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, "snake", "", 3)
	store.SaveScore(ctx, "pong", "", 5)

	if err := store.ClearScores(ctx, "snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if high, _ := store.HighScore(ctx, "snake"); high != 0 {
		t.Errorf("snake high score = %d after clear", high)
	}
	if high, _ := store.HighScore(ctx, "pong"); high != 5 {
		t.Errorf("pong high score = %d, other games must be kept", high)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandHome("~/.handheld/scores.db")
	if err != nil {
		t.Fatalf("expandHome failed: %v", err)
	}
	if got != filepath.Join(home, ".handheld", "scores.db") {
		t.Errorf("expandHome = %q", got)
	}

	if got, _ := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := Recorder(store, "ann", nil)
	record("snake", 0)
	record("snake", 7)

	scores, err := store.TopScores(ctx, "snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score (zero skipped), got %d", len(scores))
	}
	if scores[0].Player != "ann" || scores[0].Score != 7 {
		t.Errorf("recorded %+v", scores[0])
	}

	// Without a store the callback is a no-op
	Recorder(nil, "ann", nil)("snake", 3)
}
