package storage

import (
	"errors"
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
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("tanks", 700); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore("tanks"); high != 700 {
		t.Errorf("HighScore() after reopen = %d, expected 700", high)
	}
}

func TestStoreSaveRunAndTopScores(t *testing.T) {
	store := openTestStore(t)

	runs := []ScoreEntry{
		{GameID: "tanks", Player: "ann", Score: 100, Stage: 0, Kills: 1},
		{GameID: "tanks", Player: "bob", Score: 1200, Stage: 2, Kills: 9},
		{GameID: "tanks", Player: "ann", Score: 600, Stage: 1, Kills: 4},
		{GameID: "tanks_survival", Player: "bob", Score: 5000, Kills: 40},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	scores, err := store.TopScores("tanks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, expected 3", len(scores))
	}

	want := []int{1200, 600, 100}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "bob" || scores[0].Stage != 2 || scores[0].Kills != 9 {
		t.Errorf("scores[0] = %+v, expected bob stage 2 kills 9", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("tanks", (i+1)*100)
	}

	scores, err := store.TopScores("tanks", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("tanks", 100)
	store.SaveScore("tanks", 300)
	store.SaveScore("tanks", 200)

	high, err = store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStageClears(t *testing.T) {
	store := openTestStore(t)

	clears := []StageClear{
		{GameID: "tanks", Player: "ann", StageIndex: 0, StageName: "Outpost", Score: 800, Ticks: 3000},
		{GameID: "tanks", Player: "bob", StageIndex: 0, StageName: "Outpost", Score: 900, Ticks: 2400},
		{GameID: "tanks", Player: "ann", StageIndex: 1, StageName: "River Crossing", Score: 1500, Ticks: 5000},
		{GameID: "tanks_survival", Player: "bob", StageIndex: 0, StageName: "Outpost", Score: 100, Ticks: 10},
	}
	for _, c := range clears {
		if _, err := store.RecordStageClear(c); err != nil {
			t.Fatalf("RecordStageClear() failed: %v", err)
		}
	}

	best, err := store.BestClear("tanks", "Outpost")
	if err != nil {
		t.Fatalf("BestClear() failed: %v", err)
	}
	if best.Player != "bob" || best.Ticks != 2400 {
		t.Errorf("BestClear() = %+v, expected bob in 2400 ticks", best)
	}

	fastest, err := store.FastestClears("tanks")
	if err != nil {
		t.Fatalf("FastestClears() failed: %v", err)
	}
	if len(fastest) != 2 {
		t.Fatalf("FastestClears() returned %d, expected 2", len(fastest))
	}
	if fastest[0].StageName != "Outpost" || fastest[0].Ticks != 2400 {
		t.Errorf("fastest[0] = %+v, expected Outpost in 2400 ticks", fastest[0])
	}
	if fastest[1].StageName != "River Crossing" {
		t.Errorf("fastest[1].StageName = %q, expected River Crossing", fastest[1].StageName)
	}

	if _, err := store.BestClear("tanks", "Hall of Mirrors"); !errors.Is(err, ErrNoClears) {
		t.Errorf("BestClear(uncleared) error = %v, expected ErrNoClears", err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tanks", 100)
	store.SaveScore("tanks", 200)
	store.SaveScore("tanks_survival", 300)
	store.RecordStageClear(StageClear{GameID: "tanks", StageName: "Outpost", Ticks: 10})

	if err := store.ClearScores("tanks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("tanks", 10); len(scores) != 0 {
		t.Errorf("Expected 0 tanks scores after clear, got %d", len(scores))
	}
	if _, err := store.BestClear("tanks", "Outpost"); !errors.Is(err, ErrNoClears) {
		t.Errorf("stage clears should be removed, BestClear error = %v", err)
	}
	if scores, _ := store.TopScores("tanks_survival", 10); len(scores) != 1 {
		t.Error("Survival scores should not be affected by clearing tanks")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tanks/scores.db")
	if err != nil {
		t.Fatalf("Open(~) failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tanks", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}
