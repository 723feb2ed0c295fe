package stages

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/engine"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: "x"
name: "Example"
tiles:
  - [1, 0]
  - [10, 2]
`)
	st, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if st.ID != "x" || st.Name != "Example" {
		t.Errorf("ParseYAML() = %q %q, expected %q %q", st.ID, st.Name, "x", "Example")
	}
	if rows, cols := st.Size(); rows != 2 || cols != 2 {
		t.Errorf("Size() = %d,%d, expected 2,2", rows, cols)
	}
	if st.Tiles[1][0] != engine.CodeEnemyNormal {
		t.Errorf("Tiles[1][0] = %d, expected %d", st.Tiles[1][0], engine.CodeEnemyNormal)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"ragged", "id: r\ntiles:\n  - [1, 0]\n  - [0]\n", engine.ErrRaggedStage},
		{"unknown code", "id: u\ntiles:\n  - [1, 42]\n", engine.ErrUnknownTileCode},
		{"no player", "id: p\ntiles:\n  - [0, 10]\n", engine.ErrPlayerStartCount},
		{"empty", "id: e\n", engine.ErrEmptyStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("ParseYAML() error = %v, expected %v", err, tt.want)
			}
		})
	}

	if _, err := ParseYAML([]byte("tiles: [[1]]\n")); err == nil {
		t.Error("ParseYAML() without id succeeded")
	}
	if _, err := ParseYAML([]byte("id: [")); err == nil {
		t.Error("ParseYAML() on invalid yaml succeeded")
	}
}

func TestEngineUsesIDWhenUnnamed(t *testing.T) {
	st := Stage{ID: "only_id", Tiles: [][]int{{1}}}
	if got := st.Engine().Name; got != "only_id" {
		t.Errorf("Engine().Name = %q, expected %q", got, "only_id")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader("testdata")

	stages, err := loader.LoadAll()
	if err == nil {
		t.Error("LoadAll() error = nil, expected the ragged stage to be reported")
	}
	if !errors.Is(err, engine.ErrRaggedStage) {
		t.Errorf("LoadAll() error = %v, expected ErrRaggedStage", err)
	}

	if len(stages) != 2 {
		t.Fatalf("LoadAll() returned %d stages, expected 2", len(stages))
	}
	if stages[0].ID != "a_small" || stages[1].ID != "b_nested" {
		t.Errorf("LoadAll() order = %s, %s, expected a_small, b_nested", stages[0].ID, stages[1].ID)
	}
	if want := filepath.Join("testdata", "nested", "b_nested.yml"); filepath.FromSlash(stages[1].FilePath) != want {
		t.Errorf("FilePath = %q, expected %q", stages[1].FilePath, want)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader("testdata")

	st, err := loader.LoadByID("a_small")
	if err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	if st.Name != "Small" {
		t.Errorf("Name = %q, expected %q", st.Name, "Small")
	}

	if _, err := loader.LoadByID("missing"); !errors.Is(err, ErrStageNotFound) {
		t.Errorf("LoadByID(missing) error = %v, expected ErrStageNotFound", err)
	}
}

func TestBuiltinStages(t *testing.T) {
	stages, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("Builtin().LoadAll() error = %v", err)
	}
	if len(stages) < 3 {
		t.Fatalf("builtin stages = %d, expected at least 3", len(stages))
	}

	for _, st := range stages {
		hasEnemy, hasHome := false, false
		for _, row := range st.Tiles {
			for _, code := range row {
				switch {
				case code >= engine.CodeEnemyNormal && code <= engine.CodeEnemyHighSpeed:
					hasEnemy = true
				case code == engine.CodeHome:
					hasHome = true
				}
			}
		}
		if !hasEnemy {
			t.Errorf("stage %s has no enemy spawner", st.ID)
		}
		if !hasHome {
			t.Errorf("stage %s has no home", st.ID)
		}
	}

	sim, err := engine.New(Campaign(stages))
	if err != nil {
		t.Fatalf("engine.New(builtin) error = %v", err)
	}
	sim.Tick(engine.CmdConfirm)
	if sim.Scene() != engine.ScenePlay {
		t.Errorf("Scene() = %v, expected play", sim.Scene())
	}
}

func TestResolve(t *testing.T) {
	stages, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") error = %v", err)
	}
	if len(stages) == 0 {
		t.Error("Resolve(\"\") returned no stages")
	}

	if _, err := Resolve(t.TempDir()); !errors.Is(err, engine.ErrNoStages) {
		t.Errorf("Resolve(empty dir) error = %v, expected ErrNoStages", err)
	}
}
