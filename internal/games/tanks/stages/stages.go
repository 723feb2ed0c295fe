// Package stages loads stage tables from YAML files.
// This package depends on engine but engine does not depend on stages.
package stages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/engine"
	"gopkg.in/yaml.v3"
)

// ErrStageNotFound is returned by LoadByID for an unknown ID.
var ErrStageNotFound = errors.New("stage not found")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// YAMLStage is the on-disk structure of a stage file.
type YAMLStage struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Tiles [][]int `yaml:"tiles"`
}

// Stage is a parsed and validated stage.
type Stage struct {
	ID       string
	Name     string
	Tiles    [][]int
	FilePath string
}

// Engine converts the stage into the simulation's input form.
func (s Stage) Engine() engine.Stage {
	name := s.Name
	if name == "" {
		name = s.ID
	}
	return engine.Stage{Name: name, Tiles: s.Tiles}
}

// Size returns the number of rows and columns.
func (s Stage) Size() (rows, cols int) {
	return s.Engine().Size()
}

// ParseYAML parses and validates a YAML stage file.
func ParseYAML(data []byte) (Stage, error) {
	var ys YAMLStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Stage{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return Stage{}, errors.New("stage id is required")
	}

	st := Stage{ID: ys.ID, Name: ys.Name, Tiles: ys.Tiles}
	if err := st.Engine().Validate(); err != nil {
		return Stage{}, err
	}
	return st, nil
}

// Loader handles loading stages from a directory tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader rooted at a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin returns a loader for the stages compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embed path is fixed at compile time
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// LoadAll recursively scans and loads all stage files.
// Returns stages sorted by ID for deterministic ordering.
// Files that fail to parse are reported in the returned error after the
// valid stages have been collected.
func (l *Loader) LoadAll() ([]Stage, error) {
	var (
		stages []Stage
		errs   []error
	)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		st, err := l.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		stages = append(stages, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(stages, func(i, j int) bool {
		return stages[i].ID < stages[j].ID
	})

	return stages, errors.Join(errs...)
}

// LoadFile loads a single stage file relative to the loader root.
func (l *Loader) LoadFile(name string) (Stage, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Stage{}, fmt.Errorf("reading file %s: %w", name, err)
	}

	st, err := ParseYAML(data)
	if err != nil {
		return Stage{}, fmt.Errorf("parsing file %s: %w", name, err)
	}
	st.FilePath = path.Join(l.root, name)
	return st, nil
}

// LoadByID loads a specific stage by ID.
func (l *Loader) LoadByID(id string) (Stage, error) {
	stages, err := l.LoadAll()
	if err != nil && len(stages) == 0 {
		return Stage{}, err
	}

	for _, st := range stages {
		if st.ID == id {
			return st, nil
		}
	}
	return Stage{}, fmt.Errorf("%w: %s", ErrStageNotFound, id)
}

// Campaign converts loaded stages into the simulation's ordered sequence.
func Campaign(stages []Stage) []engine.Stage {
	out := make([]engine.Stage, len(stages))
	for i, st := range stages {
		out[i] = st.Engine()
	}
	return out
}

// Resolve loads the campaign from dir, or the builtin stages when dir is empty.
func Resolve(dir string) ([]Stage, error) {
	loader := Builtin()
	if dir != "" {
		loader = NewLoader(dir)
	}
	stages, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("no stages in %s: %w", loader.root, engine.ErrNoStages)
	}
	return stages, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
