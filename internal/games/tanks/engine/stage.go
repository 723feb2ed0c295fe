package engine

import (
	"errors"
	"fmt"
)

// Tile codes used by stage tables.
const (
	CodeEmpty          = 0
	CodePlayer         = 1
	CodeBrick          = 2
	CodeStone          = 3
	CodeWater          = 4
	CodeForest         = 5
	CodeHome           = 6
	CodeMirrorForward  = 7 // "/"
	CodeMirrorBackward = 8 // "\"

	CodeEnemyNormal     = 10
	CodeEnemyHighHealth = 11
	CodeEnemyHighAttack = 12
	CodeEnemyHighSpeed  = 13

	CodePowerupHealth    = 20
	CodePowerupExtraAmmo = 21
	CodePowerupShield    = 22
	CodePowerupWin       = 23
)

// Stage validation errors.
var (
	ErrEmptyStage       = errors.New("tanks: stage has no tiles")
	ErrRaggedStage      = errors.New("tanks: stage rows have different lengths")
	ErrUnknownTileCode  = errors.New("tanks: unknown tile code")
	ErrPlayerStartCount = errors.New("tanks: stage must have exactly one player start")
	ErrNoStages         = errors.New("tanks: no stages to play")
	ErrStageNotLoaded   = errors.New("tanks: no stage loaded")
)

// Stage is a pre-parsed table of tile codes, indexed [row][column].
type Stage struct {
	Name  string
	Tiles [][]int
}

// Size returns the number of rows and columns.
func (s Stage) Size() (rows, cols int) {
	if len(s.Tiles) == 0 {
		return 0, 0
	}
	return len(s.Tiles), len(s.Tiles[0])
}

// Validate checks the table is rectangular, uses known codes, and has
// exactly one player start.
func (s Stage) Validate() error {
	if len(s.Tiles) == 0 || len(s.Tiles[0]) == 0 {
		return fmt.Errorf("stage %q: %w", s.Name, ErrEmptyStage)
	}
	cols := len(s.Tiles[0])
	players := 0
	for x, row := range s.Tiles {
		if len(row) != cols {
			return fmt.Errorf("stage %q row %d has %d columns, expected %d: %w", s.Name, x, len(row), cols, ErrRaggedStage)
		}
		for y, code := range row {
			if !KnownCode(code) {
				return fmt.Errorf("stage %q at (%d,%d) code %d: %w", s.Name, x, y, code, ErrUnknownTileCode)
			}
			if code == CodePlayer {
				players++
			}
		}
	}
	if players != 1 {
		return fmt.Errorf("stage %q has %d player starts: %w", s.Name, players, ErrPlayerStartCount)
	}
	return nil
}

// KnownCode reports whether code appears in the tile code table.
func KnownCode(code int) bool {
	switch {
	case code >= CodeEmpty && code <= CodeMirrorBackward:
		return true
	case code >= CodeEnemyNormal && code <= CodeEnemyHighSpeed:
		return true
	case code >= CodePowerupHealth && code <= CodePowerupWin:
		return true
	default:
		return false
	}
}

// enemyCodeArchetype maps an enemy spawn code to its archetype.
func enemyCodeArchetype(code int) (Archetype, bool) {
	if code < CodeEnemyNormal || code > CodeEnemyHighSpeed {
		return ArchetypeNormal, false
	}
	return Archetype(code - CodeEnemyNormal), true
}

// powerupCodeKind maps a powerup spawn code to its kind.
func powerupCodeKind(code int) (PowerupKind, bool) {
	if code < CodePowerupHealth || code > CodePowerupWin {
		return PowerupNone, false
	}
	return PowerupKind(code-CodePowerupHealth) + PowerupHealth, true
}

// terrainForCode returns the static tile for a code.
// Spawn codes and the player start sit on their own walkable terrain.
func (r *Rules) terrainForCode(code int) Tile {
	switch code {
	case CodeBrick:
		return NewBrick(r.BrickHealth)
	case CodeStone:
		return NewTile(TileStone)
	case CodeWater:
		return NewTile(TileWater)
	case CodeForest:
		return NewTile(TileForest)
	case CodeHome:
		return NewHome(r.HomeHealth)
	case CodeMirrorForward:
		return NewMirror(MirrorForward)
	case CodeMirrorBackward:
		return NewMirror(MirrorBackward)
	}
	if _, ok := enemyCodeArchetype(code); ok {
		return NewTile(TileEnemySpawner)
	}
	if _, ok := powerupCodeKind(code); ok {
		return NewTile(TilePowerupSpawner)
	}
	return NewTile(TileNone)
}
