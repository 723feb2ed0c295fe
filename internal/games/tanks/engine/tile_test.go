package engine

import "testing"

func TestMirrorReflect(t *testing.T) {
	tests := []struct {
		mirror Mirror
		in     Direction
		want   Direction
	}{
		{MirrorBackward, North, West},
		{MirrorBackward, South, East},
		{MirrorBackward, East, South},
		{MirrorBackward, West, North},
		{MirrorForward, North, East},
		{MirrorForward, South, West},
		{MirrorForward, East, North},
		{MirrorForward, West, South},
		{MirrorNone, East, East},
	}
	for _, tt := range tests {
		if got := tt.mirror.Reflect(tt.in); got != tt.want {
			t.Errorf("%q.Reflect(%v) = %v, expected %v", tt.mirror, tt.in, got, tt.want)
		}
	}
}

func TestBrickLifecycle(t *testing.T) {
	tile := NewBrick(2)

	if destroyed := tile.Damage(1, South); destroyed {
		t.Error("brick hit reported home destroyed")
	}
	if tile.Type != TileBrick {
		t.Errorf("Type after first hit = %v, expected brick", tile.Type)
	}
	if tile.Health != 1 {
		t.Errorf("Health after first hit = %d, expected 1", tile.Health)
	}
	if tile.Broken != South {
		t.Errorf("Broken = %v, expected S", tile.Broken)
	}

	tile.Damage(1, South)
	if tile.Type != TileNone {
		t.Errorf("Type after second hit = %v, expected none", tile.Type)
	}
	if tile.Damageable() {
		t.Error("cleared brick still damageable")
	}
	if !tile.Type.Movable() {
		t.Error("cleared brick not movable")
	}
}

func TestHomeDestroyed(t *testing.T) {
	tile := NewHome(2)
	if tile.Damage(1, North) {
		t.Error("home destroyed after one of two health")
	}
	if !tile.Damage(5, North) {
		t.Error("home not destroyed by lethal hit")
	}
	if tile.Type != TileHome || tile.Health != 0 {
		t.Errorf("destroyed home = %v health %d, expected home health 0", tile.Type, tile.Health)
	}
	if tile.Damage(1, North) {
		t.Error("destroyed home reported destruction twice")
	}
}

func TestIndestructibleTiles(t *testing.T) {
	for _, typ := range []TileType{TileStone, TileWater, TileForest, TileNone} {
		tile := NewTile(typ)
		tile.Damage(3, North)
		if tile.Type != typ || tile.Health != 0 {
			t.Errorf("%v after damage = %v health %d, expected unchanged", typ, tile.Type, tile.Health)
		}
	}
}

func TestMovableTerrain(t *testing.T) {
	tests := []struct {
		typ  TileType
		want bool
	}{
		{TileNone, true},
		{TileForest, true},
		{TileEnemySpawner, true},
		{TilePowerupSpawner, true},
		{TileBrick, false},
		{TileStone, false},
		{TileWater, false},
		{TileHome, false},
		{TileMirror, false},
	}
	for _, tt := range tests {
		if got := tt.typ.Movable(); got != tt.want {
			t.Errorf("%v.Movable() = %v, expected %v", tt.typ, got, tt.want)
		}
	}
}
