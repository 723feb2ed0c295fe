package tanks

import (
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/engine"
)

// Each grid cell is drawn two columns wide so the arena looks square.
const cellWidth = 2

// hudHeight is the number of rows above the arena.
const hudHeight = 2

// glyph is the two-column picture of one cell.
type glyph struct {
	text  string
	color core.Color
}

var tankGlyphs = map[engine.Direction]string{
	engine.North: "/\\",
	engine.East:  "=>",
	engine.South: "\\/",
	engine.West:  "<=",
}

var archetypeColors = map[engine.Archetype]core.Color{
	engine.ArchetypeNormal:     core.ColorRed,
	engine.ArchetypeHighHealth: core.ColorMagenta,
	engine.ArchetypeHighAttack: core.ColorOrange,
	engine.ArchetypeHighSpeed:  core.ColorYellow,
}

var powerupGlyphs = map[engine.PowerupKind]glyph{
	engine.PowerupHealth:    {"H+", core.ColorBrightRed},
	engine.PowerupExtraAmmo: {"A+", core.ColorBrightYellow},
	engine.PowerupShield:    {"S+", core.ColorBrightCyan},
	engine.PowerupWin:       {"W!", core.ColorBrightGreen},
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	if g.sim.Scene() == engine.SceneTitle {
		g.renderTitle(dst)
		return
	}

	rows, cols := g.sim.Size()
	minW, minH := cols*cellWidth, rows+hudHeight
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH), core.ColorDefault)
		return
	}

	g.renderHUD(dst)

	arena := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight).Centered(minW, rows)
	g.renderArena(dst, arena)

	switch g.sim.Scene() {
	case engine.SceneGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  ENTER to retry", g.sim.Score()), core.ColorBrightRed)
	case engine.SceneStageClear:
		drawCenteredBox(dst, "STAGE CLEAR", fmt.Sprintf("Score: %d  |  ENTER for next stage", g.sim.Score()), core.ColorBrightGreen)
	case engine.ScenePlay:
		if g.sim.Paused() {
			drawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorBrightYellow)
		}
	}
}

// renderTitle draws the start screen.
func (g *Game) renderTitle(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-3, g.Title(), core.ColorBrightGreen)
	stage := fmt.Sprintf("Stage %d: %s", g.sim.StageIndex()%g.sim.StageCount()+1, g.sim.StageName())
	dst.DrawTextCentered(mid-1, stage, core.ColorDefault)
	dst.DrawTextCentered(mid+1, "Defend the home base and destroy every enemy tank", core.ColorGray)
	dst.DrawTextCentered(mid+3, "Press ENTER to start", core.ColorBrightYellow)
}

// renderHUD draws the status lines above the arena.
func (g *Game) renderHUD(dst *core.Screen) {
	stage := fmt.Sprintf(" Stage %d/%d %s", g.sim.StageIndex()%g.sim.StageCount()+1, g.sim.StageCount(), g.sim.StageName())
	dst.DrawTextColored(0, 0, stage, core.ColorBrightWhite)

	score := fmt.Sprintf("Score: %d ", g.sim.Score())
	dst.DrawTextColored(dst.Width()-len(score), 0, score, core.ColorBrightYellow)

	status := " "
	if p, ok := g.sim.Player(); ok {
		status = fmt.Sprintf(" HP %d  Ammo %d", p.Health, p.Ammo)
		if p.Invulnerable > 0 {
			status += fmt.Sprintf("  Shield %ds", (p.Invulnerable+g.rules.TicksPerSecond-1)/max(1, g.rules.TicksPerSecond))
		}
	}
	status += fmt.Sprintf("  Enemies %d  Kills %d", len(g.sim.Enemies()), g.sim.Kills())
	dst.DrawText(0, 1, status)

	home, homeColor := "Home OK ", core.ColorGreen
	if !g.sim.HomeActive() {
		home, homeColor = "Home LOST ", core.ColorBrightRed
	}
	dst.DrawTextColored(dst.Width()-len(home), 1, home, homeColor)
}

// renderArena draws every cell of the grid inside r.
func (g *Game) renderArena(dst *core.Screen, r core.Rect) {
	rows, cols := g.sim.Size()
	for x := range rows {
		for y := range cols {
			cv, err := g.sim.CellAt(engine.P(x, y))
			if err != nil {
				continue
			}
			gl := cellGlyph(cv)
			dst.DrawTextColored(r.X+y*cellWidth, r.Y+x, gl.text, gl.color)
		}
	}
}

// cellGlyph picks what to show for a cell: tank, then projectile, then
// powerup, then terrain.
func cellGlyph(cv engine.CellView) glyph {
	switch {
	case cv.HasEntity:
		return tankGlyph(cv.Entity)
	case cv.HasProjectile:
		if cv.Projectile.Owner == engine.OwnerPlayer {
			return glyph{"()", core.ColorBrightWhite}
		}
		return glyph{"()", core.ColorBrightRed}
	case cv.Powerup.Present():
		return powerupGlyphs[cv.Powerup.Kind]
	}
	return tileGlyph(cv.Tile)
}

func tankGlyph(e engine.EntityView) glyph {
	text, ok := tankGlyphs[e.Facing]
	if !ok {
		text = "[]"
	}
	if e.Kind == engine.KindPlayer {
		if e.Invulnerable > 0 {
			return glyph{text, core.ColorBrightCyan}
		}
		return glyph{text, core.ColorBrightGreen}
	}
	return glyph{text, archetypeColors[e.Archetype]}
}

func tileGlyph(t engine.Tile) glyph {
	switch t.Type {
	case engine.TileBrick:
		if t.Broken != engine.NoDirection {
			return glyph{"▒▒", core.ColorBrown}
		}
		return glyph{"▓▓", core.ColorBrown}
	case engine.TileStone:
		return glyph{"██", core.ColorGray}
	case engine.TileWater:
		return glyph{"~~", core.ColorBlue}
	case engine.TileForest:
		return glyph{"##", core.ColorDarkGreen}
	case engine.TileHome:
		return glyph{"<>", core.ColorBrightYellow}
	case engine.TileMirror:
		m := t.Mirror.String()
		return glyph{m + m, core.ColorCyan}
	case engine.TileEnemySpawner:
		return glyph{"::", core.ColorGray}
	case engine.TilePowerupSpawner:
		return glyph{"..", core.ColorGray}
	default:
		return glyph{"  ", core.ColorDefault}
	}
}

// drawCenteredBox draws a framed two-line message in the middle of the screen.
func drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	w := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := dst.Bounds().Centered(w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextColored(box.X+(w-len([]rune(title)))/2, box.Y+1, title, c)
	dst.DrawText(box.X+(w-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
