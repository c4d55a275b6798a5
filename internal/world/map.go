package world

import (
	"fmt"

	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/progress"
)

// NPC is a non-player character placed on a map.
type NPC struct {
	ID       string
	Kind     string
	Position progress.Point
	Dialogue string
}

// Enemy is a hostile placed on a map. Killed enemies stay filtered out.
type Enemy struct {
	ID       string
	Kind     string
	Position progress.Point
}

// Obstruction is a drawn blocking tile belonging to a closed gate.
type Obstruction struct {
	Gate string
	Tile Tile
}

type placed struct {
	obj        *interact.Interactable
	visibility Visibility
}

type gate struct {
	name      string
	condition gateCondition
	def       GateDef
}

type gateCondition int

const (
	gateHasClass gateCondition = iota
	gateEastPath
)

func parseGateCondition(s string) (gateCondition, error) {
	switch s {
	case ThresholdHasClass:
		return gateHasClass, nil
	case ThresholdEastPathRevealed:
		return gateEastPath, nil
	}
	return 0, fmt.Errorf("unknown gate condition %q", s)
}

func (g gate) open(l *progress.Ledger) bool {
	switch g.condition {
	case gateHasClass:
		return l.HasClass()
	case gateEastPath:
		return l.IsEastPathRevealed()
	}
	return false
}

// Map is a built map. Entities live as long as the process.
type Map struct {
	name     string
	width    int
	height   int
	tileSize int

	interactables []placed
	npcs          []NPC
	enemies       []Enemy
	gates         []gate

	pristine     [][]bool
	solid        [][]bool
	obstructions []Obstruction
}

func newMap(name string, def *MapDef) (*Map, error) {
	m := &Map{
		name:     name,
		width:    def.Width,
		height:   def.Height,
		tileSize: def.tileSize(),
	}

	for _, d := range def.Interactables {
		p, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("interactable %s: %w", d.ID, err)
		}
		obj, err := interact.New(d.ID, p.kind, progress.Point{X: d.X, Y: d.Y}, p.payload)
		if err != nil {
			return nil, fmt.Errorf("interactable %s: %w", d.ID, err)
		}
		m.interactables = append(m.interactables, placed{obj: obj, visibility: p.visibility})
	}

	for _, n := range def.NPCs {
		m.npcs = append(m.npcs, NPC{ID: n.ID, Kind: n.Kind, Position: progress.Point{X: n.X, Y: n.Y}, Dialogue: n.Dialogue})
	}

	for _, e := range def.Enemies {
		m.enemies = append(m.enemies, Enemy{ID: e.ID, Kind: e.Kind, Position: progress.Point{X: e.X, Y: e.Y}})
	}

	for _, g := range def.Gates {
		cond, err := parseGateCondition(g.Condition)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", g.Name, err)
		}
		m.gates = append(m.gates, gate{name: g.Name, condition: cond, def: g})
	}

	m.pristine = make([][]bool, def.Height)
	for y := range m.pristine {
		m.pristine[y] = make([]bool, def.Width)
		if y < len(def.Layers.Collision) {
			for x, id := range def.Layers.Collision[y] {
				m.pristine[y][x] = id != 0
			}
		}
	}
	m.solid = cloneGrid(m.pristine)

	return m, nil
}

// Name returns the map's identifier.
func (m *Map) Name() string {
	return m.name
}

// Size returns the map's dimensions in tiles and the tile edge in pixels.
func (m *Map) Size() (width, height, tileSize int) {
	return m.width, m.height, m.tileSize
}

// applyGates rebuilds effective collision from the pristine geometry, so
// applying it repeatedly for the same ledger yields the same grid.
func (m *Map) applyGates(l *progress.Ledger) {
	m.solid = cloneGrid(m.pristine)
	m.obstructions = nil

	for _, g := range m.gates {
		if g.open(l) {
			continue
		}
		for _, t := range g.def.Obstruction {
			m.setSolid(t)
			m.obstructions = append(m.obstructions, Obstruction{Gate: g.name, Tile: t})
		}
		for _, t := range g.def.Barrier {
			m.setSolid(t)
		}
	}
}

func (m *Map) setSolid(t Tile) {
	if t.X < 0 || t.Y < 0 || t.Y >= len(m.solid) || t.X >= len(m.solid[t.Y]) {
		return
	}
	m.solid[t.Y][t.X] = true
}

// IsSolid reports whether a tile blocks movement. Tiles off the map are solid.
func (m *Map) IsSolid(tx, ty int) bool {
	if tx < 0 || ty < 0 || ty >= len(m.solid) || tx >= len(m.solid[ty]) {
		return true
	}
	return m.solid[ty][tx]
}

// Obstructions returns the drawn tiles of closed gates.
func (m *Map) Obstructions() []Obstruction {
	return append([]Obstruction(nil), m.obstructions...)
}

func (m *Map) sync(l *progress.Ledger) {
	for _, p := range m.interactables {
		p.obj.SyncWithGameState(l)
	}
}

func cloneGrid(g [][]bool) [][]bool {
	out := make([][]bool, len(g))
	for i, row := range g {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
