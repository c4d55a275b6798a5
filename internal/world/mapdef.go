package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/progress"
)

// DefaultTileSize is the tile edge in pixels when a map does not set one.
const DefaultTileSize = 16

// Tile is a tile coordinate.
type Tile struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Layers is the static geometry of a map. Each layer is Height rows of Width
// tile ids; a non-zero collision id is solid.
type Layers struct {
	Ground     [][]int `json:"ground,omitempty" yaml:"ground,omitempty"`
	Collision  [][]int `json:"collision,omitempty" yaml:"collision,omitempty"`
	Decoration [][]int `json:"decoration,omitempty" yaml:"decoration,omitempty"`
	Hazard     [][]int `json:"hazard,omitempty" yaml:"hazard,omitempty"`
}

// DestinationDef names a target map and spawn point in pixels.
type DestinationDef struct {
	Map string  `json:"map" yaml:"map"`
	X   float64 `json:"x" yaml:"x"`
	Y   float64 `json:"y" yaml:"y"`
}

// InteractableDef is the authored form of an interactable. Which fields are
// required depends on Kind.
type InteractableDef struct {
	ID            string  `json:"id" yaml:"id"`
	Kind          string  `json:"kind" yaml:"kind"`
	X             float64 `json:"x" yaml:"x"`
	Y             float64 `json:"y" yaml:"y"`
	QuestRequired string  `json:"quest_required,omitempty" yaml:"quest_required,omitempty"`
	QuestMinimum  string  `json:"quest_minimum,omitempty" yaml:"quest_minimum,omitempty"`

	Item              string          `json:"item,omitempty" yaml:"item,omitempty"`
	TriggersSkeletons bool            `json:"triggers_skeletons,omitempty" yaml:"triggers_skeletons,omitempty"`
	Message           string          `json:"message,omitempty" yaml:"message,omitempty"`
	Spell             string          `json:"spell,omitempty" yaml:"spell,omitempty"`
	Target            *DestinationDef `json:"target,omitempty" yaml:"target,omitempty"`
	HouseDoor         bool            `json:"house_door,omitempty" yaml:"house_door,omitempty"`
	Options           []string        `json:"options,omitempty" yaml:"options,omitempty"`
}

type NPCDef struct {
	ID       string  `json:"id" yaml:"id"`
	Kind     string  `json:"kind" yaml:"kind"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Dialogue string  `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`
}

type EnemyDef struct {
	ID   string  `json:"id" yaml:"id"`
	Kind string  `json:"kind" yaml:"kind"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// GateDef is a passage kept closed until Condition holds. While closed the
// obstruction tiles are solid and drawn, and the barrier tiles are solid but
// invisible.
type GateDef struct {
	Name        string `json:"name" yaml:"name"`
	Condition   string `json:"condition" yaml:"condition"`
	Obstruction []Tile `json:"obstruction" yaml:"obstruction"`
	Barrier     []Tile `json:"barrier,omitempty" yaml:"barrier,omitempty"`
}

// MapDef is a map asset.
type MapDef struct {
	Name          string            `json:"name" yaml:"name"`
	Width         int               `json:"width" yaml:"width"`
	Height        int               `json:"height" yaml:"height"`
	TileSize      int               `json:"tile_size,omitempty" yaml:"tile_size,omitempty"`
	Layers        Layers            `json:"layers" yaml:"layers"`
	Interactables []InteractableDef `json:"interactables,omitempty" yaml:"interactables,omitempty"`
	NPCs          []NPCDef          `json:"npcs,omitempty" yaml:"npcs,omitempty"`
	Enemies       []EnemyDef        `json:"enemies,omitempty" yaml:"enemies,omitempty"`
	Gates         []GateDef         `json:"gates,omitempty" yaml:"gates,omitempty"`
}

// Validate satisfies storage.ValidatingSpec. Cross-map references are
// checked when the registry is built.
func (m *MapDef) Validate() error {
	el := errors.NewErrorList()

	if m.Width <= 0 || m.Height <= 0 {
		el.Add(fmt.Errorf("width and height must be positive"))
	}
	if m.TileSize < 0 {
		el.Add(fmt.Errorf("tile_size must not be negative"))
	}

	for name, layer := range map[string][][]int{
		"ground":     m.Layers.Ground,
		"collision":  m.Layers.Collision,
		"decoration": m.Layers.Decoration,
		"hazard":     m.Layers.Hazard,
	} {
		el.Add(m.validateLayer(name, layer))
	}

	ids := map[string]bool{}
	for i, d := range m.Interactables {
		if ids[d.ID] {
			el.Add(fmt.Errorf("interactable %d: duplicate id %q", i, d.ID))
		}
		ids[d.ID] = true
		if _, err := d.build(); err != nil {
			el.Add(fmt.Errorf("interactable %d: %w", i, err))
		}
	}

	for i, n := range m.NPCs {
		if n.ID == "" {
			el.Add(fmt.Errorf("npc %d: id is required", i))
		}
	}

	for i, e := range m.Enemies {
		if e.ID == "" {
			el.Add(fmt.Errorf("enemy %d: id is required", i))
		}
	}

	for i, g := range m.Gates {
		if _, err := parseGateCondition(g.Condition); err != nil {
			el.Add(fmt.Errorf("gate %d (%s): %w", i, g.Name, err))
		}
		for _, t := range append(append([]Tile{}, g.Obstruction...), g.Barrier...) {
			if !m.inBounds(t) {
				el.Add(fmt.Errorf("gate %d (%s): tile (%d,%d) out of bounds", i, g.Name, t.X, t.Y))
			}
		}
	}

	return el.Err()
}

func (m *MapDef) validateLayer(name string, layer [][]int) error {
	if layer == nil {
		return nil
	}
	if len(layer) != m.Height {
		return fmt.Errorf("layer %s: has %d rows, expected %d", name, len(layer), m.Height)
	}
	for y, row := range layer {
		if len(row) != m.Width {
			return fmt.Errorf("layer %s: row %d has %d tiles, expected %d", name, y, len(row), m.Width)
		}
	}
	return nil
}

func (m *MapDef) inBounds(t Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < m.Width && t.Y < m.Height
}

func (m *MapDef) tileSize() int {
	if m.TileSize > 0 {
		return m.TileSize
	}
	return DefaultTileSize
}

// placement is an interactable built from its definition.
type placement struct {
	payload    interact.Payload
	kind       interact.Kind
	visibility Visibility
}

// build converts the authored form into a typed payload.
func (d InteractableDef) build() (placement, error) {
	el := errors.NewErrorList()

	if d.ID == "" {
		el.Add(fmt.Errorf("id is required"))
	}

	vis, err := ParseVisibility(d.QuestRequired, d.QuestMinimum)
	el.Add(err)

	kind, err := interact.ParseKind(d.Kind)
	if err != nil {
		el.Add(err)
		return placement{}, el.Err()
	}

	var payload interact.Payload
	switch kind {
	case interact.KindChest:
		if d.Item == "" && !d.TriggersSkeletons {
			el.Add(fmt.Errorf("chest needs an item or triggers_skeletons"))
		}
		payload = interact.Chest{Item: d.Item, TriggersSkeletons: d.TriggersSkeletons}
	case interact.KindDoor:
		el.Add(requireTarget(d.Target))
		payload = interact.Door{Destination: d.Target.destination(), HouseDoor: d.HouseDoor}
	case interact.KindSign:
		if d.Message == "" {
			el.Add(fmt.Errorf("sign needs a message"))
		}
		payload = interact.Sign{Message: d.Message}
	case interact.KindScroll:
		if d.Spell == "" {
			el.Add(fmt.Errorf("scroll needs a spell"))
		}
		payload = interact.Scroll{Spell: d.Spell}
	case interact.KindCave, interact.KindCaveExit, interact.KindPortal, interact.KindAncientPath:
		el.Add(requireTarget(d.Target))
		payload = interact.Passage{Destination: d.Target.destination()}
	case interact.KindClassIcon, interact.KindStrategyIcon:
		if len(d.Options) == 0 {
			el.Add(fmt.Errorf("%s needs options", kind))
		}
		payload = interact.Selector{Options: d.Options}
	}

	if err := el.Err(); err != nil {
		return placement{}, err
	}
	return placement{payload: payload, kind: kind, visibility: vis}, nil
}

func requireTarget(t *DestinationDef) error {
	if t == nil || t.Map == "" {
		return fmt.Errorf("target map is required")
	}
	return nil
}

func (t *DestinationDef) destination() interact.Destination {
	if t == nil {
		return interact.Destination{}
	}
	return interact.Destination{Map: t.Map, Spawn: progress.Point{X: t.X, Y: t.Y}}
}
