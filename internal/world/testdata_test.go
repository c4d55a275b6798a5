package world

import (
	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/storage"
)

type mockStorer struct {
	defs map[storage.Identifier]*MapDef
}

func (m *mockStorer) Get(id storage.Identifier) *MapDef {
	return m.defs[id]
}

func (m *mockStorer) GetAll() map[storage.Identifier]*MapDef {
	return m.defs
}

func grid(w, h int) [][]int {
	g := make([][]int, h)
	for y := range g {
		g[y] = make([]int, w)
	}
	return g
}

func testMaps() *mockStorer {
	collision := grid(8, 8)
	collision[0][0] = 1

	return &mockStorer{defs: map[storage.Identifier]*MapDef{
		progress.MapOverworld: {
			Name:   "Overworld",
			Width:  8,
			Height: 8,
			Layers: Layers{Collision: collision},
			Interactables: []InteractableDef{
				{ID: "chest_1", Kind: "chest", X: 32, Y: 32, Item: "Key"},
				{ID: "house_door", Kind: "door", X: 64, Y: 64, HouseDoor: true,
					Target: &DestinationDef{Map: progress.MapHouseInterior, X: 40, Y: 100}},
				{ID: "mysterious_cave", Kind: "cave", X: 100, Y: 20, QuestMinimum: "sword_collected",
					Target: &DestinationDef{Map: "cave", X: 16, Y: 16}},
				{ID: "east_portal", Kind: "portal", X: 120, Y: 120, QuestRequired: "east_path_revealed",
					Target: &DestinationDef{Map: "cave", X: 8, Y: 8}},
				{ID: "class_icon", Kind: "class_icon", X: 10, Y: 10, Options: []string{"warrior", "mage"}},
				{ID: "north_sign", Kind: "sign", X: 48, Y: 8, QuestMinimum: "has_class", Message: "North lies the keep."},
				{ID: "key_hint", Kind: "sign", X: 200, Y: 200, QuestRequired: "looking_for_key", Message: "The key is near."},
			},
			NPCs: []NPCDef{
				{ID: "merchant", Kind: "merchant", X: 80, Y: 80, Dialogue: "Wares for sale."},
				{ID: "elder", Kind: "villager", X: 20, Y: 90, Dialogue: "Welcome, traveler."},
			},
			Enemies: []EnemyDef{
				{ID: "slime_1", Kind: "slime", X: 50, Y: 50},
				{ID: "slime_2", Kind: "slime", X: 60, Y: 50},
			},
			Gates: []GateDef{
				{Name: "north_passage", Condition: "has_class",
					Obstruction: []Tile{{X: 3, Y: 1}, {X: 4, Y: 1}},
					Barrier:     []Tile{{X: 3, Y: 2}, {X: 4, Y: 2}}},
				{Name: "east_passage", Condition: "east_path_revealed",
					Obstruction: []Tile{{X: 7, Y: 4}}},
			},
		},
		progress.MapHouseInterior: {
			Name:   "House",
			Width:  4,
			Height: 4,
			Interactables: []InteractableDef{
				{ID: "house_exit", Kind: "door", X: 40, Y: 60,
					Target: &DestinationDef{Map: progress.MapOverworld, X: 64, Y: 80}},
			},
			NPCs: []NPCDef{
				{ID: "merchant", Kind: "merchant", X: 16, Y: 16, Dialogue: "Came inside, did you?"},
			},
		},
		"cave": {
			Name:   "Cave",
			Width:  4,
			Height: 4,
			Interactables: []InteractableDef{
				{ID: "cave_exit", Kind: "cave_exit", X: 16, Y: 16,
					Target: &DestinationDef{Map: progress.MapOverworld, X: 100, Y: 40}},
			},
		},
	}}
}
