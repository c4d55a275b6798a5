package world

import (
	"testing"

	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/storage"
	"github.com/pixil98/go-testutil"
)

func newTestRegistry(t *testing.T) (*Registry, *progress.Ledger) {
	t.Helper()
	r, err := NewRegistry(testMaps())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	l := progress.NewLedger("Hero")
	if err := r.LoadMap(progress.MapOverworld, l); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	return r, l
}

func ids(objs []*interact.Interactable) map[string]bool {
	out := map[string]bool{}
	for _, o := range objs {
		out[o.ID()] = true
	}
	return out
}

func TestNewRegistry_UnknownTarget(t *testing.T) {
	maps := testMaps()
	delete(maps.defs, "cave")

	_, err := NewRegistry(maps)
	testutil.AssertErrorContains(t, err, "unknown map")
}

func TestRegistry_MapNames(t *testing.T) {
	r, _ := newTestRegistry(t)
	testutil.AssertEqual(t, "names", r.MapNames(), []string{"cave", progress.MapHouseInterior, progress.MapOverworld})
}

func TestRegistry_LoadMapUnknown(t *testing.T) {
	r, l := newTestRegistry(t)

	err := r.LoadMap("nowhere", l)
	testutil.AssertErrorContains(t, err, "unknown map")
	testutil.AssertEqual(t, "current", r.Current().Name(), progress.MapOverworld)
}

func TestRegistry_QuestMinimumVisibility(t *testing.T) {
	tests := map[string]struct {
		quest     progress.QuestState
		hideCave  bool
		expActive bool
	}{
		"initial":            {quest: progress.QuestInitial, expActive: false},
		"has key":            {quest: progress.QuestHasKey, expActive: false},
		"sword collected":    {quest: progress.QuestSwordCollected, expActive: true},
		"cave completed":     {quest: progress.QuestCaveCompleted, expActive: true},
		"final":              {quest: progress.QuestFinal, expActive: true},
		"hidden after final": {quest: progress.QuestFinal, hideCave: true, expActive: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, l := newTestRegistry(t)
			l.SetQuestState(tt.quest)
			if tt.hideCave {
				l.HideMysteriousCave()
			}

			testutil.AssertEqual(t, "mysterious cave", ids(r.Interactables(l))[MysteriousCaveID], tt.expActive)
		})
	}
}

func TestRegistry_MysteriousCaveHiddenInstantly(t *testing.T) {
	r, l := newTestRegistry(t)
	l.SetQuestState(progress.QuestSwordCollected)
	testutil.AssertEqual(t, "before", ids(r.Interactables(l))[MysteriousCaveID], true)

	l.HideMysteriousCave()
	testutil.AssertEqual(t, "after", ids(r.Interactables(l))[MysteriousCaveID], false)
}

func TestRegistry_SpecialThresholds(t *testing.T) {
	r, l := newTestRegistry(t)

	got := ids(r.Interactables(l))
	testutil.AssertEqual(t, "sign before class", got["north_sign"], false)
	testutil.AssertEqual(t, "portal before reveal", got["east_portal"], false)
	testutil.AssertEqual(t, "hint at initial", got["key_hint"], false)

	l.ChooseClass("mage", "fire")
	l.RevealEastPath()
	l.AdvanceQuest(progress.QuestLookingForKey)

	got = ids(r.Interactables(l))
	testutil.AssertEqual(t, "sign after class", got["north_sign"], true)
	testutil.AssertEqual(t, "portal after reveal", got["east_portal"], true)
	testutil.AssertEqual(t, "hint while looking", got["key_hint"], true)

	l.AddItem(progress.ItemKey)
	testutil.AssertEqual(t, "hint after key", ids(r.Interactables(l))["key_hint"], false)
}

func TestRegistry_MerchantPlacement(t *testing.T) {
	tests := map[string]struct {
		quest       progress.QuestState
		expOutdoors bool
	}{
		"initial":         {quest: progress.QuestInitial, expOutdoors: true},
		"house unlocked":  {quest: progress.QuestHouseUnlocked, expOutdoors: true},
		"inside house":    {quest: progress.QuestInsideHouse, expOutdoors: false},
		"sword collected": {quest: progress.QuestSwordCollected, expOutdoors: false},
		"cave completed":  {quest: progress.QuestCaveCompleted, expOutdoors: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, l := newTestRegistry(t)
			l.SetQuestState(tt.quest)

			outdoors := false
			for _, n := range r.NPCs(l) {
				if n.Kind == NPCKindMerchant {
					outdoors = true
				}
			}

			if err := r.LoadMap(progress.MapHouseInterior, l); err != nil {
				t.Fatalf("LoadMap: %v", err)
			}
			indoors := len(r.NPCs(l)) == 1

			testutil.AssertEqual(t, "outdoors", outdoors, tt.expOutdoors)
			testutil.AssertEqual(t, "indoors", indoors, !tt.expOutdoors)
		})
	}
}

func TestRegistry_Enemies(t *testing.T) {
	r, l := newTestRegistry(t)
	testutil.AssertEqual(t, "alive", len(r.Enemies(l)), 2)

	l.KillEnemy("slime_1")
	got := r.Enemies(l)
	testutil.AssertEqual(t, "alive after kill", len(got), 1)
	testutil.AssertEqual(t, "survivor", got[0].ID, "slime_2")
}

func TestRegistry_Gates(t *testing.T) {
	r, l := newTestRegistry(t)

	testutil.AssertEqual(t, "pristine solid", r.IsSolid(0, 0), true)
	testutil.AssertEqual(t, "north obstruction", r.IsSolid(3, 1), true)
	testutil.AssertEqual(t, "north barrier", r.IsSolid(3, 2), true)
	testutil.AssertEqual(t, "east obstruction", r.IsSolid(7, 4), true)
	testutil.AssertEqual(t, "open floor", r.IsSolid(5, 5), false)
	testutil.AssertEqual(t, "off map", r.IsSolid(-1, 3), true)
	testutil.AssertEqual(t, "drawn", len(r.Obstructions()), 3)

	l.ChooseClass("warrior", "earth")
	if err := r.LoadMap(progress.MapOverworld, l); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	testutil.AssertEqual(t, "north cleared", r.IsSolid(3, 1), false)
	testutil.AssertEqual(t, "barrier cleared", r.IsSolid(3, 2), false)
	testutil.AssertEqual(t, "east still closed", r.IsSolid(7, 4), true)
	testutil.AssertEqual(t, "drawn", r.Obstructions(), []Obstruction{{Gate: "east_passage", Tile: Tile{X: 7, Y: 4}}})

	l.RevealEastPath()
	if err := r.LoadMap(progress.MapOverworld, l); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	testutil.AssertEqual(t, "east cleared", r.IsSolid(7, 4), false)
	testutil.AssertEqual(t, "pristine kept", r.IsSolid(0, 0), true)
	testutil.AssertEqual(t, "drawn", len(r.Obstructions()), 0)
}

func TestRegistry_LoadMapIdempotent(t *testing.T) {
	r, l := newTestRegistry(t)
	first := r.Obstructions()

	for range 3 {
		if err := r.LoadMap(progress.MapOverworld, l); err != nil {
			t.Fatalf("LoadMap: %v", err)
		}
	}

	testutil.AssertEqual(t, "obstructions", r.Obstructions(), first)
	testutil.AssertEqual(t, "barrier", r.IsSolid(4, 2), true)
}

func TestRegistry_DoorTransition(t *testing.T) {
	r, l := newTestRegistry(t)
	l.UnlockHouseDoor()

	door := r.Nearest(64, 64, 0, l)
	if door == nil || door.ID() != "house_door" {
		t.Fatalf("expected house door, got %v", door)
	}
	door.Interact(l)

	transitions := 0
	for tick := 1; tick <= 6; tick++ {
		_, fired, err := r.Update(0.04, l)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if fired {
			transitions++
			testutil.AssertEqual(t, "fired on tick", tick, 3)
		}
		if tick < 3 {
			testutil.AssertEqual(t, "map before timer", l.CurrentMap(), progress.MapOverworld)
		}
	}

	testutil.AssertEqual(t, "transitions", transitions, 1)
	testutil.AssertEqual(t, "map", l.CurrentMap(), progress.MapHouseInterior)
	testutil.AssertEqual(t, "spawn", l.Spawn(), progress.Point{X: 40, Y: 100})
	testutil.AssertEqual(t, "loaded", r.Current().Name(), progress.MapHouseInterior)
	testutil.AssertEqual(t, "quest", l.QuestState(), progress.QuestInsideHouse)
}

func TestRegistry_Travel(t *testing.T) {
	r, l := newTestRegistry(t)

	err := r.Travel(interact.Destination{Map: "cave", Spawn: progress.Point{X: 16, Y: 16}}, l)
	testutil.AssertEqual(t, "err", err, nil)
	testutil.AssertEqual(t, "map", l.CurrentMap(), "cave")
	testutil.AssertEqual(t, "interactables", len(r.Interactables(l)), 1)

	err = r.Travel(interact.Destination{Map: "void"}, l)
	testutil.AssertErrorContains(t, err, "unknown map")
	testutil.AssertEqual(t, "map unchanged", l.CurrentMap(), "cave")
}

func TestRegistry_ReloadResyncsChests(t *testing.T) {
	r, l := newTestRegistry(t)

	chest := r.Nearest(30, 30, 0, l)
	chest.Interact(l)
	for range 10 {
		r.Update(0.1, l)
	}
	testutil.AssertEqual(t, "opened", chest.Phase(), interact.PhaseOpen)

	fresh, err := NewRegistry(testMaps())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := fresh.LoadMap(progress.MapOverworld, l); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	again := fresh.Nearest(30, 30, 0, l)
	testutil.AssertEqual(t, "resynced", again.Phase(), interact.PhaseOpen)
	testutil.AssertEqual(t, "message", again.Interact(l).Message, interact.MsgAlreadyLooted)
	testutil.AssertEqual(t, "keys", l.ItemCount(progress.ItemKey), 1)
}

func TestRegistry_Nearest(t *testing.T) {
	r, l := newTestRegistry(t)

	testutil.AssertEqual(t, "nothing near", r.Nearest(300, 300, 0, l) == nil, true)
	testutil.AssertEqual(t, "chest", r.Nearest(36, 30, 0, l).ID(), "chest_1")
	testutil.AssertEqual(t, "wide radius picks closest", r.Nearest(40, 40, 100, l).ID(), "chest_1")

	// the cave is hidden at the initial quest state
	testutil.AssertEqual(t, "hidden skipped", r.Nearest(100, 20, 0, l) == nil, true)
}

func TestRegistry_TalkTo(t *testing.T) {
	r, l := newTestRegistry(t)

	npc, ok := r.TalkTo(78, 80, 0, l)
	testutil.AssertEqual(t, "found", ok, true)
	testutil.AssertEqual(t, "dialogue", npc.Dialogue, "Wares for sale.")

	l.SetQuestState(progress.QuestInsideHouse)
	_, ok = r.TalkTo(78, 80, 0, l)
	testutil.AssertEqual(t, "merchant moved", ok, false)
}

func TestRegistry_NotLoaded(t *testing.T) {
	r, err := NewRegistry(&mockStorer{defs: map[storage.Identifier]*MapDef{}})
	testutil.AssertEqual(t, "err", err, nil)

	l := progress.NewLedger("Hero")
	testutil.AssertEqual(t, "current", r.Current() == nil, true)
	testutil.AssertEqual(t, "interactables", len(r.Interactables(l)), 0)
	testutil.AssertEqual(t, "solid", r.IsSolid(0, 0), true)

	_, fired, err := r.Update(1, l)
	testutil.AssertEqual(t, "fired", fired, false)
	testutil.AssertEqual(t, "update err", err, nil)
}
