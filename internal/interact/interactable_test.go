package interact

import (
	"testing"

	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-testutil"
)

func mustNew(t *testing.T, id string, kind Kind, payload Payload) *Interactable {
	t.Helper()
	i, err := New(id, kind, progress.Point{X: 100, Y: 100}, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return i
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		id      string
		kind    Kind
		payload Payload
		expErr  string
	}{
		"chest":            {id: "c", kind: KindChest, payload: Chest{Item: "Key"}},
		"cave passage":     {id: "p", kind: KindCave, payload: Passage{}},
		"ancient path":     {id: "p", kind: KindAncientPath, payload: Passage{}},
		"strategy icon":    {id: "s", kind: KindStrategyIcon, payload: Selector{}},
		"missing id":       {id: "", kind: KindSign, payload: Sign{}, expErr: "id is required"},
		"mismatched":       {id: "d", kind: KindDoor, payload: Chest{}, expErr: "does not fit kind"},
		"nil payload":      {id: "d", kind: KindDoor, payload: nil, expErr: "does not fit kind"},
		"passage for door": {id: "d", kind: KindDoor, payload: Passage{}, expErr: "does not fit kind"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tt.id, tt.kind, progress.Point{}, tt.payload)
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestInteract_ChestOpenedTwice(t *testing.T) {
	l := progress.NewLedger("tester")
	chest := mustNew(t, "chest_1", KindChest, Chest{Item: "Potion"})

	first := chest.Interact(l)
	testutil.AssertEqual(t, "first message", first.Message, "Found: Potion")
	testutil.AssertEqual(t, "count after first", l.ItemCount("Potion"), 1)
	testutil.AssertEqual(t, "recorded", l.IsChestOpened("chest_1"), true)

	second := chest.Interact(l)
	testutil.AssertEqual(t, "second message", second.Message, MsgAlreadyLooted)
	testutil.AssertEqual(t, "count after second", l.ItemCount("Potion"), 1)

	// A rebuilt chest with the same id stays looted.
	rebuilt := mustNew(t, "chest_1", KindChest, Chest{Item: "Potion"})
	rebuilt.SyncWithGameState(l)
	testutil.AssertEqual(t, "rebuilt phase", rebuilt.Phase(), PhaseOpen)
	testutil.AssertEqual(t, "rebuilt message", rebuilt.Interact(l).Message, MsgAlreadyLooted)
	testutil.AssertEqual(t, "count after rebuild", l.ItemCount("Potion"), 1)
}

func TestInteract_Chest(t *testing.T) {
	tests := map[string]struct {
		chest    Chest
		expMsg   string
		expEvent Event
	}{
		"empty chest": {
			chest:  Chest{},
			expMsg: MsgEmptyChest,
		},
		"trap only": {
			chest:    Chest{TriggersSkeletons: true},
			expEvent: TriggerSkeletons{ChestID: "trap"},
		},
		"trap with item": {
			chest:    Chest{Item: "Sword", TriggersSkeletons: true},
			expMsg:   "Found: Sword",
			expEvent: TriggerSkeletons{ChestID: "trap"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := progress.NewLedger("tester")
			chest := mustNew(t, "trap", KindChest, tt.chest)

			out := chest.Interact(l)
			testutil.AssertEqual(t, "message", out.Message, tt.expMsg)
			testutil.AssertEqual(t, "event", out.Event, tt.expEvent)

			again := chest.Interact(l)
			testutil.AssertEqual(t, "retrigger", again.Event, Event(nil))
			testutil.AssertEqual(t, "retrigger message", again.Message, MsgAlreadyLooted)
		})
	}
}

func TestInteract_DoorTransition(t *testing.T) {
	l := progress.NewLedger("tester")
	dest := Destination{Map: "cave", Spawn: progress.Point{X: 16, Y: 32}}
	door := mustNew(t, "door_1", KindDoor, Door{Destination: dest})

	out := door.Interact(l)
	testutil.AssertEqual(t, "outcome", out, Outcome{})
	testutil.AssertEqual(t, "pending", door.PendingTransition(), true)
	testutil.AssertEqual(t, "phase", door.Phase(), PhaseOpening)

	// A second press while pending does not re-arm the timer.
	door.Interact(l)

	var fired []int
	for tick := 1; tick <= 6; tick++ {
		if got, ok := door.Update(0.04); ok {
			testutil.AssertEqual(t, "destination", got, dest)
			fired = append(fired, tick)
		}
	}

	testutil.AssertEqual(t, "fired ticks", fired, []int{3})
	testutil.AssertEqual(t, "pending after", door.PendingTransition(), false)
}

func TestInteract_HouseDoorLocked(t *testing.T) {
	l := progress.NewLedger("tester")
	door := mustNew(t, "house_door", KindDoor, Door{
		Destination: Destination{Map: progress.MapHouseInterior},
		HouseDoor:   true,
	})

	out := door.Interact(l)
	testutil.AssertEqual(t, "message", out.Message, MsgDoorLocked)
	testutil.AssertEqual(t, "pending", door.PendingTransition(), false)
	_, ok := door.Update(1)
	testutil.AssertEqual(t, "transition", ok, false)

	l.UnlockHouseDoor()
	door.Interact(l)
	_, ok = door.Update(1)
	testutil.AssertEqual(t, "transition after unlock", ok, true)
}

func TestInteract_Scroll(t *testing.T) {
	l := progress.NewLedger("tester")
	scroll := mustNew(t, "scroll_1", KindScroll, Scroll{Spell: "Illumination"})

	first := scroll.Interact(l)
	testutil.AssertEqual(t, "first message", first.Message, "Learned: Illumination")
	testutil.AssertEqual(t, "first event", first.Event, Event(SpellLearned{Spell: "Illumination"}))

	second := scroll.Interact(l)
	testutil.AssertEqual(t, "second message", second.Message, MsgScrollFaded)
	testutil.AssertEqual(t, "second event", second.Event, Event(nil))
	testutil.AssertEqual(t, "learned once", l.LearnedSpells(), []string{"Illumination"})

	_, drawn := scroll.Draw(LayerEntities)
	testutil.AssertEqual(t, "drawn", drawn, false)

	rebuilt := mustNew(t, "scroll_1", KindScroll, Scroll{Spell: "Illumination"})
	rebuilt.SyncWithGameState(l)
	testutil.AssertEqual(t, "rebuilt message", rebuilt.Interact(l).Message, MsgScrollFaded)
}

func TestInteract_SignAndPassage(t *testing.T) {
	l := progress.NewLedger("tester")

	sign := mustNew(t, "sign_1", KindSign, Sign{Message: "North: the old road"})
	testutil.AssertEqual(t, "sign", sign.Interact(l).Message, "North: the old road")
	testutil.AssertEqual(t, "sign again", sign.Interact(l).Message, "North: the old road")

	dest := Destination{Map: "cave", Spawn: progress.Point{X: 48, Y: 64}}
	cave := mustNew(t, "cave_entrance", KindCave, Passage{Destination: dest})
	out := cave.Interact(l)
	testutil.AssertEqual(t, "event", out.Event, Event(FadeTransition{Destination: dest}))
	testutil.AssertEqual(t, "no pending", cave.PendingTransition(), false)
	testutil.AssertEqual(t, "ledger map", l.CurrentMap(), progress.MapOverworld)
}

func TestInteract_Selectors(t *testing.T) {
	options := []string{"warrior", "mage"}

	tests := map[string]struct {
		kind     Kind
		setup    func(l *progress.Ledger)
		expMsg   string
		expEvent Event
	}{
		"class not chosen": {
			kind:     KindClassIcon,
			expEvent: ClassSelection{SourceID: "icon", Options: options},
		},
		"class chosen": {
			kind:   KindClassIcon,
			setup:  func(l *progress.Ledger) { l.ChooseClass("rogue", "wind") },
			expMsg: MsgClassChosen,
		},
		"strategy not chosen": {
			kind:     KindStrategyIcon,
			expEvent: StrategySelection{SourceID: "icon", Options: options},
		},
		"strategy chosen": {
			kind:   KindStrategyIcon,
			setup:  func(l *progress.Ledger) { l.ChooseStrategy("potions") },
			expMsg: MsgStrategyChosen,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := progress.NewLedger("tester")
			if tt.setup != nil {
				tt.setup(l)
			}
			before := l.Snapshot()

			out := mustNew(t, "icon", tt.kind, Selector{Options: options}).Interact(l)

			testutil.AssertEqual(t, "message", out.Message, tt.expMsg)
			testutil.AssertEqual(t, "event", out.Event, tt.expEvent)
			testutil.AssertEqual(t, "ledger untouched", l.Snapshot(), before)
		})
	}
}

func TestIsPlayerNear(t *testing.T) {
	sign := mustNew(t, "sign", KindSign, Sign{})

	testutil.AssertEqual(t, "default inside", sign.IsPlayerNear(110, 110, 0), true)
	testutil.AssertEqual(t, "default outside", sign.IsPlayerNear(130, 100, 0), false)
	testutil.AssertEqual(t, "custom radius", sign.IsPlayerNear(130, 100, 40), true)
}

func TestDraw_Layers(t *testing.T) {
	portal := mustNew(t, "portal", KindPortal, Passage{})
	sign := mustNew(t, "sign", KindSign, Sign{})

	_, ok := portal.Draw(LayerOverlay)
	testutil.AssertEqual(t, "portal overlay", ok, true)
	_, ok = sign.Draw(LayerOverlay)
	testutil.AssertEqual(t, "sign overlay", ok, false)

	app, ok := sign.Draw(LayerEntities)
	testutil.AssertEqual(t, "sign entities", ok, true)
	testutil.AssertEqual(t, "phase", app.Phase, "closed")
}
