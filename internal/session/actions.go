package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pixil98/go-questkeep/internal/display"
	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/progress"
)

// Messages returned by session inputs.
const (
	MsgNothingHere     = "There is nothing here."
	MsgNobodyHere      = "No one is nearby."
	MsgNothingToChoose = "There is nothing to choose."
	MsgNothingHappens  = "Nothing happens."
	MsgDoorUnlocked    = "The door unlocks."
	MsgFading          = "The world shimmers around you."
)

type SelectionKind string

const (
	SelectionClass    SelectionKind = "class"
	SelectionStrategy SelectionKind = "strategy"
)

// Selection is a class or healing strategy choice awaiting confirmation.
type Selection struct {
	Kind     SelectionKind `json:"kind"`
	SourceID string        `json:"source_id"`
	Options  []string      `json:"options"`
}

// ClassElements maps a class to the element it is bound to.
var ClassElements = map[string]string{
	"warrior": "earth",
	"mage":    "fire",
	"ranger":  "wind",
	"cleric":  "water",
}

// Interact runs the nearest visible interactable within reach of (x, y),
// which also becomes the live position. At most one interactable is used.
func (s *Session) Interact(ctx context.Context, x, y float64) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pos = progress.Point{X: x, Y: y}
	if s.fade != nil || s.registry.TransitionPending() {
		return Response{Message: MsgFading}
	}

	obj := s.registry.Nearest(x, y, s.radius, s.ledger)
	if obj == nil {
		return Response{Message: MsgNothingHere}
	}

	out := obj.Interact(s.ledger)
	return s.handleOutcome(ctx, obj.ID(), out)
}

func (s *Session) handleOutcome(ctx context.Context, id string, out interact.Outcome) Response {
	resp := Response{Message: s.render(out.Message)}

	switch ev := out.Event.(type) {
	case interact.FadeTransition:
		s.fade = &fade{dest: ev.Destination, remaining: s.fadeDuration}
	case interact.ClassSelection:
		resp.Selection = s.offer(SelectionClass, ev.SourceID, ev.Options)
	case interact.StrategySelection:
		resp.Selection = s.offer(SelectionStrategy, ev.SourceID, ev.Options)
	}

	switch {
	case out.Event != nil:
		s.publish(ctx, out.Event.EventName(), resp.Message, out.Event)
	case resp.Message != "":
		s.publish(ctx, "interact", resp.Message, map[string]string{"id": id})
	}
	return resp
}

// offer stores a pending selection and returns a copy for the caller.
func (s *Session) offer(kind SelectionKind, sourceID string, options []string) *Selection {
	s.selection = &Selection{Kind: kind, SourceID: sourceID, Options: slices.Clone(options)}
	sel := *s.selection
	return &sel
}

// ConfirmSelection finalizes the pending selection with choice.
func (s *Session) ConfirmSelection(ctx context.Context, choice string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection
	if sel == nil {
		return Response{Message: MsgNothingToChoose}
	}
	if !slices.Contains(sel.Options, choice) {
		pending := *sel
		return Response{
			Message:   fmt.Sprintf("%s is not an option.", display.Title(choice)),
			Selection: &pending,
		}
	}
	s.selection = nil

	var msg string
	switch sel.Kind {
	case SelectionClass:
		if !s.ledger.ChooseClass(choice, ClassElements[choice]) {
			return Response{Message: interact.MsgClassChosen}
		}
		// gates keyed on the class open right away
		if err := s.registry.LoadMap(s.ledger.CurrentMap(), s.ledger); err != nil {
			return Response{Message: fmt.Sprintf("Could not reload the map: %v", err)}
		}
		msg = fmt.Sprintf("You are now a %s.", display.Title(choice))
	case SelectionStrategy:
		if !s.ledger.ChooseStrategy(choice) {
			return Response{Message: interact.MsgStrategyChosen}
		}
		msg = fmt.Sprintf("Healing strategy: %s.", display.Title(choice))
	}

	s.publish(ctx, string(sel.Kind)+"_chosen", msg, map[string]string{"choice": choice, "source_id": sel.SourceID})
	return Response{Message: msg}
}

// CancelSelection drops the pending selection. The icon can be used again.
func (s *Session) CancelSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}

// PendingSelection returns the selection awaiting confirmation, if any.
func (s *Session) PendingSelection() *Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// UseItem uses an inventory item at the live position. The key opens the
// locked house door when it is within reach.
func (s *Session) UseItem(ctx context.Context, item string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.HasItem(item) {
		return Response{Message: fmt.Sprintf("You don't have %s.", item)}
	}

	if item == progress.ItemKey && s.ledger.IsHouseDoorLocked() {
		if obj := s.nearestHouseDoor(); obj != nil {
			s.ledger.UnlockHouseDoor()
			s.ledger.RemoveItem(progress.ItemKey, 1)
			s.publish(ctx, "house_unlocked", MsgDoorUnlocked, map[string]string{"id": obj.ID()})
			return Response{Message: MsgDoorUnlocked}
		}
	}

	return Response{Message: MsgNothingHappens}
}

func (s *Session) nearestHouseDoor() *interact.Interactable {
	obj := s.registry.Nearest(s.pos.X, s.pos.Y, s.radius, s.ledger)
	if obj == nil {
		return nil
	}
	if door, ok := obj.Payload().(interact.Door); ok && door.HouseDoor {
		return obj
	}
	return nil
}

// TalkTo returns the dialogue of the nearest visible NPC.
func (s *Session) TalkTo(ctx context.Context) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	npc, ok := s.registry.TalkTo(s.pos.X, s.pos.Y, s.radius, s.ledger)
	if !ok {
		return Response{Message: MsgNobodyHere}
	}

	msg := s.render(npc.Dialogue)
	s.publish(ctx, "npc_talk", msg, map[string]string{"id": npc.ID})
	if s.ledger.TalkTo(npc.ID) {
		s.publish(ctx, "quest_advanced", "", map[string]string{"quest": s.ledger.QuestState().String(), "npc": npc.ID})
	}
	return Response{Message: msg}
}

// DefeatEnemy records a kill reported by the combat layer.
func (s *Session) DefeatEnemy(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.IsEnemyKilled(id) {
		return
	}
	s.ledger.KillEnemy(id)
	s.publish(ctx, "enemy_killed", "", map[string]string{"id": id})
}

// CompleteLevel records a finished level and any quest step it unlocks.
func (s *Session) CompleteLevel(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.CompleteLevel(name) {
		return false
	}
	// level rules can flip gate conditions
	if err := s.registry.LoadMap(s.ledger.CurrentMap(), s.ledger); err != nil {
		slog.ErrorContext(ctx, "reloading map", "session", s.id, "map", s.ledger.CurrentMap(), "error", err)
	}
	s.publish(ctx, "level_completed", "", map[string]string{"level": name, "quest": s.ledger.QuestState().String()})
	return true
}

// EquipSpell puts a learned spell into slot 1..5.
func (s *Session) EquipSpell(name string, slot int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.EquipSpell(name, slot) {
		return Response{Message: fmt.Sprintf("Cannot equip %s in slot %d.", name, slot)}
	}
	return Response{Message: fmt.Sprintf("%s equipped in slot %d.", name, slot)}
}

// UnequipSpell clears spell slot 1..5.
func (s *Session) UnequipSpell(slot int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.UnequipSpell(slot) {
		return Response{Message: fmt.Sprintf("There is no slot %d.", slot)}
	}
	return Response{Message: fmt.Sprintf("Slot %d cleared.", slot)}
}

// SetQuickSlot binds a held item to quick slot 1..5. An empty item clears it.
func (s *Session) SetQuickSlot(slot int, item string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item == "" {
		if !s.ledger.ClearQuickSlot(slot) {
			return Response{Message: fmt.Sprintf("There is no slot %d.", slot)}
		}
		return Response{Message: fmt.Sprintf("Quick slot %d cleared.", slot)}
	}

	if !s.ledger.SetQuickSlot(slot, item) {
		return Response{Message: fmt.Sprintf("Cannot put %s in quick slot %d.", item, slot)}
	}
	return Response{Message: fmt.Sprintf("%s set to quick slot %d.", item, slot)}
}
