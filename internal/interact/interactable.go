package interact

import (
	"fmt"
	"math"

	"github.com/pixil98/go-questkeep/internal/progress"
)

const (
	// DoorTransitionDelay is how long a door waits after it starts opening
	// before the map change is released.
	DoorTransitionDelay = 0.1

	// AnimationRate is how much open progress advances per second.
	AnimationRate = 4.0

	// DefaultInteractRadius is the reach used by IsPlayerNear when no radius
	// is given.
	DefaultInteractRadius = 24.0
)

// Ledger is the progress an interactable reads and mutates.
type Ledger interface {
	IsChestOpened(id string) bool
	OpenChest(id string)
	AddItem(name string)
	IsHouseDoorLocked() bool
	LearnSpell(name string) bool
	KnowsSpell(name string) bool
	HasClass() bool
	HasStrategy() bool
}

// Phase is the visual open state.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpening
	PhaseOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	default:
		return "closed"
	}
}

// Interactable is a stateful world object on a single map.
type Interactable struct {
	id      string
	kind    Kind
	pos     progress.Point
	payload Payload

	openProgress   float64
	targetProgress float64

	// pending is the countdown before a door releases its transition.
	pending *float64
	// consumed marks a spent scroll.
	consumed bool
}

// New builds an interactable. The payload type must match kind.
func New(id string, kind Kind, pos progress.Point, payload Payload) (*Interactable, error) {
	if id == "" {
		return nil, fmt.Errorf("interactable id is required")
	}
	if payload == nil || !payload.accepts(kind) {
		return nil, fmt.Errorf("interactable %q: payload %T does not fit kind %q", id, payload, kind)
	}
	return &Interactable{
		id:      id,
		kind:    kind,
		pos:     pos,
		payload: payload,
	}, nil
}

func (i *Interactable) ID() string {
	return i.id
}

func (i *Interactable) Kind() Kind {
	return i.kind
}

func (i *Interactable) Position() progress.Point {
	return i.pos
}

func (i *Interactable) Payload() Payload {
	return i.payload
}

// Interact runs the kind's protocol against the ledger.
func (i *Interactable) Interact(l Ledger) Outcome {
	switch p := i.payload.(type) {
	case Chest:
		return i.openChest(l, p)
	case Door:
		return i.openDoor(l, p)
	case Sign:
		return Outcome{Message: p.Message}
	case Scroll:
		return i.readScroll(l, p)
	case Passage:
		return Outcome{Event: FadeTransition{Destination: p.Destination}}
	case Selector:
		return i.selectOption(l, p)
	}
	return Outcome{}
}

func (i *Interactable) openChest(l Ledger, c Chest) Outcome {
	if l.IsChestOpened(i.id) {
		return Outcome{Message: MsgAlreadyLooted}
	}

	l.OpenChest(i.id)
	i.targetProgress = 1

	var out Outcome
	if c.TriggersSkeletons {
		out.Event = TriggerSkeletons{ChestID: i.id}
	}
	switch {
	case c.Item != "":
		l.AddItem(c.Item)
		out.Message = fmt.Sprintf(foundMessageFormat, c.Item)
	case !c.TriggersSkeletons:
		out.Message = MsgEmptyChest
	}
	return out
}

func (i *Interactable) openDoor(l Ledger, d Door) Outcome {
	if d.HouseDoor && l.IsHouseDoorLocked() {
		return Outcome{Message: MsgDoorLocked}
	}
	if i.pending != nil {
		return Outcome{}
	}

	i.targetProgress = 1
	delay := DoorTransitionDelay
	i.pending = &delay
	return Outcome{}
}

func (i *Interactable) readScroll(l Ledger, s Scroll) Outcome {
	if i.consumed {
		return Outcome{Message: MsgScrollFaded}
	}

	i.consumed = true
	if !l.LearnSpell(s.Spell) {
		return Outcome{Message: MsgScrollFaded}
	}
	return Outcome{
		Message: fmt.Sprintf(learnedFormat, s.Spell),
		Event:   SpellLearned{Spell: s.Spell},
	}
}

func (i *Interactable) selectOption(l Ledger, s Selector) Outcome {
	if i.kind == KindClassIcon {
		if l.HasClass() {
			return Outcome{Message: MsgClassChosen}
		}
		return Outcome{Event: ClassSelection{SourceID: i.id, Options: s.Options}}
	}

	if l.HasStrategy() {
		return Outcome{Message: MsgStrategyChosen}
	}
	return Outcome{Event: StrategySelection{SourceID: i.id, Options: s.Options}}
}

// Update advances animation and timers by dt seconds. It reports a door's
// destination once, on the update where its pending timer runs out.
func (i *Interactable) Update(dt float64) (Destination, bool) {
	if i.consumed {
		return Destination{}, false
	}

	if i.openProgress < i.targetProgress {
		i.openProgress = math.Min(i.targetProgress, i.openProgress+AnimationRate*dt)
	} else if i.openProgress > i.targetProgress {
		i.openProgress = math.Max(i.targetProgress, i.openProgress-AnimationRate*dt)
	}

	if i.pending == nil {
		return Destination{}, false
	}
	*i.pending -= dt
	if *i.pending > 0 {
		return Destination{}, false
	}
	i.pending = nil

	d, ok := i.payload.(Door)
	if !ok {
		return Destination{}, false
	}
	return d.Destination, true
}

// SyncWithGameState re-derives visual state from the ledger after a map
// load. It never runs interaction side effects.
func (i *Interactable) SyncWithGameState(l Ledger) {
	switch p := i.payload.(type) {
	case Chest:
		if l.IsChestOpened(i.id) {
			i.openProgress, i.targetProgress = 1, 1
		} else {
			i.openProgress, i.targetProgress = 0, 0
		}
	case Door:
		i.openProgress, i.targetProgress = 0, 0
		i.pending = nil
	case Scroll:
		i.consumed = l.KnowsSpell(p.Spell)
	}
}

// Phase reports the visual open state.
func (i *Interactable) Phase() Phase {
	switch {
	case i.openProgress >= 1:
		return PhaseOpen
	case i.targetProgress > i.openProgress:
		return PhaseOpening
	default:
		return PhaseClosed
	}
}

// PendingTransition reports whether a door is waiting to release a
// transition.
func (i *Interactable) PendingTransition() bool {
	return i.pending != nil
}

// IsPlayerNear reports whether (x, y) is within radius of the interactable.
// A non-positive radius uses DefaultInteractRadius.
func (i *Interactable) IsPlayerNear(x, y, radius float64) bool {
	return i.Distance(x, y) <= reach(radius)
}

// Distance is the euclidean distance from (x, y) to the interactable.
func (i *Interactable) Distance(x, y float64) float64 {
	return math.Hypot(i.pos.X-x, i.pos.Y-y)
}

func reach(radius float64) float64 {
	if radius <= 0 {
		return DefaultInteractRadius
	}
	return radius
}
