package interact

import (
	"fmt"

	"github.com/pixil98/go-questkeep/internal/progress"
)

// Kind tags an interactable.
type Kind string

const (
	KindChest        Kind = "chest"
	KindDoor         Kind = "door"
	KindSign         Kind = "sign"
	KindScroll       Kind = "scroll"
	KindCave         Kind = "cave"
	KindCaveExit     Kind = "cave_exit"
	KindPortal       Kind = "portal"
	KindAncientPath  Kind = "ancient_path"
	KindClassIcon    Kind = "class_icon"
	KindStrategyIcon Kind = "strategy_icon"
)

// Destination is a map and the spawn point to use on arrival.
type Destination struct {
	Map   string         `json:"map"`
	Spawn progress.Point `json:"spawn"`
}

// Payload is the kind-specific data of an interactable. Only the types in
// this package implement it.
type Payload interface {
	accepts(Kind) bool
}

// Chest grants Item once. A chest may instead or also spring a skeleton trap.
type Chest struct {
	Item              string
	TriggersSkeletons bool
}

// Door moves the player after its opening animation. The house door is
// refused while the ledger reports it locked.
type Door struct {
	Destination Destination
	HouseDoor   bool
}

type Sign struct {
	Message string
}

// Scroll teaches Spell once.
type Scroll struct {
	Spell string
}

// Passage is a cave, cave exit, portal or ancient path: an immediate fade
// transition to Destination.
type Passage struct {
	Destination Destination
}

// Selector offers a class or healing strategy choice.
type Selector struct {
	Options []string
}

func (Chest) accepts(k Kind) bool  { return k == KindChest }
func (Door) accepts(k Kind) bool   { return k == KindDoor }
func (Sign) accepts(k Kind) bool   { return k == KindSign }
func (Scroll) accepts(k Kind) bool { return k == KindScroll }

func (Passage) accepts(k Kind) bool {
	switch k {
	case KindCave, KindCaveExit, KindPortal, KindAncientPath:
		return true
	}
	return false
}

func (Selector) accepts(k Kind) bool {
	return k == KindClassIcon || k == KindStrategyIcon
}

// ParseKind validates a kind tag read from content.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	switch k {
	case KindChest, KindDoor, KindSign, KindScroll, KindCave, KindCaveExit,
		KindPortal, KindAncientPath, KindClassIcon, KindStrategyIcon:
		return k, nil
	}
	return "", fmt.Errorf("unknown interactable kind %q", s)
}
