package progress

import "fmt"

// QuestState is a step in the main quest progression.
type QuestState string

const (
	QuestInitial        QuestState = "initial"
	QuestLookingForKey  QuestState = "looking_for_key"
	QuestHasKey         QuestState = "has_key"
	QuestHouseUnlocked  QuestState = "house_unlocked"
	QuestInsideHouse    QuestState = "inside_house"
	QuestSwordCollected QuestState = "sword_collected"
	QuestCaveCompleted  QuestState = "cave_completed"
	QuestFinal          QuestState = "final"
)

// questOrder is the declared progression. Ordinals are derived from it once.
var questOrder = []QuestState{
	QuestInitial,
	QuestLookingForKey,
	QuestHasKey,
	QuestHouseUnlocked,
	QuestInsideHouse,
	QuestSwordCollected,
	QuestCaveCompleted,
	QuestFinal,
}

var questOrdinals = func() map[QuestState]int {
	m := make(map[QuestState]int, len(questOrder))
	for i, q := range questOrder {
		m[q] = i
	}
	return m
}()

// Ordinal returns the position of q in the progression and whether q is a
// known state.
func (q QuestState) Ordinal() (int, bool) {
	i, ok := questOrdinals[q]
	return i, ok
}

// Valid reports whether q is part of the declared progression.
func (q QuestState) Valid() bool {
	_, ok := questOrdinals[q]
	return ok
}

// AtLeast reports whether q is at or after min. Unknown states are never at
// least anything.
func (q QuestState) AtLeast(min QuestState) bool {
	cur, ok := questOrdinals[q]
	if !ok {
		return false
	}
	req, ok := questOrdinals[min]
	if !ok {
		return false
	}
	return cur >= req
}

func (q QuestState) String() string {
	return string(q)
}

// UnmarshalText rejects states outside the progression.
func (q *QuestState) UnmarshalText(text []byte) error {
	s := QuestState(text)
	if !s.Valid() {
		return fmt.Errorf("unknown quest state %q", text)
	}
	*q = s
	return nil
}

// QuestStates returns the declared progression in order.
func QuestStates() []QuestState {
	out := make([]QuestState, len(questOrder))
	copy(out, questOrder)
	return out
}

// questRule advances the quest to To when Trigger fires and the quest has not
// yet reached To. Effect, when set, runs every time the trigger fires.
type questRule struct {
	Trigger string
	To      QuestState
	Effect  func(*Ledger)
}

func (r questRule) fire(l *Ledger, trigger string) bool {
	if r.Trigger != trigger {
		return false
	}
	if r.Effect != nil {
		r.Effect(l)
	}
	return l.AdvanceQuest(r.To)
}

// runRules fires every rule matching trigger and reports whether the quest
// moved.
func runRules(rules []questRule, l *Ledger, trigger string) bool {
	advanced := false
	for _, r := range rules {
		if r.fire(l, trigger) {
			advanced = true
		}
	}
	return advanced
}

// itemRules run on every AddItem, in declaration order.
var itemRules = []questRule{
	{Trigger: ItemKey, To: QuestHasKey},
	{Trigger: ItemSword, To: QuestSwordCollected},
}

// levelRules run on every successful CompleteLevel, in declaration order.
// Clearing the cave seals it and opens the way east.
var levelRules = []questRule{
	{Trigger: LevelCave, To: QuestCaveCompleted, Effect: sealCave},
}

// talkRules run every time the player talks to an NPC.
var talkRules = []questRule{
	{Trigger: NPCElder, To: QuestLookingForKey},
}

func sealCave(l *Ledger) {
	l.HideMysteriousCave()
	l.RevealEastPath()
}

const (
	ItemKey   = "Key"
	ItemSword = "Sword"

	LevelCave = "cave"

	NPCElder = "elder"
)

const (
	MapOverworld     = "overworld"
	MapHouseInterior = "house_interior"
)
