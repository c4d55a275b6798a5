package progress

import (
	"maps"
	"slices"
)

const (
	// SlotCount is the number of quick slots and spell equip slots.
	SlotCount = 5

	DefaultHealth = 100
	DefaultMana   = 100
)

// Point is a position in world pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ledger is the authoritative record of a single game's progress. It is not
// safe for concurrent use; callers serialize access.
type Ledger struct {
	inventory     map[string]int
	quickSlots    [SlotCount]string
	openedChests  map[string]struct{}
	killedEnemies map[string]struct{}

	questState QuestState

	learnedSpells   []string
	spellLevels     map[string]int
	spellExperience map[string]int
	equippedSpells  [SlotCount]string

	playerName      string
	playerClass     string
	playerElement   string
	healingStrategy string
	health          int
	maxHealth       int
	currentMana     int
	maxMana         int

	currentMap string
	spawn      Point

	houseDoorLocked      bool
	mysteriousCaveHidden bool
	eastPathRevealed     bool

	levelHistory []string
	playTime     float64
}

// NewLedger returns a ledger for a fresh game.
func NewLedger(playerName string) *Ledger {
	return &Ledger{
		inventory:       map[string]int{},
		openedChests:    map[string]struct{}{},
		killedEnemies:   map[string]struct{}{},
		questState:      QuestInitial,
		spellLevels:     map[string]int{},
		spellExperience: map[string]int{},
		playerName:      playerName,
		health:          DefaultHealth,
		maxHealth:       DefaultHealth,
		currentMana:     DefaultMana,
		maxMana:         DefaultMana,
		currentMap:      MapOverworld,
		houseDoorLocked: true,
	}
}

// AddItem adds one unit of name and runs the item quest rules.
func (l *Ledger) AddItem(name string) {
	l.inventory[name]++
	runRules(itemRules, l, name)
}

// RemoveItem removes count units of name. It fails when the item is not held.
// Removing the last unit deletes the item and clears every slot naming it.
func (l *Ledger) RemoveItem(name string, count int) bool {
	have, ok := l.inventory[name]
	if !ok || count < 1 {
		return false
	}
	if have-count > 0 {
		l.inventory[name] = have - count
		return true
	}

	delete(l.inventory, name)
	for i := range l.quickSlots {
		if l.quickSlots[i] == name {
			l.quickSlots[i] = ""
		}
	}
	for i := range l.equippedSpells {
		if l.equippedSpells[i] == name {
			l.equippedSpells[i] = ""
		}
	}
	return true
}

func (l *Ledger) HasItem(name string) bool {
	return l.inventory[name] > 0
}

func (l *Ledger) ItemCount(name string) int {
	return l.inventory[name]
}

// Inventory returns a copy of the held items.
func (l *Ledger) Inventory() map[string]int {
	return maps.Clone(l.inventory)
}

// SetQuickSlot binds a held item to slot (1-based).
func (l *Ledger) SetQuickSlot(slot int, item string) bool {
	if !validSlot(slot) || !l.HasItem(item) {
		return false
	}
	l.quickSlots[slot-1] = item
	return true
}

func (l *Ledger) ClearQuickSlot(slot int) bool {
	if !validSlot(slot) {
		return false
	}
	l.quickSlots[slot-1] = ""
	return true
}

func (l *Ledger) QuickSlots() [SlotCount]string {
	return l.quickSlots
}

func (l *Ledger) OpenChest(id string) {
	l.openedChests[id] = struct{}{}
}

func (l *Ledger) IsChestOpened(id string) bool {
	_, ok := l.openedChests[id]
	return ok
}

func (l *Ledger) KillEnemy(id string) {
	l.killedEnemies[id] = struct{}{}
}

func (l *Ledger) IsEnemyKilled(id string) bool {
	_, ok := l.killedEnemies[id]
	return ok
}

func (l *Ledger) QuestState() QuestState {
	return l.questState
}

// AdvanceQuest moves the quest to `to` if it has not reached it yet.
func (l *Ledger) AdvanceQuest(to QuestState) bool {
	if l.questState.AtLeast(to) || !to.Valid() {
		return false
	}
	l.questState = to
	return true
}

// SetQuestState overwrites the quest state without ordering checks.
func (l *Ledger) SetQuestState(q QuestState) {
	l.questState = q
}

// ChangeMap moves the player to name at the given spawn. Entering the house
// interior after unlocking it advances the quest.
func (l *Ledger) ChangeMap(name string, spawn Point) {
	l.currentMap = name
	l.spawn = spawn
	if name == MapHouseInterior && l.questState == QuestHouseUnlocked {
		l.questState = QuestInsideHouse
	}
}

func (l *Ledger) CurrentMap() string {
	return l.currentMap
}

func (l *Ledger) Spawn() Point {
	return l.spawn
}

// UnlockHouseDoor unlocks the house and moves the quest to house_unlocked.
func (l *Ledger) UnlockHouseDoor() {
	l.houseDoorLocked = false
	l.questState = QuestHouseUnlocked
}

func (l *Ledger) IsHouseDoorLocked() bool {
	return l.houseDoorLocked
}

func (l *Ledger) HideMysteriousCave() {
	l.mysteriousCaveHidden = true
}

func (l *Ledger) IsMysteriousCaveHidden() bool {
	return l.mysteriousCaveHidden
}

func (l *Ledger) RevealEastPath() {
	l.eastPathRevealed = true
}

func (l *Ledger) IsEastPathRevealed() bool {
	return l.eastPathRevealed
}

// CompleteLevel records name once and runs the level quest rules.
func (l *Ledger) CompleteLevel(name string) bool {
	if slices.Contains(l.levelHistory, name) {
		return false
	}
	l.levelHistory = append(l.levelHistory, name)
	runRules(levelRules, l, name)
	return true
}

// TalkTo runs the talk quest rules for npc and reports whether the quest
// advanced.
func (l *Ledger) TalkTo(npc string) bool {
	return runRules(talkRules, l, npc)
}

func (l *Ledger) LevelHistory() []string {
	return slices.Clone(l.levelHistory)
}

// AddPlayTime accumulates seconds of play. Non-positive values are ignored.
func (l *Ledger) AddPlayTime(seconds float64) {
	if seconds > 0 {
		l.playTime += seconds
	}
}

func (l *Ledger) PlayTime() float64 {
	return l.playTime
}

func validSlot(slot int) bool {
	return slot >= 1 && slot <= SlotCount
}
