package progress

import (
	"maps"
	"slices"
)

// Snapshot is a flat, detached copy of every ledger field. Sets are sorted id
// lists; slots hold "" when empty.
type Snapshot struct {
	PlayerName      string
	PlayerClass     string
	PlayerElement   string
	HealingStrategy string
	Health          int
	MaxHealth       int
	CurrentMana     int
	MaxMana         int

	CurrentMap string
	Spawn      Point

	QuestState QuestState
	PlayTime   float64

	Inventory     map[string]int
	QuickSlots    [SlotCount]string
	OpenedChests  []string
	KilledEnemies []string

	LearnedSpells   []string
	SpellLevels     map[string]int
	SpellExperience map[string]int
	EquippedSpells  [SlotCount]string

	LevelHistory []string

	HouseDoorLocked      bool
	MysteriousCaveHidden bool
	EastPathRevealed     bool
}

// Snapshot copies the ledger.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		PlayerName:           l.playerName,
		PlayerClass:          l.playerClass,
		PlayerElement:        l.playerElement,
		HealingStrategy:      l.healingStrategy,
		Health:               l.health,
		MaxHealth:            l.maxHealth,
		CurrentMana:          l.currentMana,
		MaxMana:              l.maxMana,
		CurrentMap:           l.currentMap,
		Spawn:                l.spawn,
		QuestState:           l.questState,
		PlayTime:             l.playTime,
		Inventory:            maps.Clone(l.inventory),
		QuickSlots:           l.quickSlots,
		OpenedChests:         sortedKeys(l.openedChests),
		KilledEnemies:        sortedKeys(l.killedEnemies),
		LearnedSpells:        slices.Clone(l.learnedSpells),
		SpellLevels:          maps.Clone(l.spellLevels),
		SpellExperience:      maps.Clone(l.spellExperience),
		EquippedSpells:       l.equippedSpells,
		LevelHistory:         slices.Clone(l.levelHistory),
		HouseDoorLocked:      l.houseDoorLocked,
		MysteriousCaveHidden: l.mysteriousCaveHidden,
		EastPathRevealed:     l.eastPathRevealed,
	}
}

// Restore replaces every ledger field from s. Entries that would break ledger
// invariants are dropped: non-positive counts, duplicate spells or levels,
// slots naming items not held or spells not learned.
func (l *Ledger) Restore(s Snapshot) {
	l.playerName = s.PlayerName
	l.playerClass = s.PlayerClass
	l.playerElement = s.PlayerElement
	l.healingStrategy = s.HealingStrategy
	l.maxHealth = max(s.MaxHealth, 1)
	l.health = clamp(s.Health, 0, l.maxHealth)
	l.maxMana = max(s.MaxMana, 0)
	l.currentMana = clamp(s.CurrentMana, 0, l.maxMana)
	l.currentMap = s.CurrentMap
	l.spawn = s.Spawn
	l.questState = s.QuestState
	if !l.questState.Valid() {
		l.questState = QuestInitial
	}
	l.playTime = max(s.PlayTime, 0)

	l.inventory = map[string]int{}
	for k, v := range s.Inventory {
		if v > 0 {
			l.inventory[k] = v
		}
	}
	l.openedChests = toSet(s.OpenedChests)
	l.killedEnemies = toSet(s.KilledEnemies)

	l.learnedSpells = nil
	l.spellLevels = map[string]int{}
	l.spellExperience = map[string]int{}
	for _, sp := range s.LearnedSpells {
		if sp == "" || slices.Contains(l.learnedSpells, sp) {
			continue
		}
		l.learnedSpells = append(l.learnedSpells, sp)
		l.spellLevels[sp] = clamp(s.SpellLevels[sp], 1, MaxSpellLevel)
		l.spellExperience[sp] = max(s.SpellExperience[sp], 0)
	}

	for i := range SlotCount {
		l.quickSlots[i] = ""
		if item := s.QuickSlots[i]; item != "" && l.inventory[item] > 0 {
			l.quickSlots[i] = item
		}
		l.equippedSpells[i] = ""
		if sp := s.EquippedSpells[i]; sp != "" && l.KnowsSpell(sp) {
			l.equippedSpells[i] = sp
		}
	}

	l.levelHistory = nil
	for _, lvl := range s.LevelHistory {
		if !slices.Contains(l.levelHistory, lvl) {
			l.levelHistory = append(l.levelHistory, lvl)
		}
	}

	l.houseDoorLocked = s.HouseDoorLocked
	l.mysteriousCaveHidden = s.MysteriousCaveHidden
	l.eastPathRevealed = s.EastPathRevealed
}

func sortedKeys(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
