package progress

import (
	"maps"
	"slices"
)

// MaxSpellLevel is the highest level a spell can reach.
const MaxSpellLevel = 5

// ExpForSpellLevel returns the experience needed to advance a spell past level.
func ExpForSpellLevel(level int) int {
	return 100 * level
}

// LearnSpell adds name to the learned spells at level 1. It fails if the spell
// is already known.
func (l *Ledger) LearnSpell(name string) bool {
	if name == "" || l.KnowsSpell(name) {
		return false
	}
	l.learnedSpells = append(l.learnedSpells, name)
	l.spellLevels[name] = 1
	l.spellExperience[name] = 0
	return true
}

func (l *Ledger) KnowsSpell(name string) bool {
	return slices.Contains(l.learnedSpells, name)
}

func (l *Ledger) LearnedSpells() []string {
	return slices.Clone(l.learnedSpells)
}

func (l *Ledger) SpellLevel(name string) int {
	return l.spellLevels[name]
}

func (l *Ledger) SpellLevels() map[string]int {
	return maps.Clone(l.spellLevels)
}

func (l *Ledger) SpellExperience() map[string]int {
	return maps.Clone(l.spellExperience)
}

// GainSpellExperience adds xp to a learned spell and levels it up while the
// threshold is met. Excess experience carries over.
func (l *Ledger) GainSpellExperience(name string, xp int) bool {
	if !l.KnowsSpell(name) || xp <= 0 {
		return false
	}

	leveled := false
	exp := l.spellExperience[name] + xp
	level := l.spellLevels[name]
	for level < MaxSpellLevel && exp >= ExpForSpellLevel(level) {
		exp -= ExpForSpellLevel(level)
		level++
		leveled = true
	}
	if level >= MaxSpellLevel {
		exp = 0
	}

	l.spellLevels[name] = level
	l.spellExperience[name] = exp
	return leveled
}

// EquipSpell places a learned spell in slot (1-based).
func (l *Ledger) EquipSpell(name string, slot int) bool {
	if !validSlot(slot) || !l.KnowsSpell(name) {
		return false
	}
	l.equippedSpells[slot-1] = name
	return true
}

func (l *Ledger) UnequipSpell(slot int) bool {
	if !validSlot(slot) {
		return false
	}
	l.equippedSpells[slot-1] = ""
	return true
}

func (l *Ledger) EquippedSpells() [SlotCount]string {
	return l.equippedSpells
}
