package session

import (
	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/world"
)

type SpellStatus struct {
	Name       string
	Level      int
	Experience int
	NextLevel  int
}

// Status is a read-only view of the session for presentation and message
// templates.
type Status struct {
	Session  string
	Player   string
	Class    string
	Element  string
	Strategy string

	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int

	Map      string
	Position progress.Point
	Quest    progress.QuestState
	PlayTime float64
	Levels   []string

	Inventory  map[string]int
	QuickSlots [progress.SlotCount]string
	Spells     []SpellStatus
	Equipped   [progress.SlotCount]string

	Interactables []interact.Appearance
	Overlay       []interact.Appearance
	NPCs          []world.NPC
	Enemies       []world.Enemy
	Obstructions  []world.Obstruction

	Fading    bool
	Selection *Selection
}

// Status returns the current view.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Session) statusLocked() Status {
	l := s.ledger
	mana, maxMana := l.Mana()

	st := Status{
		Session:    s.id,
		Player:     l.PlayerName(),
		Class:      l.PlayerClass(),
		Element:    l.PlayerElement(),
		Strategy:   l.HealingStrategy(),
		Health:     l.Health(),
		MaxHealth:  l.MaxHealth(),
		Mana:       mana,
		MaxMana:    maxMana,
		Map:        l.CurrentMap(),
		Position:   s.pos,
		Quest:      l.QuestState(),
		PlayTime:   l.PlayTime(),
		Levels:     l.LevelHistory(),
		Inventory:  l.Inventory(),
		QuickSlots: l.QuickSlots(),
		Equipped:   l.EquippedSpells(),
		NPCs:       s.registry.NPCs(l),
		Enemies:    s.registry.Enemies(l),

		Obstructions: s.registry.Obstructions(),
		Fading:       s.fade != nil,
	}

	levels, exp := l.SpellLevels(), l.SpellExperience()
	for _, name := range l.LearnedSpells() {
		st.Spells = append(st.Spells, SpellStatus{
			Name:       name,
			Level:      levels[name],
			Experience: exp[name],
			NextLevel:  progress.ExpForSpellLevel(levels[name]),
		})
	}

	for _, obj := range s.registry.Interactables(l) {
		if a, ok := obj.Draw(interact.LayerEntities); ok {
			st.Interactables = append(st.Interactables, a)
		}
		if a, ok := obj.Draw(interact.LayerOverlay); ok {
			st.Overlay = append(st.Overlay, a)
		}
	}

	if s.selection != nil {
		sel := *s.selection
		st.Selection = &sel
	}
	return st
}
