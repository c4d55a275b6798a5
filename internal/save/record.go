package save

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-questkeep/internal/progress"
)

// SchemaVersion tags every record written by this package.
const SchemaVersion = "1.0"

// Record is the flat, persisted projection of a ledger.
type Record struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
	SessionID string `json:"session_id,omitempty"`

	PlayerName      string  `json:"player_name"`
	PlayerClass     string  `json:"player_class,omitempty"`
	PlayerElement   string  `json:"player_element,omitempty"`
	HealingStrategy string  `json:"healing_strategy,omitempty"`
	PlayerX         float64 `json:"player_x"`
	PlayerY         float64 `json:"player_y"`
	PlayerHealth    int     `json:"player_health"`
	MaxHealth       int     `json:"max_health"`
	CurrentMana     int     `json:"current_mana"`
	MaxMana         int     `json:"max_mana"`

	CurrentMap string              `json:"current_map"`
	QuestState progress.QuestState `json:"quest_state"`
	PlayTime   float64             `json:"play_time"`

	Inventory     map[string]int `json:"inventory"`
	QuickSlots    []string       `json:"quick_slots"`
	OpenedChests  []string       `json:"opened_chests"`
	KilledEnemies []string       `json:"killed_enemies"`

	LearnedSpells   []string       `json:"learned_spells"`
	SpellLevels     map[string]int `json:"spell_levels"`
	SpellExperience map[string]int `json:"spell_experience"`
	EquippedSpells  []string       `json:"equipped_spells"`

	LevelHistory []string `json:"level_history"`

	HouseDoorLocked      bool `json:"house_door_locked"`
	MysteriousCaveHidden bool `json:"mysterious_cave_hidden"`
	EastPathRevealed     bool `json:"east_path_revealed"`
}

// DefaultRecord holds the value used for every field a stored record omits.
func DefaultRecord() *Record {
	return &Record{
		Version:         SchemaVersion,
		PlayerHealth:    progress.DefaultHealth,
		MaxHealth:       progress.DefaultHealth,
		CurrentMana:     progress.DefaultMana,
		MaxMana:         progress.DefaultMana,
		CurrentMap:      progress.MapOverworld,
		QuestState:      progress.QuestInitial,
		Inventory:       map[string]int{},
		QuickSlots:      make([]string, progress.SlotCount),
		SpellLevels:     map[string]int{},
		SpellExperience: map[string]int{},
		EquippedSpells:  make([]string, progress.SlotCount),
		HouseDoorLocked: true,
	}
}

// NewRecord projects a ledger snapshot into a record stamped with now.
func NewRecord(s progress.Snapshot, now time.Time) *Record {
	return &Record{
		Version:              SchemaVersion,
		Timestamp:            now.Unix(),
		PlayerName:           s.PlayerName,
		PlayerClass:          s.PlayerClass,
		PlayerElement:        s.PlayerElement,
		HealingStrategy:      s.HealingStrategy,
		PlayerX:              s.Spawn.X,
		PlayerY:              s.Spawn.Y,
		PlayerHealth:         s.Health,
		MaxHealth:            s.MaxHealth,
		CurrentMana:          s.CurrentMana,
		MaxMana:              s.MaxMana,
		CurrentMap:           s.CurrentMap,
		QuestState:           s.QuestState,
		PlayTime:             s.PlayTime,
		Inventory:            s.Inventory,
		QuickSlots:           s.QuickSlots[:],
		OpenedChests:         s.OpenedChests,
		KilledEnemies:        s.KilledEnemies,
		LearnedSpells:        s.LearnedSpells,
		SpellLevels:          s.SpellLevels,
		SpellExperience:      s.SpellExperience,
		EquippedSpells:       s.EquippedSpells[:],
		LevelHistory:         s.LevelHistory,
		HouseDoorLocked:      s.HouseDoorLocked,
		MysteriousCaveHidden: s.MysteriousCaveHidden,
		EastPathRevealed:     s.EastPathRevealed,
	}
}

// Snapshot converts the record back into ledger form.
func (r *Record) Snapshot() progress.Snapshot {
	s := progress.Snapshot{
		PlayerName:           r.PlayerName,
		PlayerClass:          r.PlayerClass,
		PlayerElement:        r.PlayerElement,
		HealingStrategy:      r.HealingStrategy,
		Health:               r.PlayerHealth,
		MaxHealth:            r.MaxHealth,
		CurrentMana:          r.CurrentMana,
		MaxMana:              r.MaxMana,
		CurrentMap:           r.CurrentMap,
		Spawn:                progress.Point{X: r.PlayerX, Y: r.PlayerY},
		QuestState:           r.QuestState,
		PlayTime:             r.PlayTime,
		Inventory:            r.Inventory,
		OpenedChests:         r.OpenedChests,
		KilledEnemies:        r.KilledEnemies,
		LearnedSpells:        r.LearnedSpells,
		SpellLevels:          r.SpellLevels,
		SpellExperience:      r.SpellExperience,
		LevelHistory:         r.LevelHistory,
		HouseDoorLocked:      r.HouseDoorLocked,
		MysteriousCaveHidden: r.MysteriousCaveHidden,
		EastPathRevealed:     r.EastPathRevealed,
	}
	copy(s.QuickSlots[:], r.QuickSlots)
	copy(s.EquippedSpells[:], r.EquippedSpells)
	return s
}

// Validate rejects records that cannot describe a ledger.
func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if r.Version == "" {
		el.Add(fmt.Errorf("version is required"))
	}
	if r.CurrentMap == "" {
		el.Add(fmt.Errorf("current_map is required"))
	}
	if !r.QuestState.Valid() {
		el.Add(fmt.Errorf("unknown quest_state %q", r.QuestState))
	}
	if len(r.QuickSlots) > progress.SlotCount {
		el.Add(fmt.Errorf("quick_slots has %d entries, at most %d allowed", len(r.QuickSlots), progress.SlotCount))
	}
	if len(r.EquippedSpells) > progress.SlotCount {
		el.Add(fmt.Errorf("equipped_spells has %d entries, at most %d allowed", len(r.EquippedSpells), progress.SlotCount))
	}
	for item, n := range r.Inventory {
		if n < 0 {
			el.Add(fmt.Errorf("inventory %q has negative count %d", item, n))
		}
	}
	if r.MaxHealth < 1 {
		el.Add(fmt.Errorf("max_health must be positive"))
	}

	return el.Err()
}
