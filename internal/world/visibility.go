package world

import (
	"fmt"

	"github.com/pixil98/go-questkeep/internal/progress"
)

// Threshold names that test ledger facts other than the quest state.
const (
	ThresholdHasClass         = "has_class"
	ThresholdEastPathRevealed = "east_path_revealed"
	MysteriousCaveID          = "mysterious_cave"
	NPCKindMerchant           = "merchant"
)

type visibilityRule int

const (
	ruleAlways visibilityRule = iota
	ruleQuestExact
	ruleQuestMinimum
	ruleHasClass
	ruleEastPath
)

// Visibility is a parsed quest predicate. The zero value is always visible.
type Visibility struct {
	rule  visibilityRule
	quest progress.QuestState
}

// ParseVisibility builds a predicate from an entity's quest_required and
// quest_minimum fields. quest_required takes precedence.
func ParseVisibility(required, minimum string) (Visibility, error) {
	if required != "" {
		if required == ThresholdEastPathRevealed {
			return Visibility{rule: ruleEastPath}, nil
		}
		q := progress.QuestState(required)
		if !q.Valid() {
			return Visibility{}, fmt.Errorf("unknown quest_required %q", required)
		}
		return Visibility{rule: ruleQuestExact, quest: q}, nil
	}

	switch minimum {
	case "":
		return Visibility{}, nil
	case ThresholdHasClass:
		return Visibility{rule: ruleHasClass}, nil
	case ThresholdEastPathRevealed:
		return Visibility{rule: ruleEastPath}, nil
	}

	q := progress.QuestState(minimum)
	if !q.Valid() {
		return Visibility{}, fmt.Errorf("unknown quest_minimum %q", minimum)
	}
	return Visibility{rule: ruleQuestMinimum, quest: q}, nil
}

// Visible evaluates the predicate against the ledger.
func (v Visibility) Visible(l *progress.Ledger) bool {
	switch v.rule {
	case ruleQuestExact:
		return l.QuestState() == v.quest
	case ruleQuestMinimum:
		return l.QuestState().AtLeast(v.quest)
	case ruleHasClass:
		return l.HasClass()
	case ruleEastPath:
		return l.IsEastPathRevealed()
	}
	return true
}

func interactableVisible(id string, v Visibility, l *progress.Ledger) bool {
	if id == MysteriousCaveID && l.IsMysteriousCaveHidden() {
		return false
	}
	return v.Visible(l)
}

// merchantIndoors reports whether the merchant has moved into the house.
func merchantIndoors(q progress.QuestState) bool {
	return q == progress.QuestInsideHouse || q == progress.QuestSwordCollected
}

func npcVisible(mapName string, n NPC, l *progress.Ledger) bool {
	if n.Kind != NPCKindMerchant {
		return true
	}
	switch mapName {
	case progress.MapOverworld:
		return !merchantIndoors(l.QuestState())
	case progress.MapHouseInterior:
		return merchantIndoors(l.QuestState())
	}
	return true
}
