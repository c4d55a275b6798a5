package world

import (
	"testing"

	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-testutil"
)

func TestVisibility_Visible(t *testing.T) {
	tests := map[string]struct {
		required string
		minimum  string
		setup    func(l *progress.Ledger)
		exp      bool
	}{
		"no predicate": {
			exp: true,
		},
		"required matches": {
			required: "has_key",
			setup:    func(l *progress.Ledger) { l.AddItem(progress.ItemKey) },
			exp:      true,
		},
		"required passed": {
			required: "has_key",
			setup:    func(l *progress.Ledger) { l.SetQuestState(progress.QuestFinal) },
			exp:      false,
		},
		"required flag": {
			required: "east_path_revealed",
			setup:    func(l *progress.Ledger) { l.RevealEastPath() },
			exp:      true,
		},
		"required flag unset": {
			required: "east_path_revealed",
			exp:      false,
		},
		"required wins over minimum": {
			required: "initial",
			minimum:  "final",
			exp:      true,
		},
		"minimum reached": {
			minimum: "cave_completed",
			setup:   func(l *progress.Ledger) { l.SetQuestState(progress.QuestFinal) },
			exp:     true,
		},
		"minimum not reached": {
			minimum: "cave_completed",
			setup:   func(l *progress.Ledger) { l.SetQuestState(progress.QuestSwordCollected) },
			exp:     false,
		},
		"has class": {
			minimum: "has_class",
			setup:   func(l *progress.Ledger) { l.ChooseClass("mage", "water") },
			exp:     true,
		},
		"no class": {
			minimum: "has_class",
			setup:   func(l *progress.Ledger) { l.SetQuestState(progress.QuestFinal) },
			exp:     false,
		},
		"minimum flag": {
			minimum: "east_path_revealed",
			setup:   func(l *progress.Ledger) { l.RevealEastPath() },
			exp:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := progress.NewLedger("Hero")
			if tt.setup != nil {
				tt.setup(l)
			}

			v, err := ParseVisibility(tt.required, tt.minimum)
			testutil.AssertEqual(t, "err", err, nil)
			testutil.AssertEqual(t, "visible", v.Visible(l), tt.exp)
		})
	}
}

func TestParseVisibility_Unknown(t *testing.T) {
	_, err := ParseVisibility("", "level_99")
	testutil.AssertErrorContains(t, err, `unknown quest_minimum "level_99"`)

	_, err = ParseVisibility("nope", "")
	testutil.AssertErrorContains(t, err, `unknown quest_required "nope"`)
}
