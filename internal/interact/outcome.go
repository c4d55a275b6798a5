package interact

// Messages returned by interactions.
const (
	MsgAlreadyLooted   = "This chest has already been looted."
	MsgEmptyChest      = "The chest is empty."
	MsgDoorLocked      = "The door is locked."
	MsgScrollFaded     = "The scroll's magic has faded."
	MsgClassChosen     = "You have already chosen your class."
	MsgStrategyChosen  = "You have already chosen a healing strategy."
	foundMessageFormat = "Found: %s"
	learnedFormat      = "Learned: %s"
)

// Outcome is the result of one interaction. Both fields may be empty.
type Outcome struct {
	Message string
	Event   Event
}

// Event is a structured result the caller acts on.
type Event interface {
	EventName() string
}

type SpellLearned struct {
	Spell string `json:"spell"`
}

type TriggerSkeletons struct {
	ChestID string `json:"chest_id"`
}

type FadeTransition struct {
	Destination Destination `json:"destination"`
}

type ClassSelection struct {
	SourceID string   `json:"source_id"`
	Options  []string `json:"options"`
}

type StrategySelection struct {
	SourceID string   `json:"source_id"`
	Options  []string `json:"options"`
}

func (SpellLearned) EventName() string      { return "spell_learned" }
func (TriggerSkeletons) EventName() string  { return "trigger_skeletons" }
func (FadeTransition) EventName() string    { return "fade_transition" }
func (ClassSelection) EventName() string    { return "class_icon_interact" }
func (StrategySelection) EventName() string { return "strategy_icon_interact" }
