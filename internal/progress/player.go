package progress

// Player attributes. Selection results (class, element, healing strategy) are
// written once by the caller after the player confirms a choice.

func (l *Ledger) PlayerName() string {
	return l.playerName
}

func (l *Ledger) SetPlayerName(name string) {
	l.playerName = name
}

func (l *Ledger) PlayerClass() string {
	return l.playerClass
}

func (l *Ledger) PlayerElement() string {
	return l.playerElement
}

func (l *Ledger) HasClass() bool {
	return l.playerClass != ""
}

// ChooseClass sets the player's class and element. It fails if a class was
// already chosen or class is empty.
func (l *Ledger) ChooseClass(class, element string) bool {
	if l.HasClass() || class == "" {
		return false
	}
	l.playerClass = class
	l.playerElement = element
	return true
}

func (l *Ledger) HealingStrategy() string {
	return l.healingStrategy
}

func (l *Ledger) HasStrategy() bool {
	return l.healingStrategy != ""
}

// ChooseStrategy sets the healing strategy once.
func (l *Ledger) ChooseStrategy(strategy string) bool {
	if l.HasStrategy() || strategy == "" {
		return false
	}
	l.healingStrategy = strategy
	return true
}

func (l *Ledger) Health() int {
	return l.health
}

func (l *Ledger) MaxHealth() int {
	return l.maxHealth
}

// SetHealth clamps h to [0, max health].
func (l *Ledger) SetHealth(h int) {
	l.health = clamp(h, 0, l.maxHealth)
}

func (l *Ledger) Mana() (current, max int) {
	return l.currentMana, l.maxMana
}

// SpendMana deducts n mana. It fails without effect when mana is short.
func (l *Ledger) SpendMana(n int) bool {
	if n < 0 || l.currentMana < n {
		return false
	}
	l.currentMana -= n
	return true
}

func (l *Ledger) RestoreMana(n int) {
	if n <= 0 {
		return
	}
	l.currentMana = clamp(l.currentMana+n, 0, l.maxMana)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
