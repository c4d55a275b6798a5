package session

import (
	"context"
	"fmt"

	"github.com/pixil98/go-questkeep/internal/progress"
)

const (
	// SpellManaCost is the mana spent on every cast.
	SpellManaCost = 10
	// SpellCastExperience is the experience a spell earns per cast.
	SpellCastExperience = 25

	MsgCollapse = "You collapse."
)

// CastSpell casts the spell equipped in slot 1..5, spending mana and
// training the spell.
func (s *Session) CastSpell(ctx context.Context, slot int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 1 || slot > progress.SlotCount {
		return Response{Message: fmt.Sprintf("There is no slot %d.", slot)}
	}
	spell := s.ledger.EquippedSpells()[slot-1]
	if spell == "" {
		return Response{Message: fmt.Sprintf("No spell in slot %d.", slot)}
	}
	if !s.ledger.SpendMana(SpellManaCost) {
		return Response{Message: fmt.Sprintf("Not enough mana to cast %s.", spell)}
	}

	msg := fmt.Sprintf("You cast %s.", spell)
	mana, _ := s.ledger.Mana()
	s.publish(ctx, "spell_cast", msg, map[string]any{"spell": spell, "mana": mana})

	if s.ledger.GainSpellExperience(spell, SpellCastExperience) {
		level := s.ledger.SpellLevel(spell)
		msg += fmt.Sprintf(" %s rises to level %d!", spell, level)
		s.publish(ctx, "spell_leveled", "", map[string]any{"spell": spell, "level": level})
	}
	return Response{Message: msg}
}

// TakeDamage applies damage reported by the combat layer.
func (s *Session) TakeDamage(ctx context.Context, amount int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 || s.ledger.Health() == 0 {
		return Response{Message: MsgNothingHappens}
	}

	s.ledger.SetHealth(s.ledger.Health() - amount)
	health := s.ledger.Health()
	msg := fmt.Sprintf("You take %d damage. Health: %d/%d", amount, health, s.ledger.MaxHealth())
	s.publish(ctx, "player_damaged", msg, map[string]int{"amount": amount, "health": health})

	if health == 0 {
		s.publish(ctx, "player_defeated", MsgCollapse, nil)
		return Response{Message: msg + "\n" + MsgCollapse}
	}
	return Response{Message: msg}
}

// Heal restores health, never past the maximum.
func (s *Session) Heal(ctx context.Context, amount int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 || s.ledger.Health() == s.ledger.MaxHealth() {
		return Response{Message: MsgNothingHappens}
	}

	s.ledger.SetHealth(s.ledger.Health() + amount)
	msg := fmt.Sprintf("Health: %d/%d", s.ledger.Health(), s.ledger.MaxHealth())
	s.publish(ctx, "player_healed", msg, map[string]int{"health": s.ledger.Health()})
	return Response{Message: msg}
}

// RestoreMana refills mana, never past the maximum.
func (s *Session) RestoreMana(ctx context.Context, amount int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, max := s.ledger.Mana()
	if amount <= 0 || current == max {
		return Response{Message: MsgNothingHappens}
	}

	s.ledger.RestoreMana(amount)
	current, max = s.ledger.Mana()
	msg := fmt.Sprintf("Mana: %d/%d", current, max)
	s.publish(ctx, "mana_restored", msg, map[string]int{"mana": current})
	return Response{Message: msg}
}
