package console

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-questkeep/internal/display"
)

type runFunc func(ctx context.Context, c *Console, cn *conn, args []string) (string, error)

type command struct {
	usage string
	help  string
	run   runFunc
}

var commands map[string]command

var aliases = map[string]string{
	"l":    "look",
	"i":    "inventory",
	"inv":  "inventory",
	"e":    "interact",
	"?":    "help",
	"exit": "quit",
}

func init() {
	commands = map[string]command{
		"look":      {usage: "look", help: "Describe what is around you.", run: runLook},
		"status":    {usage: "status", help: "Show your character.", run: runStatus},
		"inventory": {usage: "inventory", help: "List the items you carry.", run: runInventory},
		"spells":    {usage: "spells", help: "List learned spells and slots.", run: runSpells},
		"move":      {usage: "move <x> <y>", help: "Walk to a position.", run: runMove},
		"interact":  {usage: "interact", help: "Use the nearest object.", run: runInteract},
		"talk":      {usage: "talk", help: "Talk to whoever is nearby.", run: runTalk},
		"use":       {usage: "use <item>", help: "Use an item from your inventory.", run: runUse},
		"choose":    {usage: "choose", help: "Resume a pending class or strategy choice.", run: runChoose},
		"equip":     {usage: "equip <spell> <slot>", help: "Equip a learned spell in slot 1-5.", run: runEquip},
		"unequip":   {usage: "unequip <slot>", help: "Clear spell slot 1-5.", run: runUnequip},
		"cast":      {usage: "cast <slot>", help: "Cast the spell in slot 1-5.", run: runCast},
		"quick":     {usage: "quick <slot> [item]", help: "Bind an item to quick slot 1-5, or clear it.", run: runQuick},
		"save":      {usage: "save", help: "Save the game.", run: runSave},
		"load":      {usage: "load", help: "Load the saved game.", run: runLoad},
		"help":      {usage: "help", help: "List commands.", run: runHelp},
		"quit":      {usage: "quit", help: "Leave the game.", run: runQuit},
	}
}

const lookTemplate = `{{ titleize .Map }} ({{ printf "%.0f" .Position.X }}, {{ printf "%.0f" .Position.Y }})
{{- range .Interactables }}
  {{ titleize (toString .Kind) }} [{{ .ID }}] at ({{ printf "%.0f" .Position.X }}, {{ printf "%.0f" .Position.Y }}) {{ .Phase }}
{{- end }}
{{- range .Overlay }}
  A shimmer marks the {{ titleize (toString .Kind) }}.
{{- end }}
{{- range .NPCs }}
  {{ titleize .Kind }} [{{ .ID }}] at ({{ printf "%.0f" .Position.X }}, {{ printf "%.0f" .Position.Y }})
{{- end }}
{{- range .Enemies }}
  {{ titleize .Kind }} [{{ .ID }}] lurks at ({{ printf "%.0f" .Position.X }}, {{ printf "%.0f" .Position.Y }})
{{- end }}
{{- if .Obstructions }}
  Rubble blocks {{ len .Obstructions }} tile{{ if ne (len .Obstructions) 1 }}s{{ end }}.
{{- end }}`

const statusTemplate = `{{ .Player }}{{ if .Class }} the {{ titleize .Class }} ({{ titleize .Element }}){{ end }}
Health: {{ .Health }}/{{ .MaxHealth }}  Mana: {{ .Mana }}/{{ .MaxMana }}
{{- if .Strategy }}
Healing: {{ titleize .Strategy }}
{{- end }}
Quest: {{ titleize (toString .Quest) }}
Location: {{ titleize .Map }}
Play time: {{ printf "%.0f" .PlayTime }}s
{{- if .Levels }}
Completed: {{ join ", " .Levels }}
{{- end }}`

const spellsTemplate = `{{- if not .Spells }}You know no spells.{{ else }}
{{- range .Spells }}
{{ .Name }}: level {{ .Level }} ({{ .Experience }}/{{ .NextLevel }} xp)
{{- end }}{{ end }}
Equipped:{{ range $i, $s := .Equipped }} {{ add1 $i }}:{{ default "-" $s }}{{ end }}`

var (
	lookTmpl   = display.MustParse("look", lookTemplate)
	statusTmpl = display.MustParse("status", statusTemplate)
	spellsTmpl = display.MustParse("spells", spellsTemplate)
)

func runLook(_ context.Context, c *Console, _ *conn, _ []string) (string, error) {
	return display.Render(lookTmpl, c.session.Status())
}

func runStatus(_ context.Context, c *Console, _ *conn, _ []string) (string, error) {
	return display.Render(statusTmpl, c.session.Status())
}

func runSpells(_ context.Context, c *Console, _ *conn, _ []string) (string, error) {
	return display.Render(spellsTmpl, c.session.Status())
}

func runInventory(_ context.Context, c *Console, _ *conn, _ []string) (string, error) {
	st := c.session.Status()
	if len(st.Inventory) == 0 {
		return "You carry nothing.", nil
	}

	names := make([]string, 0, len(st.Inventory))
	for name := range st.Inventory {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString("You carry:")
	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %s x%d", name, st.Inventory[name])
	}

	sb.WriteString("\nQuick slots:")
	for i, item := range st.QuickSlots {
		if item == "" {
			item = "-"
		}
		fmt.Fprintf(&sb, " %d:%s", i+1, item)
	}
	return sb.String(), nil
}

func runMove(_ context.Context, c *Console, _ *conn, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: move <x> <y>", nil
	}
	x, errX := strconv.ParseFloat(args[0], 64)
	y, errY := strconv.ParseFloat(args[1], 64)
	if errX != nil || errY != nil {
		return "Coordinates must be numbers.", nil
	}

	c.session.Move(x, y)
	return fmt.Sprintf("You walk to (%.0f, %.0f).", x, y), nil
}

func runInteract(ctx context.Context, c *Console, cn *conn, _ []string) (string, error) {
	pos := c.session.Position()
	resp := c.session.Interact(ctx, pos.X, pos.Y)
	if resp.Selection == nil {
		return resp.Message, nil
	}

	if err := cn.println(resp.Message); err != nil {
		return "", err
	}
	return c.selection(ctx, cn, resp.Selection)
}

func runChoose(ctx context.Context, c *Console, cn *conn, _ []string) (string, error) {
	sel := c.session.PendingSelection()
	if sel == nil {
		return "There is nothing to choose.", nil
	}
	return c.selection(ctx, cn, sel)
}

func runTalk(ctx context.Context, c *Console, _ *conn, _ []string) (string, error) {
	return c.session.TalkTo(ctx).Message, nil
}

func runUse(ctx context.Context, c *Console, _ *conn, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: use <item>", nil
	}
	return c.session.UseItem(ctx, strings.Join(args, " ")).Message, nil
}

func runEquip(_ context.Context, c *Console, _ *conn, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: equip <spell> <slot>", nil
	}
	slot, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return "Slot must be a number from 1 to 5.", nil
	}
	return c.session.EquipSpell(strings.Join(args[:len(args)-1], " "), slot).Message, nil
}

func runUnequip(_ context.Context, c *Console, _ *conn, args []string) (string, error) {
	if len(args) != 1 {
		return "Usage: unequip <slot>", nil
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return "Slot must be a number from 1 to 5.", nil
	}
	return c.session.UnequipSpell(slot).Message, nil
}

func runCast(ctx context.Context, c *Console, _ *conn, args []string) (string, error) {
	if len(args) != 1 {
		return "Usage: cast <slot>", nil
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return "Slot must be a number from 1 to 5.", nil
	}
	return c.session.CastSpell(ctx, slot).Message, nil
}

func runQuick(_ context.Context, c *Console, _ *conn, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: quick <slot> [item]", nil
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return "Slot must be a number from 1 to 5.", nil
	}
	return c.session.SetQuickSlot(slot, strings.Join(args[1:], " ")).Message, nil
}

func runSave(ctx context.Context, c *Console, _ *conn, _ []string) (string, error) {
	return c.session.Save(ctx).Message, nil
}

func runLoad(ctx context.Context, c *Console, _ *conn, _ []string) (string, error) {
	return c.session.Load(ctx).Message, nil
}

func runHelp(_ context.Context, _ *Console, _ *conn, _ []string) (string, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString("Commands:")
	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %-22s %s", commands[name].usage, commands[name].help)
	}
	return sb.String(), nil
}

func runQuit(_ context.Context, _ *Console, _ *conn, _ []string) (string, error) {
	return "Farewell.", errQuit
}
