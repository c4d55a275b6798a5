package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/storage"
)

// ErrUnknownMap is returned when a map name has no definition.
var ErrUnknownMap = errors.New("unknown map")

// Registry owns every map and tracks which one is loaded. It holds no lock;
// the owning session serializes access together with the ledger.
type Registry struct {
	maps    map[string]*Map
	current *Map
}

// NewRegistry builds every map from the store and checks that each
// transition names a known map.
func NewRegistry(defs storage.Storer[*MapDef]) (*Registry, error) {
	r := &Registry{maps: make(map[string]*Map)}

	all := defs.GetAll()
	for id, def := range all {
		m, err := newMap(string(id), def)
		if err != nil {
			return nil, fmt.Errorf("building map %s: %w", id, err)
		}
		r.maps[string(id)] = m
	}

	for name, m := range r.maps {
		for _, p := range m.interactables {
			dest, ok := destinationOf(p.obj.Payload())
			if !ok {
				continue
			}
			if _, exists := r.maps[dest.Map]; !exists {
				return nil, fmt.Errorf("map %s: interactable %s: %w %q", name, p.obj.ID(), ErrUnknownMap, dest.Map)
			}
		}
	}

	return r, nil
}

func destinationOf(p interact.Payload) (interact.Destination, bool) {
	switch v := p.(type) {
	case interact.Door:
		return v.Destination, true
	case interact.Passage:
		return v.Destination, true
	}
	return interact.Destination{}, false
}

// MapNames returns the names of every map, sorted.
func (r *Registry) MapNames() []string {
	names := make([]string, 0, len(r.maps))
	for n := range r.maps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a map named name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.maps[name]
	return ok
}

// Current returns the loaded map, or nil before the first load.
func (r *Registry) Current() *Map {
	return r.current
}

// LoadMap makes name the active map, applies its gates for the ledger and
// resyncs its interactables. It does not touch the ledger's location.
func (r *Registry) LoadMap(name string, l *progress.Ledger) error {
	m, ok := r.maps[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownMap, name)
	}

	m.applyGates(l)
	m.sync(l)
	r.current = m

	slog.Debug("map loaded", "map", name, "obstructions", len(m.obstructions))
	return nil
}

// Travel moves the player to dest: the ledger records the new location and
// the target map is loaded.
func (r *Registry) Travel(dest interact.Destination, l *progress.Ledger) error {
	if _, ok := r.maps[dest.Map]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownMap, dest.Map)
	}
	l.ChangeMap(dest.Map, dest.Spawn)
	return r.LoadMap(dest.Map, l)
}

// Update steps every interactable on the active map. A door whose timer
// elapses moves the player; the remaining interactables of the old map are
// not stepped in that frame.
func (r *Registry) Update(dt float64, l *progress.Ledger) (interact.Destination, bool, error) {
	if r.current == nil {
		return interact.Destination{}, false, nil
	}

	for _, p := range r.current.interactables {
		dest, fired := p.obj.Update(dt)
		if !fired {
			continue
		}
		if err := r.Travel(dest, l); err != nil {
			return interact.Destination{}, false, err
		}
		return dest, true, nil
	}
	return interact.Destination{}, false, nil
}

// TransitionPending reports whether a door on the active map is counting down
// to move the player.
func (r *Registry) TransitionPending() bool {
	if r.current == nil {
		return false
	}
	for _, p := range r.current.interactables {
		if p.obj.PendingTransition() {
			return true
		}
	}
	return false
}

// Interactables returns the visible interactables of the active map.
func (r *Registry) Interactables(l *progress.Ledger) []*interact.Interactable {
	if r.current == nil {
		return nil
	}

	var out []*interact.Interactable
	for _, p := range r.current.interactables {
		if interactableVisible(p.obj.ID(), p.visibility, l) {
			out = append(out, p.obj)
		}
	}
	return out
}

// NPCs returns the visible NPCs of the active map.
func (r *Registry) NPCs(l *progress.Ledger) []NPC {
	if r.current == nil {
		return nil
	}

	var out []NPC
	for _, n := range r.current.npcs {
		if npcVisible(r.current.name, n, l) {
			out = append(out, n)
		}
	}
	return out
}

// Enemies returns the enemies of the active map that are still alive.
func (r *Registry) Enemies(l *progress.Ledger) []Enemy {
	if r.current == nil {
		return nil
	}

	var out []Enemy
	for _, e := range r.current.enemies {
		if !l.IsEnemyKilled(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// Nearest returns the closest visible interactable within radius of (x, y).
func (r *Registry) Nearest(x, y, radius float64, l *progress.Ledger) *interact.Interactable {
	var best *interact.Interactable
	bestDist := math.Inf(1)
	for _, obj := range r.Interactables(l) {
		if !obj.IsPlayerNear(x, y, radius) {
			continue
		}
		if d := obj.Distance(x, y); d < bestDist {
			best, bestDist = obj, d
		}
	}
	return best
}

// TalkTo returns the dialogue of the closest visible NPC within radius.
func (r *Registry) TalkTo(x, y, radius float64, l *progress.Ledger) (NPC, bool) {
	if radius <= 0 {
		radius = interact.DefaultInteractRadius
	}

	var best NPC
	found := false
	bestDist := math.Inf(1)
	for _, n := range r.NPCs(l) {
		d := math.Hypot(n.Position.X-x, n.Position.Y-y)
		if d <= radius && d < bestDist {
			best, bestDist, found = n, d, true
		}
	}
	return best, found
}

// IsSolid reports whether a tile of the active map blocks movement.
func (r *Registry) IsSolid(tx, ty int) bool {
	if r.current == nil {
		return true
	}
	return r.current.IsSolid(tx, ty)
}

// Obstructions returns the drawn gate tiles of the active map.
func (r *Registry) Obstructions() []Obstruction {
	if r.current == nil {
		return nil
	}
	return r.current.Obstructions()
}
