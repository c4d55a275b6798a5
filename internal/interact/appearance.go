package interact

import "github.com/pixil98/go-questkeep/internal/progress"

// Layer selects which draw pass an appearance belongs to.
type Layer int

const (
	LayerEntities Layer = iota
	LayerOverlay
)

// Appearance is what the presentation layer needs to draw an interactable.
type Appearance struct {
	ID           string         `json:"id"`
	Kind         Kind           `json:"kind"`
	Position     progress.Point `json:"position"`
	Phase        string         `json:"phase"`
	OpenProgress float64        `json:"open_progress"`
}

// Draw returns the appearance for the given pass. It reports false when the
// interactable has nothing to draw on that layer: spent scrolls draw
// nothing, and only portals and ancient paths have an overlay.
func (i *Interactable) Draw(layer Layer) (Appearance, bool) {
	if i.consumed {
		return Appearance{}, false
	}
	if layer == LayerOverlay && i.kind != KindPortal && i.kind != KindAncientPath {
		return Appearance{}, false
	}
	return Appearance{
		ID:           i.id,
		Kind:         i.kind,
		Position:     i.pos,
		Phase:        i.Phase().String(),
		OpenProgress: i.openProgress,
	}, true
}
