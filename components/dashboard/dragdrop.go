package dashboard

import (
	"math"
	"sync"
)

// DefaultActivationDistance is the pointer travel (in layout px) required
// before a press becomes a drag. Presses released inside the threshold are
// clicks and never move cards.
const DefaultActivationDistance = 8.0

// Point is a pointer position in layout coordinates.
type Point struct {
	X float64
	Y float64
}

// CardRect is the rendered bounding box of one card, supplied by the view
// layer in render order at drop time.
type CardRect struct {
	CardID string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r CardRect) contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// DropResult reports the outcome of a finished gesture.
type DropResult struct {
	// Moved is true when the gesture produced a MoveCard on the store.
	Moved bool
	// Layout is the snapshot after the gesture (unchanged when cancelled).
	Layout Layout
}

// Coordinator translates pointer and keyboard drag gestures into MoveCard
// calls. It holds at most one active gesture: a second drag start while one
// is in progress is ignored until the first ends.
type Coordinator struct {
	mu        sync.Mutex
	store     *Store
	threshold float64

	active     bool
	armed      bool
	keyboard   bool
	suppressed bool
	cardID     string
	origin     Point
}

// CoordinatorOption customizes coordinator construction.
type CoordinatorOption func(*Coordinator)

// WithActivationDistance overrides the drag activation threshold.
func WithActivationDistance(px float64) CoordinatorOption {
	return func(c *Coordinator) {
		if px > 0 {
			c.threshold = px
		}
	}
}

// NewCoordinator binds a coordinator to the layout store it drives.
func NewCoordinator(store *Store, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:     store,
		threshold: DefaultActivationDistance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PointerDown starts a pointer gesture on a card. Returns false when ignored:
// another gesture is active, edit mode is off, or the card is unknown.
func (c *Coordinator) PointerDown(cardID string, at Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return false
	}
	if !c.store.EditMode() {
		return false
	}
	if c.store.Snapshot().CardIndex(cardID) < 0 {
		return false
	}
	c.active = true
	c.armed = false
	c.keyboard = false
	c.suppressed = false
	c.cardID = cardID
	c.origin = at
	return true
}

// PointerMove arms the drag once the pointer travels past the activation
// threshold. No-op without an active pointer gesture.
func (c *Coordinator) PointerMove(at Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.keyboard || c.armed {
		return
	}
	if distance(c.origin, at) >= c.threshold {
		c.armed = true
	}
}

// PointerUp finishes the gesture. The drop position is resolved against the
// rendered card rects: releasing inside a card's box moves the dragged card
// to that card's position; releasing outside every box cancels the gesture
// and leaves the layout unchanged.
func (c *Coordinator) PointerUp(at Point, rects []CardRect) (DropResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.keyboard {
		return DropResult{Layout: c.store.Snapshot()}, nil
	}
	cardID, armed := c.cardID, c.armed
	c.reset()
	if !armed {
		return DropResult{Layout: c.store.Snapshot()}, nil
	}
	// Rects cover visible cards only, so the rect index is not a valid
	// position in the stored sequence. Resolve the hit card's stored index
	// instead; hidden cards ahead of it keep their slots.
	snapshot := c.store.Snapshot()
	target := -1
	for _, rect := range rects {
		if rect.contains(at) {
			target = snapshot.CardIndex(rect.CardID)
			break
		}
	}
	if target < 0 {
		return DropResult{Layout: snapshot}, nil
	}
	layout, err := c.store.MoveCard(cardID, target)
	if err != nil {
		return DropResult{Layout: layout}, err
	}
	return DropResult{Moved: true, Layout: layout}, nil
}

// Cancel aborts the active gesture without touching the layout.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// KeyboardStart begins a keyboard gesture on a card. Keyboard drags are
// disabled while focus is inside a text-editable control so card shortcuts
// never hijack text-editing keystrokes.
func (c *Coordinator) KeyboardStart(cardID string, focusInEditable bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active || focusInEditable {
		return false
	}
	if !c.store.EditMode() {
		return false
	}
	if c.store.Snapshot().CardIndex(cardID) < 0 {
		return false
	}
	c.active = true
	c.armed = true
	c.keyboard = true
	c.suppressed = false
	c.cardID = cardID
	return true
}

// FocusChanged tells the coordinator the focused element changed mid-gesture.
// Once an editable element has taken focus, keyboard moves stay suppressed
// for the remainder of the interaction even if focus moves away again.
func (c *Coordinator) FocusChanged(editable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active && c.keyboard && editable {
		c.suppressed = true
	}
}

// KeyboardMove shifts the dragged card by delta visible positions (negative
// = toward the front), clamped at the ends of the visible sequence. Hidden
// cards never absorb a step: one keypress always advances past one visible
// neighbor.
func (c *Coordinator) KeyboardMove(delta int) (DropResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || !c.keyboard || c.suppressed {
		return DropResult{Layout: c.store.Snapshot()}, nil
	}
	snapshot := c.store.Snapshot()
	from := snapshot.CardIndex(c.cardID)
	if from < 0 {
		c.reset()
		return DropResult{Layout: snapshot}, nil
	}
	layout, err := c.store.MoveCard(c.cardID, keyboardTarget(snapshot, c.cardID, from, delta))
	if err != nil {
		return DropResult{Layout: layout}, err
	}
	return DropResult{Moved: true, Layout: layout}, nil
}

// keyboardTarget maps a step over the visible sequence back to an index in
// the stored sequence.
func keyboardTarget(snapshot Layout, cardID string, from, delta int) int {
	visible := snapshot.VisibleCards()
	vFrom := -1
	for i, card := range visible {
		if card.ID == cardID {
			vFrom = i
			break
		}
	}
	if vFrom < 0 {
		// Dragged card is not in the render set; fall back to the stored
		// sequence.
		return from + delta
	}
	vTarget := clampIndex(vFrom+delta, len(visible))
	return snapshot.CardIndex(visible[vTarget].ID)
}

// KeyboardEnd finishes the keyboard gesture.
func (c *Coordinator) KeyboardEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keyboard {
		c.reset()
	}
}

// Active reports whether a gesture is in progress.
func (c *Coordinator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Coordinator) reset() {
	c.active = false
	c.armed = false
	c.keyboard = false
	c.suppressed = false
	c.cardID = ""
	c.origin = Point{}
}

func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
