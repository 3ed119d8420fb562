package element

// Snapshot is a deep, structural copy of a subtree's mutable state —
// attributes, ownership, visibility, and shape — independent of the live
// *GameElement pointers. It exists so a caller can restore a tree to this
// exact shape after a mutation it wants to undo (spec §5 "performAction is
// treated as atomic"; spec §9 "implementations should snapshot-and-restore
// the tree around execute if partial mutation is possible").
type Snapshot struct {
	root *elementState
}

type elementState struct {
	id             int
	name           string
	className      string
	attrsJSON      string
	seat           int // 0 means unowned
	visibility     Visibility
	visibleToSeats []int
	movable        bool
	ordered        bool
	children       []*elementState
}

// Snapshot deep-copies e's subtree.
func (e *GameElement) Snapshot() *Snapshot {
	return &Snapshot{root: captureState(e)}
}

func captureState(e *GameElement) *elementState {
	s := &elementState{
		id:         e.ID,
		name:       e.Name,
		className:  e.ClassName,
		attrsJSON:  e.attrsJSON,
		visibility: e.Visibility,
		movable:    e.Movable,
		ordered:    e.Ordered,
	}
	if e.Player != nil {
		s.seat = e.Player.Seat
	}
	if e.VisibleToSeats != nil {
		s.visibleToSeats = append([]int(nil), e.VisibleToSeats...)
	}
	for _, child := range e.Children {
		s.children = append(s.children, captureState(child))
	}
	return s
}

// Restore replaces e's subtree with the state captured in snap. e itself
// keeps its identity (same pointer, same Parent/Game), but its attributes
// and every descendant are rebuilt from the snapshot, with the ids they had
// when it was captured.
func (e *GameElement) Restore(snap *Snapshot) {
	applyState(e, snap.root)
}

func applyState(e *GameElement, s *elementState) {
	e.ID = s.id
	e.Name = s.name
	e.ClassName = s.className
	e.attrsJSON = s.attrsJSON
	e.Visibility = s.visibility
	e.VisibleToSeats = append([]int(nil), s.visibleToSeats...)
	e.Movable = s.movable
	e.Ordered = s.ordered
	if s.seat == 0 {
		e.Player = nil
	} else {
		e.Player = e.Game.PlayerBySeat(s.seat)
	}
	e.Children = make([]*GameElement, len(s.children))
	for i, cs := range s.children {
		child := &GameElement{Parent: e, Game: e.Game}
		applyState(child, cs)
		e.Children[i] = child
	}
}

// GameSnapshot captures a Game's tree and id counter together. Restoring
// the counter makes id assignment continue as if the undone mutation never
// ran: an id given to an element that was rolled back is handed out again
// by the next Create, so a replay that skips failed actions assigns the
// same ids as the live game.
type GameSnapshot struct {
	tree      *Snapshot
	idCounter int
}

// SnapshotState captures g's full mutable state.
func (g *Game) SnapshotState() *GameSnapshot {
	return &GameSnapshot{tree: g.GameElement.Snapshot(), idCounter: g.idCounter}
}

// RestoreState replaces g's tree and id counter with what snap captured.
func (g *Game) RestoreState(snap *GameSnapshot) {
	g.GameElement.Restore(snap.tree)
	g.idCounter = snap.idCounter
}
