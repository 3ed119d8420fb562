package element

// View is the redacted, per-player projection of a GameElement subtree
// (spec §4.1, §4.8). Projection is pure: it never mutates the tree and is
// cheap enough to run on every broadcast.
type View struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	ClassName  string         `json:"className"`
	Player     *PlayerRef     `json:"player,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*View        `json:"children,omitempty"`
	ChildCount *int           `json:"childCount,omitempty"`
}

// PlayerRef is the redacted reference to an owning player (spec §9: avoid
// leaking the full Player object, including its back-reference to Game,
// into a serialized view).
type PlayerRef struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func refFor(p *Player) *PlayerRef {
	if p == nil {
		return nil
	}
	return &PlayerRef{Seat: p.Seat, Name: p.Name, Color: p.Color}
}

// ViewFor projects e's subtree for the given seat, collapsing any node
// invisible to seat into a bare childCount (spec §3 "Visibility policy").
func (e *GameElement) ViewFor(seat int) *View {
	v := &View{
		ID:         e.ID,
		Name:       e.Name,
		ClassName:  e.ClassName,
		Player:     refFor(e.Player),
		Attributes: decodeAttrs(e.attrsJSON),
	}
	if !e.visibleTo(seat) {
		count := len(e.Children)
		v.ChildCount = &count
		return v
	}
	for _, child := range e.Children {
		v.Children = append(v.Children, child.ViewFor(seat))
	}
	return v
}
