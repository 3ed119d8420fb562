package element

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// GameElement is a generic node in the element tree. Concrete subtypes
// (Space, Piece, Card, ...) are thin wrappers that set ClassName and store
// their typed fields in Attributes, since the tree must stay serializable
// and polymorphic over class identity rather than Go type identity (spec
// §9: "avoid relying on class identity across serialization boundaries").
type GameElement struct {
	ID         int
	Name       string
	ClassName  string
	attrsJSON  string // free-form attribute bag, backed by gjson/sjson
	Children   []*GameElement
	Parent     *GameElement // non-owning back pointer, nil for the Game root
	Player     *Player      // owner, nil if unowned
	Game       *Game        // non-owning back pointer to the root

	Visibility     Visibility
	VisibleToSeats []int // used only when Visibility == ContentsVisibleTo

	// Movable and Ordered describe the capability set a subtype carries
	// (spec §3: "polymorphic over the capability set"). Ordered spaces
	// preserve Children order as meaningful (e.g. a deck); unordered ones
	// do not guarantee it survives a shuffle-free read.
	Movable bool
	Ordered bool
}

// newElement allocates a bare element attached to no tree; callers must set
// Game and append it to a parent's Children (or assign it as the root).
func newElement(game *Game, class, name string) *GameElement {
	return &GameElement{
		ID:        game.nextID(),
		Name:      name,
		ClassName: class,
		Game:      game,
		attrsJSON: "{}",
	}
}

// Create builds a new element of the given class as a child of e and returns
// it. This is the element tree's sole constructor entry point (spec §4.1).
func (e *GameElement) Create(class, name string, attrs map[string]any) *GameElement {
	child := newElement(e.Game, class, name)
	for k, v := range attrs {
		child.SetAttr(k, v)
	}
	e.appendChild(child)
	return child
}

func (e *GameElement) appendChild(child *GameElement) {
	child.Parent = e
	child.Game = e.Game
	e.Children = append(e.Children, child)
}

// PutInto detaches e from its current parent and appends it to newParent.
// This is the tree's sole movement primitive (spec §3, §4.1); it never
// mutates in place, it reparents.
func (e *GameElement) PutInto(newParent *GameElement) {
	if e.Parent != nil {
		siblings := e.Parent.Children
		for i, sib := range siblings {
			if sib == e {
				e.Parent.Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	newParent.appendChild(e)
}

// Attr returns the attribute stored under key, or the zero gjson.Result if
// unset.
func (e *GameElement) Attr(key string) gjson.Result {
	return gjson.Get(e.attrsJSON, key)
}

// SetAttr sets an attribute on the element's free-form attribute bag.
func (e *GameElement) SetAttr(key string, value any) {
	updated, err := sjson.Set(e.attrsJSON, key, value)
	if err != nil {
		panic(fmt.Sprintf("element: set attribute %q: %v", key, err))
	}
	e.attrsJSON = updated
}

// AttrsJSON returns the element's raw attribute bag as JSON, for snapshotting.
func (e *GameElement) AttrsJSON() string {
	return e.attrsJSON
}

// SetAttrsJSON replaces the element's attribute bag wholesale, used when
// restoring an element from a persisted snapshot.
func (e *GameElement) SetAttrsJSON(raw string) {
	if raw == "" {
		raw = "{}"
	}
	e.attrsJSON = raw
}

// ChildCount returns len(Children); exposed separately from Children so a
// redacted view can report it without exposing identities.
func (e *GameElement) ChildCount() int {
	return len(e.Children)
}
