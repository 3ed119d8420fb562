package element

import (
	"github.com/boardsmith/boardsmith/internal/rng"
	"github.com/boardsmith/boardsmith/internal/services/game/core/check"
	"github.com/boardsmith/boardsmith/internal/services/game/core/dice"
)

// Space is a container element: it holds children and is never itself
// movable (spec §3).
type Space struct{ *GameElement }

// NewSpace creates a Space as a child of parent.
func NewSpace(parent *GameElement, name string) Space {
	e := parent.Create("Space", name, nil)
	return Space{e}
}

// Piece is a leaf, movable element.
type Piece struct{ *GameElement }

// NewPiece creates a Piece as a child of parent.
func NewPiece(parent *GameElement, name string) Piece {
	e := parent.Create("Piece", name, nil)
	e.Movable = true
	return Piece{e}
}

// Card is a Piece with rank, suit, and face orientation, stored as
// attributes so the tree stays serializable without per-subtype schemas.
type Card struct{ *GameElement }

// NewCard creates a Card as a child of parent.
func NewCard(parent *GameElement, name, rank, suit string) Card {
	e := parent.Create("Card", name, map[string]any{
		"rank":    rank,
		"suit":    suit,
		"faceUp":  false,
		"movable": true,
	})
	e.Movable = true
	return Card{e}
}

// Rank returns the card's rank attribute.
func (c Card) Rank() string { return c.Attr("rank").String() }

// Suit returns the card's suit attribute.
func (c Card) Suit() string { return c.Attr("suit").String() }

// FaceUp returns whether the card is face up.
func (c Card) FaceUp() bool { return c.Attr("faceUp").Bool() }

// Flip toggles the card's face orientation.
func (c Card) Flip() { c.SetAttr("faceUp", !c.FaceUp()) }

// Deck is an ordered Space intended to hold Cards; ordering is meaningful
// (the top of the deck is Children[0]).
type Deck struct{ *GameElement }

// NewDeck creates a Deck as a child of parent.
func NewDeck(parent *GameElement, name string) Deck {
	e := parent.Create("Deck", name, nil)
	e.Ordered = true
	return Deck{e}
}

// Hand is an ordered Space conventionally owned by a single player and
// defaulting to ContentsVisibleToOwner.
type Hand struct{ *GameElement }

// NewHand creates a Hand as a child of parent, owned by owner.
func NewHand(parent *GameElement, name string, owner *Player) Hand {
	e := parent.Create("Hand", name, nil)
	e.Ordered = true
	e.Player = owner
	e.Visibility = ContentsVisibleToOwner
	return Hand{e}
}

// Grid is a Space whose children are addressed by (row, col) attributes on
// each cell, rather than by a distinguished Go type per cell.
type Grid struct {
	*GameElement
	Rows, Cols int
}

// NewGrid creates a Grid with rows*cols Space cells as children of parent.
func NewGrid(parent *GameElement, name string, rows, cols int) Grid {
	e := parent.Create("Grid", name, map[string]any{"rows": rows, "cols": cols})
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			e.Create("Space", cellName(r, c), map[string]any{"row": r, "col": c})
		}
	}
	return Grid{GameElement: e, Rows: rows, Cols: cols}
}

// CellAt returns the cell at (row, col), or nil if out of range.
func (g Grid) CellAt(row, col int) *GameElement {
	return g.First("Space", AttrEquals("row", row), AttrEquals("col", col))
}

func cellName(row, col int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string(letters[col%26]) + itoa(row+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// HexGrid is a Space whose children are HexCells addressed by axial (q, r)
// coordinates.
type HexGrid struct{ *GameElement }

// NewHexGrid creates a HexGrid as a child of parent, pre-populated with
// HexCells for every axial coordinate within radius of the origin.
func NewHexGrid(parent *GameElement, name string, radius int) HexGrid {
	e := parent.Create("HexGrid", name, map[string]any{"radius": radius})
	for q := -radius; q <= radius; q++ {
		r1, r2 := max(-radius, -q-radius), min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			e.Create("HexCell", hexName(q, r), map[string]any{"q": q, "r": r})
		}
	}
	return HexGrid{e}
}

func hexName(q, r int) string { return itoa(q) + "," + itoa(r) }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// HexCell is a single addressable cell of a HexGrid.
type HexCell struct{ *GameElement }

// CellAt returns the HexCell at axial coordinate (q, r), or nil.
func (h HexGrid) CellAt(q, r int) *GameElement {
	return h.First("HexCell", AttrEquals("q", q), AttrEquals("r", r))
}

// DicePool is a specialised Space holding rolled-die results as attributes
// on child Piece elements, letting `condition` predicates and `disabled`
// callbacks query results the same way they query any other element.
type DicePool struct{ *GameElement }

// NewDicePool creates a DicePool as a child of parent.
func NewDicePool(parent *GameElement, name string) DicePool {
	e := parent.Create("DicePool", name, nil)
	return DicePool{e}
}

// Results returns the face values of every die currently in the pool, in
// roll order.
func (d DicePool) Results() []int {
	out := make([]int, 0, len(d.Children))
	for _, child := range d.Children {
		out = append(out, int(child.Attr("value").Int()))
	}
	return out
}

// Roll clears the pool and refills it with count dN dice, recording each
// die as a child Piece with "sides" and "value" attributes (spec §4.1
// element subtype catalogue; determinism per spec §5). req's seed
// preference is resolved through rng.Resolve: a client-supplied seed is
// only honored in rng.RollModeRehearsal, so a UI can preview "what if I
// rolled X" without letting a live roll be steered by the caller.
func (d DicePool) Roll(sides, count int, req rng.Request) ([]int, error) {
	seed, _, _, err := rng.Resolve(req, rng.NewSeed, func(mode rng.RollMode) bool {
		return mode == rng.RollModeRehearsal
	})
	if err != nil {
		return nil, err
	}

	result, err := dice.RollDice(dice.Request{Dice: []dice.Spec{{Sides: sides, Count: count}}, Seed: seed})
	if err != nil {
		return nil, err
	}
	d.Children = nil
	values := result.Rolls[0].Results
	for i, v := range values {
		die := d.Create("Piece", diceName(i), map[string]any{"sides": sides, "value": v})
		die.Movable = false
		_ = die
	}
	return values, nil
}

// CheckAgainst sums the pool's current results and compares the total
// against difficulty, for the common "roll and beat a target number"
// resolution used by condition predicates and Execute functions alike. It
// also reports a critical when every die in the pool landed on its highest
// face. It fails with check.ErrNoResults if the pool has never been rolled.
func (d DicePool) CheckAgainst(difficulty int) (check.Result, error) {
	return check.CheckResults(d.Results(), d.sides(), difficulty)
}

// sides returns the face count shared by every die in the pool, or 0 if
// the pool holds no dice yet.
func (d DicePool) sides() int {
	if len(d.Children) == 0 {
		return 0
	}
	return int(d.Children[0].Attr("sides").Int())
}

func diceName(i int) string { return "die-" + itoa(i+1) }
