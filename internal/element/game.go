package element

import "fmt"

// DefaultColorPalette is the fallback set of seat colors used when a game's
// settings do not declare their own (spec §4.1).
var DefaultColorPalette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f1c40f",
	"#9b59b6", "#1abc9c", "#e67e22", "#34495e",
}

// Settings holds the game-wide configuration captured at construction.
type Settings struct {
	Colors                []string
	ColorSelectionEnabled bool
	Options               map[string]any
}

// PlayerConfig is one seat's construction-time configuration.
type PlayerConfig struct {
	Name  string
	Color string // explicit color choice; empty means "assign from palette"
}

// Player is a node in the element tree for ownership purposes, with an
// immutable seat and a back-reference to the owning Game.
type Player struct {
	Seat    int // immutable, 1-indexed
	Name    string
	Color   string
	Game    *Game
	Current bool // true for exactly one player at a time

	LastSeenAnimationID int
}

// Game is the root of the element tree. It owns the player collection, game
// settings, and the monotonic id counter; the action catalogue, flow root,
// command log, and animation buffer are attached by the higher-level
// engine packages, which is why Game only stores the tree and identity
// concerns (spec §3 "Game").
type Game struct {
	GameElement

	Players  []*Player
	Settings Settings

	idCounter int
}

// New constructs a Game with playerCount seats, assigning names and colors
// from configs (spec §4.1 applyPlayerColors). seed selection and the action
// catalogue/flow wiring are the caller's responsibility (see the action and
// flow packages) — Game itself only owns the tree.
func New(playerCount int, configs []PlayerConfig, settings Settings) (*Game, error) {
	if playerCount <= 0 {
		return nil, fmt.Errorf("element: playerCount must be positive")
	}
	if len(settings.Colors) == 0 {
		settings.Colors = DefaultColorPalette
	}

	g := &Game{Settings: settings}
	g.GameElement = GameElement{
		ID:        0,
		Name:      "game",
		ClassName: "Game",
		Game:      g,
		attrsJSON: "{}",
	}

	for seat := 1; seat <= playerCount; seat++ {
		name := fmt.Sprintf("Player %d", seat)
		if seat-1 < len(configs) && configs[seat-1].Name != "" {
			name = configs[seat-1].Name
		}
		g.Players = append(g.Players, &Player{Seat: seat, Name: name, Game: g})
	}

	if err := g.applyPlayerColors(configs); err != nil {
		return nil, err
	}
	return g, nil
}

// applyPlayerColors assigns each seat a color: an explicit PlayerConfig
// color wins; otherwise the next unused palette color is assigned.
// Collisions among explicit colors fail fast (spec §4.1).
func (g *Game) applyPlayerColors(configs []PlayerConfig) error {
	taken := make(map[string]int) // color -> seat
	for seat, cfg := range configs {
		if cfg.Color == "" {
			continue
		}
		if existing, ok := taken[cfg.Color]; ok {
			return fmt.Errorf("element: color %q requested by seat %d already taken by seat %d", cfg.Color, seat+1, existing)
		}
		taken[cfg.Color] = seat + 1
	}
	for seat, cfg := range configs {
		if cfg.Color == "" {
			continue
		}
		g.Players[seat].Color = cfg.Color
	}

	paletteIdx := 0
	nextPaletteColor := func() (string, error) {
		for paletteIdx < len(g.Settings.Colors) {
			candidate := g.Settings.Colors[paletteIdx]
			paletteIdx++
			if _, used := taken[candidate]; !used {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("element: color palette exhausted for %d players", len(g.Players))
	}

	for _, p := range g.Players {
		if p.Color != "" {
			continue
		}
		color, err := nextPaletteColor()
		if err != nil {
			return err
		}
		p.Color = color
		taken[color] = p.Seat
	}
	return nil
}

// nextID returns the next monotonic, game-unique element id.
func (g *Game) nextID() int {
	g.idCounter++
	return g.idCounter
}

// CurrentPlayer returns the player currently marked Current, or nil if none.
func (g *Game) CurrentPlayer() *Player {
	for _, p := range g.Players {
		if p.Current {
			return p
		}
	}
	return nil
}

// SetCurrentPlayer marks seat as current and every other seat as not
// current, preserving the "exactly one player may be current" invariant
// (spec §3 invariant on Player).
func (g *Game) SetCurrentPlayer(seat int) {
	for _, p := range g.Players {
		p.Current = p.Seat == seat
	}
}

// PlayerBySeat looks up a player by seat, returning nil if out of range.
func (g *Game) PlayerBySeat(seat int) *Player {
	for _, p := range g.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}
