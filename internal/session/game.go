package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/anim"
	"github.com/boardsmith/boardsmith/internal/boarderr"
	"github.com/boardsmith/boardsmith/internal/broadcast"
	"github.com/boardsmith/boardsmith/internal/commandlog"
	"github.com/boardsmith/boardsmith/internal/element"
	"github.com/boardsmith/boardsmith/internal/engineid"
	"github.com/boardsmith/boardsmith/internal/flow"
	"github.com/boardsmith/boardsmith/internal/platform/otel"
	"github.com/boardsmith/boardsmith/internal/platform/requestctx"
	"github.com/boardsmith/boardsmith/internal/rng"
)

// Definition is a game author's registration: how to build the element
// tree, the action catalogue, and the flow root for one gameType. The same
// Definition drives fresh games, replay, and restart.
type Definition struct {
	GameType   string
	Setup      func(g *element.Game)
	Actions    []action.Action
	Flow       func() []flow.Node
	IsComplete func(ctx *flow.Context) bool
}

// Game is one live, in-progress instance: the element tree plus every
// engine facility wired together, with a single outstanding performAction
// at a time (spec §4.6, §5).
type Game struct {
	ID       string
	Def      Definition
	Seed     int64
	Configs  []element.PlayerConfig
	Settings element.Settings
	Lobby    *Lobby // the lobby this game started from, retained for restart/reconnect bookkeeping

	Element     *element.Game
	Flow        *flow.Runner
	Log         *commandlog.Log
	Anim        *anim.Buffer
	Broadcaster broadcast.Adapter
	executor    *action.Executor

	mu             sync.Mutex
	current        *flow.ActionStepChoice
	followUpQueue  []action.FollowUp
	sessionsBySeat seatSessions
}

// New constructs a fresh Game from def, seeding a new random source unless
// seed is explicitly supplied (a nil seed means "generate one").
func New(def Definition, configs []element.PlayerConfig, settings element.Settings, seed *int64) (*Game, error) {
	actualSeed, err := resolveSeed(seed)
	if err != nil {
		return nil, err
	}

	eg, err := element.New(len(configs), configs, settings)
	if err != nil {
		return nil, err
	}
	if def.Setup != nil {
		def.Setup(eg)
	}

	g := &Game{
		ID:       engineid.New(),
		Def:      def,
		Seed:     actualSeed,
		Configs:  configs,
		Settings: settings,
		Element:  eg,
		Log:      commandlog.New(),
		Anim:     anim.NewBuffer(),
		executor: action.NewExecutor(),
	}
	g.startFlow()
	return g, nil
}

func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	return rng.NewSeed()
}

func (g *Game) startFlow() {
	var root []flow.Node
	if g.Def.Flow != nil {
		root = g.Def.Flow()
	}
	g.Flow = flow.NewRunner(root, g.Def.IsComplete)
	g.current = g.Flow.Pump(&flow.Context{Game: g.Element})
}

// PerformAction is the single orchestration entry point described by spec
// §4.2 step 1/5/6 and §4.6: it checks turn/action allowance, delegates to
// the executor, and on success appends to the log, advances the flow,
// dequeues any follow-up, and fans the resulting views out over the
// broadcaster.
func (g *Game) PerformAction(ctx context.Context, seat int, actionName string, args map[string]any) (*action.Result, *boarderr.Error) {
	ctx, span := otel.StartSpan(ctx, "session.PerformAction")
	defer span.End()

	result, views, actionErr := g.performActionLocked(ctx, seat, actionName, args)
	if actionErr != nil {
		return nil, actionErr
	}

	// Views are sent after g.mu is released: a broadcaster whose Send
	// blocks on a slow transport must not stall every other player's
	// PerformAction/GetState call while holding the lock.
	g.sendViews(ctx, views)

	return result, nil
}

func (g *Game) performActionLocked(ctx context.Context, seat int, actionName string, args map[string]any) (*action.Result, []pendingView, *boarderr.Error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return nil, nil, boarderr.New(boarderr.GameNotFound, "game has finished")
	}
	if g.current.Player == nil || g.current.Player.Seat != seat {
		return nil, nil, boarderr.New(boarderr.NotYourTurn, "it is not your turn")
	}

	available := g.executor.AvailableActions(g.Def.Actions, g.current.Actions, g.current.Player, g.Element)
	if !contains(available, actionName) {
		return nil, nil, boarderr.New(boarderr.ActionUnavailable, "action is not currently offered")
	}

	def, ok := findAction(g.Def.Actions, actionName)
	if !ok {
		return nil, nil, boarderr.New(boarderr.ActionUnavailable, "action is not currently offered")
	}

	animBaseline := g.Anim.LastID()
	result, actionErr := g.executor.PerformAction(def, g.current.Player, g.Element, args, action.NewActionStateSnapshot())
	if actionErr != nil {
		return nil, nil, actionErr
	}

	if result.FollowUp != nil {
		g.followUpQueue = append(g.followUpQueue, *result.FollowUp)
	}

	g.advance()

	entry := commandlog.Entry{
		Player:                seat,
		ActionName:            actionName,
		Args:                  args,
		AnimationEvents:       toEntryAnimEvents(g.Anim.EventsAfter(animBaseline)),
		ResultingFlowPosition: flowPositionLabel(g.current),
	}
	if _, err := g.Log.Append(entry); err != nil {
		return nil, nil, boarderr.Wrap(boarderr.InternalError, "failed to append command log entry", err)
	}

	return result, g.pendingViewsLocked(), nil
}

// PerformActionAsCaller resolves the acting seat from the player id a
// host's transport layer attached to ctx (requestctx.WithPlayerID) via this
// game's retained lobby, rather than trusting a caller-supplied seat
// number. It fails closed with NotYourTurn if ctx carries no player id or
// the game kept no lobby, and with PlayerNotInLobby if the player id holds
// no seat.
func (g *Game) PerformActionAsCaller(ctx context.Context, actionName string, args map[string]any) (*action.Result, *boarderr.Error) {
	playerID := requestctx.PlayerIDFromContext(ctx)
	if playerID == "" {
		return nil, boarderr.New(boarderr.NotYourTurn, "no authenticated player for this request")
	}

	g.mu.Lock()
	if g.Lobby == nil {
		g.mu.Unlock()
		return nil, boarderr.New(boarderr.NotYourTurn, "no authenticated player for this request")
	}
	slot := g.Lobby.slotByPlayer(playerID)
	g.mu.Unlock()
	if slot == nil {
		return nil, boarderr.New(boarderr.PlayerNotInLobby, "caller holds no seat in this game")
	}
	return g.PerformAction(ctx, slot.Seat, actionName, args)
}

// UpdatePlayerOptions lets a claimed player update their own lobby options,
// then pushes the resulting LobbyInfo identically to every connected
// session via the broadcaster's shared Broadcast (not the per-seat redacted
// Send that sendViews uses for in-game state), since lobby configuration
// carries no seat-private information (spec §4.6 "LobbyInfo broadcast
// shape").
func (g *Game) UpdatePlayerOptions(ctx context.Context, playerID string, opts PlayerOptions) *boarderr.Error {
	g.mu.Lock()
	if g.Lobby == nil {
		g.mu.Unlock()
		return boarderr.New(boarderr.GameNotFound, "no lobby to update")
	}
	if err := g.Lobby.UpdatePlayerOptions(playerID, opts); err != nil {
		g.mu.Unlock()
		return err
	}
	info := g.Lobby.Snapshot()
	g.mu.Unlock()
	g.broadcastLobbyInfo(ctx, info)
	return nil
}

// UpdateSlotPlayerOptions is the host-privileged equivalent of
// UpdatePlayerOptions, addressed by seat so it also covers AI slots. The
// caller's context must carry requestctx.WithHostPrivileged; an
// authenticated player's own request context is never enough, regardless
// of which player id it carries.
func (g *Game) UpdateSlotPlayerOptions(ctx context.Context, seat int, opts PlayerOptions) *boarderr.Error {
	if !requestctx.IsHostPrivileged(ctx) {
		return boarderr.New(boarderr.HostPrivilegeRequired, "updating a slot by seat requires host privileges")
	}

	g.mu.Lock()
	if g.Lobby == nil {
		g.mu.Unlock()
		return boarderr.New(boarderr.GameNotFound, "no lobby to update")
	}
	if err := g.Lobby.UpdateSlotPlayerOptions(seat, opts); err != nil {
		g.mu.Unlock()
		return err
	}
	info := g.Lobby.Snapshot()
	g.mu.Unlock()
	g.broadcastLobbyInfo(ctx, info)
	return nil
}

// SetPlayerConnected updates playerID's connection flag and broadcasts the
// resulting LobbyInfo, so every watching session learns about a
// disconnect/reconnect without polling.
func (g *Game) SetPlayerConnected(ctx context.Context, playerID string, connected bool, onGraceExpired func(seat int)) *boarderr.Error {
	g.mu.Lock()
	if g.Lobby == nil {
		g.mu.Unlock()
		return boarderr.New(boarderr.GameNotFound, "no lobby to update")
	}
	if err := g.Lobby.SetPlayerConnected(playerID, connected, onGraceExpired); err != nil {
		g.mu.Unlock()
		return err
	}
	info := g.Lobby.Snapshot()
	g.mu.Unlock()
	g.broadcastLobbyInfo(ctx, info)
	return nil
}

// broadcastLobbyInfo fans a previously-snapshotted lobby info out to every
// connected session via the broadcaster's shared Broadcast. Must be called
// without g.mu held, for the same reason sendViews is: a blocked transport
// must not stall a caller still waiting on the lock.
func (g *Game) broadcastLobbyInfo(ctx context.Context, info Info) {
	if g.Broadcaster == nil {
		return
	}
	_ = g.Broadcaster.Broadcast(ctx, info)
}

// advance moves the flow cursor forward, honoring a queued follow-up ahead
// of the flow's natural cursor position (spec §9 "Follow-up actions").
func (g *Game) advance() {
	if len(g.followUpQueue) > 0 {
		fu := g.followUpQueue[0]
		g.followUpQueue = g.followUpQueue[1:]
		player := g.Element.PlayerBySeat(fu.Player)
		g.current = &flow.ActionStepChoice{Actions: []string{fu.ActionName}, Player: player}
		return
	}
	g.current = g.Flow.Advance(&flow.Context{Game: g.Element})
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

func toEntryAnimEvents(events []anim.Event) []commandlog.AnimationEventRef {
	if len(events) == 0 {
		return nil
	}
	out := make([]commandlog.AnimationEventRef, len(events))
	for i, e := range events {
		out[i] = commandlog.AnimationEventRef{ID: e.ID, Type: e.Type, Data: e.Data, Group: e.Group}
	}
	return out
}

// flowPositionLabel renders a diagnostic label for the entry's resulting
// flow position; it is not parsed back during replay, which re-derives the
// cursor by re-running the flow tree from scratch.
func flowPositionLabel(choice *flow.ActionStepChoice) string {
	if choice == nil {
		return "finished"
	}
	if choice.Player == nil {
		return strings.Join(choice.Actions, "|")
	}
	return fmt.Sprintf("seat=%d:%s", choice.Player.Seat, strings.Join(choice.Actions, "|"))
}

func findAction(actions []action.Action, name string) (action.Action, bool) {
	for _, a := range actions {
		if a.Name == name {
			return a, true
		}
	}
	return action.Action{}, false
}

// AcknowledgeAnimations advances seat's animation watermark (spec §4.5).
func (g *Game) AcknowledgeAnimations(seat, upToID int) {
	g.Anim.Acknowledge(seat, upToID)
}

// Restart builds a fresh Game from the same Definition and configs with a
// newly generated seed (spec §4.6 "restart()").
func (g *Game) Restart() (*Game, error) {
	return New(g.Def, g.Configs, g.Settings, nil)
}
