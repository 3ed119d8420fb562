package session

import (
	"context"

	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/anim"
	"github.com/boardsmith/boardsmith/internal/element"
)

// StateView is one player's redacted projection of the live game (spec
// §4.8). Redaction happens here, never inside an action's execute.
type StateView struct {
	Elements               *element.View
	CurrentPlayer          *element.PlayerRef
	AvailableActions       []string
	PendingAnimationEvents []anim.Event
	Lobby                  *Info
	PendingFollowUp        *action.FollowUp
}

// GetState produces seat's current view (spec §4.8). AvailableActions is
// recomputed every call, never cached across mutations.
func (g *Game) GetState(seat int) StateView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked(seat)
}

func (g *Game) viewLocked(seat int) StateView {
	v := StateView{
		Elements:               g.Element.ViewFor(seat),
		PendingAnimationEvents: g.Anim.Pending(seat),
	}
	if cp := g.Element.CurrentPlayer(); cp != nil {
		v.CurrentPlayer = &element.PlayerRef{Seat: cp.Seat, Name: cp.Name, Color: cp.Color}
	}
	if g.current != nil && g.current.Player != nil && g.current.Player.Seat == seat {
		v.AvailableActions = g.executor.AvailableActions(g.Def.Actions, g.current.Actions, g.current.Player, g.Element)
	}
	if g.Lobby != nil {
		info := g.Lobby.Snapshot()
		v.Lobby = &info
	}
	for _, fu := range g.followUpQueue {
		if fu.Player == seat {
			fuCopy := fu
			v.PendingFollowUp = &fuCopy
			break
		}
	}
	return v
}

// seatSessions maps a seat to the broadcast session id currently attached
// to it, so the session layer (not the broadcast adapter) is the owner of
// which transport connection sees which seat's redacted view.
type seatSessions map[int]string

// AttachSession associates sessionID with seat for subsequent broadcasts.
func (g *Game) AttachSession(seat int, sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sessionsBySeat == nil {
		g.sessionsBySeat = make(seatSessions)
	}
	g.sessionsBySeat[seat] = sessionID
}

// DetachSession removes seat's session association.
func (g *Game) DetachSession(seat int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessionsBySeat, seat)
}

// pendingView pairs a session id with the redacted view to send it.
type pendingView struct {
	sessionID string
	view      StateView
}

// pendingViewsLocked snapshots each attached seat's redacted view while the
// caller still holds g.mu, so the actual network Send can happen after the
// lock is released: a broadcaster whose Send blocks on a slow transport
// must never stall every other player's PerformAction/GetState call.
func (g *Game) pendingViewsLocked() []pendingView {
	if g.Broadcaster == nil {
		return nil
	}
	views := make([]pendingView, 0, len(g.sessionsBySeat))
	for seat, sessionID := range g.sessionsBySeat {
		views = append(views, pendingView{sessionID: sessionID, view: g.viewLocked(seat)})
	}
	return views
}

// sendViews fans out previously-snapshotted views via the broadcaster's
// directed Send (spec §4.9: "the session calls broadcast(viewForEach) after
// each mutation"). Must be called without g.mu held.
func (g *Game) sendViews(ctx context.Context, views []pendingView) {
	for _, pv := range views {
		_ = g.Broadcaster.Send(ctx, pv.sessionID, pv.view)
	}
}
