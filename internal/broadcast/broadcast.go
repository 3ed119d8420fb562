// Package broadcast defines the adapter contract the session layer uses to
// fan a per-player view out to connected transports, and an in-process
// reference implementation for hosts that don't need a real network hop
// (spec §4.9).
package broadcast

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/boardsmith/boardsmith/internal/platform/otel"
)

// SessionInfo is opaque metadata the adapter associates with a session id;
// concrete transports (WebSocket, in-process) attach whatever they need
// (a connection handle, a seat number, ...).
type SessionInfo struct {
	Seat int
	Data any
}

// Adapter is the contract the session layer depends on. It is polymorphic
// over the capability set {one-to-one send, one-to-many broadcast}; the core
// never assumes a concrete transport (spec §4.9).
type Adapter interface {
	AddSession(id string, info SessionInfo)
	RemoveSession(id string)
	Send(ctx context.Context, sessionID string, message any) error
	Broadcast(ctx context.Context, message any) error
	GetSessions() []string
}

// InProcess is a reference Adapter for hosts that embed the engine directly
// and dispatch to in-memory channel subscribers rather than a real
// transport. Broadcast fans out concurrently and waits for every send, the
// only asynchrony the core's concurrency model allows (spec §5).
type InProcess struct {
	mu       sync.RWMutex
	sessions map[string]SessionInfo
	sendFunc func(ctx context.Context, sessionID string, info SessionInfo, message any) error
}

// NewInProcess returns an InProcess adapter. sendFunc is invoked once per
// session on every Broadcast/Send call; callers typically close over a
// channel-per-session map.
func NewInProcess(sendFunc func(ctx context.Context, sessionID string, info SessionInfo, message any) error) *InProcess {
	return &InProcess{
		sessions: make(map[string]SessionInfo),
		sendFunc: sendFunc,
	}
}

func (a *InProcess) AddSession(id string, info SessionInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[id] = info
}

func (a *InProcess) RemoveSession(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, id)
}

func (a *InProcess) GetSessions() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.sessions))
	for id := range a.sessions {
		out = append(out, id)
	}
	return out
}

// Send delivers message to exactly one session; the session layer uses it
// for each attached seat's redacted view (spec §4.9).
func (a *InProcess) Send(ctx context.Context, sessionID string, message any) error {
	a.mu.RLock()
	info, ok := a.sessions[sessionID]
	a.mu.RUnlock()
	if !ok {
		return nil
	}
	return a.sendFunc(ctx, sessionID, info, message)
}

// Broadcast concurrently delivers message to every session, returning the
// first error encountered (if any) once all sends complete.
func (a *InProcess) Broadcast(ctx context.Context, message any) error {
	ctx, span := otel.StartSpan(ctx, "broadcast.Broadcast")
	defer span.End()

	a.mu.RLock()
	snapshot := make(map[string]SessionInfo, len(a.sessions))
	for id, info := range a.sessions {
		snapshot[id] = info
	}
	a.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	for id, info := range snapshot {
		id, info := id, info
		g.Go(func() error {
			return a.sendFunc(gctx, id, info, message)
		})
	}
	return g.Wait()
}
