// Package requestctx threads the authenticated player identity supplied by
// a host's transport layer (HTTP, WebSocket, ...) through to the session
// layer, which resolves it to a seat via the game's lobby rather than
// trusting a caller-supplied seat number directly. It also threads a
// separate host-privilege flag for host-only operations; changing a slot's
// options by seat (which also covers AI slots) is the one that checks it,
// so an authenticated player acting on their own behalf cannot reach it.
package requestctx

import "context"

type playerIDContextKey struct{}

type hostPrivilegedContextKey struct{}

// WithPlayerID attaches playerID to ctx.
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, playerIDContextKey{}, playerID)
}

// PlayerIDFromContext returns the player id attached by WithPlayerID, or ""
// if none was attached.
func PlayerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(playerIDContextKey{}).(string)
	return value
}

// WithHostPrivileged marks ctx as coming from the host process itself
// (an admin console, a bot scheduling an AI slot's move) rather than from
// a player's own request, regardless of whatever player id also happens to
// be attached to ctx.
func WithHostPrivileged(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, hostPrivilegedContextKey{}, true)
}

// IsHostPrivileged reports whether ctx was marked with WithHostPrivileged.
func IsHostPrivileged(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	privileged, _ := ctx.Value(hostPrivilegedContextKey{}).(bool)
	return privileged
}
