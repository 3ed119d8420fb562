// Package boarderr defines the closed set of stable error codes the engine
// returns at its public boundaries, and the mapping from those codes onto
// gRPC/HTTP-shaped status values for adapters that need one.
package boarderr

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code surfaced on the wire. The set is
// closed: adapters and UIs are expected to switch on it exhaustively.
type Code string

const (
	// NotYourTurn indicates the acting seat is not the flow's current player.
	NotYourTurn Code = "NOT_YOUR_TURN"
	// ActionUnavailable indicates the named action is not currently offered.
	ActionUnavailable Code = "ACTION_UNAVAILABLE"
	// MissingSelection indicates a required selection was absent from args.
	MissingSelection Code = "MISSING_SELECTION"
	// InvalidSelection indicates a submitted value matched no annotated choice.
	InvalidSelection Code = "INVALID_SELECTION"
	// SelectionDisabled indicates a submitted value matched a disabled choice.
	SelectionDisabled Code = "SELECTION_DISABLED"
	// ConditionFailed indicates an author-declared action condition did not hold.
	ConditionFailed Code = "CONDITION_FAILED"
	// ExecuteThrew indicates the action's execute function panicked or returned an error.
	ExecuteThrew Code = "EXECUTE_THREW"
	// ColorAlreadyTaken indicates a requested lobby color collides with another slot.
	ColorAlreadyTaken Code = "COLOR_ALREADY_TAKEN"
	// LobbyNotWaiting indicates an operation requires the lobby to be in the waiting state.
	LobbyNotWaiting Code = "LOBBY_NOT_WAITING"
	// GameNotFound indicates the referenced game id has no live session.
	GameNotFound Code = "GAME_NOT_FOUND"
	// PlayerNotInLobby indicates the referenced player id holds no slot.
	PlayerNotInLobby Code = "PLAYER_NOT_IN_LOBBY"
	// InvalidJSON indicates a transport-level payload failed to parse.
	InvalidJSON Code = "INVALID_JSON"
	// InternalError indicates an adapter or host failure unrelated to game rules.
	InternalError Code = "INTERNAL_ERROR"
	// HostPrivilegeRequired indicates a caller attempted a host-only operation
	// (e.g. changing an AI slot's options) without host privilege attached to
	// its context.
	HostPrivilegeRequired Code = "HOST_PRIVILEGE_REQUIRED"
)

// GRPCCode maps a Code onto the closest gRPC status code, for adapters that
// want to speak gRPC or gRPC-gateway JSON without the core importing a
// transport framework.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case MissingSelection, InvalidSelection, SelectionDisabled, ColorAlreadyTaken, InvalidJSON:
		return codes.InvalidArgument
	case NotYourTurn, ActionUnavailable, ConditionFailed, LobbyNotWaiting:
		return codes.FailedPrecondition
	case HostPrivilegeRequired:
		return codes.PermissionDenied
	case GameNotFound, PlayerNotInLobby:
		return codes.NotFound
	case ExecuteThrew, InternalError:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
