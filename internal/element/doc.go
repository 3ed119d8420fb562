// Package element implements the typed tree of board-game elements — the
// Game root, Players, Spaces, Pieces, and their specialised subtypes — along
// with ownership, visibility, movement, and query semantics.
//
// See element.go, game.go, query.go, filter.go, subtypes.go, and view.go
// for the tree's construction, query, and redaction semantics.
package element
