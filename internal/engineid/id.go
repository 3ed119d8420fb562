// Package engineid generates random identifiers for the engine; session.New
// uses it for game ids.
package engineid

import "github.com/google/uuid"

// New returns a random v4 UUID string, suitable for game ids, session ids,
// and animation-event group ids.
func New() string {
	return uuid.NewString()
}
