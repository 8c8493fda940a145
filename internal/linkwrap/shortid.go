package linkwrap

import (
	"strings"

	"github.com/google/uuid"
)

// MintShortID returns a new opaque short ID: a v4 UUID with the dashes
// stripped. 122 bits of randomness keeps IDs unguessable and collisions
// out of practical reach; the hex alphabet keeps them URL-safe.
func MintShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
