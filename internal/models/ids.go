package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for records loaded without one.
func NewID() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// NameID derives a stable identifier from a record kind and player name, so
// the same sheet row maps to the same record on every load.
func NameID(kind, name string) string {
	key := kind + ":" + strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
