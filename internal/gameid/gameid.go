// Package gameid generates the short, time-sortable identifiers attached to
// sessions and rounds in logs and events.
package gameid

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates IDs from UUIDv7 values. A nil reader uses crypto/rand.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator that draws random bits from r.
// Passing a seeded reader makes the random part of IDs reproducible.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new ID using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID: a UUIDv7 encoded as a 26-character base32 string
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g == nil || g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.rand)
	}
	if err != nil {
		panic("failed to generate id: " + err.Error())
	}
	return encoding.EncodeToString(id[:])
}

// Validate checks if an ID is well formed (26 characters of the alphabet
// that decode to a version 7 UUID)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("id must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	if u.Version() != 7 {
		return fmt.Errorf("id is not a v7 uuid (version %d)", u.Version())
	}
	return nil
}
