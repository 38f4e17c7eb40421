package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque IDs for persisted records.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// PrefixedGenerator tags ids with a short aggregate marker, so a bare
// id in a log line or URL still says what it refers to.
type PrefixedGenerator struct {
	prefix string
	inner  *RandomGenerator
}

func NewPrefixed(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{
		prefix: strings.TrimSpace(prefix),
		inner:  NewRandomGenerator(),
	}
}

func (g *PrefixedGenerator) NewID() (string, error) {
	raw, err := g.inner.NewID()
	if err != nil {
		return "", err
	}
	if g.prefix == "" {
		return raw, nil
	}

	return g.prefix + "-" + raw, nil
}
