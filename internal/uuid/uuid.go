// Package uuid generates the opaque ids assigned to new user accounts
package uuid

//go:generate mockgen -destination=mocks/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator produces a new unique id on every call
type Generator interface {
	New() string
}

// RandomGenerator issues random (version 4) UUIDs
type RandomGenerator struct{}

// New returns a fresh UUID in its canonical string form
func (g *RandomGenerator) New() string {
	return uuid.NewString()
}

// NewRandomGenerator creates a RandomGenerator
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}
