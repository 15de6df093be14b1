// Package random provides the bounded sampling service shared by every
// table, dice and condition request.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// ErrInvalidRange indicates an empty or inverted half-open interval.
var ErrInvalidRange = errors.New("random: empty sampling range")

// Sampler draws uniform integers from a half-open interval [low, high).
// Implementations must be safe for concurrent use.
type Sampler interface {
	Sample(low, high int) (int, error)
}

// Service is the process-wide Sampler. Each Sample call advances the
// generator under a lock, so concurrent requests never observe torn state.
type Service struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// New returns a Service seeded deterministically from seed.
func New(seed uint64) *Service {
	return &Service{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewFromEntropy returns a Service seeded from crypto/rand. The seed is kept
// so a run can be reproduced from the log.
func NewFromEntropy() (*Service, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Seed returns the seed the service was created with.
func (s *Service) Seed() uint64 {
	return s.seed
}

// Sample returns a uniform value in [low, high).
func (s *Service) Sample(low, high int) (int, error) {
	if low >= high {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, low, high)
	}
	s.mu.Lock()
	n := s.rng.IntN(high - low)
	s.mu.Unlock()
	return low + n, nil
}

// SampleN is Sample(0, high).
func (s *Service) SampleN(high int) (int, error) {
	return s.Sample(0, high)
}
