// Package scripted provides a random.Source that replays fixed draws.
package scripted

import (
	"fmt"
	"sync"

	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

// Source replays Floats for Float64 calls and Ints for IntN calls in order.
// Once a script is exhausted the Fallback source answers, or the call
// panics when no fallback is set.
type Source struct {
	Floats   []float64
	Ints     []int
	Fallback random.Source

	mu        sync.Mutex
	floatNext int
	intNext   int
	calls     []string
}

var _ random.Source = (*Source)(nil)

func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "Float64")
	if s.floatNext < len(s.Floats) {
		v := s.Floats[s.floatNext]
		s.floatNext++
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.Float64()
	}
	panic(fmt.Sprintf("scripted: Float64 script exhausted after %d draws", len(s.Floats)))
}

func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf("IntN(%d)", n))
	if s.intNext < len(s.Ints) {
		v := s.Ints[s.intNext]
		s.intNext++
		if v < 0 || v >= n {
			panic(fmt.Sprintf("scripted: IntN(%d) scripted value %d out of range", n, v))
		}
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.IntN(n)
	}
	panic(fmt.Sprintf("scripted: IntN script exhausted after %d draws", len(s.Ints)))
}

func (s *Source) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "Uint64")
	if s.Fallback != nil {
		return s.Fallback.Uint64()
	}
	panic("scripted: Uint64 has no script")
}

// Calls returns the draw log in call order.
func (s *Source) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Remaining reports unconsumed scripted floats and ints.
func (s *Source) Remaining() (floats, ints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Floats) - s.floatNext, len(s.Ints) - s.intNext
}
