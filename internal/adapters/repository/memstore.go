package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/metrics"
)

type stored[T any] struct {
	value   T
	entries []Entry
}

// MemoryStore is an in-memory Store. Leaderboards are kept sorted on write
// so reads are a slice copy.
type MemoryStore[T any] struct {
	mu       sync.RWMutex
	cfg      storeConfig
	byID     map[string]stored[T]
	order    []string
	rankings map[model.Role][]Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore[T any](opts ...Option) *MemoryStore[T] {
	s := &MemoryStore[T]{
		byID:     make(map[string]stored[T]),
		rankings: make(map[model.Role][]Entry),
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}
	return s
}

// ranksBefore orders by score desc, then moment id asc.
func ranksBefore(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.MomentID != b.MomentID {
		return a.MomentID < b.MomentID
	}
	return a.Player < b.Player
}

func (s *MemoryStore[T]) Put(ctx context.Context, id string, value T, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("put %s: %w", id, err)
	}
	for _, e := range entries {
		if !e.Role.Valid() {
			return fmt.Errorf("put %s: %w: %q", id, ErrInvalidRole, e.Role)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; ok {
		s.removeLocked(id)
	} else if s.cfg.capacity > 0 && len(s.order) >= s.cfg.capacity {
		s.removeLocked(s.order[0])
	}

	own := make([]Entry, len(entries))
	for i, e := range entries {
		e.MomentID = id
		e.Rank = 0
		own[i] = e
		board := s.rankings[e.Role]
		at := sort.Search(len(board), func(j int) bool { return ranksBefore(e, board[j]) })
		board = append(board, Entry{})
		copy(board[at+1:], board[at:])
		board[at] = e
		s.rankings[e.Role] = board
	}
	s.byID[id] = stored[T]{value: value, entries: own}
	s.order = append(s.order, id)
	metrics.UpdateStoredResults(len(s.byID))
	return nil
}

// removeLocked drops id and its entries. Callers hold s.mu.
func (s *MemoryStore[T]) removeLocked(id string) {
	old, ok := s.byID[id]
	if !ok {
		return
	}
	for _, e := range old.entries {
		board := s.rankings[e.Role]
		for j := range board {
			if board[j].MomentID == id && board[j].Player == e.Player {
				s.rankings[e.Role] = append(board[:j], board[j+1:]...)
				break
			}
		}
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return v.value, nil
}

// TopN returns the best n entries for role with competition ranking:
// equal scores share a rank and the next rank skips accordingly.
func (s *MemoryStore[T]) TopN(_ context.Context, role model.Role, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s.mu.RLock()
	board := s.rankings[role]
	out := make([]Entry, min(n, len(board)))
	copy(out, board)
	s.mu.RUnlock()

	for i := range out {
		if i > 0 && out[i].Score == out[i-1].Score {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out, nil
}

func (s *MemoryStore[T]) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
