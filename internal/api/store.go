package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samcharles93/amdorder/pkg/amd"
	"github.com/samcharles93/amdorder/pkg/ordering"
)

// OrderingStore keeps finished orderings in memory for later retrieval.
type OrderingStore struct {
	mu        sync.Mutex
	orderings map[string]OrderingResponse
}

func NewOrderingStore() *OrderingStore {
	return &OrderingStore{
		orderings: make(map[string]OrderingResponse),
	}
}

// Create records res under a fresh id and returns the stored response.
func (s *OrderingStore) Create(res *amd.Result, densePermutation bool, now time.Time) OrderingResponse {
	resp := OrderingResponse{
		ID:          newOrderingID(),
		Object:      "ordering",
		CreatedAt:   now.Unix(),
		N:           len(res.Permutation),
		NNZ:         res.NNZ,
		Permutation: res.Permutation,
		Info:        res.Info.Stats(),
		Status:      res.Status.String(),
		Backend:     res.Version.String(),
		Dense:       res.Control[ordering.Dense],
		Aggressive:  res.Control[ordering.Aggressive] != 0,
	}
	if resp.Permutation == nil {
		resp.Permutation = []int{}
	}
	if densePermutation {
		resp.Matrix = amd.Matrix(res.Permutation)
	}

	s.mu.Lock()
	s.orderings[resp.ID] = resp
	s.mu.Unlock()

	return resp
}

func (s *OrderingStore) Get(id string) (OrderingResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.orderings[id]
	return resp, ok
}

func (s *OrderingStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orderings[id]; !ok {
		return false
	}
	delete(s.orderings, id)
	return true
}

func (s *OrderingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orderings)
}

func newOrderingID() string {
	return "ord_" + uuid.NewString()
}
