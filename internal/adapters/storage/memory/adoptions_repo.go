package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption/internal/domain/adoptions"
)

// AdoptionRepo solo agrega: las solicitudes no se editan ni se borran.
type AdoptionRepo struct {
	mu    sync.RWMutex
	items []adoptions.Request
	index map[string]int
}

var _ adoptions.Repository = (*AdoptionRepo)(nil)

func NewAdoptionRepo() *AdoptionRepo {
	return &AdoptionRepo{
		index: make(map[string]int),
	}
}

func (r *AdoptionRepo) Create(ctx context.Context, req adoptions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("adoption request id required")
	}
	if _, exists := r.index[req.ID]; exists {
		return errors.New("adoption request already exists")
	}

	next := make([]adoptions.Request, len(r.items), len(r.items)+1)
	copy(next, r.items)
	next = append(next, req)

	r.index[req.ID] = len(next) - 1
	r.items = next
	return nil
}

func (r *AdoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return r.items[i], nil
}

func (r *AdoptionRepo) List(ctx context.Context) ([]adoptions.Request, error) {
	r.mu.RLock()
	snapshot := r.items
	r.mu.RUnlock()

	out := make([]adoptions.Request, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

func (r *AdoptionRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.items {
		if req.PetID == petID {
			out = append(out, req)
		}
	}
	return out, nil
}

// Replace reemplaza la colección completa (restore de snapshots).
func (r *AdoptionRepo) Replace(items []adoptions.Request) {
	next := make([]adoptions.Request, len(items))
	copy(next, items)

	index := make(map[string]int, len(next))
	for i, req := range next {
		index[req.ID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = next
	r.index = index
}
