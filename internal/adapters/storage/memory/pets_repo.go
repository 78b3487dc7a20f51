package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption/internal/domain/pets"
)

// PetRepo guarda la colección en orden de inserción.
// Cada mutación arma un slice nuevo y lo reemplaza completo (copy-on-write),
// así un lector nunca ve una colección a medio modificar.
type PetRepo struct {
	mu    sync.RWMutex
	items []pets.Pet
	index map[string]int
}

var _ pets.Repository = (*PetRepo)(nil)

func NewPetRepo() *PetRepo {
	return &PetRepo{
		index: make(map[string]int),
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.index[p.ID]; exists {
		return errors.New("pet already exists")
	}

	next := make([]pets.Pet, len(r.items), len(r.items)+1)
	copy(next, r.items)
	next = append(next, p)

	r.swap(next)
	return nil
}

// Update aplica fn sobre una copia bajo el lock de escritura: lectura,
// modificación y escritura son atómicas. Si fn falla no se escribe nada.
func (r *PetRepo) Update(ctx context.Context, id string, fn func(*pets.Pet) error) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return pets.Pet{}, pets.ErrNotFound
	}

	p := r.items[i]
	if err := fn(&p); err != nil {
		return pets.Pet{}, err
	}
	p.ID = id

	next := make([]pets.Pet, len(r.items))
	copy(next, r.items)
	next[i] = p

	r.swap(next)
	return p, nil
}

func (r *PetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return pets.ErrNotFound
	}

	next := make([]pets.Pet, 0, len(r.items)-1)
	next = append(next, r.items[:i]...)
	next = append(next, r.items[i+1:]...)

	r.swap(next)
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.items[i], nil
}

func (r *PetRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	snapshot := r.items
	r.mu.RUnlock()

	// snapshot no se vuelve a escribir; la copia es para que el caller pueda modificarla.
	out := make([]pets.Pet, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

// Replace reemplaza la colección completa (restore de snapshots).
func (r *PetRepo) Replace(items []pets.Pet) {
	next := make([]pets.Pet, len(items))
	copy(next, items)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.swap(next)
}

// swap reemplaza la colección y reconstruye el índice. Requiere r.mu tomado.
func (r *PetRepo) swap(next []pets.Pet) {
	index := make(map[string]int, len(next))
	for i, p := range next {
		index[p.ID] = i
	}
	r.items = next
	r.index = index
}
