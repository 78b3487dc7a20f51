package adoptions

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("adoption request not found")
	ErrNoSelection  = errors.New("no pet selected")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create registra una solicitud pending para pet. El nombre queda denormalizado.
func (s *Service) Create(ctx context.Context, pet pets.Pet, in Applicant) (Request, error) {
	if strings.TrimSpace(pet.ID) == "" {
		return Request{}, ErrNoSelection
	}

	applicant, err := normalizeApplicant(in)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ID:          uuid.NewString(),
		PetID:       pet.ID,
		PetName:     pet.Name,
		Applicant:   applicant,
		Status:      StatusPending,
		SubmittedAt: s.now(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Request, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// NewWorkflow abre una interacción de adopción sin mascota seleccionada.
func (s *Service) NewWorkflow() *Workflow {
	return &Workflow{svc: s}
}

// Workflow liga la intención de un usuario con la mascota que eligió.
// No es seguro para uso concurrente: se crea uno por interacción.
type Workflow struct {
	svc      *Service
	selected *pets.Pet
}

func (w *Workflow) Select(p pets.Pet) {
	w.selected = &p
}

func (w *Workflow) Selected() (pets.Pet, bool) {
	if w.selected == nil {
		return pets.Pet{}, false
	}
	return *w.selected, true
}

func (w *Workflow) Clear() {
	w.selected = nil
}

// Submit crea la solicitud para la mascota seleccionada y limpia la selección.
// Sin selección devuelve ErrNoSelection y no crea nada. Si los datos del
// solicitante son inválidos la selección se conserva para poder corregirlos.
func (w *Workflow) Submit(ctx context.Context, in Applicant) (Request, error) {
	pet, ok := w.Selected()
	if !ok {
		return Request{}, ErrNoSelection
	}

	req, err := w.svc.Create(ctx, pet, in)
	if err != nil {
		return Request{}, err
	}

	w.Clear()
	return req, nil
}

func normalizeApplicant(in Applicant) (Applicant, error) {
	out := Applicant{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		Experience: strings.TrimSpace(in.Experience),
		Reason:     strings.TrimSpace(in.Reason),
	}

	if out.Name == "" {
		return Applicant{}, ErrInvalidInput
	}
	// Necesitamos al menos un medio de contacto.
	if out.Email == "" && out.Phone == "" {
		return Applicant{}, ErrInvalidInput
	}
	if out.Email != "" {
		addr, err := mail.ParseAddress(out.Email)
		if err != nil || addr.Address != out.Email {
			return Applicant{}, ErrInvalidInput
		}
	}
	return out, nil
}
